package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	apperrors "orderdesk/internal/errors"
)

func testChargeRequest() ChargeRequest {
	return ChargeRequest{
		SourceToken:      "cnon:card-nonce-ok",
		AmountMinorUnits: 4250,
		CurrencyCode:     "CAD",
		IdempotencyKey:   "f2c7e9ab-1111-2222-3333-444455556666",
	}
}

func newTestClient(serverURL string) *Client {
	return NewClient(serverURL, "test-token", 2*time.Second, zap.NewNop())
}

func TestCharge_Completed(t *testing.T) {
	var gotReq createPaymentRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/payments", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		resp := map[string]any{
			"payment": map[string]any{
				"id":             "pay_abc123",
				"status":         "COMPLETED",
				"receipt_number": "RCPT-42",
				"amount_money":   map[string]any{"amount": 4250, "currency": "CAD"},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	result, err := client.Charge(context.Background(), testChargeRequest())

	assert.NoError(t, err)
	assert.Equal(t, "pay_abc123", result.PaymentID)
	assert.Equal(t, ChargeStatusCompleted, result.Status)
	assert.Equal(t, "RCPT-42", result.ReceiptReference)
	assert.Equal(t, int64(4250), result.AmountMinorUnits)
	assert.Equal(t, "CAD", result.CurrencyCode)

	assert.Equal(t, "f2c7e9ab-1111-2222-3333-444455556666", gotReq.IdempotencyKey)
	assert.Equal(t, "cnon:card-nonce-ok", gotReq.SourceID)
	assert.Equal(t, int64(4250), gotReq.AmountMoney.Amount)
}

func TestCharge_DeclinedByErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]any{
				{"category": "PAYMENT_METHOD_ERROR", "code": "CARD_DECLINED", "detail": "card declined"},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Charge(context.Background(), testChargeRequest())

	pde, ok := apperrors.IsPaymentDeclinedError(err)
	assert.True(t, ok, "expected PaymentDeclinedError, got %v", err)
	assert.Equal(t, "CARD_DECLINED", pde.Code)
}

func TestCharge_NonCompletedStatusIsDeclined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"payment": map[string]any{
				"id":     "pay_pending",
				"status": "PENDING",
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Charge(context.Background(), testChargeRequest())

	pde, ok := apperrors.IsPaymentDeclinedError(err)
	assert.True(t, ok)
	assert.Equal(t, "PENDING", pde.Status)
}

func TestCharge_ServerErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Charge(context.Background(), testChargeRequest())

	_, ok := apperrors.IsGatewayUnavailableError(err)
	assert.True(t, ok, "expected GatewayUnavailableError, got %v", err)
}

func TestCharge_BadRequestWithoutDeclineIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]any{
				{"category": "AUTHENTICATION_ERROR", "code": "UNAUTHORIZED"},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Charge(context.Background(), testChargeRequest())

	_, ok := apperrors.IsGatewayUnavailableError(err)
	assert.True(t, ok)
}

func TestCharge_NetworkErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := newTestClient(server.URL)

	_, err := client.Charge(context.Background(), testChargeRequest())

	_, ok := apperrors.IsGatewayUnavailableError(err)
	assert.True(t, ok)
}

func TestCharge_TimeoutIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token", 50*time.Millisecond, zap.NewNop())

	_, err := client.Charge(context.Background(), testChargeRequest())

	_, ok := apperrors.IsGatewayUnavailableError(err)
	assert.True(t, ok)
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "****e-ok", maskToken("cnon:card-nonce-ok"))
	assert.Equal(t, "****", maskToken("ab"))
}
