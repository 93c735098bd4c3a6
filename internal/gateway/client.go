// Package gateway wraps the external payment processor's charge operation.
// It knows nothing about orders; it settles exactly one charge per call and
// maps processor outcomes onto the settlement error taxonomy.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	apperrors "orderdesk/internal/errors"
)

const (
	ChargeStatusCompleted = "COMPLETED"

	paymentMethodErrorCategory = "PAYMENT_METHOD_ERROR"
)

type ChargeRequest struct {
	SourceToken      string
	AmountMinorUnits int64
	CurrencyCode     string
	IdempotencyKey   string
}

type ChargeResult struct {
	PaymentID        string
	Status           string
	ReceiptReference string
	AmountMinorUnits int64
	CurrencyCode     string
}

type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	logger      *zap.Logger
}

func NewClient(baseURL, accessToken string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     baseURL,
		accessToken: accessToken,
		logger:      logger,
	}
}

type amountMoney struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type createPaymentRequest struct {
	IdempotencyKey string      `json:"idempotency_key"`
	SourceID       string      `json:"source_id"`
	AmountMoney    amountMoney `json:"amount_money"`
	Autocomplete   bool        `json:"autocomplete"`
}

type createPaymentResponse struct {
	Payment struct {
		ID            string      `json:"id"`
		Status        string      `json:"status"`
		ReceiptNumber string      `json:"receipt_number"`
		AmountMoney   amountMoney `json:"amount_money"`
	} `json:"payment"`
	Errors []struct {
		Category string `json:"category"`
		Code     string `json:"code"`
		Detail   string `json:"detail"`
	} `json:"errors"`
}

// Charge settles one charge against the processor. The idempotency key makes
// a retried submission of the same checkout safe: the processor returns the
// original payment instead of charging twice.
//
// Transport failures and processor-side errors surface as
// GatewayUnavailableError; an explicit rejection of the charge surfaces as
// PaymentDeclinedError, which is a business outcome and is logged at warn
// level only.
func (c *Client) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	body, err := json.Marshal(createPaymentRequest{
		IdempotencyKey: req.IdempotencyKey,
		SourceID:       req.SourceToken,
		AmountMoney: amountMoney{
			Amount:   req.AmountMinorUnits,
			Currency: req.CurrencyCode,
		},
		Autocomplete: true,
	})
	if err != nil {
		return nil, apperrors.NewInternalError("encoding charge request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/payments", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewInternalError("building charge request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)

	c.logger.Debug("charging payment source",
		zap.String("sourceToken", maskToken(req.SourceToken)),
		zap.Int64("amountMinorUnits", req.AmountMinorUnits),
		zap.String("currency", req.CurrencyCode),
		zap.String("idempotencyKey", req.IdempotencyKey),
	)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("gateway request failed", zap.Error(err))
		return nil, apperrors.NewGatewayUnavailableError("gateway request failed", err)
	}
	defer httpResp.Body.Close()

	var resp createPaymentResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		c.logger.Error("gateway response unreadable", zap.Int("statusCode", httpResp.StatusCode), zap.Error(err))
		return nil, apperrors.NewGatewayUnavailableError("decoding gateway response", err)
	}

	if httpResp.StatusCode >= 500 {
		c.logger.Error("gateway server error", zap.Int("statusCode", httpResp.StatusCode))
		return nil, apperrors.NewGatewayUnavailableError(fmt.Sprintf("gateway returned status %d", httpResp.StatusCode), nil)
	}

	if httpResp.StatusCode != http.StatusOK {
		if code, ok := declineCode(resp); ok {
			c.logger.Warn("payment declined",
				zap.String("sourceToken", maskToken(req.SourceToken)),
				zap.String("code", code),
			)
			return nil, apperrors.NewPaymentDeclinedError("FAILED", code)
		}
		c.logger.Error("gateway rejected request", zap.Int("statusCode", httpResp.StatusCode))
		return nil, apperrors.NewGatewayUnavailableError(fmt.Sprintf("gateway returned status %d", httpResp.StatusCode), nil)
	}

	// Any status besides COMPLETED is treated as non-payment.
	if resp.Payment.Status != ChargeStatusCompleted {
		c.logger.Warn("payment not completed",
			zap.String("paymentId", resp.Payment.ID),
			zap.String("status", resp.Payment.Status),
		)
		return nil, apperrors.NewPaymentDeclinedError(resp.Payment.Status, "")
	}

	return &ChargeResult{
		PaymentID:        resp.Payment.ID,
		Status:           resp.Payment.Status,
		ReceiptReference: resp.Payment.ReceiptNumber,
		AmountMinorUnits: resp.Payment.AmountMoney.Amount,
		CurrencyCode:     resp.Payment.AmountMoney.Currency,
	}, nil
}

// declineCode reports whether the error payload describes a rejected payment
// method, as opposed to a malformed or unauthorized request.
func declineCode(resp createPaymentResponse) (string, bool) {
	for _, e := range resp.Errors {
		if e.Category == paymentMethodErrorCategory {
			return e.Code, true
		}
	}
	return "", false
}

// maskToken keeps only the last four characters for logging. The full source
// token is never logged.
func maskToken(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}
