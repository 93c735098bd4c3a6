package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"orderdesk/internal/catalog"
	ordercontroller "orderdesk/internal/order/controller"
)

func NewRouter(orderCtrl *ordercontroller.OrderController, catalogCtrl *catalog.Controller, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/checkout", orderCtrl.HandleCheckout)
		r.Get("/orders/{orderNumber}", orderCtrl.HandleGetOrder)
		r.Patch("/orders/{orderId}/status", orderCtrl.HandleUpdateStatus)
		r.Patch("/orders/{orderId}/payment-status", orderCtrl.HandleUpdatePaymentStatus)
		r.Post("/menu/search", catalogCtrl.HandleSearchMenuItems)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request handled",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
