package testutils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
)

const (
	PaymentAccessToken = "access_token"
	// DeclinedHandle is rejected by the fake payment server.
	DeclinedHandle = "declined-handle"
)

// PaymentRequest is a payment received by the fake payment server.
type PaymentRequest struct {
	Recipient      string `json:"recipient"`
	Amount         string `json:"amount"`
	Note           string `json:"note"`
	IdempotencyKey string `json:"-"`
}

type FakePaymentServer struct {
	s *httptest.Server

	mu       sync.Mutex
	payments []PaymentRequest
}

func NewFakePaymentServer() *FakePaymentServer {
	f := &FakePaymentServer{}

	r := chi.NewRouter()
	r.Use(bearerToken)
	r.Post("/payments", f.paymentsHandler)

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakePaymentServer) Close() {
	f.s.Close()
}

func (f *FakePaymentServer) URL() string {
	return f.s.URL
}

// Payments returns the accepted payments in the order they were received.
func (f *FakePaymentServer) Payments() []PaymentRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]PaymentRequest(nil), f.payments...)
}

func bearerToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+PaymentAccessToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakePaymentServer) paymentsHandler(w http.ResponseWriter, r *http.Request) {
	var p PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	p.IdempotencyKey = r.Header.Get("Idempotency-Key")
	if p.IdempotencyKey == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if p.Recipient == DeclinedHandle {
		w.WriteHeader(http.StatusPaymentRequired)
		return
	}

	f.mu.Lock()
	f.payments = append(f.payments, p)
	id := len(f.payments)
	f.mu.Unlock()

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	fmt.Fprintf(w, `{
		"id": "pmt_%d",
		"recipient": %q,
		"amount": %q,
		"note": %q,
		"status": "completed"
	}`, id, p.Recipient, p.Amount, p.Note)
}
