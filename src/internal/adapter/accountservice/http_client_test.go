package accountservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/api-sage/fx-bank-teller/src/internal/config"
	"github.com/api-sage/fx-bank-teller/src/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBreaker() config.BreakerConfig {
	return config.BreakerConfig{MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, ConsecutiveFailures: 2}
}

func TestHTTPClientLookupMergesReturnedFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1234", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"balance":500,"dailyLimit":"100","nickname":"ignored"}}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL+"/", srv.Client(), testBreaker())

	patch, err := client.Lookup(context.Background(), "1234")
	require.NoError(t, err)

	account := domain.DefaultAccount().Merge(patch)
	assert.Equal(t, domain.Account{FirstName: "First", LastName: "Last", Balance: 500, DailyLimit: 100}, account)
}

func TestHTTPClientLookupFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"not found": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
		"bad body": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		},
		"missing user": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		},
	}

	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()

			_, err := NewHTTPClient(srv.URL, srv.Client(), testBreaker()).Lookup(context.Background(), "1234")
			assert.ErrorIs(t, err, domain.ErrLookupFailed)
		})
	}
}

func TestHTTPClientProcessTransactionSendsKindAndAmount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/atm", r.URL.Path)
		assert.Equal(t, "withdraw", r.URL.Query().Get("type"))
		assert.Equal(t, "40", r.URL.Query().Get("amount"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewHTTPClient(srv.URL, srv.Client(), testBreaker()).ProcessTransaction(context.Background(), domain.Transaction{
		Kind:   domain.TransactionKindWithdraw,
		Amount: 40,
	})
	assert.NoError(t, err)
}

func TestHTTPClientBreakerOpensOnServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, srv.Client(), testBreaker())
	tx := domain.Transaction{Kind: domain.TransactionKindDeposit, Amount: 1}

	for i := 0; i < 3; i++ {
		err := client.ProcessTransaction(context.Background(), tx)
		assert.ErrorIs(t, err, domain.ErrTransactionFailed)
	}

	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPClientUnknownPinDoesNotTripBreaker(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, srv.Client(), testBreaker())
	for i := 0; i < 4; i++ {
		_, _ = client.Lookup(context.Background(), "0000")
	}

	assert.Equal(t, int32(4), calls.Load())
}
