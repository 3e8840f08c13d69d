package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/api-sage/fx-bank-teller/src/internal/adapter/http/models"
	"github.com/api-sage/fx-bank-teller/src/internal/commons"
	"github.com/api-sage/fx-bank-teller/src/internal/domain"
	"github.com/api-sage/fx-bank-teller/src/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountServiceStub struct {
	lookupFn  func(ctx context.Context, pin string) (domain.ProfilePatch, error)
	processFn func(ctx context.Context, tx domain.Transaction) error
}

func (s accountServiceStub) Lookup(ctx context.Context, pin string) (domain.ProfilePatch, error) {
	if s.lookupFn != nil {
		return s.lookupFn(ctx, pin)
	}
	return domain.ProfilePatch{}, nil
}

func (s accountServiceStub) ProcessTransaction(ctx context.Context, tx domain.Transaction) error {
	if s.processFn != nil {
		return s.processFn(ctx, tx)
	}
	return nil
}

func newSessionMux(stub accountServiceStub) *http.ServeMux {
	mux := http.NewServeMux()
	NewSessionController(session.NewMachine(stub)).RegisterRoutes(mux, nil)
	return mux
}

func call(t *testing.T, mux http.Handler, method, path string, body any) (int, commons.Response[models.SessionView]) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(method, path, &buf))

	var out commons.Response[models.SessionView]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return rr.Code, out
}

func TestSessionControllerInitialView(t *testing.T) {
	mux := newSessionMux(accountServiceStub{})

	code, resp := call(t, mux, http.MethodGet, "/session", nil)

	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "LoggedOut", resp.Data.Phase)
	assert.Equal(t, "$0.00", resp.Data.Account.FormattedBalance)
	assert.Equal(t, "$100.00", resp.Data.Account.FormattedDailyLimit)
	assert.Equal(t, "Please enter your pin", resp.Data.Greeting)
	assert.False(t, resp.Data.CanSignIn)
}

func TestSessionControllerLoginDepositWithdrawFlow(t *testing.T) {
	firstName := "Ada"
	lastName := "Lovelace"
	balance := int64(500)
	dailyLimit := int64(100)
	mux := newSessionMux(accountServiceStub{
		lookupFn: func(_ context.Context, pin string) (domain.ProfilePatch, error) {
			if pin != "1234" {
				return domain.ProfilePatch{}, domain.ErrLookupFailed
			}
			return domain.ProfilePatch{FirstName: &firstName, LastName: &lastName, Balance: &balance, DailyLimit: &dailyLimit}, nil
		},
	})

	_, resp := call(t, mux, http.MethodPost, "/pin", models.ChangeFieldRequest{Value: "12-34"})
	assert.Equal(t, 4, resp.Data.PinLength)
	assert.True(t, resp.Data.CanSignIn)

	_, resp = call(t, mux, http.MethodPost, "/login", nil)
	require.True(t, resp.Data.Authenticated)
	assert.Equal(t, "Welcome Ada Lovelace!", resp.Data.Greeting)
	assert.Equal(t, 0, resp.Data.PinLength)

	_, resp = call(t, mux, http.MethodPost, "/deposit", map[string]string{"amount": "200"})
	assert.Equal(t, int64(700), resp.Data.Account.Balance)
	assert.Equal(t, "$700.00", resp.Data.Account.FormattedBalance)

	_, resp = call(t, mux, http.MethodPost, "/withdraw-amount", models.ChangeFieldRequest{Value: "150"})
	assert.Equal(t, "Exceeded daily limit", resp.Data.Errors.Withdraw)
	assert.False(t, resp.Data.CanWithdraw)

	_, resp = call(t, mux, http.MethodPost, "/withdraw", map[string]string{"amount": "40"})
	assert.Equal(t, int64(660), resp.Data.Account.Balance)
	assert.Equal(t, int64(60), resp.Data.Account.DailyLimit)

	_, resp = call(t, mux, http.MethodPost, "/sign-out", nil)
	assert.Equal(t, models.NewSessionView(session.Initial()), *resp.Data)
}

func TestSessionControllerLoginWithInlinePin(t *testing.T) {
	mux := newSessionMux(accountServiceStub{
		lookupFn: func(context.Context, string) (domain.ProfilePatch, error) {
			return domain.ProfilePatch{}, domain.ErrLookupFailed
		},
	})

	code, resp := call(t, mux, http.MethodPost, "/login", map[string]string{"pin": "9999"})

	assert.Equal(t, http.StatusOK, code)
	assert.False(t, resp.Data.Authenticated)
	assert.Equal(t, "Invalid Pin", resp.Data.Errors.Pin)
}

func TestSessionControllerMethodNotAllowed(t *testing.T) {
	mux := newSessionMux(accountServiceStub{})

	code, resp := call(t, mux, http.MethodGet, "/login", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, code)
	assert.False(t, resp.Success)
	assert.Equal(t, commons.CodeMethodNotAllowed, resp.Code)
}

func TestSessionControllerRejectsMalformedBody(t *testing.T) {
	mux := newSessionMux(accountServiceStub{})

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/pin", bytes.NewBufferString("{")))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
