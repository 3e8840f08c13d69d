package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/api-sage/fx-bank-teller/src/internal/adapter/accountservice"
	"github.com/api-sage/fx-bank-teller/src/internal/adapter/http/models"
	"github.com/api-sage/fx-bank-teller/src/internal/adapter/repository/memory"
	"github.com/api-sage/fx-bank-teller/src/internal/commons"
	"github.com/api-sage/fx-bank-teller/src/internal/config"
	"github.com/api-sage/fx-bank-teller/src/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAccountServiceServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv, _ := newAccountServiceServerWithHolder(t)
	return srv
}

func newAccountServiceServerWithHolder(t *testing.T) (*httptest.Server, domain.AccountHolder) {
	t.Helper()

	directory := accountservice.NewDirectory(memory.NewAccountHolderRepository(), bcrypt.MinCost)
	holder, err := directory.Enroll(context.Background(), domain.AccountHolder{
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Balance:    500,
		DailyLimit: 100,
	}, "1234")
	require.NoError(t, err)

	mux := http.NewServeMux()
	NewAccountServiceController(directory).RegisterRoutes(mux, nil)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, holder
}

func TestAccountServiceLookup(t *testing.T) {
	srv := newAccountServiceServer(t)

	resp, err := srv.Client().Get(srv.URL + "/1234")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body models.LookupResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, models.AccountHolderView{FirstName: "Ada", LastName: "Lovelace", Balance: 500, DailyLimit: 100}, body.User)
}

func TestAccountServiceLookupUnknownPin(t *testing.T) {
	srv := newAccountServiceServer(t)

	resp, err := srv.Client().Get(srv.URL + "/4321")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body commons.Response[models.LookupResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, commons.CodeInvalidPin, body.Code)
	assert.Equal(t, domain.MessageInvalidPin, body.Message)
}

func TestAccountServiceHolderByID(t *testing.T) {
	srv, holder := newAccountServiceServerWithHolder(t)

	resp, err := srv.Client().Get(srv.URL + "/holders/" + holder.ID)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body commons.Response[models.HolderView]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotNil(t, body.Data)
	assert.Equal(t, holder.ID, body.Data.ID)
	assert.Equal(t, "Ada", body.Data.FirstName)
	assert.Equal(t, int64(500), body.Data.Balance)
}

func TestAccountServiceHolderByIDMissing(t *testing.T) {
	srv := newAccountServiceServer(t)

	resp, err := srv.Client().Get(srv.URL + "/holders/missing")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body commons.Response[models.HolderView]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, commons.CodeNotFound, body.Code)
}

func TestAccountServiceATM(t *testing.T) {
	srv := newAccountServiceServer(t)

	cases := []struct {
		query string
		want  int
	}{
		{query: "", want: http.StatusOK},
		{query: "?type=deposit&amount=200", want: http.StatusOK},
		{query: "?type=withdraw&amount=0", want: http.StatusOK},
		{query: "?type=deposit&amount=-3", want: http.StatusBadRequest},
		{query: "?type=transfer&amount=5", want: http.StatusBadRequest},
		{query: "?type=deposit&amount=1.5", want: http.StatusBadRequest},
	}

	for _, tc := range cases {
		resp, err := srv.Client().Get(srv.URL + "/atm" + tc.query)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, tc.want, resp.StatusCode, "query %q", tc.query)
	}
}

func TestHTTPClientAgainstAccountService(t *testing.T) {
	srv := newAccountServiceServer(t)
	client := accountservice.NewHTTPClient(srv.URL, srv.Client(), config.BreakerConfig{ConsecutiveFailures: 3})

	patch, err := client.Lookup(context.Background(), "1234")
	require.NoError(t, err)
	assert.Equal(t, domain.Account{FirstName: "Ada", LastName: "Lovelace", Balance: 500, DailyLimit: 100}, domain.DefaultAccount().Merge(patch))

	_, err = client.Lookup(context.Background(), "0000")
	assert.ErrorIs(t, err, domain.ErrLookupFailed)

	assert.NoError(t, client.ProcessTransaction(context.Background(), domain.Transaction{Kind: domain.TransactionKindDeposit, Amount: 5}))
}
