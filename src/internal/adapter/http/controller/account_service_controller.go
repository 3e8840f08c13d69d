package controller

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/api-sage/fx-bank-teller/src/internal/adapter/http/models"
	"github.com/api-sage/fx-bank-teller/src/internal/commons"
	"github.com/api-sage/fx-bank-teller/src/internal/domain"
	"github.com/api-sage/fx-bank-teller/src/internal/logger"
)

type AccountDirectory interface {
	FindByPin(ctx context.Context, pin string) (domain.AccountHolder, error)
	Holder(ctx context.Context, id string) (domain.AccountHolder, error)
	ProcessTransaction(ctx context.Context, tx domain.Transaction) error
}

// AccountServiceController serves the mock account service: GET /{pin}, GET /atm and
// GET /holders/{id}.
type AccountServiceController struct {
	directory AccountDirectory
}

func NewAccountServiceController(directory AccountDirectory) *AccountServiceController {
	return &AccountServiceController{directory: directory}
}

func (c *AccountServiceController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	var atm http.Handler = http.HandlerFunc(c.processTransaction)
	var lookup http.Handler = http.HandlerFunc(c.lookup)
	var holder http.Handler = http.HandlerFunc(c.holder)
	if authMiddleware != nil {
		atm = authMiddleware(atm)
		lookup = authMiddleware(lookup)
		holder = authMiddleware(holder)
	}
	mux.Handle("/atm", atm)
	mux.Handle("GET /holders/{id}", holder)
	mux.Handle("/", lookup)
}

func (c *AccountServiceController) lookup(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	r = withPathTemplate(r, "/{pin}")
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		response := commons.ErrorResponse[models.LookupResponse](commons.CodeMethodNotAllowed, "method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	pin := strings.Trim(r.URL.Path, "/")
	holder, err := c.directory.FindByPin(r.Context(), pin)
	if err != nil {
		status := http.StatusInternalServerError
		code := commons.CodeServiceUnavailable
		message := "Unable to look up account right now"
		if errors.Is(err, domain.ErrRecordNotFound) {
			status = http.StatusNotFound
			code = commons.CodeInvalidPin
			message = domain.MessageInvalidPin
		} else {
			logError(r, err, logger.Fields{"message": message})
		}
		response := commons.ErrorResponse[models.LookupResponse](code, message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	response := models.NewLookupResponse(holder)
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountServiceController) processTransaction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		response := commons.ErrorResponse[models.TransactionResponse](commons.CodeMethodNotAllowed, "method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	query := models.TransactionQuery{
		Type:   r.URL.Query().Get("type"),
		Amount: r.URL.Query().Get("amount"),
	}
	if query.Empty() {
		response := commons.SuccessResponse("transaction processed", models.TransactionResponse{})
		writeJSON(w, http.StatusOK, response)
		logResponse(r, http.StatusOK, response, start)
		return
	}

	tx, err := query.Transaction()
	if err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransactionResponse](commons.CodeValidationFailed, "validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	if err := c.directory.ProcessTransaction(r.Context(), tx); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransactionResponse](commons.CodeTransactionFailed, "transaction failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response := commons.SuccessResponse("transaction processed", models.TransactionResponse{
		Type:   string(tx.Kind),
		Amount: tx.Amount,
	})
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountServiceController) holder(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	holder, err := c.directory.Holder(r.Context(), r.PathValue("id"))
	if err != nil {
		status := http.StatusInternalServerError
		code := commons.CodeServiceUnavailable
		message := "Unable to load account holder right now"
		if errors.Is(err, domain.ErrRecordNotFound) {
			status = http.StatusNotFound
			code = commons.CodeNotFound
			message = "account holder not found"
		} else {
			logError(r, err, logger.Fields{"message": message})
		}
		response := commons.ErrorResponse[models.HolderView](code, message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	response := commons.SuccessResponse("account holder retrieved", models.NewHolderView(holder))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
