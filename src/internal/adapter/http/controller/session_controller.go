package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/api-sage/fx-bank-teller/src/internal/adapter/http/models"
	"github.com/api-sage/fx-bank-teller/src/internal/commons"
	"github.com/api-sage/fx-bank-teller/src/internal/session"
)

type SessionMachine interface {
	Snapshot() session.State
	ChangePin(raw string) session.State
	ChangeDeposit(raw string) session.State
	ChangeWithdraw(raw string) session.State
	Login(ctx context.Context) session.State
	Deposit(ctx context.Context) session.State
	Withdraw(ctx context.Context) session.State
	SignOut() session.State
}

// SessionController exposes the teller session as JSON. Validation and account service
// failures are part of the returned view, not HTTP errors.
type SessionController struct {
	machine SessionMachine
}

func NewSessionController(machine SessionMachine) *SessionController {
	return &SessionController{machine: machine}
}

func (c *SessionController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	routes := map[string]http.HandlerFunc{
		"/session":         c.getSession,
		"/pin":             c.changePin,
		"/deposit-amount":  c.changeDeposit,
		"/withdraw-amount": c.changeWithdraw,
		"/login":           c.login,
		"/deposit":         c.deposit,
		"/withdraw":        c.withdraw,
		"/sign-out":        c.signOut,
	}

	for path, h := range routes {
		var handler http.Handler = h
		if authMiddleware != nil {
			handler = authMiddleware(handler)
		}
		mux.Handle(path, handler)
	}
}

func (c *SessionController) getSession(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		c.methodNotAllowed(w, r, start)
		return
	}

	c.respond(w, r, start, "session fetched", c.machine.Snapshot())
}

func (c *SessionController) changePin(w http.ResponseWriter, r *http.Request) {
	c.changeField(w, r, "pin updated", "pin", c.machine.ChangePin)
}

func (c *SessionController) changeDeposit(w http.ResponseWriter, r *http.Request) {
	c.changeField(w, r, "deposit amount updated", "depositAmount", c.machine.ChangeDeposit)
}

func (c *SessionController) changeWithdraw(w http.ResponseWriter, r *http.Request) {
	c.changeField(w, r, "withdraw amount updated", "withdrawAmount", c.machine.ChangeWithdraw)
}

// changeField logs the value under field so the logger can mask the pin.
func (c *SessionController) changeField(w http.ResponseWriter, r *http.Request, message, field string, change func(string) session.State) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodPost {
		c.methodNotAllowed(w, r, start)
		return
	}

	var req models.ChangeFieldRequest
	if err := decodeOptional(r, &req); err != nil {
		c.badRequest(w, r, start, err)
		return
	}
	logRequest(r, map[string]string{field: req.Value})

	c.respond(w, r, start, message, change(req.Value))
}

func (c *SessionController) login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodPost {
		c.methodNotAllowed(w, r, start)
		return
	}

	var req models.LoginRequest
	if err := decodeOptional(r, &req); err != nil {
		c.badRequest(w, r, start, err)
		return
	}
	logRequest(r, req)

	if req.Pin != nil {
		c.machine.ChangePin(*req.Pin)
	}

	c.respond(w, r, start, "login processed", c.machine.Login(r.Context()))
}

func (c *SessionController) deposit(w http.ResponseWriter, r *http.Request) {
	c.transact(w, r, "deposit processed", c.machine.ChangeDeposit, c.machine.Deposit)
}

func (c *SessionController) withdraw(w http.ResponseWriter, r *http.Request) {
	c.transact(w, r, "withdraw processed", c.machine.ChangeWithdraw, c.machine.Withdraw)
}

func (c *SessionController) transact(
	w http.ResponseWriter,
	r *http.Request,
	message string,
	change func(string) session.State,
	submit func(context.Context) session.State,
) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodPost {
		c.methodNotAllowed(w, r, start)
		return
	}

	var req models.TransactionRequest
	if err := decodeOptional(r, &req); err != nil {
		c.badRequest(w, r, start, err)
		return
	}
	logRequest(r, req)

	if req.Amount != nil {
		change(*req.Amount)
	}

	c.respond(w, r, start, message, submit(r.Context()))
}

func (c *SessionController) signOut(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodPost {
		c.methodNotAllowed(w, r, start)
		return
	}

	c.respond(w, r, start, "signed out", c.machine.SignOut())
}

func (c *SessionController) respond(w http.ResponseWriter, r *http.Request, start time.Time, message string, s session.State) {
	response := commons.SuccessResponse(message, models.NewSessionView(s))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *SessionController) methodNotAllowed(w http.ResponseWriter, r *http.Request, start time.Time) {
	response := commons.ErrorResponse[models.SessionView](commons.CodeMethodNotAllowed, "method not allowed")
	writeJSON(w, http.StatusMethodNotAllowed, response)
	logResponse(r, http.StatusMethodNotAllowed, response, start)
}

func (c *SessionController) badRequest(w http.ResponseWriter, r *http.Request, start time.Time, err error) {
	logError(r, err, nil)
	response := commons.ErrorResponse[models.SessionView](commons.CodeInvalidRequest, "invalid request body", err.Error())
	writeJSON(w, http.StatusBadRequest, response)
	logResponse(r, http.StatusBadRequest, response, start)
}
