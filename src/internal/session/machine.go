package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/api-sage/fx-bank-teller/src/internal/domain"
	"github.com/api-sage/fx-bank-teller/src/internal/logger"
)

const DefaultRequestTimeout = 10 * time.Second

var errNoAccountService = errors.New("account service is not configured")

// AccountService is the system of record the session signs in against and reports
// transactions to.
type AccountService interface {
	Lookup(ctx context.Context, pin string) (domain.ProfilePatch, error)
	ProcessTransaction(ctx context.Context, tx domain.Transaction) error
}

type Option func(*Machine)

// WithRequestTimeout bounds every account service call. Zero or less disables the bound.
func WithRequestTimeout(d time.Duration) Option {
	return func(m *Machine) {
		m.timeout = d
	}
}

// Machine owns a single session. Actions run the matching reducers around at most
// one account service call; the lock is not held while the call is in flight, so
// Snapshot reports Loading for its duration.
//
// While an action is pending further login, deposit and withdraw submissions are
// ignored. A response that arrives after SignOut is dropped.
type Machine struct {
	service AccountService
	timeout time.Duration

	mu         sync.Mutex
	state      State
	generation uint64
}

func NewMachine(service AccountService, opts ...Option) *Machine {
	m := &Machine{
		service: service,
		timeout: DefaultRequestTimeout,
		state:   Initial(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Machine) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) ChangePin(raw string) State {
	return m.apply(func(s State) State { return ChangePin(s, raw) })
}

func (m *Machine) ChangeDeposit(raw string) State {
	return m.apply(func(s State) State { return ChangeDeposit(s, raw) })
}

func (m *Machine) ChangeWithdraw(raw string) State {
	return m.apply(func(s State) State { return ChangeWithdraw(s, raw) })
}

// SignOut restores the initial state.
func (m *Machine) SignOut() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.generation++
	m.state = SignOut(m.state)

	logger.Info("session signed out", logger.Fields{
		"generation": m.generation,
	})
	return m.state
}

// Login looks up the account for the stored pin.
func (m *Machine) Login(ctx context.Context) State {
	m.mu.Lock()
	if m.state.Loading || m.state.Authenticated {
		ignored := m.state
		m.mu.Unlock()
		logger.Info("session login ignored", logger.Fields{"phase": string(ignored.Phase())})
		return ignored
	}

	pin := m.state.Pin
	next, ok := BeginLogin(m.state, pin)
	m.state = next
	generation := m.generation
	m.mu.Unlock()

	if !ok {
		logger.Info("session login rejected", logger.Fields{"reason": domain.ErrInvalidPin.Error()})
		return next
	}

	logger.Info("session login request", logger.Fields{"pin": pin})

	patch, err := m.lookup(ctx, pin)
	if err != nil {
		logger.Error("session login lookup failed", err, nil)
	}

	return m.complete(generation, func(s State) State { return CompleteLogin(s, patch, err) })
}

// Deposit credits the stored deposit amount once the account service accepts it.
func (m *Machine) Deposit(ctx context.Context) State {
	m.mu.Lock()
	if m.state.Loading || !m.state.Authenticated {
		ignored := m.state
		m.mu.Unlock()
		logger.Info("session deposit ignored", logger.Fields{"phase": string(ignored.Phase())})
		return ignored
	}

	next, amount, ok := BeginDeposit(m.state, m.state.DepositAmount)
	m.state = next
	generation := m.generation
	m.mu.Unlock()

	if !ok {
		logger.Info("session deposit rejected", logger.Fields{"message": next.Errors.Deposit})
		return next
	}

	tx := domain.Transaction{Kind: domain.TransactionKindDeposit, Amount: amount}
	err := m.process(ctx, tx)
	if err != nil {
		logger.Error("session deposit failed", err, logger.Fields{"amount": amount})
	}

	return m.complete(generation, func(s State) State { return CompleteDeposit(s, amount, err) })
}

// Withdraw debits the stored withdraw amount from both balance and daily limit once
// the account service accepts it.
func (m *Machine) Withdraw(ctx context.Context) State {
	m.mu.Lock()
	if m.state.Loading || !m.state.Authenticated {
		ignored := m.state
		m.mu.Unlock()
		logger.Info("session withdraw ignored", logger.Fields{"phase": string(ignored.Phase())})
		return ignored
	}

	next, amount, ok := BeginWithdraw(m.state, m.state.WithdrawAmount)
	m.state = next
	generation := m.generation
	m.mu.Unlock()

	if !ok {
		logger.Info("session withdraw rejected", logger.Fields{"message": next.Errors.Withdraw})
		return next
	}

	tx := domain.Transaction{Kind: domain.TransactionKindWithdraw, Amount: amount}
	err := m.process(ctx, tx)
	if err != nil {
		logger.Error("session withdraw failed", err, logger.Fields{"amount": amount})
	}

	return m.complete(generation, func(s State) State { return CompleteWithdraw(s, amount, err) })
}

func (m *Machine) apply(reduce func(State) State) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = reduce(m.state)
	return m.state
}

func (m *Machine) complete(generation uint64, reduce func(State) State) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	if generation != m.generation {
		logger.Info("session response dropped after sign out", logger.Fields{
			"generation": generation,
			"current":    m.generation,
		})
		return m.state
	}

	m.state = reduce(m.state)
	return m.state
}

func (m *Machine) lookup(ctx context.Context, pin string) (domain.ProfilePatch, error) {
	if m.service == nil {
		return domain.ProfilePatch{}, fmt.Errorf("%w: %w", domain.ErrLookupFailed, errNoAccountService)
	}

	callCtx, cancel := m.callContext(ctx)
	defer cancel()

	return m.service.Lookup(callCtx, pin)
}

func (m *Machine) process(ctx context.Context, tx domain.Transaction) error {
	if m.service == nil {
		return fmt.Errorf("%w: %w", domain.ErrTransactionFailed, errNoAccountService)
	}

	callCtx, cancel := m.callContext(ctx)
	defer cancel()

	return m.service.ProcessTransaction(callCtx, tx)
}

func (m *Machine) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if m.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, m.timeout)
}
