package session

import "github.com/api-sage/fx-bank-teller/src/internal/domain"

type Phase string

const (
	PhaseLoggedOut       Phase = "LoggedOut"
	PhaseAuthenticating  Phase = "Authenticating"
	PhaseLoggedIn        Phase = "LoggedIn"
	PhaseDepositPending  Phase = "DepositPending"
	PhaseWithdrawPending Phase = "WithdrawPending"
)

// Action names the operation waiting on the account service.
type Action string

const (
	ActionNone     Action = ""
	ActionLogin    Action = "login"
	ActionDeposit  Action = "deposit"
	ActionWithdraw Action = "withdraw"
)

// FieldErrors holds the message shown next to each input. Empty means no error.
type FieldErrors struct {
	Pin      string
	Deposit  string
	Withdraw string
}

// State is the whole session. It is a plain value: reducers take one and return the
// next, and two states are equal exactly when == says so.
type State struct {
	Authenticated  bool
	Loading        bool
	Pending        Action
	Pin            string
	DepositAmount  string
	WithdrawAmount string
	Errors         FieldErrors
	Account        domain.Account
}

// Initial is the state at process start and after sign-out.
func Initial() State {
	return State{Account: domain.DefaultAccount()}
}

func (s State) Phase() Phase {
	if !s.Authenticated {
		if s.Pending == ActionLogin {
			return PhaseAuthenticating
		}
		return PhaseLoggedOut
	}

	switch s.Pending {
	case ActionDeposit:
		return PhaseDepositPending
	case ActionWithdraw:
		return PhaseWithdrawPending
	default:
		return PhaseLoggedIn
	}
}

func (s State) CanSubmitLogin() bool {
	return !s.Authenticated && !s.Loading && len(s.Pin) == MaxPinLength
}

func (s State) CanSubmitDeposit() bool {
	return s.Authenticated && !s.Loading
}

func (s State) CanSubmitWithdraw() bool {
	return s.Authenticated && !s.Loading && s.Errors.Withdraw == ""
}
