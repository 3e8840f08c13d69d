package models

import (
	"strings"

	"github.com/api-sage/fx-bank-teller/src/internal/commons"
	"github.com/api-sage/fx-bank-teller/src/internal/session"
)

type ChangeFieldRequest struct {
	Value string `json:"value"`
}

// LoginRequest may carry the pin; otherwise the stored pin is used.
type LoginRequest struct {
	Pin *string `json:"pin,omitempty"`
}

// TransactionRequest may carry the amount; otherwise the stored amount is used.
type TransactionRequest struct {
	Amount *string `json:"amount,omitempty"`
}

type FieldErrorsView struct {
	Pin      string `json:"pin"`
	Deposit  string `json:"deposit"`
	Withdraw string `json:"withdraw"`
}

type AccountView struct {
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	Balance             int64  `json:"balance"`
	DailyLimit          int64  `json:"dailyLimit"`
	FormattedBalance    string `json:"formattedBalance"`
	FormattedDailyLimit string `json:"formattedDailyLimit"`
}

// SessionView is what a presentation layer needs to render the sign-in form or the
// dashboard. The pin itself is never returned.
type SessionView struct {
	Phase          string          `json:"phase"`
	Authenticated  bool            `json:"authenticated"`
	Loading        bool            `json:"loading"`
	PinLength      int             `json:"pinLength"`
	DepositAmount  string          `json:"depositAmount"`
	WithdrawAmount string          `json:"withdrawAmount"`
	Errors         FieldErrorsView `json:"errors"`
	Account        AccountView     `json:"account"`
	Greeting       string          `json:"greeting"`
	CanSignIn      bool            `json:"canSignIn"`
	CanDeposit     bool            `json:"canDeposit"`
	CanWithdraw    bool            `json:"canWithdraw"`
}

func NewSessionView(s session.State) SessionView {
	return SessionView{
		Phase:          string(s.Phase()),
		Authenticated:  s.Authenticated,
		Loading:        s.Loading,
		PinLength:      len(s.Pin),
		DepositAmount:  s.DepositAmount,
		WithdrawAmount: s.WithdrawAmount,
		Errors: FieldErrorsView{
			Pin:      s.Errors.Pin,
			Deposit:  s.Errors.Deposit,
			Withdraw: s.Errors.Withdraw,
		},
		Account: AccountView{
			FirstName:           s.Account.FirstName,
			LastName:            s.Account.LastName,
			Balance:             s.Account.Balance,
			DailyLimit:          s.Account.DailyLimit,
			FormattedBalance:    commons.FormatUSD(s.Account.Balance),
			FormattedDailyLimit: commons.FormatUSD(s.Account.DailyLimit),
		},
		Greeting:    greeting(s),
		CanSignIn:   s.CanSubmitLogin(),
		CanDeposit:  s.CanSubmitDeposit(),
		CanWithdraw: s.CanSubmitWithdraw(),
	}
}

func greeting(s session.State) string {
	if !s.Authenticated {
		return "Please enter your pin"
	}

	name := strings.TrimSpace(s.Account.FirstName + " " + s.Account.LastName)
	return "Welcome " + name + "!"
}
