package session

import "github.com/api-sage/fx-bank-teller/src/internal/domain"

// ChangePin stores the digits of raw. Input longer than MaxPinLength digits is
// rejected and the previous pin kept.
func ChangePin(s State, raw string) State {
	digits := DigitsOnly(raw)
	if len(digits) > MaxPinLength {
		return s
	}

	s.Pin = digits
	return s
}

func ChangeDeposit(s State, raw string) State {
	s.Errors.Deposit = ""
	s.DepositAmount = DigitsOnly(raw)
	return s
}

// ChangeWithdraw stores the digits of raw even when they exceed the daily limit; the
// limit error is what blocks submission.
func ChangeWithdraw(s State, raw string) State {
	digits := DigitsOnly(raw)
	if exceeds(digits, s.Account.DailyLimit) {
		s.Errors.Withdraw = domain.MessageExceededDailyLimit
	} else {
		s.Errors.Withdraw = ""
	}

	s.WithdrawAmount = digits
	return s
}

// BeginLogin validates pin and marks the login in flight. The bool is false when no
// lookup should be made.
func BeginLogin(s State, pin string) (State, bool) {
	if pin == "" {
		s.Errors.Pin = domain.FieldMessage(domain.ErrInvalidPin)
		s.Loading = false
		s.Pending = ActionNone
		return s, false
	}

	s.Loading = true
	s.Pending = ActionLogin
	s.Errors.Pin = ""
	return s, true
}

func CompleteLogin(s State, patch domain.ProfilePatch, err error) State {
	s.Loading = false
	s.Pending = ActionNone

	if err != nil {
		s.Errors.Pin = domain.FieldMessage(domain.ErrLookupFailed)
		return s
	}

	s.Account = s.Account.Merge(patch)
	s.Authenticated = true
	s.Pin = ""
	return s
}

// BeginDeposit validates amount and marks the deposit in flight. An existing deposit
// error blocks the submission.
func BeginDeposit(s State, amount string) (State, int64, bool) {
	if amount == "" {
		s.Errors.Deposit = domain.FieldMessage(domain.ErrInvalidDepositAmount)
		s.Loading = false
		return s, 0, false
	}
	if s.Errors.Deposit != "" {
		s.Loading = false
		return s, 0, false
	}

	parsed, err := ParseAmount(amount)
	if err != nil {
		s.Errors.Deposit = domain.FieldMessage(domain.ErrInvalidDepositAmount)
		s.Loading = false
		return s, 0, false
	}

	s.Loading = true
	s.Pending = ActionDeposit
	return s, parsed, true
}

// CompleteDeposit credits amount on success. A failed transaction sets no message.
func CompleteDeposit(s State, amount int64, err error) State {
	s.Loading = false
	s.Pending = ActionNone

	if err != nil {
		return s
	}

	s.Account.Balance += amount
	s.DepositAmount = ""
	return s
}

// BeginWithdraw validates amount and marks the withdrawal in flight. An existing
// withdraw error, such as the daily limit, blocks the submission untouched.
func BeginWithdraw(s State, amount string) (State, int64, bool) {
	if s.Errors.Withdraw != "" {
		return s, 0, false
	}

	if amount == "" {
		s.Errors.Withdraw = domain.FieldMessage(domain.ErrInvalidWithdrawAmount)
		s.Loading = false
		return s, 0, false
	}

	parsed, err := ParseAmount(amount)
	if err != nil {
		s.Errors.Withdraw = domain.FieldMessage(domain.ErrInvalidWithdrawAmount)
		s.Loading = false
		return s, 0, false
	}

	s.Loading = true
	s.Pending = ActionWithdraw
	return s, parsed, true
}

// CompleteWithdraw debits the balance and consumes the same amount of the daily limit.
func CompleteWithdraw(s State, amount int64, err error) State {
	s.Loading = false
	s.Pending = ActionNone

	if err != nil {
		return s
	}

	s.Account.Balance -= amount
	s.Account.DailyLimit -= amount
	s.WithdrawAmount = ""
	return s
}

func SignOut(State) State {
	return Initial()
}
