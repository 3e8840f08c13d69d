package domain

import "errors"

var ErrRecordNotFound = errors.New("Record not found")

var (
	ErrInvalidPin            = errors.New("invalid pin")
	ErrInvalidDepositAmount  = errors.New("invalid deposit amount")
	ErrInvalidWithdrawAmount = errors.New("invalid withdraw amount")
	ErrExceededDailyLimit    = errors.New("exceeded daily limit")
	ErrTransactionFailed     = errors.New("transaction failed")
	ErrLookupFailed          = errors.New("account lookup failed")
)

// Field messages rendered next to the matching input.
const (
	MessageInvalidPin            = "Invalid Pin"
	MessageInvalidDepositAmount  = "Enter a valid deposit amount"
	MessageInvalidWithdrawAmount = "Enter a valid withdraw amount"
	MessageExceededDailyLimit    = "Exceeded daily limit"
)

// FieldMessage maps an error to the text shown next to an input. Lookup failures read
// as an invalid pin because the account service does not tell the two apart.
// Transaction failures have no message.
func FieldMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidPin), errors.Is(err, ErrLookupFailed):
		return MessageInvalidPin
	case errors.Is(err, ErrInvalidDepositAmount):
		return MessageInvalidDepositAmount
	case errors.Is(err, ErrInvalidWithdrawAmount):
		return MessageInvalidWithdrawAmount
	case errors.Is(err, ErrExceededDailyLimit):
		return MessageExceededDailyLimit
	default:
		return ""
	}
}
