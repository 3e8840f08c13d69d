package models

import (
	"errors"
	"strings"

	"github.com/api-sage/fx-bank-teller/src/internal/domain"
	"github.com/shopspring/decimal"
)

type AccountHolderView struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Balance    int64  `json:"balance"`
	DailyLimit int64  `json:"dailyLimit"`
}

// LookupResponse is the account service lookup body, {"user": {...}}.
type LookupResponse struct {
	User AccountHolderView `json:"user"`
}

func NewLookupResponse(holder domain.AccountHolder) LookupResponse {
	return LookupResponse{
		User: AccountHolderView{
			FirstName:  holder.FirstName,
			LastName:   holder.LastName,
			Balance:    holder.Balance,
			DailyLimit: holder.DailyLimit,
		},
	}
}

// HolderView exposes a stored holder by id. The pin hash never leaves the service.
type HolderView struct {
	ID string `json:"id"`
	AccountHolderView
}

func NewHolderView(holder domain.AccountHolder) HolderView {
	return HolderView{
		ID:                holder.ID,
		AccountHolderView: NewLookupResponse(holder).User,
	}
}

type TransactionQuery struct {
	Type   string
	Amount string
}

// Empty reports a bare trigger call carrying neither type nor amount.
func (q TransactionQuery) Empty() bool {
	return strings.TrimSpace(q.Type) == "" && strings.TrimSpace(q.Amount) == ""
}

func (q TransactionQuery) Transaction() (domain.Transaction, error) {
	var errs []string

	kind := domain.TransactionKind(strings.ToLower(strings.TrimSpace(q.Type)))
	if !kind.Valid() {
		errs = append(errs, "type must be deposit or withdraw")
	}

	var amount int64
	raw := strings.TrimSpace(q.Amount)
	if raw == "" {
		errs = append(errs, "amount is required")
	} else {
		parsed, err := decimal.NewFromString(raw)
		switch {
		case err != nil:
			errs = append(errs, "amount must be numeric")
		case !parsed.IsInteger() || !parsed.BigInt().IsInt64():
			errs = append(errs, "amount must be a whole number")
		case parsed.IsNegative():
			errs = append(errs, "amount cannot be negative")
		default:
			amount = parsed.IntPart()
		}
	}

	if len(errs) > 0 {
		return domain.Transaction{}, errors.New(strings.Join(errs, "; "))
	}

	return domain.Transaction{Kind: kind, Amount: amount}, nil
}

type TransactionResponse struct {
	Type   string `json:"type,omitempty"`
	Amount int64  `json:"amount,omitempty"`
}
