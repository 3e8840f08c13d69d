package domain

import "time"

// AccountHolder is a record in the account service directory.
type AccountHolder struct {
	ID         string
	FirstName  string
	LastName   string
	Balance    int64
	DailyLimit int64
	PinHash    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (h AccountHolder) Profile() ProfilePatch {
	firstName := h.FirstName
	lastName := h.LastName
	balance := h.Balance
	dailyLimit := h.DailyLimit
	return ProfilePatch{
		FirstName:  &firstName,
		LastName:   &lastName,
		Balance:    &balance,
		DailyLimit: &dailyLimit,
	}
}
