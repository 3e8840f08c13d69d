package domain

const (
	DefaultFirstName  = "First"
	DefaultLastName   = "Last"
	DefaultBalance    = 0
	DefaultDailyLimit = 100
)

// Account is the profile shown on the dashboard. Balance and DailyLimit are whole
// currency units.
type Account struct {
	FirstName  string
	LastName   string
	Balance    int64
	DailyLimit int64
}

func DefaultAccount() Account {
	return Account{
		FirstName:  DefaultFirstName,
		LastName:   DefaultLastName,
		Balance:    DefaultBalance,
		DailyLimit: DefaultDailyLimit,
	}
}

// ProfilePatch holds the fields returned by an account lookup. A nil field was absent
// from the response and leaves the account value untouched.
type ProfilePatch struct {
	FirstName  *string
	LastName   *string
	Balance    *int64
	DailyLimit *int64
}

// Merge overwrites every field present in the patch.
func (a Account) Merge(patch ProfilePatch) Account {
	if patch.FirstName != nil {
		a.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		a.LastName = *patch.LastName
	}
	if patch.Balance != nil {
		a.Balance = *patch.Balance
	}
	if patch.DailyLimit != nil {
		a.DailyLimit = *patch.DailyLimit
	}
	return a
}
