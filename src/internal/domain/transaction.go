package domain

type TransactionKind string

const (
	TransactionKindDeposit  TransactionKind = "deposit"
	TransactionKindWithdraw TransactionKind = "withdraw"
)

func (k TransactionKind) Valid() bool {
	return k == TransactionKindDeposit || k == TransactionKindWithdraw
}

type Transaction struct {
	Kind   TransactionKind
	Amount int64
}
