package domain

import "context"

type AccountHolderRepository interface {
	Create(ctx context.Context, holder AccountHolder) (AccountHolder, error)
	GetByID(ctx context.Context, id string) (AccountHolder, error)
	List(ctx context.Context) ([]AccountHolder, error)
}
