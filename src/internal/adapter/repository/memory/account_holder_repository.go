package memory

import (
	"context"
	"sync"
	"time"

	"github.com/api-sage/fx-bank-teller/src/internal/domain"
	"github.com/google/uuid"
)

type AccountHolderRepository struct {
	mu      sync.RWMutex
	holders []domain.AccountHolder
}

func NewAccountHolderRepository() *AccountHolderRepository {
	return &AccountHolderRepository{}
}

func (r *AccountHolderRepository) Create(_ context.Context, holder domain.AccountHolder) (domain.AccountHolder, error) {
	now := time.Now().UTC()
	holder.ID = uuid.NewString()
	holder.CreatedAt = now
	holder.UpdatedAt = now

	r.mu.Lock()
	r.holders = append(r.holders, holder)
	r.mu.Unlock()

	return holder, nil
}

func (r *AccountHolderRepository) GetByID(_ context.Context, id string) (domain.AccountHolder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, holder := range r.holders {
		if holder.ID == id {
			return holder, nil
		}
	}
	return domain.AccountHolder{}, domain.ErrRecordNotFound
}

// List returns holders in enrollment order.
func (r *AccountHolderRepository) List(_ context.Context) ([]domain.AccountHolder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.AccountHolder, len(r.holders))
	copy(out, r.holders)
	return out, nil
}
