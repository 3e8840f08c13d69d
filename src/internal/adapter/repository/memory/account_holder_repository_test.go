package memory

import (
	"context"
	"testing"

	"github.com/api-sage/fx-bank-teller/src/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountHolderRepositoryCreateAndGet(t *testing.T) {
	repo := NewAccountHolderRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.AccountHolder{FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestAccountHolderRepositoryListReturnsCopy(t *testing.T) {
	repo := NewAccountHolderRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, domain.AccountHolder{FirstName: "Ada"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, domain.AccountHolder{FirstName: "Grace"})
	require.NoError(t, err)

	holders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, holders, 2)
	assert.Equal(t, "Ada", holders[0].FirstName)

	holders[0].FirstName = "changed"
	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", again[0].FirstName)
}
