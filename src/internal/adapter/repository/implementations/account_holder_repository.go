package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/fx-bank-teller/src/internal/domain"
	"github.com/api-sage/fx-bank-teller/src/internal/logger"
	"github.com/google/uuid"
)

type AccountHolderRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func NewAccountHolderRepository(db *sql.DB) *AccountHolderRepository {
	return &AccountHolderRepository{db: db}
}

func (r *AccountHolderRepository) Create(ctx context.Context, holder domain.AccountHolder) (domain.AccountHolder, error) {
	logger.Info("account holder repository create", logger.Fields{
		"firstName": holder.FirstName,
		"lastName":  holder.LastName,
	})

	const query = `
INSERT INTO account_holders (
	first_name,
	last_name,
	balance,
	daily_limit,
	pin_hash
) VALUES ($1, $2, $3, $4, $5)
RETURNING id, first_name, last_name, balance, daily_limit, pin_hash, created_at, updated_at`

	var created domain.AccountHolder
	if err := scanAccountHolder(r.db.QueryRowContext(
		ctx,
		query,
		holder.FirstName,
		holder.LastName,
		holder.Balance,
		holder.DailyLimit,
		holder.PinHash,
	), &created); err != nil {
		logger.Error("account holder repository create failed", err, nil)
		return domain.AccountHolder{}, fmt.Errorf("create account holder: %w", err)
	}

	logger.Info("account holder repository create success", logger.Fields{
		"holderId": created.ID,
	})

	return created, nil
}

func (r *AccountHolderRepository) GetByID(ctx context.Context, id string) (domain.AccountHolder, error) {
	const query = `
SELECT id, first_name, last_name, balance, daily_limit, pin_hash, created_at, updated_at
FROM account_holders
WHERE id = $1`

	// ids are UUID columns, so anything else can never match
	if _, err := uuid.Parse(id); err != nil {
		return domain.AccountHolder{}, domain.ErrRecordNotFound
	}

	var holder domain.AccountHolder
	if err := scanAccountHolder(r.db.QueryRowContext(ctx, query, id), &holder); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("account holder repository record not found", logger.Fields{
				"holderId": id,
			})
			return domain.AccountHolder{}, domain.ErrRecordNotFound
		}
		logger.Error("account holder repository get by id failed", err, logger.Fields{
			"holderId": id,
		})
		return domain.AccountHolder{}, fmt.Errorf("get account holder by id: %w", err)
	}

	return holder, nil
}

func (r *AccountHolderRepository) List(ctx context.Context) ([]domain.AccountHolder, error) {
	const query = `
SELECT id, first_name, last_name, balance, daily_limit, pin_hash, created_at, updated_at
FROM account_holders
ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("account holder repository list failed", err, nil)
		return nil, fmt.Errorf("list account holders: %w", err)
	}
	defer rows.Close()

	var holders []domain.AccountHolder
	for rows.Next() {
		var holder domain.AccountHolder
		if err := scanAccountHolder(rows, &holder); err != nil {
			return nil, fmt.Errorf("scan account holder: %w", err)
		}
		holders = append(holders, holder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account holders: %w", err)
	}

	return holders, nil
}

func scanAccountHolder(row rowScanner, holder *domain.AccountHolder) error {
	return row.Scan(
		&holder.ID,
		&holder.FirstName,
		&holder.LastName,
		&holder.Balance,
		&holder.DailyLimit,
		&holder.PinHash,
		&holder.CreatedAt,
		&holder.UpdatedAt,
	)
}
