package accountservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/api-sage/fx-bank-teller/src/internal/domain"
	"github.com/api-sage/fx-bank-teller/src/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

// Directory is an in-process account service over a holder repository. Pins are kept
// only as bcrypt hashes, so a lookup compares against every holder.
type Directory struct {
	repo domain.AccountHolderRepository
	cost int
}

func NewDirectory(repo domain.AccountHolderRepository, cost int) *Directory {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Directory{repo: repo, cost: cost}
}

// Enroll hashes pin and stores the holder.
func (d *Directory) Enroll(ctx context.Context, holder domain.AccountHolder, pin string) (domain.AccountHolder, error) {
	logger.Info("directory enroll request", logger.Fields{
		"firstName": holder.FirstName,
		"lastName":  holder.LastName,
		"pin":       pin,
	})

	if err := validateHolder(holder, pin); err != nil {
		logger.Error("directory enroll validation failed", err, nil)
		return domain.AccountHolder{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), d.cost)
	if err != nil {
		return domain.AccountHolder{}, fmt.Errorf("hash pin: %w", err)
	}

	holder.FirstName = strings.TrimSpace(holder.FirstName)
	holder.LastName = strings.TrimSpace(holder.LastName)
	holder.PinHash = string(hashed)

	created, err := d.repo.Create(ctx, holder)
	if err != nil {
		logger.Error("directory enroll repository failed", err, nil)
		return domain.AccountHolder{}, fmt.Errorf("enroll account holder: %w", err)
	}

	logger.Info("directory enroll success", logger.Fields{"holderId": created.ID})
	return created, nil
}

// FindByPin returns the holder whose pin hash matches pin, or ErrRecordNotFound.
func (d *Directory) FindByPin(ctx context.Context, pin string) (domain.AccountHolder, error) {
	if !isPin(pin) {
		return domain.AccountHolder{}, domain.ErrRecordNotFound
	}

	holders, err := d.repo.List(ctx)
	if err != nil {
		return domain.AccountHolder{}, fmt.Errorf("list account holders: %w", err)
	}

	for _, holder := range holders {
		err := bcrypt.CompareHashAndPassword([]byte(holder.PinHash), []byte(pin))
		if err == nil {
			return holder, nil
		}
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			logger.Error("directory pin compare failed", err, logger.Fields{"holderId": holder.ID})
		}
	}

	return domain.AccountHolder{}, domain.ErrRecordNotFound
}

// Holder returns the stored holder with the given id.
func (d *Directory) Holder(ctx context.Context, id string) (domain.AccountHolder, error) {
	holder, err := d.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return domain.AccountHolder{}, fmt.Errorf("get account holder: %w", err)
	}
	return holder, nil
}

func (d *Directory) Lookup(ctx context.Context, pin string) (domain.ProfilePatch, error) {
	holder, err := d.FindByPin(ctx, pin)
	if err != nil {
		logger.Info("directory lookup failed", logger.Fields{"pin": pin, "reason": err.Error()})
		return domain.ProfilePatch{}, fmt.Errorf("%w: %w", domain.ErrLookupFailed, err)
	}

	logger.Info("directory lookup success", logger.Fields{"holderId": holder.ID})
	return holder.Profile(), nil
}

// ProcessTransaction accepts any non-negative amount of a known kind. The directory
// does not keep balances; the session applies the arithmetic.
func (d *Directory) ProcessTransaction(_ context.Context, tx domain.Transaction) error {
	if !tx.Kind.Valid() {
		return fmt.Errorf("%w: unknown transaction type %q", domain.ErrTransactionFailed, tx.Kind)
	}
	if tx.Amount < 0 {
		return fmt.Errorf("%w: amount cannot be negative", domain.ErrTransactionFailed)
	}

	logger.Info("directory transaction accepted", logger.Fields{
		"type":   tx.Kind,
		"amount": tx.Amount,
	})
	return nil
}

func validateHolder(holder domain.AccountHolder, pin string) error {
	var errs []string

	if strings.TrimSpace(holder.FirstName) == "" {
		errs = append(errs, "firstName is required")
	}
	if strings.TrimSpace(holder.LastName) == "" {
		errs = append(errs, "lastName is required")
	}
	if !isPin(pin) {
		errs = append(errs, "pin must be exactly 4 digits")
	}
	if holder.Balance < 0 {
		errs = append(errs, "balance cannot be negative")
	}
	if holder.DailyLimit < 0 {
		errs = append(errs, "dailyLimit cannot be negative")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func isPin(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, ch := range pin {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
