package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okosach/bankd/internal/domain"
	"github.com/okosach/bankd/internal/infrastructure/metrics"
)

// AccountUseCase handles account lifecycle outside of balance mutation.
type AccountUseCase struct {
	accountRepo AccountRepository
	ownership   *OwnershipValidator
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase. metrics may be nil.
func NewAccountUseCase(accountRepo AccountRepository, ownership *OwnershipValidator, idGen IDGenerator, m *metrics.Metrics) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		ownership:   ownership,
		idGen:       idGen,
		metrics:     m,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	OwnerUserID string
	Type        domain.AccountType
}

// CreateAccount creates a new active account with a zero balance and a
// generated account number.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountType(input.Type); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:          uc.idGen.Generate(),
		Number:      accountNumberPrefix + uc.idGen.Generate(),
		OwnerUserID: input.OwnerUserID,
		Type:        input.Type,
		Balance:     decimal.Zero,
		Status:      domain.AccountStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// GetAccount retrieves an account the user owns.
func (uc *AccountUseCase) GetAccount(ctx context.Context, accountID, userID string) (*domain.Account, error) {
	return uc.ownership.ValidateOwnership(ctx, accountID, userID)
}

// GetAccountByNumber resolves an account by its human-readable number.
// Ownership is still enforced.
func (uc *AccountUseCase) GetAccountByNumber(ctx context.Context, number, userID string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	return uc.ownership.ValidateOwnership(ctx, account.ID, userID)
}

// ListAccounts lists all accounts owned by the user.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, userID string) ([]*domain.Account, error) {
	return uc.accountRepo.ListByOwner(ctx, userID)
}

// SuspendAccount suspends an account the user owns. Suspended accounts
// cannot participate in transactions until reactivated.
func (uc *AccountUseCase) SuspendAccount(ctx context.Context, accountID, userID string) error {
	return uc.setStatus(ctx, accountID, userID, domain.AccountStatusSuspended)
}

// ActivateAccount reactivates a suspended account the user owns.
func (uc *AccountUseCase) ActivateAccount(ctx context.Context, accountID, userID string) error {
	return uc.setStatus(ctx, accountID, userID, domain.AccountStatusActive)
}

// DeleteAccount removes an account the user owns. The account must be fully
// drained first; the repository additionally refuses accounts with ledger
// history, so the audit trail stays complete.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, accountID, userID string) error {
	account, err := uc.ownership.ValidateOwnership(ctx, accountID, userID)
	if err != nil {
		return err
	}

	if !account.Balance.IsZero() {
		return fmt.Errorf("%w: balance %s", domain.ErrAccountNotDeletable, account.Balance)
	}

	return uc.accountRepo.Delete(ctx, accountID)
}

// GetAccountStatus returns the status of an account the user owns.
func (uc *AccountUseCase) GetAccountStatus(ctx context.Context, accountID, userID string) (domain.AccountStatus, error) {
	account, err := uc.ownership.ValidateOwnership(ctx, accountID, userID)
	if err != nil {
		return "", err
	}

	return account.Status, nil
}

func (uc *AccountUseCase) setStatus(ctx context.Context, accountID, userID string, status domain.AccountStatus) error {
	if _, err := uc.ownership.ValidateOwnership(ctx, accountID, userID); err != nil {
		return err
	}

	if err := uc.accountRepo.UpdateStatus(ctx, accountID, status, time.Now().UTC()); err != nil {
		return err
	}

	if uc.metrics != nil && status == domain.AccountStatusSuspended {
		uc.metrics.AccountsSuspended.Inc()
	}

	return nil
}
