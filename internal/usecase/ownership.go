package usecase

import (
	"context"
	"fmt"

	"github.com/okosach/bankd/internal/domain"
)

// OwnershipValidator confirms that a requesting user controls an account.
// It gates every user-initiated mutating operation and history reads; the
// destination leg of a transfer is deliberately not gated.
type OwnershipValidator struct {
	accountRepo AccountRepository
}

// NewOwnershipValidator creates a new OwnershipValidator.
func NewOwnershipValidator(accountRepo AccountRepository) *OwnershipValidator {
	return &OwnershipValidator{accountRepo: accountRepo}
}

// ValidateOwnership fetches the account and confirms userID owns it.
// It has no side effects.
func (v *OwnershipValidator) ValidateOwnership(ctx context.Context, accountID, userID string) (*domain.Account, error) {
	account, err := v.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if !account.IsOwnedBy(userID) {
		return nil, fmt.Errorf("%w: account %s", domain.ErrUnauthorizedAccess, accountID)
	}

	return account, nil
}
