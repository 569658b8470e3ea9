package usecase

import (
	"context"
	"errors"
)

var (
	// ErrInconsistentLedger is returned when the sum of account balances does
	// not match the net flow of completed deposits minus withdrawals.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: balances do not match net deposits")
)

// ReconciliationUseCase checks the money-conservation invariant: the total of
// all balances changes only by net deposits minus net withdrawals, transfers
// being balance-neutral.
type ReconciliationUseCase struct {
	ledgerRepo LedgerRepository
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(ledgerRepo LedgerRepository) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// CheckConsistency verifies that no money was created or destroyed outside
// the deposit and withdrawal paths.
func (uc *ReconciliationUseCase) CheckConsistency(ctx context.Context) (bool, error) {
	totalBalance, netFlow, err := uc.ledgerRepo.NetPosition(ctx)
	if err != nil {
		return false, err
	}

	if !totalBalance.Equal(netFlow) {
		return false, ErrInconsistentLedger
	}

	return true, nil
}
