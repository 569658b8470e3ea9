package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a money movement.
type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "DEPOSIT"
	TransactionTypeWithdraw TransactionType = "WITHDRAW"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// TransactionStatus is the lifecycle state of a transaction record.
// PENDING is the only initial state; COMPLETED and FAILED are terminal.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// CanTransitionTo reports whether the status machine allows moving to next.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	if s != TransactionStatusPending {
		return false
	}
	return next == TransactionStatusCompleted || next == TransactionStatusFailed
}

// IsTerminal reports whether no further transition is allowed.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusFailed
}

// Transaction is the durable audit record of one ledger operation attempt.
// SourceAccountID is nil for deposits, DestinationAccountID is nil for
// withdrawals, both are set for transfers.
type Transaction struct {
	ID                   string
	Reference            string
	SourceAccountID      *string
	DestinationAccountID *string
	Type                 TransactionType
	Amount               decimal.Decimal
	Description          string
	Status               TransactionStatus
	CreatedAt            time.Time
}

// Validate checks the shape invariants for the transaction type.
func (t *Transaction) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	switch t.Type {
	case TransactionTypeDeposit:
		if t.SourceAccountID != nil || t.DestinationAccountID == nil {
			return ErrAccountNotFound
		}
	case TransactionTypeWithdraw:
		if t.SourceAccountID == nil || t.DestinationAccountID != nil {
			return ErrAccountNotFound
		}
	case TransactionTypeTransfer:
		if t.SourceAccountID == nil || t.DestinationAccountID == nil {
			return ErrAccountNotFound
		}

		if *t.SourceAccountID == *t.DestinationAccountID {
			return ErrSameAccount
		}
	}

	return nil
}

// SameOperation reports whether both records describe the same movement:
// same type, same accounts on both sides, same amount.
func (t *Transaction) SameOperation(other *Transaction) bool {
	return t.Type == other.Type &&
		t.Amount.Equal(other.Amount) &&
		equalAccountRef(t.SourceAccountID, other.SourceAccountID) &&
		equalAccountRef(t.DestinationAccountID, other.DestinationAccountID)
}

func equalAccountRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return *a == *b
}

// Touches reports whether the transaction involves the given account.
func (t *Transaction) Touches(accountID string) bool {
	if t.SourceAccountID != nil && *t.SourceAccountID == accountID {
		return true
	}

	return t.DestinationAccountID != nil && *t.DestinationAccountID == accountID
}
