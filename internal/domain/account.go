package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
)

// AccountType classifies an account.
type AccountType string

const (
	AccountTypeChecking AccountType = "CHECKING"
	AccountTypeSavings  AccountType = "SAVINGS"
)

// Account represents a user-owned monetary account.
// Balance is mutated only by the ledger engine inside a unit of work.
type Account struct {
	ID          string
	Number      string
	OwnerUserID string
	Type        AccountType
	Balance     decimal.Decimal
	Status      AccountStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive reports whether the account may participate in transactions.
func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// IsOwnedBy reports whether userID controls this account.
func (a *Account) IsOwnedBy(userID string) bool {
	return a.OwnerUserID == userID
}

// ValidateDebit checks that amount can be withdrawn without overdrawing.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}
	return nil
}

// ApplyDebit returns the balance after a debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the balance after a credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}
