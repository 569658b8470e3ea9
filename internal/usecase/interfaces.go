package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okosach/bankd/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	// GetByIDForUpdate locks the account row until the unit of work commits.
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	// GetByIDsForUpdate locks multiple rows, acquired in ascending id order.
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, updatedAt time.Time) error
	ListByOwner(ctx context.Context, ownerUserID string) ([]*domain.Account, error)
	// Delete removes an account that has no ledger history.
	Delete(ctx context.Context, id string) error
}

// TransactionRepository defines data access for transaction records.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	// RecordFailed inserts a FAILED record outside any unit of work. It is the
	// best-effort audit marker written after the unit that held the PENDING
	// record rolled back.
	RecordFailed(ctx context.Context, txn *domain.Transaction) error
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.TransactionStatus) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByReference(ctx context.Context, reference string) (*domain.Transaction, error)
	// ListByAccount returns transactions where the account is source or
	// destination, ordered ascending by creation time.
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// LedgerRepository defines ledger-wide aggregate queries.
type LedgerRepository interface {
	// NetPosition returns the sum of all account balances and the net flow of
	// completed deposits minus completed withdrawals.
	NetPosition(ctx context.Context) (totalBalance, netFlow decimal.Decimal, err error)
}

// Transaction represents a database transaction, the unit of work every
// ledger operation executes inside.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles unit-of-work lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation when it failed on a transient conflict. Ledger
// operations are safe to re-run: the failed attempt rolled back.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops an in-flight placeholder so the request can be retried.
	Release(ctx context.Context, key string) error
}
