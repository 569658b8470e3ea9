package usecase

import "time"

const (
	// DefaultUnitOfWorkTimeout is the maximum duration for a single unit of
	// work. A unit that cannot commit in time aborts with ErrTransactionAborted.
	DefaultUnitOfWorkTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	accountNumberPrefix = "ACC-"
	referencePrefix     = "TXN-"
)
