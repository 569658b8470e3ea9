package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/okosach/bankd/internal/domain"
	"github.com/okosach/bankd/internal/infrastructure/metrics"
)

// LedgerUseCase is the transaction engine. Each operation validates against
// account state, mutates one or two balances and records an auditable
// transaction, all inside a single unit of work.
type LedgerUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	txnRepo     TransactionRepository
	ownership   *OwnershipValidator
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase. metrics may be nil.
func NewLedgerUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
	ownership *OwnershipValidator,
	idGen IDGenerator,
	m *metrics.Metrics,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		ownership:   ownership,
		idGen:       idGen,
		metrics:     m,
	}
}

// DepositInput represents input for a deposit.
type DepositInput struct {
	AccountID   string
	UserID      string
	Amount      decimal.Decimal
	Description string
	// Reference deduplicates retries; when set and already recorded, the
	// existing transaction is returned instead of executing again.
	Reference string
}

// WithdrawInput represents input for a withdrawal.
type WithdrawInput struct {
	AccountID   string
	UserID      string
	Amount      decimal.Decimal
	Description string
	Reference   string
}

// TransferInput represents input for a transfer between two accounts.
type TransferInput struct {
	SourceAccountID      string
	DestinationAccountID string
	UserID               string
	Amount               decimal.Decimal
	Description          string
	Reference            string
}

// GetTransactionsInput represents input for a history read.
type GetTransactionsInput struct {
	AccountID string
	UserID    string
	Limit     int
	Offset    int
}

type balanceUpdate struct {
	accountID  string
	newBalance decimal.Decimal
}

// Deposit credits an account owned by userID.
func (uc *LedgerUseCase) Deposit(ctx context.Context, input DepositInput) (*domain.Transaction, error) {
	start := time.Now()

	if _, err := uc.ownership.ValidateOwnership(ctx, input.AccountID, input.UserID); err != nil {
		return nil, err
	}

	if err := uc.validateRequest(input.Amount, input.Description); err != nil {
		return nil, err
	}

	want := &domain.Transaction{
		DestinationAccountID: &input.AccountID,
		Type:                 domain.TransactionTypeDeposit,
		Amount:               input.Amount,
	}
	if existing, err := uc.dedup(ctx, input.Reference, want); existing != nil || err != nil {
		return existing, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultUnitOfWorkTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, abortErr(err)
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	account, err := uc.lockActiveAccount(txCtx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := &domain.Transaction{
		ID:                   uc.idGen.Generate(),
		Reference:            uc.reference(input.Reference),
		DestinationAccountID: &account.ID,
		Type:                 domain.TransactionTypeDeposit,
		Amount:               input.Amount,
		Description:          input.Description,
		Status:               domain.TransactionStatusPending,
		CreatedAt:            now,
	}

	if err := uc.txnRepo.Create(txCtx, tx, txn); err != nil {
		return nil, abortErr(err)
	}

	updates := []balanceUpdate{{account.ID, account.ApplyCredit(input.Amount)}}
	if err := uc.finalize(txCtx, tx, txn, updates, now); err != nil {
		uc.recordFailure(ctx, tx, txn)
		return nil, err
	}

	uc.observe(txn, start)

	return txn, nil
}

// Withdraw debits an account owned by userID. A withdrawal rejected for
// insufficient balance never reaches the mutation path and leaves no record.
func (uc *LedgerUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*domain.Transaction, error) {
	start := time.Now()

	if _, err := uc.ownership.ValidateOwnership(ctx, input.AccountID, input.UserID); err != nil {
		return nil, err
	}

	if err := uc.validateRequest(input.Amount, input.Description); err != nil {
		return nil, err
	}

	want := &domain.Transaction{
		SourceAccountID: &input.AccountID,
		Type:            domain.TransactionTypeWithdraw,
		Amount:          input.Amount,
	}
	if existing, err := uc.dedup(ctx, input.Reference, want); existing != nil || err != nil {
		return existing, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultUnitOfWorkTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, abortErr(err)
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	account, err := uc.lockActiveAccount(txCtx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if err := account.ValidateDebit(input.Amount); err != nil {
		return nil, fmt.Errorf("%w: available %s, requested %s",
			domain.ErrInsufficientBalance, account.Balance, input.Amount)
	}

	now := time.Now().UTC()
	txn := &domain.Transaction{
		ID:              uc.idGen.Generate(),
		Reference:       uc.reference(input.Reference),
		SourceAccountID: &account.ID,
		Type:            domain.TransactionTypeWithdraw,
		Amount:          input.Amount,
		Description:     input.Description,
		Status:          domain.TransactionStatusPending,
		CreatedAt:       now,
	}

	if err := uc.txnRepo.Create(txCtx, tx, txn); err != nil {
		return nil, abortErr(err)
	}

	updates := []balanceUpdate{{account.ID, account.ApplyDebit(input.Amount)}}
	if err := uc.finalize(txCtx, tx, txn, updates, now); err != nil {
		uc.recordFailure(ctx, tx, txn)
		return nil, err
	}

	uc.observe(txn, start)

	return txn, nil
}

// Transfer moves funds between two accounts. Only the source side is
// ownership-checked; any active account may receive funds. Both rows are
// locked in ascending id order so simultaneous transfers cannot deadlock.
func (uc *LedgerUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.Transaction, error) {
	start := time.Now()

	if input.SourceAccountID == input.DestinationAccountID {
		return nil, domain.ErrSameAccount
	}

	if _, err := uc.ownership.ValidateOwnership(ctx, input.SourceAccountID, input.UserID); err != nil {
		return nil, err
	}

	if err := uc.validateRequest(input.Amount, input.Description); err != nil {
		return nil, err
	}

	want := &domain.Transaction{
		SourceAccountID:      &input.SourceAccountID,
		DestinationAccountID: &input.DestinationAccountID,
		Type:                 domain.TransactionTypeTransfer,
		Amount:               input.Amount,
	}
	if existing, err := uc.dedup(ctx, input.Reference, want); existing != nil || err != nil {
		return existing, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultUnitOfWorkTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, abortErr(err)
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	ids := []string{input.SourceAccountID, input.DestinationAccountID}
	sort.Strings(ids)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(txCtx, tx, ids)
	if err != nil {
		return nil, err
	}

	accountMap := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		accountMap[a.ID] = a
	}

	source := accountMap[input.SourceAccountID]
	destination := accountMap[input.DestinationAccountID]

	if source == nil {
		return nil, fmt.Errorf("%w: source account %s", domain.ErrAccountNotFound, input.SourceAccountID)
	}

	if destination == nil {
		return nil, fmt.Errorf("%w: destination account %s", domain.ErrAccountNotFound, input.DestinationAccountID)
	}

	if !source.IsActive() {
		return nil, fmt.Errorf("%w: source account %s", domain.ErrAccountSuspended, source.Number)
	}

	if !destination.IsActive() {
		return nil, fmt.Errorf("%w: destination account %s", domain.ErrAccountSuspended, destination.Number)
	}

	if err := source.ValidateDebit(input.Amount); err != nil {
		return nil, fmt.Errorf("%w: available %s, requested %s",
			domain.ErrInsufficientBalance, source.Balance, input.Amount)
	}

	now := time.Now().UTC()
	txn := &domain.Transaction{
		ID:                   uc.idGen.Generate(),
		Reference:            uc.reference(input.Reference),
		SourceAccountID:      &source.ID,
		DestinationAccountID: &destination.ID,
		Type:                 domain.TransactionTypeTransfer,
		Amount:               input.Amount,
		Description:          input.Description,
		Status:               domain.TransactionStatusPending,
		CreatedAt:            now,
	}

	if err := uc.txnRepo.Create(txCtx, tx, txn); err != nil {
		return nil, abortErr(err)
	}

	updates := []balanceUpdate{
		{source.ID, source.ApplyDebit(input.Amount)},
		{destination.ID, destination.ApplyCredit(input.Amount)},
	}
	if err := uc.finalize(txCtx, tx, txn, updates, now); err != nil {
		uc.recordFailure(ctx, tx, txn)
		return nil, err
	}

	uc.observe(txn, start)

	return txn, nil
}

// GetTransactions returns the transactions touching an account owned by
// userID, ordered ascending by creation time.
func (uc *LedgerUseCase) GetTransactions(ctx context.Context, input GetTransactionsInput) ([]*domain.Transaction, error) {
	if _, err := uc.ownership.ValidateOwnership(ctx, input.AccountID, input.UserID); err != nil {
		return nil, err
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.txnRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}

// GetTransactionByReference resolves a transaction by its unique reference.
// The caller must own at least one account the transaction touches.
func (uc *LedgerUseCase) GetTransactionByReference(ctx context.Context, reference, userID string) (*domain.Transaction, error) {
	txn, err := uc.txnRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	if err := uc.authorizeRecordRead(ctx, txn, userID); err != nil {
		return nil, err
	}

	return txn, nil
}

// authorizeRecordRead permits the read when the user owns the source or the
// destination account.
func (uc *LedgerUseCase) authorizeRecordRead(ctx context.Context, txn *domain.Transaction, userID string) error {
	for _, accountID := range []*string{txn.SourceAccountID, txn.DestinationAccountID} {
		if accountID == nil {
			continue
		}

		_, err := uc.ownership.ValidateOwnership(ctx, *accountID, userID)
		if err == nil {
			return nil
		}

		if !errors.Is(err, domain.ErrUnauthorizedAccess) && !errors.Is(err, domain.ErrAccountNotFound) {
			return err
		}
	}

	return domain.ErrUnauthorizedAccess
}

func (uc *LedgerUseCase) validateRequest(amount decimal.Decimal, description string) error {
	if err := domain.ValidateAmount(amount); err != nil {
		return err
	}

	return domain.ValidateDescription(description)
}

// dedup returns an already-recorded transaction for a caller-supplied
// reference, making retries safe without re-executing the operation. The
// existing record must describe the same movement the caller is requesting;
// a reference held by a different operation is a conflict, never a replay.
// The request accounts were ownership-checked before dedup runs, so a
// matching record is the caller's own.
func (uc *LedgerUseCase) dedup(ctx context.Context, reference string, want *domain.Transaction) (*domain.Transaction, error) {
	if reference == "" {
		return nil, nil
	}

	existing, err := uc.txnRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return nil, nil
		}

		return nil, err
	}

	if !existing.SameOperation(want) {
		return nil, fmt.Errorf("%w: %s", domain.ErrReferenceConflict, reference)
	}

	return existing, nil
}

// lockActiveAccount locks the account row for the duration of the unit of
// work and rejects suspended accounts.
func (uc *LedgerUseCase) lockActiveAccount(ctx context.Context, tx Transaction, accountID string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	if !account.IsActive() {
		return nil, fmt.Errorf("%w: account %s", domain.ErrAccountSuspended, account.Number)
	}

	return account, nil
}

// finalize applies the balance mutations, marks the transaction COMPLETED and
// commits the unit of work. All writes land together or not at all.
func (uc *LedgerUseCase) finalize(ctx context.Context, tx Transaction, txn *domain.Transaction, updates []balanceUpdate, now time.Time) error {
	for _, u := range updates {
		if err := uc.accountRepo.UpdateBalance(ctx, tx, u.accountID, u.newBalance, now); err != nil {
			return err
		}
	}

	if err := uc.txnRepo.UpdateStatus(ctx, tx, txn.ID, domain.TransactionStatusCompleted); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return abortErr(err)
	}

	txn.Status = domain.TransactionStatusCompleted

	return nil
}

// recordFailure rolls back the unit of work and writes the FAILED audit
// marker in a separate best-effort insert. The PENDING row rolled back with
// the unit, so the marker is a fresh record carrying the same identity.
func (uc *LedgerUseCase) recordFailure(ctx context.Context, tx Transaction, txn *domain.Transaction) {
	_ = tx.Rollback(ctx)

	txn.Status = domain.TransactionStatusFailed

	if err := uc.txnRepo.RecordFailed(context.WithoutCancel(ctx), txn); err != nil {
		log.Warn().Err(err).
			Str("transaction_id", txn.ID).
			Str("reference", txn.Reference).
			Msg("failed to record FAILED transaction marker")
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsFailed.WithLabelValues(string(txn.Type)).Inc()
	}
}

func (uc *LedgerUseCase) observe(txn *domain.Transaction, start time.Time) {
	if uc.metrics == nil {
		return
	}

	amount, _ := txn.Amount.Float64()
	uc.metrics.TransactionsCompleted.WithLabelValues(string(txn.Type)).Inc()
	uc.metrics.TransactionAmount.WithLabelValues(string(txn.Type)).Observe(amount)
	uc.metrics.OperationDuration.WithLabelValues(string(txn.Type)).Observe(time.Since(start).Seconds())
}

func (uc *LedgerUseCase) reference(supplied string) string {
	if supplied != "" {
		return supplied
	}

	return referencePrefix + uc.idGen.Generate()
}

func abortErr(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrTransactionAborted, err)
}
