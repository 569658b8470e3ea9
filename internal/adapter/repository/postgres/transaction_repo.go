package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okosach/bankd/internal/domain"
	"github.com/okosach/bankd/internal/infrastructure/postgres/generated"
	"github.com/okosach/bankd/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create inserts a transaction record inside the unit of work. The record
// disappears with the unit if it rolls back.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateTransaction(ctx, transactionParams(txn))

	return err
}

// RecordFailed inserts a FAILED record outside any unit of work. The id may
// already exist when the failure happened after commit started, hence the
// upsert. A row that reached a terminal status stays untouched: a commit
// error can mean the server committed after all, and a durably COMPLETED
// record must never flip to FAILED while its balance mutation stands.
func (r *TransactionRepository) RecordFailed(ctx context.Context, txn *domain.Transaction) error {
	p := transactionParams(txn)

	return r.queries.UpsertFailedTransaction(ctx, generated.UpsertFailedTransactionParams(p))
}

// UpdateStatus updates the status of a transaction record inside the unit of
// work.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateTransactionStatus(ctx, generated.UpdateTransactionStatusParams{
		ID:     id,
		Status: string(status),
	})
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row, err := r.queries.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return rowToTransaction(row), nil
}

// GetByReference retrieves a transaction by its client-supplied reference.
func (r *TransactionRepository) GetByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	row, err := r.queries.GetTransactionByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return rowToTransaction(row), nil
}

// ListByAccount lists transactions touching an account, oldest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListTransactionsByAccount(ctx, generated.ListTransactionsByAccountParams{
		AccountID: accountID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, err
	}

	txns := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		txns = append(txns, rowToTransaction(row))
	}

	return txns, nil
}

func transactionParams(txn *domain.Transaction) generated.CreateTransactionParams {
	return generated.CreateTransactionParams{
		ID:                   txn.ID,
		Reference:            txn.Reference,
		SourceAccountID:      textFromPtr(txn.SourceAccountID),
		DestinationAccountID: textFromPtr(txn.DestinationAccountID),
		Type:                 string(txn.Type),
		Amount:               decimalToNumeric(txn.Amount),
		Description:          textFromString(txn.Description),
		Status:               string(txn.Status),
		CreatedAt:            timeToPgTimestamptz(txn.CreatedAt),
	}
}

func rowToTransaction(row generated.Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:                   row.ID,
		Reference:            row.Reference,
		SourceAccountID:      ptrFromText(row.SourceAccountID),
		DestinationAccountID: ptrFromText(row.DestinationAccountID),
		Type:                 domain.TransactionType(row.Type),
		Amount:               numericToDecimal(row.Amount),
		Description:          row.Description.String,
		Status:               domain.TransactionStatus(row.Status),
		CreatedAt:            row.CreatedAt.Time,
	}
}

func textFromPtr(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}

	return pgtype.Text{String: *s, Valid: true}
}

func textFromString(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}

	return pgtype.Text{String: s, Valid: true}
}

func ptrFromText(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}

	s := t.String

	return &s
}
