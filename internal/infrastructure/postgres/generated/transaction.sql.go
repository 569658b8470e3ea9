
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createTransaction = `-- name: CreateTransaction :one
INSERT INTO transactions (id, reference, source_account_id, destination_account_id, type, amount, description, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, reference, source_account_id, destination_account_id, type, amount, description, status, created_at
`

type CreateTransactionParams struct {
	ID                   string             `json:"id"`
	Reference            string             `json:"reference"`
	SourceAccountID      pgtype.Text        `json:"source_account_id"`
	DestinationAccountID pgtype.Text        `json:"destination_account_id"`
	Type                 string             `json:"type"`
	Amount               pgtype.Numeric     `json:"amount"`
	Description          pgtype.Text        `json:"description"`
	Status               string             `json:"status"`
	CreatedAt            pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) (Transaction, error) {
	row := q.db.QueryRow(ctx, createTransaction,
		arg.ID,
		arg.Reference,
		arg.SourceAccountID,
		arg.DestinationAccountID,
		arg.Type,
		arg.Amount,
		arg.Description,
		arg.Status,
		arg.CreatedAt,
	)
	var i Transaction
	err := row.Scan(
		&i.ID,
		&i.Reference,
		&i.SourceAccountID,
		&i.DestinationAccountID,
		&i.Type,
		&i.Amount,
		&i.Description,
		&i.Status,
		&i.CreatedAt,
	)
	return i, err
}

const upsertFailedTransaction = `-- name: UpsertFailedTransaction :exec
INSERT INTO transactions (id, reference, source_account_id, destination_account_id, type, amount, description, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status
WHERE transactions.status = 'PENDING'
`

type UpsertFailedTransactionParams struct {
	ID                   string             `json:"id"`
	Reference            string             `json:"reference"`
	SourceAccountID      pgtype.Text        `json:"source_account_id"`
	DestinationAccountID pgtype.Text        `json:"destination_account_id"`
	Type                 string             `json:"type"`
	Amount               pgtype.Numeric     `json:"amount"`
	Description          pgtype.Text        `json:"description"`
	Status               string             `json:"status"`
	CreatedAt            pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) UpsertFailedTransaction(ctx context.Context, arg UpsertFailedTransactionParams) error {
	_, err := q.db.Exec(ctx, upsertFailedTransaction,
		arg.ID,
		arg.Reference,
		arg.SourceAccountID,
		arg.DestinationAccountID,
		arg.Type,
		arg.Amount,
		arg.Description,
		arg.Status,
		arg.CreatedAt,
	)
	return err
}

const updateTransactionStatus = `-- name: UpdateTransactionStatus :exec
UPDATE transactions
SET status = $2
WHERE id = $1
`

type UpdateTransactionStatusParams struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (q *Queries) UpdateTransactionStatus(ctx context.Context, arg UpdateTransactionStatusParams) error {
	_, err := q.db.Exec(ctx, updateTransactionStatus, arg.ID, arg.Status)
	return err
}

const getTransactionByID = `-- name: GetTransactionByID :one
SELECT id, reference, source_account_id, destination_account_id, type, amount, description, status, created_at FROM transactions WHERE id = $1
`

func (q *Queries) GetTransactionByID(ctx context.Context, id string) (Transaction, error) {
	row := q.db.QueryRow(ctx, getTransactionByID, id)
	var i Transaction
	err := row.Scan(
		&i.ID,
		&i.Reference,
		&i.SourceAccountID,
		&i.DestinationAccountID,
		&i.Type,
		&i.Amount,
		&i.Description,
		&i.Status,
		&i.CreatedAt,
	)
	return i, err
}

const getTransactionByReference = `-- name: GetTransactionByReference :one
SELECT id, reference, source_account_id, destination_account_id, type, amount, description, status, created_at FROM transactions WHERE reference = $1
`

func (q *Queries) GetTransactionByReference(ctx context.Context, reference string) (Transaction, error) {
	row := q.db.QueryRow(ctx, getTransactionByReference, reference)
	var i Transaction
	err := row.Scan(
		&i.ID,
		&i.Reference,
		&i.SourceAccountID,
		&i.DestinationAccountID,
		&i.Type,
		&i.Amount,
		&i.Description,
		&i.Status,
		&i.CreatedAt,
	)
	return i, err
}

const listTransactionsByAccount = `-- name: ListTransactionsByAccount :many
SELECT id, reference, source_account_id, destination_account_id, type, amount, description, status, created_at FROM transactions
WHERE source_account_id = $1 OR destination_account_id = $1
ORDER BY created_at ASC, id ASC
LIMIT $2 OFFSET $3
`

type ListTransactionsByAccountParams struct {
	AccountID string `json:"account_id"`
	Limit     int32  `json:"limit"`
	Offset    int32  `json:"offset"`
}

func (q *Queries) ListTransactionsByAccount(ctx context.Context, arg ListTransactionsByAccountParams) ([]Transaction, error) {
	rows, err := q.db.Query(ctx, listTransactionsByAccount, arg.AccountID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Transaction{}
	for rows.Next() {
		var i Transaction
		if err := rows.Scan(
			&i.ID,
			&i.Reference,
			&i.SourceAccountID,
			&i.DestinationAccountID,
			&i.Type,
			&i.Amount,
			&i.Description,
			&i.Status,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const ledgerNetPosition = `-- name: LedgerNetPosition :one
SELECT
    (SELECT COALESCE(SUM(balance), 0) FROM accounts) AS total_balance,
    (SELECT COALESCE(SUM(CASE WHEN type = 'DEPOSIT' THEN amount WHEN type = 'WITHDRAW' THEN -amount ELSE 0 END), 0)
     FROM transactions WHERE status = 'COMPLETED') AS net_flow
`

type LedgerNetPositionRow struct {
	TotalBalance pgtype.Numeric `json:"total_balance"`
	NetFlow      pgtype.Numeric `json:"net_flow"`
}

func (q *Queries) LedgerNetPosition(ctx context.Context) (LedgerNetPositionRow, error) {
	row := q.db.QueryRow(ctx, ledgerNetPosition)
	var i LedgerNetPositionRow
	err := row.Scan(&i.TotalBalance, &i.NetFlow)
	return i, err
}
