package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/okosach/bankd/internal/infrastructure/postgres/generated"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// NetPosition returns the sum of all account balances and the net flow of
// completed deposits minus completed withdrawals. Transfers cancel out and do
// not contribute to the flow.
func (r *LedgerRepository) NetPosition(ctx context.Context) (totalBalance, netFlow decimal.Decimal, err error) {
	row, err := r.queries.LedgerNetPosition(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(row.TotalBalance), numericToDecimal(row.NetFlow), nil
}
