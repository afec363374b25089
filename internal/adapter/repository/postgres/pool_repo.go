package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/lendpool/internal/domain"
	"github.com/iho/lendpool/internal/usecase"
)

// The pool totals live in a single row; every mutating operation locks it
// FOR UPDATE, which serializes writers.
const poolRowID = 1

// PoolRepository implements usecase.PoolRepository.
type PoolRepository struct {
	pool *pgxpool.Pool
}

// NewPoolRepository creates a new PoolRepository.
func NewPoolRepository(pool *pgxpool.Pool) *PoolRepository {
	return &PoolRepository{pool: pool}
}

const poolSelect = `
	SELECT total_deposited, total_shares, total_borrowed, updated_at
	FROM pool
	WHERE id = $1
`

// Get retrieves the pool totals without locking.
func (r *PoolRepository) Get(ctx context.Context) (*domain.Pool, error) {
	return scanPool(r.pool.QueryRow(ctx, poolSelect, poolRowID))
}

// GetForUpdate retrieves the pool totals with a FOR UPDATE lock.
func (r *PoolRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction) (*domain.Pool, error) {
	q := txQuerier(tx)
	return scanPool(q.QueryRow(ctx, poolSelect+" FOR UPDATE", poolRowID))
}

// Update writes the pool totals.
func (r *PoolRepository) Update(ctx context.Context, tx usecase.Transaction, pool *domain.Pool) error {
	q := txQuerier(tx)

	_, err := q.Exec(ctx, `
		UPDATE pool
		SET total_deposited = $2, total_shares = $3, total_borrowed = $4, updated_at = $5
		WHERE id = $1
	`,
		poolRowID,
		bigIntToNumeric(pool.TotalDeposited),
		bigIntToNumeric(pool.TotalShares),
		bigIntToNumeric(pool.TotalBorrowed),
		timeToPgTimestamptz(pool.UpdatedAt),
	)

	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPool(row rowScanner) (*domain.Pool, error) {
	var (
		deposited pgtype.Numeric
		shares    pgtype.Numeric
		borrowed  pgtype.Numeric
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&deposited, &shares, &borrowed, &updatedAt); err != nil {
		return nil, err
	}

	return &domain.Pool{
		TotalDeposited: numericToBigInt(deposited),
		TotalShares:    numericToBigInt(shares),
		TotalBorrowed:  numericToBigInt(borrowed),
		UpdatedAt:      pgTimestamptzToTime(updatedAt),
	}, nil
}
