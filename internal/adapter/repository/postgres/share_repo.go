package postgres

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/lendpool/internal/domain"
	"github.com/iho/lendpool/internal/usecase"
)

// ShareRepository implements usecase.ShareRepository.
type ShareRepository struct {
	pool *pgxpool.Pool
}

// NewShareRepository creates a new ShareRepository.
func NewShareRepository(pool *pgxpool.Pool) *ShareRepository {
	return &ShareRepository{pool: pool}
}

const shareSelect = `
	SELECT balance FROM shares WHERE account = $1
`

// Get returns the account's share balance, zero if unknown.
func (r *ShareRepository) Get(ctx context.Context, account string) (*big.Int, error) {
	return scanShareBalance(r.pool.QueryRow(ctx, shareSelect, account))
}

// GetForUpdate returns the balance with a FOR UPDATE lock.
func (r *ShareRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, account string) (*big.Int, error) {
	q := txQuerier(tx)
	return scanShareBalance(q.QueryRow(ctx, shareSelect+" FOR UPDATE", account))
}

// Add credits shares to the account, creating the row if needed.
func (r *ShareRepository) Add(ctx context.Context, tx usecase.Transaction, account string, amount *big.Int, now time.Time) error {
	q := txQuerier(tx)

	_, err := q.Exec(ctx, `
		INSERT INTO shares (account, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (account)
		DO UPDATE SET balance = shares.balance + EXCLUDED.balance, updated_at = EXCLUDED.updated_at
	`, account, bigIntToNumeric(amount), timeToPgTimestamptz(now))

	return err
}

// Sub debits shares from the account. The balance guard in the WHERE clause
// makes over-spending impossible regardless of caller checks.
func (r *ShareRepository) Sub(ctx context.Context, tx usecase.Transaction, account string, amount *big.Int, now time.Time) error {
	q := txQuerier(tx)

	tag, err := q.Exec(ctx, `
		UPDATE shares
		SET balance = balance - $2, updated_at = $3
		WHERE account = $1 AND balance >= $2
	`, account, bigIntToNumeric(amount), timeToPgTimestamptz(now))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientShares
	}

	return nil
}

func scanShareBalance(row rowScanner) (*big.Int, error) {
	var balance pgtype.Numeric
	if err := row.Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return big.NewInt(0), nil
		}
		return nil, err
	}
	return numericToBigInt(balance), nil
}
