package postgres

import (
	"context"
	"errors"
	"math/big"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/lendpool/internal/domain"
	"github.com/iho/lendpool/internal/usecase"
)

// PoolAccount is the reserved balance row holding the pool's own cash.
const PoolAccount = "@pool"

// AssetGateway implements usecase.AssetGateway over the balances table. Both
// legs of a transfer run in the caller's transaction, so a move either lands
// whole or not at all.
type AssetGateway struct {
	pool *pgxpool.Pool
}

// NewAssetGateway creates a new AssetGateway.
func NewAssetGateway(pool *pgxpool.Pool) *AssetGateway {
	return &AssetGateway{pool: pool}
}

// Pull moves amount from a user account into the pool.
func (g *AssetGateway) Pull(ctx context.Context, tx usecase.Transaction, from string, amount *big.Int) error {
	return g.transfer(ctx, tx, from, PoolAccount, amount)
}

// Push pays amount out of the pool to a user account.
func (g *AssetGateway) Push(ctx context.Context, tx usecase.Transaction, to string, amount *big.Int) error {
	return g.transfer(ctx, tx, PoolAccount, to, amount)
}

func (g *AssetGateway) transfer(ctx context.Context, tx usecase.Transaction, from, to string, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	q := txQuerier(tx)

	tag, err := q.Exec(ctx, `
		UPDATE balances
		SET balance = balance - $2, updated_at = now()
		WHERE account = $1 AND balance >= $2
	`, from, bigIntToNumeric(amount))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientFunds
	}

	_, err = q.Exec(ctx, `
		INSERT INTO balances (account, balance, created_at, updated_at)
		VALUES ($1, $2, now(), now())
		ON CONFLICT (account)
		DO UPDATE SET balance = balances.balance + EXCLUDED.balance, updated_at = now()
	`, to, bigIntToNumeric(amount))

	return err
}

// Balance reads an account's asset balance, zero if unknown.
func (g *AssetGateway) Balance(ctx context.Context, account string) (*big.Int, error) {
	var balance pgtype.Numeric
	err := g.pool.QueryRow(ctx, `SELECT balance FROM balances WHERE account = $1`, account).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return big.NewInt(0), nil
	}
	if err != nil {
		return nil, err
	}
	return numericToBigInt(balance), nil
}

// Credit mints amount onto an account outside any pool operation. Used by
// administrative tooling to fund test and demo accounts.
func (g *AssetGateway) Credit(ctx context.Context, account string, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrZeroAmount
	}

	_, err := g.pool.Exec(ctx, `
		INSERT INTO balances (account, balance, created_at, updated_at)
		VALUES ($1, $2, now(), now())
		ON CONFLICT (account)
		DO UPDATE SET balance = balances.balance + EXCLUDED.balance, updated_at = now()
	`, account, bigIntToNumeric(amount))

	return err
}
