package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/lendpool/internal/domain"
	"github.com/iho/lendpool/internal/usecase"
)

// PositionRepository implements usecase.PositionRepository. Rows are never
// deleted; a fully repaid borrower keeps a zero-principal registry row.
type PositionRepository struct {
	pool *pgxpool.Pool
}

// NewPositionRepository creates a new PositionRepository.
func NewPositionRepository(pool *pgxpool.Pool) *PositionRepository {
	return &PositionRepository{pool: pool}
}

const positionSelect = `
	SELECT account, principal, last_accrual, created_at, updated_at
	FROM positions
	WHERE account = $1
`

// Get retrieves a position without locking.
func (r *PositionRepository) Get(ctx context.Context, account string) (*domain.Position, error) {
	pos, err := scanPosition(r.pool.QueryRow(ctx, positionSelect, account))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPositionNotFound
	}
	return pos, err
}

// GetForUpdate retrieves a position with a FOR UPDATE lock.
func (r *PositionRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, account string) (*domain.Position, error) {
	q := txQuerier(tx)

	pos, err := scanPosition(q.QueryRow(ctx, positionSelect+" FOR UPDATE", account))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPositionNotFound
	}
	return pos, err
}

// EnsureForUpdate retrieves a position with a FOR UPDATE lock, creating the
// registry row first if the account never borrowed.
func (r *PositionRepository) EnsureForUpdate(ctx context.Context, tx usecase.Transaction, account string, now time.Time) (*domain.Position, error) {
	q := txQuerier(tx)

	_, err := q.Exec(ctx, `
		INSERT INTO positions (account, principal, last_accrual, created_at, updated_at)
		VALUES ($1, 0, NULL, $2, $2)
		ON CONFLICT (account) DO NOTHING
	`, account, timeToPgTimestamptz(now))
	if err != nil {
		return nil, err
	}

	return r.GetForUpdate(ctx, tx, account)
}

// ListActiveForUpdate locks and returns every position with open debt.
func (r *PositionRepository) ListActiveForUpdate(ctx context.Context, tx usecase.Transaction) ([]*domain.Position, error) {
	q := txQuerier(tx)

	rows, err := q.Query(ctx, `
		SELECT account, principal, last_accrual, created_at, updated_at
		FROM positions
		WHERE principal > 0
		ORDER BY account
		FOR UPDATE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []*domain.Position
	for rows.Next() {
		pos, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		positions = append(positions, pos)
	}

	return positions, rows.Err()
}

// Update writes a position.
func (r *PositionRepository) Update(ctx context.Context, tx usecase.Transaction, position *domain.Position) error {
	q := txQuerier(tx)

	_, err := q.Exec(ctx, `
		UPDATE positions
		SET principal = $2, last_accrual = $3, updated_at = $4
		WHERE account = $1
	`,
		position.Account,
		bigIntToNumeric(position.Principal),
		timeToPgTimestamptz(position.LastAccrual),
		timeToPgTimestamptz(position.UpdatedAt),
	)

	return err
}

func scanPosition(row rowScanner) (*domain.Position, error) {
	var (
		account     string
		principal   pgtype.Numeric
		lastAccrual pgtype.Timestamptz
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)
	if err := row.Scan(&account, &principal, &lastAccrual, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return &domain.Position{
		Account:     account,
		Principal:   numericToBigInt(principal),
		LastAccrual: pgTimestamptzToTime(lastAccrual),
		CreatedAt:   pgTimestamptzToTime(createdAt),
		UpdatedAt:   pgTimestamptzToTime(updatedAt),
	}, nil
}
