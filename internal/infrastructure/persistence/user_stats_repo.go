// Package persistence is the Postgres-backed durable variant of the
// entitlement/counter store.
package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"flipscan/internal/domain"
	"flipscan/pkg/errcodes"
)

type UserStatsRepository struct {
	db *sqlx.DB
}

func NewUserStatsRepository(db *sqlx.DB) *UserStatsRepository {
	return &UserStatsRepository{db: db}
}

func (r *UserStatsRepository) IncrScans(ctx context.Context, userID string) (int64, error) {
	const query = `
		INSERT INTO user_stats (user_id, scan_count, is_pro)
		VALUES ($1, 1, FALSE)
		ON CONFLICT (user_id)
		DO UPDATE SET scan_count = user_stats.scan_count + 1,
		              updated_at = now()
		RETURNING scan_count`

	var count int64
	if err := r.db.QueryRowxContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "increment scan count")
	}

	return count, nil
}

func (r *UserStatsRepository) Scans(ctx context.Context, userID string) (int64, error) {
	const query = `SELECT scan_count FROM user_stats WHERE user_id = $1`

	var count int64

	err := r.db.GetContext(ctx, &count, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}

	if err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "read scan count")
	}

	return count, nil
}

func (r *UserStatsRepository) GrantPro(ctx context.Context, userID string) error {
	const query = `
		INSERT INTO user_stats (user_id, scan_count, is_pro)
		VALUES ($1, 0, TRUE)
		ON CONFLICT (user_id)
		DO UPDATE SET is_pro = TRUE,
		              updated_at = now()`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "grant pro")
	}

	return nil
}

func (r *UserStatsRepository) IsPro(ctx context.Context, userID string) (bool, error) {
	const query = `SELECT is_pro FROM user_stats WHERE user_id = $1`

	var isPro bool

	err := r.db.GetContext(ctx, &isPro, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}

	if err != nil {
		return false, domain.WrapError(err, errcodes.InternalServerError, "read pro flag")
	}

	return isPro, nil
}
