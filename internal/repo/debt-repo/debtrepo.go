package debtrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"payweek/internal/domain"
	"payweek/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

// FindActiveForMonday returns the single active debt anchored at the window's
// Monday, or nil when none exists. Duplicate active rows (a data anomaly) are
// resolved by taking the most recently created one, so the result never
// depends on incidental row order.
func (r *Repository) FindActiveForMonday(ctx context.Context, staffID int, monday time.Time) (*domain.DebtRecord, error) {
	query := `
        SELECT id, staff_id, week_start, status, amount, created_at
        FROM debts
        WHERE staff_id = $1 AND week_start = $2 AND status = $3
        ORDER BY created_at DESC, id DESC
        LIMIT 1
    `
	row := r.db.QueryRow(ctx, query, staffID, monday, domain.DebtStatusActive)

	var debt domain.DebtRecord
	err := row.Scan(&debt.ID, &debt.StaffID, &debt.WeekStart, &debt.Status, &debt.Amount, &debt.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find active debt", zap.Error(err))
		return nil, &domain.UpstreamFetchError{Op: "find active debt", Err: err}
	}
	return &debt, nil
}
