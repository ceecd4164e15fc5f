package adjustmentrepo

import (
	"context"
	"time"

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

func (r *Repository) ListInRange(ctx context.Context, staffID int, from, to time.Time) ([]domain.AdjustmentRecord, error) {
	query := `
        SELECT id, staff_id, entry_date, kind, amount, note
        FROM adjustments
        WHERE staff_id = $1 AND entry_date BETWEEN $2 AND $3
        ORDER BY entry_date ASC, id ASC
    `
	rows, err := r.db.Query(ctx, query, staffID, from, to)
	if err != nil {
		zap.L().Error("can't list adjustments", zap.Error(err))
		return nil, &domain.UpstreamFetchError{Op: "list adjustments", Err: err}
	}
	defer rows.Close()

	var adjustments []domain.AdjustmentRecord
	for rows.Next() {
		var (
			a    domain.AdjustmentRecord
			kind string
		)
		err := rows.Scan(&a.ID, &a.StaffID, &a.Date, &kind, &a.Amount, &a.Note)
		if err != nil {
			zap.L().Error("can't scan adjustment row", zap.Error(err))
			return nil, &domain.UpstreamFetchError{Op: "scan adjustment row", Err: err}
		}
		a.Kind, err = domain.ParseAdjustmentKind(kind)
		if err != nil {
			zap.L().Error("bad adjustment kind in store", zap.Error(err), zap.Int("id", a.ID))
			return nil, &domain.UpstreamFetchError{Op: "parse adjustment kind", Err: err}
		}
		adjustments = append(adjustments, a)
	}
	// Same deferred-error rule as the other scan loops: a partial adjustment
	// list is a fetch failure, not a result.
	if err := rows.Err(); err != nil {
		zap.L().Error("can't read adjustment rows", zap.Error(err))
		return nil, &domain.UpstreamFetchError{Op: "read adjustment rows", Err: err}
	}
	return adjustments, nil
}
