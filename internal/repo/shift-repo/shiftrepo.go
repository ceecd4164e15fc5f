package shiftrepo

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

func (r *Repository) ListInRange(ctx context.Context, staffID int, from, to time.Time) ([]domain.ShiftRecord, error) {
	query := `
        SELECT id, staff_id, work_date, shift
        FROM shifts
        WHERE staff_id = $1 AND work_date BETWEEN $2 AND $3
        ORDER BY work_date ASC
    `
	rows, err := r.db.Query(ctx, query, staffID, from, to)
	if err != nil {
		zap.L().Error("can't list shifts", zap.Error(err))
		return nil, &domain.UpstreamFetchError{Op: "list shifts", Err: err}
	}
	defer rows.Close()

	var shifts []domain.ShiftRecord
	for rows.Next() {
		var s domain.ShiftRecord
		err := rows.Scan(&s.ID, &s.StaffID, &s.Date, &s.Shift)
		if err != nil {
			zap.L().Error("can't scan shift row", zap.Error(err))
			return nil, &domain.UpstreamFetchError{Op: "scan shift row", Err: err}
		}
		shifts = append(shifts, s)
	}
	// Iteration can end on a deferred connection error; a truncated shift list
	// would undercount the payout, so it must surface as a fetch failure.
	if err := rows.Err(); err != nil {
		zap.L().Error("can't read shift rows", zap.Error(err))
		return nil, &domain.UpstreamFetchError{Op: "read shift rows", Err: err}
	}
	return shifts, nil
}
