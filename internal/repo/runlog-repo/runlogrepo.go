package runlogrepo

import (
	"context"

	"go.uber.org/zap"

	"payweek/internal/domain"
	"payweek/internal/pg"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

// Save records the outcome of one batch run. This is the only write the
// service performs; payroll records themselves are never mutated.
func (r *Repository) Save(ctx context.Context, report *domain.RunReport) error {
	query := `
        INSERT INTO run_log (run_id, week_start, week_end, dry_run, eligible, sent, failed, skipped)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query,
			report.RunID,
			report.Window.Start,
			report.Window.End,
			report.DryRun,
			report.Eligible,
			report.Sent,
			report.Failed,
			len(report.Skipped),
		)
		if err != nil {
			zap.L().Error("can't save run log", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}
