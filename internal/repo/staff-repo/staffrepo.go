package staffrepo

import (
	"context"

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

func (r *Repository) ListActive(ctx context.Context) ([]domain.StaffMember, error) {
	query := `
        SELECT id, name, role, active, chat_id, created_at
        FROM staff
        WHERE active = TRUE
        ORDER BY id ASC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't list active staff", zap.Error(err))
		return nil, &domain.UpstreamFetchError{Op: "list active staff", Err: err}
	}
	defer rows.Close()

	var members []domain.StaffMember
	for rows.Next() {
		var (
			m    domain.StaffMember
			role string
		)
		err := rows.Scan(&m.ID, &m.Name, &role, &m.Active, &m.ChatID, &m.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan staff row", zap.Error(err))
			return nil, &domain.UpstreamFetchError{Op: "scan staff row", Err: err}
		}
		m.Role = domain.Role(role)
		members = append(members, m)
	}
	// A connection failure mid-read ends iteration with the error deferred to
	// rows.Err(); checking it keeps a truncated listing from passing as complete.
	if err := rows.Err(); err != nil {
		zap.L().Error("can't read staff rows", zap.Error(err))
		return nil, &domain.UpstreamFetchError{Op: "read staff rows", Err: err}
	}
	return members, nil
}
