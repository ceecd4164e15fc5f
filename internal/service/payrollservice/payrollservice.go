package payrollservice

import (
	"context"
	"time"

	"go.uber.org/zap"

	"payweek/internal/config"
	"payweek/internal/domain"
)

type ShiftRepo interface {
	ListInRange(ctx context.Context, staffID int, from, to time.Time) ([]domain.ShiftRecord, error)
}

type DebtRepo interface {
	FindActiveForMonday(ctx context.Context, staffID int, monday time.Time) (*domain.DebtRecord, error)
}

type AdjustmentRepo interface {
	ListInRange(ctx context.Context, staffID int, from, to time.Time) ([]domain.AdjustmentRecord, error)
}

type Service struct {
	shiftRepo      ShiftRepo
	debtRepo       DebtRepo
	adjustmentRepo AdjustmentRepo
	shiftRate      int64
	clampNegative  bool
}

func New(cfg *config.Config, shiftRepo ShiftRepo, debtRepo DebtRepo, adjustmentRepo AdjustmentRepo) *Service {
	return &Service{
		shiftRepo:      shiftRepo,
		debtRepo:       debtRepo,
		adjustmentRepo: adjustmentRepo,
		shiftRate:      cfg.ShiftRate,
		clampNegative:  cfg.ClampNegative,
	}
}

// Aggregate folds one member's records for the window into a breakdown.
// A member with no activity yields an all-zero breakdown, not an error.
func (s *Service) Aggregate(ctx context.Context, member domain.StaffMember, window domain.DateWindow) (*domain.PayrollBreakdown, error) {
	shifts, err := s.shiftRepo.ListInRange(ctx, member.ID, window.Start, window.End)
	if err != nil {
		zap.L().Error("failed to fetch shifts", zap.Int("staffID", member.ID), zap.Error(err))
		return nil, err
	}

	breakdown := &domain.PayrollBreakdown{}
	for _, shift := range shifts {
		if shift.Shift != nil {
			breakdown.Shifts++
		}
	}
	breakdown.Base = int64(breakdown.Shifts) * s.shiftRate

	debt, err := s.debtRepo.FindActiveForMonday(ctx, member.ID, window.Start)
	if err != nil {
		zap.L().Error("failed to fetch weekly debt", zap.Int("staffID", member.ID), zap.Error(err))
		return nil, err
	}
	if debt != nil {
		breakdown.WeeklyDebt = debt.Amount
	}

	adjustments, err := s.adjustmentRepo.ListInRange(ctx, member.ID, window.Start, window.End)
	if err != nil {
		zap.L().Error("failed to fetch adjustments", zap.Int("staffID", member.ID), zap.Error(err))
		return nil, err
	}
	for _, a := range adjustments {
		switch a.Kind {
		case domain.KindBonus:
			breakdown.Bonus += a.Amount
		case domain.KindFine:
			breakdown.Fine += a.Amount
		case domain.KindAdvance:
			breakdown.Advance += a.Amount
		case domain.KindDebt:
			breakdown.DebtAdjust += a.Amount
		}
	}

	breakdown.Net = breakdown.Base + breakdown.Bonus -
		breakdown.Fine - breakdown.Advance - breakdown.WeeklyDebt - breakdown.DebtAdjust
	if s.clampNegative && breakdown.Net < 0 {
		breakdown.Net = 0
	}

	return breakdown, nil
}
