package payrollservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"payweek/internal/config"
	"payweek/internal/domain"
)

func NewMock(t *testing.T, cfg *config.Config) (*Service, *MockShiftRepo, *MockDebtRepo, *MockAdjustmentRepo) {
	ctrl := gomock.NewController(t)
	shiftRepo := NewMockShiftRepo(ctrl)
	debtRepo := NewMockDebtRepo(ctrl)
	adjustmentRepo := NewMockAdjustmentRepo(ctrl)
	service := New(cfg, shiftRepo, debtRepo, adjustmentRepo)
	defer ctrl.Finish()
	return service, shiftRepo, debtRepo, adjustmentRepo
}

var testWindow = domain.DateWindow{
	Start: time.Date(2024, time.April, 8, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2024, time.April, 14, 0, 0, 0, 0, time.UTC),
}

func day(s string) *string { return &s }

func shiftsFor(n int) []domain.ShiftRecord {
	shifts := make([]domain.ShiftRecord, 0, n)
	for i := 0; i < n; i++ {
		shifts = append(shifts, domain.ShiftRecord{
			StaffID: 1,
			Date:    testWindow.Start.AddDate(0, 0, i),
			Shift:   day("day"),
		})
	}
	return shifts
}

func TestAggregate(t *testing.T) {
	member := domain.StaffMember{ID: 1, Name: "Anna", Role: domain.RoleWorker, Active: true, ChatID: "100"}

	tests := []struct {
		name          string
		cfg           *config.Config
		shifts        []domain.ShiftRecord
		debt          *domain.DebtRecord
		adjustments   []domain.AdjustmentRecord
		expected      *domain.PayrollBreakdown
		expectedError error
	}{
		{
			name:   "Full breakdown with every bucket",
			cfg:    &config.Config{ShiftRate: 8000},
			shifts: shiftsFor(3),
			debt:   &domain.DebtRecord{StaffID: 1, WeekStart: testWindow.Start, Status: domain.DebtStatusActive, Amount: 1500},
			adjustments: []domain.AdjustmentRecord{
				{StaffID: 1, Kind: domain.KindBonus, Amount: 2000},
				{StaffID: 1, Kind: domain.KindFine, Amount: 500},
				{StaffID: 1, Kind: domain.KindAdvance, Amount: 1000},
			},
			expected: &domain.PayrollBreakdown{
				Shifts:     3,
				Base:       24000,
				Bonus:      2000,
				Fine:       500,
				Advance:    1000,
				WeeklyDebt: 1500,
				Net:        23000,
			},
		},
		{
			name:     "Zero activity yields zero breakdown",
			cfg:      &config.Config{ShiftRate: 8000},
			expected: &domain.PayrollBreakdown{},
		},
		{
			name: "Null shift designations do not count",
			cfg:  &config.Config{ShiftRate: 8000},
			shifts: []domain.ShiftRecord{
				{StaffID: 1, Date: testWindow.Start, Shift: day("night")},
				{StaffID: 1, Date: testWindow.Start.AddDate(0, 0, 1), Shift: nil},
				{StaffID: 1, Date: testWindow.Start.AddDate(0, 0, 2), Shift: nil},
			},
			expected: &domain.PayrollBreakdown{Shifts: 1, Base: 8000, Net: 8000},
		},
		{
			name: "Same-kind adjustments are summed",
			cfg:  &config.Config{ShiftRate: 8000},
			adjustments: []domain.AdjustmentRecord{
				{StaffID: 1, Kind: domain.KindBonus, Amount: 300},
				{StaffID: 1, Kind: domain.KindBonus, Amount: 700},
				{StaffID: 1, Kind: domain.KindDebt, Amount: 400},
			},
			expected: &domain.PayrollBreakdown{Bonus: 1000, DebtAdjust: 400, Net: 600},
		},
		{
			name:     "Standing debt alone drives the net negative",
			cfg:      &config.Config{ShiftRate: 8000},
			debt:     &domain.DebtRecord{StaffID: 1, WeekStart: testWindow.Start, Status: domain.DebtStatusActive, Amount: 2500},
			expected: &domain.PayrollBreakdown{WeeklyDebt: 2500, Net: -2500},
		},
		{
			name:     "Clamp policy floors the net at zero",
			cfg:      &config.Config{ShiftRate: 8000, ClampNegative: true},
			debt:     &domain.DebtRecord{StaffID: 1, WeekStart: testWindow.Start, Status: domain.DebtStatusActive, Amount: 2500},
			expected: &domain.PayrollBreakdown{WeeklyDebt: 2500, Net: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, shiftRepo, debtRepo, adjustmentRepo := NewMock(t, tt.cfg)

			shiftRepo.EXPECT().
				ListInRange(gomock.Any(), member.ID, testWindow.Start, testWindow.End).
				Return(tt.shifts, nil)
			debtRepo.EXPECT().
				FindActiveForMonday(gomock.Any(), member.ID, testWindow.Start).
				Return(tt.debt, nil)
			adjustmentRepo.EXPECT().
				ListInRange(gomock.Any(), member.ID, testWindow.Start, testWindow.End).
				Return(tt.adjustments, nil)

			breakdown, err := service.Aggregate(context.Background(), member, testWindow)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, breakdown)
		})
	}
}

func TestAggregateOrderIndependence(t *testing.T) {
	member := domain.StaffMember{ID: 7, Name: "Boris"}
	cfg := &config.Config{ShiftRate: 5000}

	adjustments := []domain.AdjustmentRecord{
		{Kind: domain.KindFine, Amount: 100},
		{Kind: domain.KindBonus, Amount: 900},
		{Kind: domain.KindAdvance, Amount: 250},
		{Kind: domain.KindBonus, Amount: 100},
	}
	reversed := make([]domain.AdjustmentRecord, len(adjustments))
	for i, a := range adjustments {
		reversed[len(adjustments)-1-i] = a
	}

	var results []*domain.PayrollBreakdown
	for _, input := range [][]domain.AdjustmentRecord{adjustments, reversed} {
		service, shiftRepo, debtRepo, adjustmentRepo := NewMock(t, cfg)
		shiftRepo.EXPECT().ListInRange(gomock.Any(), member.ID, testWindow.Start, testWindow.End).Return(shiftsFor(2), nil)
		debtRepo.EXPECT().FindActiveForMonday(gomock.Any(), member.ID, testWindow.Start).Return(nil, nil)
		adjustmentRepo.EXPECT().ListInRange(gomock.Any(), member.ID, testWindow.Start, testWindow.End).Return(input, nil)

		breakdown, err := service.Aggregate(context.Background(), member, testWindow)
		assert.NoError(t, err)
		results = append(results, breakdown)
	}

	assert.Equal(t, results[0], results[1])
}

func TestAggregateUpstreamErrors(t *testing.T) {
	member := domain.StaffMember{ID: 3, Name: "Vera"}
	cfg := &config.Config{ShiftRate: 8000}
	fetchErr := &domain.UpstreamFetchError{Op: "list shifts", Err: errors.New("connection refused")}

	tests := []struct {
		name        string
		prepareMock func(shiftRepo *MockShiftRepo, debtRepo *MockDebtRepo, adjustmentRepo *MockAdjustmentRepo)
	}{
		{
			name: "Shift query fails",
			prepareMock: func(shiftRepo *MockShiftRepo, debtRepo *MockDebtRepo, adjustmentRepo *MockAdjustmentRepo) {
				shiftRepo.EXPECT().ListInRange(gomock.Any(), member.ID, testWindow.Start, testWindow.End).Return(nil, fetchErr)
			},
		},
		{
			name: "Debt query fails",
			prepareMock: func(shiftRepo *MockShiftRepo, debtRepo *MockDebtRepo, adjustmentRepo *MockAdjustmentRepo) {
				shiftRepo.EXPECT().ListInRange(gomock.Any(), member.ID, testWindow.Start, testWindow.End).Return(nil, nil)
				debtRepo.EXPECT().FindActiveForMonday(gomock.Any(), member.ID, testWindow.Start).Return(nil, fetchErr)
			},
		},
		{
			name: "Adjustment query fails",
			prepareMock: func(shiftRepo *MockShiftRepo, debtRepo *MockDebtRepo, adjustmentRepo *MockAdjustmentRepo) {
				shiftRepo.EXPECT().ListInRange(gomock.Any(), member.ID, testWindow.Start, testWindow.End).Return(nil, nil)
				debtRepo.EXPECT().FindActiveForMonday(gomock.Any(), member.ID, testWindow.Start).Return(nil, nil)
				adjustmentRepo.EXPECT().ListInRange(gomock.Any(), member.ID, testWindow.Start, testWindow.End).Return(nil, fetchErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, shiftRepo, debtRepo, adjustmentRepo := NewMock(t, cfg)
			tt.prepareMock(shiftRepo, debtRepo, adjustmentRepo)

			breakdown, err := service.Aggregate(context.Background(), member, testWindow)

			assert.Nil(t, breakdown)
			var upstream *domain.UpstreamFetchError
			assert.ErrorAs(t, err, &upstream)
		})
	}
}
