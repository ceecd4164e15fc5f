package runlogrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"payweek/internal/domain"
	"payweek/internal/pg"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()
	defer ctrl.Finish()

	return repo, mockDB, mockTxManager
}

func TestRepository_Save(t *testing.T) {
	repo, _, txManager := NewMock(t)
	report := &domain.RunReport{
		RunID: "9c7a2c2e-68be-4b3f-8f52-1f3a8f0a8e11",
		Window: domain.DateWindow{
			Start: time.Date(2024, time.April, 8, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, time.April, 14, 0, 0, 0, 0, time.UTC),
		},
		Eligible: 5,
		Sent:     4,
		Failed:   1,
		Skipped:  []domain.SkippedMember{{StaffID: 9, Name: "Oleg"}},
	}

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Run log saved inside a transaction",
			mockSetup: func() {
				txManager.EXPECT().
					Begin(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			expectErr: false,
		},
		{
			name: "Transaction failure propagates",
			mockSetup: func() {
				txManager.EXPECT().
					Begin(gomock.Any(), gomock.Any()).
					Return(errors.New("tx failed"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Save(context.Background(), report)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
