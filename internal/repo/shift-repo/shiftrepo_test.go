package shiftrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"payweek/internal/domain"
	"payweek/internal/pg"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_ListInRange(t *testing.T) {
	repo, mock := NewMock(t)
	from := time.Date(2024, time.April, 8, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.April, 14, 0, 0, 0, 0, time.UTC)
	day := "day"
	query := regexp.QuoteMeta("SELECT id, staff_id, work_date, shift FROM shifts WHERE staff_id = $1 AND work_date BETWEEN $2 AND $3 ORDER BY work_date ASC")

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    []domain.ShiftRecord
	}{
		{
			name: "Shifts in the window including a null designation",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "staff_id", "work_date", "shift"}).
					AddRow(1, 1, from, &day).
					AddRow(2, 1, from.AddDate(0, 0, 1), (*string)(nil))
				mock.ExpectQuery(query).
					WithArgs(1, from, to).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: []domain.ShiftRecord{
				{ID: 1, StaffID: 1, Date: from, Shift: &day},
				{ID: 2, StaffID: 1, Date: from.AddDate(0, 0, 1), Shift: nil},
			},
		},
		{
			name: "Empty window",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "staff_id", "work_date", "shift"})
				mock.ExpectQuery(query).
					WithArgs(1, from, to).
					WillReturnRows(rows)
			},
			expectErr: false,
			result:    nil,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs(1, from, to).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.ListInRange(context.Background(), 1, from, to)
			if tt.expectErr {
				assert.Error(t, err)
				var upstream *domain.UpstreamFetchError
				assert.ErrorAs(t, err, &upstream)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

// The connection can drop mid-read: Next returns false with the error held
// back until rows.Err. The rows already scanned must never pass as a complete
// list.
func TestRepository_ListInRangeDeferredReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db := pg.NewMockDatabase(ctrl)
	rows := pg.NewMockRows(ctrl)
	repo := New(db)

	from := time.Date(2024, time.April, 8, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.April, 14, 0, 0, 0, 0, time.UTC)
	readErr := errors.New("unexpected EOF")

	db.EXPECT().
		Query(gomock.Any(), gomock.Any(), 1, from, to).
		Return(rows, nil)
	gomock.InOrder(
		rows.EXPECT().Next().Return(true),
		rows.EXPECT().Scan(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(dest ...any) error {
				*dest[0].(*int) = 1
				*dest[1].(*int) = 1
				*dest[2].(*time.Time) = from
				return nil
			}),
		rows.EXPECT().Next().Return(false),
		rows.EXPECT().Err().Return(readErr),
	)
	rows.EXPECT().Close()

	result, err := repo.ListInRange(context.Background(), 1, from, to)
	assert.Nil(t, result)
	var upstream *domain.UpstreamFetchError
	assert.ErrorAs(t, err, &upstream)
	assert.ErrorIs(t, err, readErr)
}
