package run

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"payweek/internal/domain"
	"payweek/internal/dto"
)

func NewMock(t *testing.T) (*RunHandler, *MockRunner) {
	ctrl := gomock.NewController(t)
	runner := NewMockRunner(ctrl)
	handler := New(runner)
	defer ctrl.Finish()
	return handler, runner
}

func testReport() *domain.RunReport {
	return &domain.RunReport{
		RunID: "9c7a2c2e-68be-4b3f-8f52-1f3a8f0a8e11",
		Window: domain.DateWindow{
			Start: time.Date(2024, time.April, 8, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, time.April, 14, 0, 0, 0, 0, time.UTC),
		},
		Eligible: 2,
		Sent:     1,
		Failed:   1,
		Failures: []domain.DispatchFailure{{StaffID: 2, Name: "Boris", Error: "chat not found"}},
	}
}

func TestTriggerHandler(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		prepareMock  func(runner *MockRunner)
		expectedCode int
		expectedDry  bool
		expectReport bool
	}{
		{
			name:   "Live run",
			target: "/api/payroll/run",
			prepareMock: func(runner *MockRunner) {
				runner.EXPECT().Run(gomock.Any(), false).Return(testReport(), nil)
			},
			expectedCode: http.StatusOK,
			expectReport: true,
		},
		{
			name:   "Dry run via query flag",
			target: "/api/payroll/run?dry_run=1",
			prepareMock: func(runner *MockRunner) {
				report := testReport()
				report.DryRun = true
				runner.EXPECT().Run(gomock.Any(), true).Return(report, nil)
			},
			expectedCode: http.StatusOK,
			expectedDry:  true,
			expectReport: true,
		},
		{
			name:   "Dry run via true literal",
			target: "/api/payroll/run?dry_run=true",
			prepareMock: func(runner *MockRunner) {
				report := testReport()
				report.DryRun = true
				runner.EXPECT().Run(gomock.Any(), true).Return(report, nil)
			},
			expectedCode: http.StatusOK,
			expectedDry:  true,
			expectReport: true,
		},
		{
			name:   "Setup failure returns no report body",
			target: "/api/payroll/run",
			prepareMock: func(runner *MockRunner) {
				runner.EXPECT().
					Run(gomock.Any(), false).
					Return(nil, &domain.UpstreamFetchError{Op: "list active staff", Err: errors.New("store offline")})
			},
			expectedCode: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, runner := NewMock(t)
			tt.prepareMock(runner)

			r := httptest.NewRequest(http.MethodPost, tt.target, nil)
			w := httptest.NewRecorder()
			handler.Trigger(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if !tt.expectReport {
				return
			}
			var body dto.RunReportResponseDTO
			assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, "2024-04-08", body.WeekStart)
			assert.Equal(t, "2024-04-14", body.WeekEnd)
			assert.Equal(t, tt.expectedDry, body.DryRun)
			assert.Equal(t, 1, body.Sent)
			assert.Equal(t, 1, body.Failed)
			assert.NotNil(t, body.Skipped)
			assert.Len(t, body.Errors, 1)
		})
	}
}
