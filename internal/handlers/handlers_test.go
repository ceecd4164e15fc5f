package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"payweek/internal/config"
	"payweek/internal/domain"
	runhandlers "payweek/internal/handlers/run"
)

func newRouter(t *testing.T) (chi.Router, *runhandlers.MockRunner) {
	ctrl := gomock.NewController(t)
	runner := runhandlers.NewMockRunner(ctrl)
	h := New(&config.Config{TriggerSecret: "s3cret"}, runner)
	router := chi.NewRouter()
	h.InitRoutes(router)
	defer ctrl.Finish()
	return router, runner
}

func TestTriggerAuth(t *testing.T) {
	tests := []struct {
		name         string
		secret       string
		withHeader   bool
		prepareMock  func(runner *runhandlers.MockRunner)
		expectedCode int
	}{
		{
			name:       "Valid secret reaches the runner",
			secret:     "s3cret",
			withHeader: true,
			prepareMock: func(runner *runhandlers.MockRunner) {
				runner.EXPECT().Run(gomock.Any(), false).Return(&domain.RunReport{}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Wrong secret is rejected before any work",
			secret:       "guess",
			withHeader:   true,
			prepareMock:  func(runner *runhandlers.MockRunner) {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Missing secret is rejected",
			withHeader:   false,
			prepareMock:  func(runner *runhandlers.MockRunner) {},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, runner := newRouter(t)
			tt.prepareMock(runner)

			r := httptest.NewRequest(http.MethodPost, "/api/payroll/run", nil)
			if tt.withHeader {
				r.Header.Set("X-Trigger-Secret", tt.secret)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestHealthz(t *testing.T) {
	router, _ := newRouter(t)

	r := httptest.NewRequest(http.MethodGet, "/api/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
