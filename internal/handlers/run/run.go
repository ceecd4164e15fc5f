package run

import (
	"context"
	"net/http"

	"payweek/internal/domain"
	"payweek/internal/dto"
	"payweek/pkg/utils"
)

type Runner interface {
	Run(ctx context.Context, dryRun bool) (*domain.RunReport, error)
}

type RunHandler struct {
	runner Runner
}

func New(runner Runner) *RunHandler {
	return &RunHandler{runner: runner}
}

// Trigger starts one payroll batch. The shared-secret gate has already
// passed by the time this runs. dry_run suppresses dispatch but keeps all
// computation, so the report shape is identical.
func (h *RunHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	dryRun := false
	switch r.URL.Query().Get("dry_run") {
	case "1", "true":
		dryRun = true
	}

	report, err := h.runner.Run(r.Context(), dryRun)
	if err != nil {
		// Setup-phase failure: no report body, distinct from a completed run
		// with per-recipient failures.
		utils.RespondWithError(w, http.StatusBadGateway, "record store unavailable")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.NewRunReportResponse(report))
}
