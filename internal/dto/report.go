package dto

import "payweek/internal/domain"

type RunReportResponseDTO struct {
	RunID     string                   `json:"run_id"`
	WeekStart string                   `json:"week_start"`
	WeekEnd   string                   `json:"week_end"`
	DryRun    bool                     `json:"dry_run"`
	Eligible  int                      `json:"eligible"`
	Sent      int                      `json:"sent"`
	Failed    int                      `json:"failed"`
	Skipped   []domain.SkippedMember   `json:"skipped"`
	Errors    []domain.DispatchFailure `json:"errors"`
}

const wireDateLayout = "2006-01-02"

func NewRunReportResponse(report *domain.RunReport) RunReportResponseDTO {
	skipped := report.Skipped
	if skipped == nil {
		skipped = []domain.SkippedMember{}
	}
	failures := report.Failures
	if failures == nil {
		failures = []domain.DispatchFailure{}
	}
	return RunReportResponseDTO{
		RunID:     report.RunID,
		WeekStart: report.Window.Start.Format(wireDateLayout),
		WeekEnd:   report.Window.End.Format(wireDateLayout),
		DryRun:    report.DryRun,
		Eligible:  report.Eligible,
		Sent:      report.Sent,
		Failed:    report.Failed,
		Skipped:   skipped,
		Errors:    failures,
	}
}
