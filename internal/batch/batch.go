package batch

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"payweek/internal/config"
	"payweek/internal/domain"
	"payweek/internal/message"
	"payweek/internal/week"
)

type StaffRepo interface {
	ListActive(ctx context.Context) ([]domain.StaffMember, error)
}

type RunLogRepo interface {
	Save(ctx context.Context, report *domain.RunReport) error
}

type Aggregator interface {
	Aggregate(ctx context.Context, member domain.StaffMember, window domain.DateWindow) (*domain.PayrollBreakdown, error)
}

type Dispatcher interface {
	Send(ctx context.Context, chatID, text string) error
}

// Runner drives one payroll notification batch: resolve the previous week,
// list recipients, then aggregate -> format -> dispatch per recipient.
// Aggregation and formatting fan out over the worker pool; the dispatcher
// serializes actual sends behind its anti-flood delay. A recipient's failure
// is recorded and never aborts the batch.
type Runner struct {
	staffRepo   StaffRepo
	runLogRepo  RunLogRepo
	aggregator  Aggregator
	dispatcher  Dispatcher
	workerPool  WorkerPoolI
	offsetHours int
}

func New(cfg *config.Config, staffRepo StaffRepo, runLogRepo RunLogRepo, aggregator Aggregator, dispatcher Dispatcher) *Runner {
	return &Runner{
		staffRepo:   staffRepo,
		runLogRepo:  runLogRepo,
		aggregator:  aggregator,
		dispatcher:  dispatcher,
		workerPool:  NewWorkerPool(cfg.Workers),
		offsetHours: cfg.OffsetHours,
	}
}

// accumulator is the run's only shared state; workers append through it.
type accumulator struct {
	mu     sync.Mutex
	report *domain.RunReport
}

func (a *accumulator) sent() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.report.Sent++
}

func (a *accumulator) fail(member domain.StaffMember, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.report.Failed++
	a.report.Failures = append(a.report.Failures, domain.DispatchFailure{
		StaffID: member.ID,
		Name:    member.Name,
		Error:   err.Error(),
	})
}

// Run executes one batch. Setup-phase failures (the staff listing) abort the
// run; everything after that always terminates in a complete report.
func (r *Runner) Run(ctx context.Context, dryRun bool) (*domain.RunReport, error) {
	window := week.Previous(time.Now(), r.offsetHours)
	report := &domain.RunReport{
		RunID:  uuid.NewString(),
		Window: window,
		DryRun: dryRun,
	}

	zap.L().Info("payroll run started",
		zap.String("runID", report.RunID),
		zap.String("window", window.String()),
		zap.Bool("dryRun", dryRun),
	)

	members, err := r.staffRepo.ListActive(ctx)
	if err != nil {
		zap.L().Error("can't list recipients, aborting run", zap.Error(err))
		return nil, err
	}

	// Eligible counts every targeted member, so sent+failed+skipped always
	// adds back up to it.
	report.Eligible = len(members)

	var recipients, admins []domain.StaffMember
	for _, m := range members {
		if !m.HasChannel() {
			report.Skipped = append(report.Skipped, domain.SkippedMember{StaffID: m.ID, Name: m.Name})
			continue
		}
		recipients = append(recipients, m)
		if m.Role == domain.RoleAdmin {
			admins = append(admins, m)
		}
	}

	acc := &accumulator{report: report}

	var wg sync.WaitGroup
	var g errgroup.Group
	for _, recipient := range recipients {
		member := recipient
		wg.Add(1)
		g.Go(func() error {
			err := r.workerPool.AddTask(ctx, func() {
				defer wg.Done()
				r.process(ctx, member, window, dryRun, acc)
			})
			if err != nil {
				wg.Done()
				acc.fail(member, err)
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		zap.L().Error("run interrupted while queueing recipients", zap.Error(err))
	}
	wg.Wait()

	r.notifyAdmins(ctx, admins, report)

	if err := r.runLogRepo.Save(ctx, report); err != nil {
		zap.L().Warn("can't save run log", zap.String("runID", report.RunID), zap.Error(err))
	}

	zap.L().Info("payroll run finished",
		zap.String("runID", report.RunID),
		zap.Int("eligible", report.Eligible),
		zap.Int("sent", report.Sent),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", len(report.Skipped)),
	)
	return report, nil
}

func (r *Runner) process(ctx context.Context, member domain.StaffMember, window domain.DateWindow, dryRun bool, acc *accumulator) {
	breakdown, err := r.aggregator.Aggregate(ctx, member, window)
	if err != nil {
		acc.fail(member, err)
		return
	}

	text := message.Payslip(member, window, breakdown)

	if dryRun {
		acc.sent()
		return
	}

	if err := r.dispatcher.Send(ctx, member.ChatID, text); err != nil {
		acc.fail(member, err)
		return
	}
	acc.sent()
}

// notifyAdmins mirrors the run report to admin-role members. Summary errors
// are logged only; they are not part of the payroll counters.
func (r *Runner) notifyAdmins(ctx context.Context, admins []domain.StaffMember, report *domain.RunReport) {
	if report.DryRun {
		return
	}
	text := message.RunSummary(report)
	for _, admin := range admins {
		if err := r.dispatcher.Send(ctx, admin.ChatID, text); err != nil {
			zap.L().Warn("can't deliver run summary", zap.Int("staffID", admin.ID), zap.Error(err))
		}
	}
}
