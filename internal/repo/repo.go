package repo

import (
	"payweek/internal/batch"
	"payweek/internal/pg"
	adjustmentrepo "payweek/internal/repo/adjustment-repo"
	debtrepo "payweek/internal/repo/debt-repo"
	runlogrepo "payweek/internal/repo/runlog-repo"
	shiftrepo "payweek/internal/repo/shift-repo"
	staffrepo "payweek/internal/repo/staff-repo"
	"payweek/internal/service/payrollservice"
)

type Repositories struct {
	StaffRepo      batch.StaffRepo
	ShiftRepo      payrollservice.ShiftRepo
	DebtRepo       payrollservice.DebtRepo
	AdjustmentRepo payrollservice.AdjustmentRepo
	RunLogRepo     batch.RunLogRepo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		StaffRepo:      staffrepo.New(conn),
		ShiftRepo:      shiftrepo.New(conn),
		DebtRepo:       debtrepo.New(conn),
		AdjustmentRepo: adjustmentrepo.New(conn),
		RunLogRepo:     runlogrepo.New(conn, txManager),
	}
}
