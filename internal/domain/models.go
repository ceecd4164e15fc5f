package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWorker Role = "worker"
)

type StaffMember struct {
	ID        int       `db:"id"`
	Name      string    `db:"name"`
	Role      Role      `db:"role"`
	Active    bool      `db:"active"`
	ChatID    string    `db:"chat_id"`
	CreatedAt time.Time `db:"created_at"`
}

// HasChannel reports whether the member can receive notifications.
func (m StaffMember) HasChannel() bool {
	return strings.TrimSpace(m.ChatID) != ""
}

type ShiftRecord struct {
	ID      int       `db:"id"`
	StaffID int       `db:"staff_id"`
	Date    time.Time `db:"work_date"`
	// Shift is the shift designation ("day", "night", ...). nil means the
	// entry exists but no shift was worked, so it never counts as attendance.
	Shift *string `db:"shift"`
}

type DebtRecord struct {
	ID        int       `db:"id"`
	StaffID   int       `db:"staff_id"`
	WeekStart time.Time `db:"week_start"`
	Status    string    `db:"status"`
	Amount    int64     `db:"amount"`
	CreatedAt time.Time `db:"created_at"`
}

const DebtStatusActive = "active"

type AdjustmentRecord struct {
	ID      int            `db:"id"`
	StaffID int            `db:"staff_id"`
	Date    time.Time      `db:"entry_date"`
	Kind    AdjustmentKind `db:"kind"`
	Amount  int64          `db:"amount"`
	Note    string         `db:"note"`
}

// PayrollBreakdown is derived per member per window and never persisted.
// All amounts are integer base currency units.
type PayrollBreakdown struct {
	Shifts     int
	Base       int64
	Bonus      int64
	Fine       int64
	Advance    int64
	WeeklyDebt int64
	DebtAdjust int64
	Net        int64
}

type SkippedMember struct {
	StaffID int    `json:"id"`
	Name    string `json:"name"`
}

type DispatchFailure struct {
	StaffID int    `json:"id"`
	Name    string `json:"name"`
	Error   string `json:"error"`
}

type RunReport struct {
	RunID    string
	Window   DateWindow
	DryRun   bool
	Eligible int
	Sent     int
	Failed   int
	Skipped  []SkippedMember
	Failures []DispatchFailure
}
