package message

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"payweek/internal/domain"
)

const currencySuffix = "₽"

// Payslip renders one member's weekly breakdown as a Telegram HTML message.
// The display name is staff-entered text and is escaped before interpolation;
// everything else is generated. Section order is fixed: header, name, period,
// shifts, base, +bonus, -fine, -advance, -debt, separator, net.
func Payslip(member domain.StaffMember, window domain.DateWindow, b *domain.PayrollBreakdown) string {
	var sb strings.Builder

	sb.WriteString("<b>Weekly payout</b>\n")
	sb.WriteString(html.EscapeString(member.Name) + "\n")
	sb.WriteString("Period: " + window.String() + "\n\n")

	fmt.Fprintf(&sb, "Shifts: %d\n", b.Shifts)
	fmt.Fprintf(&sb, "Base: %s\n", FormatMoney(b.Base))
	fmt.Fprintf(&sb, "Bonus: +%s\n", FormatMoney(b.Bonus))
	fmt.Fprintf(&sb, "Fine: -%s\n", FormatMoney(b.Fine))
	fmt.Fprintf(&sb, "Advance: -%s\n", FormatMoney(b.Advance))
	fmt.Fprintf(&sb, "Debt: -%s\n", FormatMoney(b.WeeklyDebt+b.DebtAdjust))
	sb.WriteString("----------------\n")
	fmt.Fprintf(&sb, "<b>Total: %s</b>", FormatMoney(b.Net))

	return sb.String()
}

// RunSummary renders the batch outcome sent to admins after a run.
func RunSummary(report *domain.RunReport) string {
	var sb strings.Builder

	sb.WriteString("<b>Payroll run " + report.Window.String() + "</b>\n")
	fmt.Fprintf(&sb, "Eligible: %d\n", report.Eligible)
	fmt.Fprintf(&sb, "Sent: %d\n", report.Sent)
	fmt.Fprintf(&sb, "Failed: %d\n", report.Failed)
	fmt.Fprintf(&sb, "Skipped: %d", len(report.Skipped))
	for _, f := range report.Failures {
		fmt.Fprintf(&sb, "\n%s: %s", html.EscapeString(f.Name), html.EscapeString(f.Error))
	}

	return sb.String()
}

// FormatMoney renders an integer amount of base currency units with a space
// as the thousands separator and the currency suffix. Amounts are already
// whole units, so rendering never rounds.
func FormatMoney(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	digits := strconv.FormatInt(v, 10)
	var sb strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(' ')
		}
		sb.WriteRune(d)
	}

	return sign + sb.String() + " " + currencySuffix
}
