// Package aggregate derives the chart and summary figures from raw record
// collections. Everything here is recomputed on load; nothing is cached.
package aggregate

import (
	"time"

	"leaveease/internal/datemath"
	"leaveease/internal/domain/attendance"
	"leaveease/internal/domain/leave"
)

// BucketIntoQuarters attributes the inclusive duration of every Approved
// request starting in year to the quarter of its start month. A leave that
// spans a quarter boundary is not split; it counts entirely against the
// quarter it starts in.
func BucketIntoQuarters(requests []leave.LeaveRequest, year int) leave.QuarterDays {
	var taken leave.QuarterDays
	for _, req := range requests {
		if req.Status != leave.StatusApproved || req.StartDate.Year() != year {
			continue
		}
		days := leave.Duration(req)
		switch quarterOf(req.StartDate.Month()) {
		case 1:
			taken.Q1 += days
		case 2:
			taken.Q2 += days
		case 3:
			taken.Q3 += days
		case 4:
			taken.Q4 += days
		}
	}
	return taken
}

func quarterOf(m time.Month) int {
	return (int(m)-1)/3 + 1
}

// RemainingPerQuarter spreads the annual allowance evenly over the four
// quarters and subtracts the taken days, clamping each at zero.
func RemainingPerQuarter(allowance int, taken leave.QuarterDays) leave.QuarterDays {
	perQuarter := allowance / 4
	return leave.QuarterDays{
		Q1: clampZero(perQuarter - taken.Q1),
		Q2: clampZero(perQuarter - taken.Q2),
		Q3: clampZero(perQuarter - taken.Q3),
		Q4: clampZero(perQuarter - taken.Q4),
	}
}

// QuarterlySummary assembles the full chart payload for year from raw
// requests. A non-positive allowance falls back to the default.
func QuarterlySummary(requests []leave.LeaveRequest, year, allowance int) leave.QuarterlySummary {
	if allowance <= 0 {
		allowance = leave.DefaultAnnualAllowance
	}
	taken := BucketIntoQuarters(requests, year)
	total := taken.Q1 + taken.Q2 + taken.Q3 + taken.Q4
	return leave.QuarterlySummary{
		Taken:                  taken,
		Remaining:              RemainingPerQuarter(allowance, taken),
		TotalTakenThisYear:     total,
		TotalRemainingThisYear: clampZero(allowance - total),
		AnnualAllowance:        allowance,
	}
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// EmployeeLateCount pairs an employee with their late-day tally.
type EmployeeLateCount struct {
	EmployeeName string
	Count        int
}

// CountByEmployee tallies late records per employee, preserving the order
// in which each employee first appears in the input.
func CountByEmployee(records []attendance.LateRecord) []EmployeeLateCount {
	index := make(map[string]int, len(records))
	counts := make([]EmployeeLateCount, 0, len(records))
	for _, rec := range records {
		if i, ok := index[rec.EmployeeName]; ok {
			counts[i].Count++
			continue
		}
		index[rec.EmployeeName] = len(counts)
		counts = append(counts, EmployeeLateCount{EmployeeName: rec.EmployeeName, Count: 1})
	}
	return counts
}

// MonthSummary is the calendar-tab footer: day counts for one month.
type MonthSummary struct {
	LeaveDays   int
	LateDays    int
	WorkingDays int
}

// MonthlySummary counts pre-expanded leave days and late days falling in
// the given month, plus the month's Monday-to-Friday working days.
func MonthlySummary(leaveDays []time.Time, lateDays []time.Time, year int, month time.Month) MonthSummary {
	var summary MonthSummary
	for _, d := range leaveDays {
		if d.Year() == year && d.Month() == month {
			summary.LeaveDays++
		}
	}
	for _, d := range lateDays {
		if d.Year() == year && d.Month() == month {
			summary.LateDays++
		}
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			summary.WorkingDays++
		}
	}
	return summary
}

// LeaveDays expands every Approved request into its individual calendar
// days, the form the calendar and monthly summary consume.
func LeaveDays(requests []leave.LeaveRequest) []LeaveDay {
	var days []LeaveDay
	for _, req := range requests {
		if req.Status != leave.StatusApproved {
			continue
		}
		for _, d := range datemath.ExpandRange(req.StartDate, req.EndDate) {
			days = append(days, LeaveDay{Date: d, LeaveType: req.LeaveType, Reason: req.Reason})
		}
	}
	return days
}

// LeaveDay is a single materialized day of an approved leave.
type LeaveDay struct {
	Date      time.Time
	LeaveType string
	Reason    string
}
