package aggregate

import (
	"testing"
	"time"

	"leaveease/internal/domain/attendance"
	"leaveease/internal/domain/leave"
)

func approved(start, end time.Time) leave.LeaveRequest {
	return leave.LeaveRequest{
		Status:    leave.StatusApproved,
		StartDate: start,
		EndDate:   end,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBucketIntoQuarters(t *testing.T) {
	requests := []leave.LeaveRequest{
		approved(day(2025, time.January, 10), day(2025, time.January, 12)), // Q1, 3 days
		approved(day(2025, time.April, 1), day(2025, time.April, 1)),       // Q2, 1 day
		approved(day(2025, time.December, 29), day(2025, time.December, 31)), // Q4, 3 days
	}

	taken := BucketIntoQuarters(requests, 2025)
	if taken.Q1 != 3 || taken.Q2 != 1 || taken.Q3 != 0 || taken.Q4 != 3 {
		t.Fatalf("unexpected buckets: %+v", taken)
	}
}

func TestBucketIntoQuartersSumMatchesDays(t *testing.T) {
	requests := []leave.LeaveRequest{
		approved(day(2025, time.February, 3), day(2025, time.February, 7)),
		approved(day(2025, time.August, 18), day(2025, time.August, 22)),
	}
	taken := BucketIntoQuarters(requests, 2025)
	sum := taken.Q1 + taken.Q2 + taken.Q3 + taken.Q4
	want := 0
	for _, req := range requests {
		want += leave.Duration(req)
	}
	if sum != want {
		t.Fatalf("expected %d attributed days, got %d", want, sum)
	}
}

func TestBucketIntoQuartersCrossQuarterAttributesToStart(t *testing.T) {
	requests := []leave.LeaveRequest{
		// Spans Q1/Q2 boundary; all 4 days land in Q1.
		approved(day(2025, time.March, 30), day(2025, time.April, 2)),
	}
	taken := BucketIntoQuarters(requests, 2025)
	if taken.Q1 != 4 || taken.Q2 != 0 {
		t.Fatalf("cross-quarter leave should attribute to start quarter: %+v", taken)
	}
}

func TestBucketIntoQuartersIgnoresPendingAndOtherYears(t *testing.T) {
	requests := []leave.LeaveRequest{
		{Status: leave.StatusPending, StartDate: day(2025, time.May, 1), EndDate: day(2025, time.May, 2)},
		approved(day(2024, time.May, 1), day(2024, time.May, 2)),
	}
	taken := BucketIntoQuarters(requests, 2025)
	if taken != (leave.QuarterDays{}) {
		t.Fatalf("expected empty buckets, got %+v", taken)
	}
}

func TestRemainingPerQuarterClampsAtZero(t *testing.T) {
	remaining := RemainingPerQuarter(24, leave.QuarterDays{Q1: 10, Q2: 6, Q3: 1})
	if remaining.Q1 != 0 {
		t.Fatalf("overdrawn quarter should clamp to 0, got %d", remaining.Q1)
	}
	if remaining.Q2 != 0 || remaining.Q3 != 5 || remaining.Q4 != 6 {
		t.Fatalf("unexpected remaining: %+v", remaining)
	}
}

func TestQuarterlySummaryDefaults(t *testing.T) {
	requests := []leave.LeaveRequest{
		approved(day(2025, time.January, 6), day(2025, time.January, 10)),
	}
	summary := QuarterlySummary(requests, 2025, 0)
	if summary.AnnualAllowance != leave.DefaultAnnualAllowance {
		t.Fatalf("expected default allowance, got %d", summary.AnnualAllowance)
	}
	if summary.TotalTakenThisYear != 5 {
		t.Fatalf("expected 5 taken, got %d", summary.TotalTakenThisYear)
	}
	if summary.TotalRemainingThisYear != 20 {
		t.Fatalf("expected 20 remaining, got %d", summary.TotalRemainingThisYear)
	}
}

func TestCountByEmployeeInsertionOrder(t *testing.T) {
	records := []attendance.LateRecord{
		{EmployeeName: "Ana"},
		{EmployeeName: "Ben"},
		{EmployeeName: "Ana"},
		{EmployeeName: "Cleo"},
		{EmployeeName: "Ben"},
		{EmployeeName: "Ana"},
	}
	counts := CountByEmployee(records)
	if len(counts) != 3 {
		t.Fatalf("expected 3 employees, got %d", len(counts))
	}
	want := []EmployeeLateCount{{"Ana", 3}, {"Ben", 2}, {"Cleo", 1}}
	for i, w := range want {
		if counts[i] != w {
			t.Fatalf("index %d: expected %+v, got %+v", i, w, counts[i])
		}
	}
}

func TestMonthlySummary(t *testing.T) {
	leaveDays := []time.Time{
		day(2025, time.January, 10),
		day(2025, time.January, 11),
		day(2025, time.February, 2),
	}
	lateDays := []time.Time{
		day(2025, time.January, 8),
	}

	summary := MonthlySummary(leaveDays, lateDays, 2025, time.January)
	if summary.LeaveDays != 2 {
		t.Fatalf("expected 2 leave days, got %d", summary.LeaveDays)
	}
	if summary.LateDays != 1 {
		t.Fatalf("expected 1 late day, got %d", summary.LateDays)
	}
	// January 2025 has 23 weekdays.
	if summary.WorkingDays != 23 {
		t.Fatalf("expected 23 working days, got %d", summary.WorkingDays)
	}
}

func TestLeaveDaysExpandsApprovedOnly(t *testing.T) {
	requests := []leave.LeaveRequest{
		{Status: leave.StatusApproved, LeaveType: "Annual", Reason: "Trip",
			StartDate: day(2025, time.January, 10), EndDate: day(2025, time.January, 12)},
		{Status: leave.StatusPending,
			StartDate: day(2025, time.January, 20), EndDate: day(2025, time.January, 21)},
	}

	days := LeaveDays(requests)
	if len(days) != 3 {
		t.Fatalf("expected 3 expanded days, got %d", len(days))
	}
	seen := map[string]bool{}
	for _, d := range days {
		key := d.Date.Format("2006-01-02")
		if seen[key] {
			t.Fatalf("day %s appeared twice", key)
		}
		seen[key] = true
		if d.LeaveType != "Annual" || d.Reason != "Trip" {
			t.Fatalf("expanded day lost detail: %+v", d)
		}
	}
	for _, want := range []string{"2025-01-10", "2025-01-11", "2025-01-12"} {
		if !seen[want] {
			t.Fatalf("missing expanded day %s", want)
		}
	}
}
