package calendar

import (
	"testing"
	"time"

	"leaveease/internal/aggregate"
	"leaveease/internal/datemath"
	"leaveease/internal/domain/attendance"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildMonthGridAlways42Cells(t *testing.T) {
	months := []struct {
		year  int
		month time.Month
	}{
		{2025, time.January},
		{2025, time.February}, // 28 days
		{2024, time.February}, // leap year
		{2025, time.June},     // starts on Sunday
		{2025, time.March},    // 31 days starting Saturday
	}
	for _, m := range months {
		grid := BuildMonthGrid(m.year, m.month, nil, nil, day(2025, time.January, 1))
		if len(grid) != Cells {
			t.Fatalf("%d-%d: expected %d cells, got %d", m.year, m.month, Cells, len(grid))
		}
	}
}

func TestBuildMonthGridFirstOfMonthPosition(t *testing.T) {
	for _, m := range []struct {
		year  int
		month time.Month
	}{
		{2025, time.January},
		{2025, time.June},
		{2024, time.September},
	} {
		grid := BuildMonthGrid(m.year, m.month, nil, nil, day(2025, time.January, 1))
		idx := FirstWeekday(m.year, m.month)
		cell := grid[idx]
		if !cell.InMonth || cell.Date.Day() != 1 {
			t.Fatalf("%d-%d: expected 1st of month at index %d, got %s", m.year, m.month, idx, cell.Date)
		}
		if idx > 0 && grid[idx-1].InMonth {
			t.Fatalf("%d-%d: cell before the 1st should belong to previous month", m.year, m.month)
		}
	}
}

func TestBuildMonthGridPadding(t *testing.T) {
	// July 2025 starts on a Tuesday: two leading cells from June.
	grid := BuildMonthGrid(2025, time.July, nil, nil, day(2025, time.July, 1))
	if grid[0].Date.Month() != time.June || grid[0].Date.Day() != 29 {
		t.Fatalf("expected Jun 29 first, got %s", grid[0].Date)
	}
	if grid[1].Date.Month() != time.June || grid[1].Date.Day() != 30 {
		t.Fatalf("expected Jun 30 second, got %s", grid[1].Date)
	}
	last := grid[len(grid)-1]
	if last.Date.Month() != time.August || last.Date.Day() != 9 {
		t.Fatalf("expected Aug 9 last, got %s", last.Date)
	}
	for i := 1; i < len(grid); i++ {
		if !grid[i].Date.Equal(grid[i-1].Date.AddDate(0, 0, 1)) {
			t.Fatalf("grid not contiguous at index %d", i)
		}
	}
}

func TestBuildMonthGridMarkers(t *testing.T) {
	leaveDays := []aggregate.LeaveDay{
		{Date: day(2025, time.January, 10), LeaveType: "Annual", Reason: "Trip"},
		{Date: day(2025, time.January, 11), LeaveType: "Annual", Reason: "Trip"},
		{Date: day(2025, time.January, 12), LeaveType: "Annual", Reason: "Trip"},
	}
	lateDays := []attendance.LateRecord{
		{Date: day(2025, time.January, 8), Reason: "Traffic", MarkedBy: "HR Admin"},
	}

	grid := BuildMonthGrid(2025, time.January, leaveDays, lateDays, day(2025, time.January, 8))

	marked := map[int]bool{}
	for _, cell := range grid {
		if cell.LeaveDay {
			if !cell.InMonth {
				t.Fatalf("leave marker outside month on %s", cell.Date)
			}
			marked[cell.Date.Day()] = true
		}
	}
	for _, want := range []int{10, 11, 12} {
		if !marked[want] {
			t.Fatalf("expected leave marker on the %dth", want)
		}
	}
	if len(marked) != 3 {
		t.Fatalf("expected exactly 3 leave markers, got %d", len(marked))
	}

	for _, cell := range grid {
		if cell.Date.Equal(day(2025, time.January, 8)) {
			if !cell.LateDay {
				t.Fatal("expected late marker on the 8th")
			}
			if !cell.Today {
				t.Fatal("expected today flag on the 8th")
			}
			detail, ok := LateDetailOf(cell)
			if !ok || detail.Reason != "Traffic" || detail.MarkedBy != "HR Admin" {
				t.Fatalf("unexpected late detail: %+v ok=%v", detail, ok)
			}
		}
	}
}

func TestBuildMonthGridWeekends(t *testing.T) {
	grid := BuildMonthGrid(2025, time.January, nil, nil, day(2025, time.January, 1))
	for i, cell := range grid {
		col := i % 7
		if (col == 0 || col == 6) != cell.Weekend {
			t.Fatalf("cell %d (%s): weekend flag mismatch", i, cell.Date)
		}
	}
}

func TestDetailAbsentWithoutMarkers(t *testing.T) {
	grid := BuildMonthGrid(2025, time.January, nil, nil, day(2025, time.January, 1))
	for _, cell := range grid {
		if _, ok := LeaveDetailOf(cell); ok {
			t.Fatalf("unexpected leave detail on %s", cell.Date)
		}
		if _, ok := LateDetailOf(cell); ok {
			t.Fatalf("unexpected late detail on %s", cell.Date)
		}
	}
}

func TestExpandedLeaveAppearsExactlyOncePerDay(t *testing.T) {
	req := struct {
		start, end time.Time
	}{day(2025, time.January, 10), day(2025, time.January, 12)}

	var leaveDays []aggregate.LeaveDay
	for _, d := range datemath.ExpandRange(req.start, req.end) {
		leaveDays = append(leaveDays, aggregate.LeaveDay{Date: d, LeaveType: "Annual"})
	}

	grid := BuildMonthGrid(2025, time.January, leaveDays, nil, day(2025, time.January, 1))
	count := 0
	for _, cell := range grid {
		if cell.LeaveDay {
			count++
		}
	}
	if count != 3 {
		t.Fatalf("expected 3 marked cells, got %d", count)
	}
}
