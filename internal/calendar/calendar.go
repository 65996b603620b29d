// Package calendar builds the 6x7 month grid the calendar tab renders.
// The grid is a throwaway projection: rebuilt in full for every render,
// never mutated in place.
package calendar

import (
	"time"

	"leaveease/internal/aggregate"
	"leaveease/internal/datemath"
	"leaveease/internal/domain/attendance"
)

// Cells is the fixed grid size: 6 rows of 7 days.
const Cells = 42

type Day struct {
	Date       time.Time
	InMonth    bool
	Today      bool
	Weekend    bool
	LeaveDay   bool
	LateDay    bool
	Leave      *aggregate.LeaveDay
	Late       *attendance.LateRecord
}

// LeaveDetail is what a click on a leave-marked cell shows.
type LeaveDetail struct {
	LeaveType string
	Reason    string
}

// LateDetail is what a click on a late-marked cell shows.
type LateDetail struct {
	Reason   string
	Notes    string
	MarkedBy string
}

// BuildMonthGrid lays out year/month as exactly 42 cells: the month's days,
// left-padded with the tail of the previous month (count equals the first
// day's weekday, Sunday = 0) and right-padded with the head of the next
// month. Leave and late markers are matched by calendar-day equality.
func BuildMonthGrid(year int, month time.Month, leaveDays []aggregate.LeaveDay, lateDays []attendance.LateRecord, today time.Time) []Day {
	leaveByDay := make(map[string]*aggregate.LeaveDay, len(leaveDays))
	for i := range leaveDays {
		leaveByDay[datemath.DayKey(leaveDays[i].Date)] = &leaveDays[i]
	}
	lateByDay := make(map[string]*attendance.LateRecord, len(lateDays))
	for i := range lateDays {
		lateByDay[datemath.DayKey(lateDays[i].Date)] = &lateDays[i]
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lead := int(first.Weekday())

	grid := make([]Day, 0, Cells)
	for i := 0; i < Cells; i++ {
		date := first.AddDate(0, 0, i-lead)
		cell := Day{
			Date:    date,
			InMonth: date.Month() == month && date.Year() == year,
			Today:   datemath.SameCalendarDay(date, today),
			Weekend: date.Weekday() == time.Saturday || date.Weekday() == time.Sunday,
		}
		key := datemath.DayKey(date)
		if ld, ok := leaveByDay[key]; ok {
			cell.LeaveDay = true
			cell.Leave = ld
		}
		if lr, ok := lateByDay[key]; ok {
			cell.LateDay = true
			cell.Late = lr
		}
		grid = append(grid, cell)
	}
	return grid
}

// FirstWeekday returns the weekday index (Sunday = 0) of the 1st of the
// month, which is also the grid index where the month begins.
func FirstWeekday(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// LeaveDetailOf returns the leave detail for a cell, or false when the cell
// carries no leave marker (no popup is shown).
func LeaveDetailOf(cell Day) (LeaveDetail, bool) {
	if !cell.LeaveDay || cell.Leave == nil {
		return LeaveDetail{}, false
	}
	return LeaveDetail{LeaveType: cell.Leave.LeaveType, Reason: cell.Leave.Reason}, true
}

// LateDetailOf returns the late-attendance detail for a cell, or false when
// the cell carries no late marker.
func LateDetailOf(cell Day) (LateDetail, bool) {
	if !cell.LateDay || cell.Late == nil {
		return LateDetail{}, false
	}
	return LateDetail{Reason: cell.Late.Reason, Notes: cell.Late.Notes, MarkedBy: cell.Late.MarkedBy}, true
}
