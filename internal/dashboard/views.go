package dashboard

import (
	"sort"
	"time"

	"leaveease/internal/aggregate"
	"leaveease/internal/calendar"
	"leaveease/internal/datemath"
	"leaveease/internal/domain/attendance"
	"leaveease/internal/domain/core"
	"leaveease/internal/domain/leave"
	"leaveease/internal/viewmodel"
)

// View structs are what the rendering layer consumes: domain data plus the
// display strings the formatter derives from it. They carry no behavior.

// UpcomingLeave is one row of the "upcoming leaves" overview region.
type UpcomingLeave struct {
	Request   leave.LeaveRequest
	Duration  int
	Countdown string
}

// TeamStatus is one colleague in the "team on leave today" region.
type TeamStatus struct {
	Member   core.TeamMember
	Progress string
	Returns  string
}

// Notification is one entry of the merged notifications feed.
type Notification struct {
	ID        string
	Kind      string // "leave" or "late"
	Status    string
	Icon      string
	Message   string
	CreatedAt time.Time
	TimeLabel string
}

// LateChart is the HR per-employee late-day bar data for the current month.
type LateChart struct {
	Counts            []aggregate.EmployeeLateCount
	TotalLateDays     int
	EmployeesAffected int
}

// Overview is the dashboard tab: five independently fetched regions, each
// with its own error. A failed region never blanks its siblings.
type Overview struct {
	Profile    core.UserProfile
	ProfileErr error

	Stats    core.DashboardStats
	StatsErr error

	Quarterly    leave.QuarterlySummary
	QuarterlyErr error

	Upcoming    []UpcomingLeave
	UpcomingErr error

	Team    []TeamStatus
	TeamErr error

	Notifications    []Notification
	NotificationsErr error

	// HR only.
	LateChart    LateChart
	LateChartErr error
}

// HistoryRow is one row of the leave-history table.
type HistoryRow struct {
	Request   leave.LeaveRequest
	Duration  int
	CanCancel bool
}

// CalendarView is a fully built month view.
type CalendarView struct {
	Year    int
	Month   time.Month
	Grid    []calendar.Day
	Summary aggregate.MonthSummary
}

// HRView is the HR management tab.
type HRView struct {
	Stats    core.HRStats
	StatsErr error

	Pending    []HistoryRow
	PendingErr error

	All    []HistoryRow
	AllErr error

	Departments    []core.DepartmentStat
	DepartmentsErr error

	LateRecords    []attendance.LateRecord
	LateRecordsErr error

	Employees    []core.Employee
	EmployeesErr error
}

const (
	maxUpcomingLeaves     = 5
	maxLeaveNotifications = 3
	maxLateNotifications  = 2
	maxNotifications      = 5
)

func upcomingFromLeaves(requests []leave.LeaveRequest, today time.Time) []UpcomingLeave {
	today = datemath.Midnight(today)
	var upcoming []UpcomingLeave
	for _, req := range requests {
		if req.Status != leave.StatusApproved {
			continue
		}
		if !datemath.Midnight(req.StartDate).After(today) {
			continue
		}
		upcoming = append(upcoming, UpcomingLeave{
			Request:   req,
			Duration:  leave.Duration(req),
			Countdown: viewmodel.StartCountdown(datemath.DaysUntil(req.StartDate, today)),
		})
	}
	sortUpcoming(upcoming)
	if len(upcoming) > maxUpcomingLeaves {
		upcoming = upcoming[:maxUpcomingLeaves]
	}
	return upcoming
}

func sortUpcoming(upcoming []UpcomingLeave) {
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Request.StartDate.Before(upcoming[j].Request.StartDate)
	})
}

func teamStatuses(members []core.TeamMember, today time.Time) []TeamStatus {
	today = datemath.Midnight(today)
	statuses := make([]TeamStatus, 0, len(members))
	for _, m := range members {
		remaining := datemath.DaysUntil(m.EndDate, today)
		if remaining < 0 {
			remaining = 0
		}
		statuses = append(statuses, TeamStatus{
			Member:   m,
			Progress: viewmodel.LeaveProgress(m.StartDate, m.EndDate, today),
			Returns:  viewmodel.ReturnCountdown(remaining),
		})
	}
	return statuses
}

// buildNotifications merges the most recent leave updates with the most
// recent late marks: up to three of the former, two of the latter, five
// total, newest first.
func buildNotifications(requests []leave.LeaveRequest, lates []attendance.LateRecord, now time.Time) []Notification {
	leave.SortNewestFirst(requests)
	var merged []Notification
	for i, req := range requests {
		if i == maxLeaveNotifications {
			break
		}
		createdAt := req.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		merged = append(merged, Notification{
			ID:        req.ID,
			Kind:      "leave",
			Status:    req.Status,
			Icon:      viewmodel.StatusIcon(req.Status),
			Message:   viewmodel.NotificationMessage(req),
			CreatedAt: createdAt,
			TimeLabel: viewmodel.RelativeTime(createdAt, now),
		})
	}

	sortLatesNewestFirst(lates)
	for i, rec := range lates {
		if i == maxLateNotifications {
			break
		}
		merged = append(merged, Notification{
			ID:        rec.ID,
			Kind:      "late",
			Status:    "Late",
			Icon:      "⏰",
			Message:   viewmodel.LateNotificationMessage(rec.Date, rec.Reason),
			CreatedAt: rec.Date,
			TimeLabel: viewmodel.RelativeTime(rec.Date, now),
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	if len(merged) > maxNotifications {
		merged = merged[:maxNotifications]
	}
	return merged
}

func sortLatesNewestFirst(lates []attendance.LateRecord) {
	sort.SliceStable(lates, func(i, j int) bool {
		return lates[i].Date.After(lates[j].Date)
	})
}

func historyRows(requests []leave.LeaveRequest) []HistoryRow {
	leave.SortNewestFirst(requests)
	rows := make([]HistoryRow, 0, len(requests))
	for _, req := range requests {
		rows = append(rows, HistoryRow{
			Request:   req,
			Duration:  leave.Duration(req),
			CanCancel: req.Status == leave.StatusPending,
		})
	}
	return rows
}

func lateChartFrom(records []attendance.LateRecord) LateChart {
	counts := aggregate.CountByEmployee(records)
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	return LateChart{
		Counts:            counts,
		TotalLateDays:     total,
		EmployeesAffected: len(counts),
	}
}

// FilterRowsByStatus narrows HR rows to one status; "all" keeps everything.
func FilterRowsByStatus(rows []HistoryRow, status string) []HistoryRow {
	if status == "" || status == "all" {
		return rows
	}
	filtered := make([]HistoryRow, 0, len(rows))
	for _, row := range rows {
		if row.Request.Status == status {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
