// Command dashboard renders the leave dashboard in the terminal: it loads
// every tab the role can see, prints the derived views, and optionally
// writes the monthly PDF report.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"leaveease/internal/aggregate"
	"leaveease/internal/dashboard"
	"leaveease/internal/domain/attendance"
	"leaveease/internal/gateway"
	"leaveease/internal/identity"
	"leaveease/internal/platform/config"
	"leaveease/internal/report"
	"leaveease/internal/viewmodel"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	setupLogging(cfg.LogLevel)

	role := cfg.Role
	if cfg.APIToken != "" {
		if claims, err := identity.FromToken(cfg.APIToken); err == nil {
			role = claims.Role
		} else {
			slog.Warn("could not read role from token, using configured role", "err", err)
		}
	}

	client := gateway.New(cfg.APIBaseURL,
		gateway.WithToken(cfg.APIToken),
		gateway.WithTimeout(cfg.HTTPTimeout),
	)
	controller := dashboard.New(client, role,
		dashboard.WithAllowance(cfg.AnnualAllowance),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 4*cfg.HTTPTimeout)
	defer cancel()

	for _, tab := range controller.VisibleTabs() {
		if err := controller.ActivateTab(ctx, tab); err != nil {
			slog.Warn("tab loaded with errors", "tab", string(tab), "err", err)
		}
	}

	printOverview(controller.Overview(), controller.IsHR())
	printHistory(controller.History())
	printCalendar(controller.Calendar())
	if controller.IsHR() {
		printHR(controller.HR())
	}

	if cfg.ReportFile != "" {
		if err := writeReport(cfg.ReportFile, controller); err != nil {
			log.Fatalf("write report: %v", err)
		}
		fmt.Printf("\nMonthly report written to %s\n", cfg.ReportFile)
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func printOverview(ov dashboard.Overview, isHR bool) {
	fmt.Println("== Dashboard ==")

	if ov.ProfileErr != nil {
		fmt.Printf("profile unavailable: %v\n", ov.ProfileErr)
	} else {
		fmt.Printf("%s (%s) - %s, %s\n",
			ov.Profile.FullName, viewmodel.Initials(ov.Profile.FullName),
			ov.Profile.Department, ov.Profile.Email)
	}

	if ov.StatsErr != nil {
		fmt.Printf("stats unavailable: %v\n", ov.StatsErr)
	} else {
		fmt.Printf("taken %d | remaining %d | pending %d | approval %d%%\n",
			ov.Stats.TotalLeaveTaken, ov.Stats.RemainingDays,
			ov.Stats.PendingRequests, ov.Stats.ApprovalRate)
	}

	fmt.Println("\n-- Quarterly --")
	if ov.QuarterlyErr != nil {
		fmt.Printf("unavailable: %v\n", ov.QuarterlyErr)
	} else {
		q := ov.Quarterly
		fmt.Printf("taken    Q1:%d Q2:%d Q3:%d Q4:%d\n", q.Taken.Q1, q.Taken.Q2, q.Taken.Q3, q.Taken.Q4)
		fmt.Printf("remaining Q1:%d Q2:%d Q3:%d Q4:%d (of %d)\n",
			q.Remaining.Q1, q.Remaining.Q2, q.Remaining.Q3, q.Remaining.Q4, q.AnnualAllowance)
	}

	fmt.Println("\n-- Upcoming leaves --")
	if ov.UpcomingErr != nil {
		fmt.Printf("unavailable: %v\n", ov.UpcomingErr)
	} else if len(ov.Upcoming) == 0 {
		fmt.Println("none")
	} else {
		for _, u := range ov.Upcoming {
			fmt.Printf("%s  %s to %s (%s)  %s\n",
				u.Request.LeaveType,
				viewmodel.FormatDate(u.Request.StartDate),
				viewmodel.FormatDate(u.Request.EndDate),
				viewmodel.DurationLabel(u.Duration),
				u.Countdown)
		}
	}

	fmt.Println("\n-- Team on leave today --")
	if ov.TeamErr != nil {
		fmt.Printf("unavailable: %v\n", ov.TeamErr)
	} else if len(ov.Team) == 0 {
		fmt.Println("everyone is in")
	} else {
		for _, member := range ov.Team {
			fmt.Printf("%s  %s  %s  %s\n",
				member.Member.EmployeeName, member.Member.LeaveType,
				member.Progress, member.Returns)
		}
	}

	fmt.Println("\n-- Notifications --")
	if ov.NotificationsErr != nil {
		fmt.Printf("unavailable: %v\n", ov.NotificationsErr)
	} else if len(ov.Notifications) == 0 {
		fmt.Println("none")
	} else {
		for _, n := range ov.Notifications {
			fmt.Printf("%s %s (%s)\n", n.Icon, n.Message, n.TimeLabel)
		}
	}

	if isHR {
		fmt.Println("\n-- Late arrivals this month --")
		if ov.LateChartErr != nil {
			fmt.Printf("unavailable: %v\n", ov.LateChartErr)
		} else if len(ov.LateChart.Counts) == 0 {
			fmt.Println("none")
		} else {
			for _, c := range ov.LateChart.Counts {
				fmt.Printf("%-20s %s (%d)\n", c.EmployeeName, strings.Repeat("#", c.Count), c.Count)
			}
			fmt.Printf("total %d late days across %d employees\n",
				ov.LateChart.TotalLateDays, ov.LateChart.EmployeesAffected)
		}
	}
}

func printHistory(rows []dashboard.HistoryRow) {
	fmt.Println("\n== Leave history ==")
	if len(rows) == 0 {
		fmt.Println("no requests")
		return
	}
	for _, row := range rows {
		cancellable := ""
		if row.CanCancel {
			cancellable = "  [cancellable]"
		}
		fmt.Printf("%s %-9s %s to %s (%s)  %s%s\n",
			viewmodel.StatusIcon(row.Request.Status),
			row.Request.Status,
			viewmodel.FormatDate(row.Request.StartDate),
			viewmodel.FormatDate(row.Request.EndDate),
			viewmodel.DurationLabel(row.Duration),
			row.Request.LeaveType,
			cancellable)
		if row.Request.RejectionReason != "" {
			fmt.Printf("   reason: %s\n", row.Request.RejectionReason)
		}
	}
}

func printCalendar(view dashboard.CalendarView) {
	fmt.Printf("\n== %s %d ==\n", view.Month, view.Year)
	fmt.Println("Su Mo Tu We Th Fr Sa")
	for i, day := range view.Grid {
		marker := " "
		switch {
		case day.LeaveDay && day.LateDay:
			marker = "*"
		case day.LeaveDay:
			marker = "L"
		case day.LateDay:
			marker = "!"
		case day.Today:
			marker = "."
		}
		if !day.InMonth {
			fmt.Print(" . ")
		} else {
			fmt.Printf("%2d%s", day.Date.Day(), marker)
		}
		if (i+1)%7 == 0 {
			fmt.Println()
		}
	}
	fmt.Printf("leave days %d | late days %d | working days %d\n",
		view.Summary.LeaveDays, view.Summary.LateDays, view.Summary.WorkingDays)
}

func printHR(hr dashboard.HRView) {
	fmt.Println("\n== HR management ==")
	if hr.StatsErr != nil {
		fmt.Printf("stats unavailable: %v\n", hr.StatsErr)
	} else {
		fmt.Printf("employees %d | on leave %d | present %d | pending %d\n",
			hr.Stats.TotalEmployees, hr.Stats.EmployeesOnLeave,
			hr.Stats.EmployeesPresent, hr.Stats.PendingApprovals)
	}

	fmt.Println("\n-- Pending approvals --")
	if hr.PendingErr != nil {
		fmt.Printf("unavailable: %v\n", hr.PendingErr)
	} else if len(hr.Pending) == 0 {
		fmt.Println("none")
	} else {
		for _, row := range hr.Pending {
			fmt.Printf("%s  %s  %s to %s (%s)\n",
				row.Request.EmployeeName, row.Request.LeaveType,
				viewmodel.FormatDate(row.Request.StartDate),
				viewmodel.FormatDate(row.Request.EndDate),
				viewmodel.DurationLabel(row.Duration))
		}
	}

	fmt.Println("\n-- Departments --")
	if hr.DepartmentsErr != nil {
		fmt.Printf("unavailable: %v\n", hr.DepartmentsErr)
	} else {
		for _, d := range hr.Departments {
			fmt.Printf("%-15s %d employees, %d on leave\n", d.Department, d.Employees, d.OnLeave)
		}
	}
}

func writeReport(path string, controller *dashboard.Controller) error {
	view := controller.Calendar()
	ov := controller.Overview()

	name := ""
	if ov.ProfileErr == nil {
		name = ov.Profile.FullName
	}

	var leaveDays []aggregate.LeaveDay
	var lateRecords []attendance.LateRecord
	for _, day := range view.Grid {
		if !day.InMonth {
			continue
		}
		if day.Leave != nil {
			leaveDays = append(leaveDays, *day.Leave)
		}
		if day.Late != nil {
			lateRecords = append(lateRecords, *day.Late)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return report.WriteMonthly(f, report.MonthlyInput{
		EmployeeName: name,
		Year:         view.Year,
		Month:        view.Month,
		Summary:      view.Summary,
		LeaveDays:    leaveDays,
		LateRecords:  lateRecords,
	})
}
