// Package dashboard owns the client-side view state: which tab is in which
// load state, the last successfully fetched collection per resource, and
// the derived view models handed to the renderer. One Controller instance
// is built at startup and passed to the event-binding layer explicitly;
// there is no ambient singleton.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"leaveease/internal/aggregate"
	"leaveease/internal/domain/attendance"
	"leaveease/internal/domain/core"
	"leaveease/internal/domain/leave"
	"leaveease/internal/identity"
)

// Gateway is the outbound surface the controller drives. *gateway.Client
// satisfies it; tests substitute a scripted fake.
type Gateway interface {
	Profile(ctx context.Context) (core.UserProfile, error)
	UploadProfilePicture(ctx context.Context, fileName string, content io.Reader) (string, error)
	MyStats(ctx context.Context) (core.DashboardStats, error)
	QuarterlyData(ctx context.Context) (leave.QuarterlySummary, error)
	MyLeaves(ctx context.Context) ([]leave.LeaveRequest, error)
	CreateLeave(ctx context.Context, req leave.NewRequest) (leave.LeaveRequest, error)
	HRApprove(ctx context.Context, id string) (leave.DecisionReport, error)
	HRReject(ctx context.Context, id, reason string) (leave.DecisionReport, error)
	Cancel(ctx context.Context, id string) error
	TeamOnLeave(ctx context.Context) ([]core.TeamMember, error)
	HREmployeeStats(ctx context.Context) (core.HRStats, error)
	PendingRequests(ctx context.Context) ([]leave.LeaveRequest, error)
	AllRequests(ctx context.Context) ([]leave.LeaveRequest, error)
	DepartmentStats(ctx context.Context) ([]core.DepartmentStat, error)
	MyLateRecords(ctx context.Context) ([]attendance.LateRecord, error)
	LateRecordsInRange(ctx context.Context, start, end time.Time) ([]attendance.LateRecord, error)
	LateRecordsOn(ctx context.Context, date time.Time) ([]attendance.LateRecord, error)
	MarkLate(ctx context.Context, input attendance.MarkLateInput) (string, error)
	Employees(ctx context.Context) ([]core.Employee, error)
}

type Tab string

const (
	TabOverview Tab = "overview"
	TabHistory  Tab = "history"
	TabCalendar Tab = "calendar"
	TabHR       Tab = "hr-management"
)

// State is the per-tab load state machine: Unloaded -> Loading ->
// Loaded | Errored. Re-activating an Errored tab starts over from Unloaded.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateLoaded
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateErrored:
		return "errored"
	default:
		return "unloaded"
	}
}

var ErrTabHidden = errors.New("tab is not available for this role")

type Controller struct {
	gw        Gateway
	role      string
	allowance int
	now       func() time.Time

	mu       sync.Mutex
	tabs     map[Tab]State
	overview Overview
	history  []HistoryRow
	hr       HRView

	// Calendar collections survive month navigation; the grid is rebuilt
	// from them on every render.
	month     time.Time
	leaveDays []aggregate.LeaveDay
	lateDays  []attendance.LateRecord
}

type Option func(*Controller)

// WithClock overrides the controller's time source for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithAllowance sets the annual allowance used when the backend omits it.
func WithAllowance(days int) Option {
	return func(c *Controller) {
		if days > 0 {
			c.allowance = days
		}
	}
}

func New(gw Gateway, role string, opts ...Option) *Controller {
	c := &Controller{
		gw:        gw,
		role:      identity.NormalizeRole(role),
		allowance: leave.DefaultAnnualAllowance,
		now:       time.Now,
		tabs: map[Tab]State{
			TabOverview: StateUnloaded,
			TabHistory:  StateUnloaded,
			TabCalendar: StateUnloaded,
			TabHR:       StateUnloaded,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	today := c.now()
	c.month = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	return c
}

// Role returns the display-role partition value.
func (c *Controller) Role() string { return c.role }

// IsHR reports whether the HR sections render.
func (c *Controller) IsHR() bool { return c.role == identity.RoleHR }

// VisibleTabs lists the tabs the current role may open.
func (c *Controller) VisibleTabs() []Tab {
	tabs := []Tab{TabOverview, TabHistory, TabCalendar}
	if c.IsHR() {
		tabs = append(tabs, TabHR)
	}
	return tabs
}

// TabState reports the load state of a tab.
func (c *Controller) TabState(tab Tab) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tabs[tab]
}

// ActivateTab drives the tab state machine. A Loaded tab is left alone for
// the session; Unloaded and Errored tabs (re-)load their data. Hiding the
// HR tab here grants nothing, the backend authorizes every request
// independently.
func (c *Controller) ActivateTab(ctx context.Context, tab Tab) error {
	if tab == TabHR && !c.IsHR() {
		return ErrTabHidden
	}

	c.mu.Lock()
	if c.tabs[tab] == StateLoaded || c.tabs[tab] == StateLoading {
		c.mu.Unlock()
		return nil
	}
	c.tabs[tab] = StateLoading
	c.mu.Unlock()

	var err error
	switch tab {
	case TabOverview:
		err = c.loadOverview(ctx)
	case TabHistory:
		err = c.loadHistory(ctx)
	case TabCalendar:
		err = c.loadCalendar(ctx)
	case TabHR:
		err = c.loadHR(ctx)
	default:
		err = fmt.Errorf("unknown tab %q", tab)
	}

	c.mu.Lock()
	if err != nil {
		c.tabs[tab] = StateErrored
	} else {
		c.tabs[tab] = StateLoaded
	}
	c.mu.Unlock()
	return err
}

// loadOverview issues the overview regions as one concurrent group. Every
// region lands in its own field with its own error; one failure neither
// cancels nor blanks the others. The group is only "loaded" when all
// members succeeded.
func (c *Controller) loadOverview(ctx context.Context) error {
	today := c.now()

	var g errgroup.Group

	g.Go(func() error {
		profile, err := c.gw.Profile(ctx)
		c.mu.Lock()
		c.overview.Profile, c.overview.ProfileErr = profile, err
		c.mu.Unlock()
		return nil
	})

	g.Go(func() error {
		stats, err := c.gw.MyStats(ctx)
		c.mu.Lock()
		c.overview.Stats, c.overview.StatsErr = stats, err
		c.mu.Unlock()
		return nil
	})

	g.Go(func() error {
		summary, err := c.gw.QuarterlyData(ctx)
		if err == nil && summary.AnnualAllowance == 0 {
			summary.AnnualAllowance = c.allowance
		}
		c.mu.Lock()
		c.overview.Quarterly, c.overview.QuarterlyErr = summary, err
		c.mu.Unlock()
		return nil
	})

	g.Go(func() error {
		leaves, err := c.gw.MyLeaves(ctx)
		var upcoming []UpcomingLeave
		if err == nil {
			upcoming = upcomingFromLeaves(leaves, today)
		}
		c.mu.Lock()
		c.overview.Upcoming, c.overview.UpcomingErr = upcoming, err
		c.mu.Unlock()
		return nil
	})

	g.Go(func() error {
		members, err := c.gw.TeamOnLeave(ctx)
		var statuses []TeamStatus
		if err == nil {
			statuses = teamStatuses(members, today)
		}
		c.mu.Lock()
		c.overview.Team, c.overview.TeamErr = statuses, err
		c.mu.Unlock()
		return nil
	})

	g.Go(func() error {
		leaves, leavesErr := c.gw.MyLeaves(ctx)
		lates, latesErr := c.gw.MyLateRecords(ctx)
		var notifications []Notification
		err := leavesErr
		if err == nil {
			// Missing late records degrade the feed, they do not break it.
			if latesErr != nil {
				lates = nil
			}
			notifications = buildNotifications(leaves, lates, today)
		}
		c.mu.Lock()
		c.overview.Notifications, c.overview.NotificationsErr = notifications, err
		c.mu.Unlock()
		return nil
	})

	if c.IsHR() {
		g.Go(func() error {
			monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
			monthEnd := monthStart.AddDate(0, 1, -1)
			records, err := c.gw.LateRecordsInRange(ctx, monthStart, monthEnd)
			var chart LateChart
			if err == nil {
				chart = lateChartFrom(records)
			}
			c.mu.Lock()
			c.overview.LateChart, c.overview.LateChartErr = chart, err
			c.mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	return firstErr(
		c.overview.ProfileErr,
		c.overview.StatsErr,
		c.overview.QuarterlyErr,
		c.overview.UpcomingErr,
		c.overview.TeamErr,
		c.overview.NotificationsErr,
		c.overview.LateChartErr,
	)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Overview returns the current overview view model.
func (c *Controller) Overview() Overview {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.overview
}

func (c *Controller) loadHistory(ctx context.Context) error {
	leaves, err := c.gw.MyLeaves(ctx)
	if err != nil {
		slog.Warn("load history failed", "err", err)
		return err
	}
	rows := historyRows(leaves)
	c.mu.Lock()
	c.history = rows
	c.mu.Unlock()
	return nil
}

// History returns the leave-history rows, newest first.
func (c *Controller) History() []HistoryRow {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history
}

func (c *Controller) loadHR(ctx context.Context) error {
	today := c.now()
	yearStart := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)

	var g errgroup.Group

	g.Go(func() error {
		stats, err := c.gw.HREmployeeStats(ctx)
		c.mu.Lock()
		c.hr.Stats, c.hr.StatsErr = stats, err
		c.mu.Unlock()
		return nil
	})

	g.Go(func() error {
		pending, err := c.gw.PendingRequests(ctx)
		var rows []HistoryRow
		if err == nil {
			rows = historyRows(pending)
		}
		c.mu.Lock()
		c.hr.Pending, c.hr.PendingErr = rows, err
		c.mu.Unlock()
		return nil
	})

	g.Go(func() error {
		all, err := c.gw.AllRequests(ctx)
		var rows []HistoryRow
		if err == nil {
			rows = historyRows(all)
		}
		c.mu.Lock()
		c.hr.All, c.hr.AllErr = rows, err
		c.mu.Unlock()
		return nil
	})

	g.Go(func() error {
		departments, err := c.gw.DepartmentStats(ctx)
		c.mu.Lock()
		c.hr.Departments, c.hr.DepartmentsErr = departments, err
		c.mu.Unlock()
		return nil
	})

	g.Go(func() error {
		records, err := c.gw.LateRecordsInRange(ctx, yearStart, yearEnd)
		c.mu.Lock()
		c.hr.LateRecords, c.hr.LateRecordsErr = records, err
		c.mu.Unlock()
		return nil
	})

	g.Go(func() error {
		employees, err := c.gw.Employees(ctx)
		c.mu.Lock()
		c.hr.Employees, c.hr.EmployeesErr = employees, err
		c.mu.Unlock()
		return nil
	})

	_ = g.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	return firstErr(
		c.hr.StatsErr,
		c.hr.PendingErr,
		c.hr.AllErr,
		c.hr.DepartmentsErr,
		c.hr.LateRecordsErr,
		c.hr.EmployeesErr,
	)
}

// HR returns the HR management view model.
func (c *Controller) HR() HRView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hr
}

// FilterLateRecordsOn narrows the HR late-record list to a single date,
// refetching from the date endpoint. A zero date restores the full list.
func (c *Controller) FilterLateRecordsOn(ctx context.Context, date time.Time) ([]attendance.LateRecord, error) {
	if date.IsZero() {
		today := c.now()
		yearStart := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		yearEnd := time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
		records, err := c.gw.LateRecordsInRange(ctx, yearStart, yearEnd)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.hr.LateRecords, c.hr.LateRecordsErr = records, nil
		c.mu.Unlock()
		return records, nil
	}

	records, err := c.gw.LateRecordsOn(ctx, date)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.hr.LateRecords, c.hr.LateRecordsErr = records, nil
	c.mu.Unlock()
	return records, nil
}
