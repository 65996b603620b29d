package dashboard

import (
	"context"
	"time"

	"leaveease/internal/aggregate"
	"leaveease/internal/calendar"
)

// loadCalendar fetches the marker collections for the calendar tab. The
// grid itself is derived on every render, so navigation between months
// needs no further requests.
func (c *Controller) loadCalendar(ctx context.Context) error {
	leaves, err := c.gw.MyLeaves(ctx)
	if err != nil {
		return err
	}
	lates, err := c.gw.MyLateRecords(ctx)
	if err != nil {
		return err
	}

	days := aggregate.LeaveDays(leaves)

	// Last write wins: a refresh that lands after a newer one simply
	// overwrites the collections wholesale. Nothing merges.
	c.mu.Lock()
	c.leaveDays = days
	c.lateDays = lates
	c.mu.Unlock()
	return nil
}

// Calendar builds the view for the currently displayed month.
func (c *Controller) Calendar() CalendarView {
	c.mu.Lock()
	month := c.month
	leaveDays := c.leaveDays
	lateDays := c.lateDays
	c.mu.Unlock()

	leaveDates := make([]time.Time, 0, len(leaveDays))
	for _, d := range leaveDays {
		leaveDates = append(leaveDates, d.Date)
	}
	lateDates := make([]time.Time, 0, len(lateDays))
	for _, rec := range lateDays {
		lateDates = append(lateDates, rec.Date)
	}

	return CalendarView{
		Year:    month.Year(),
		Month:   month.Month(),
		Grid:    calendar.BuildMonthGrid(month.Year(), month.Month(), leaveDays, lateDays, c.now()),
		Summary: aggregate.MonthlySummary(leaveDates, lateDates, month.Year(), month.Month()),
	}
}

// NavigateMonth moves the displayed month by delta months (negative is
// back). The cached markers re-render against the new grid without a
// refetch.
func (c *Controller) NavigateMonth(delta int) CalendarView {
	c.mu.Lock()
	c.month = c.month.AddDate(0, delta, 0)
	c.mu.Unlock()
	return c.Calendar()
}

// GoToMonth jumps the calendar directly to a year and month.
func (c *Controller) GoToMonth(year int, month time.Month) CalendarView {
	c.mu.Lock()
	c.month = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	c.mu.Unlock()
	return c.Calendar()
}
