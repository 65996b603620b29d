package dashboard

import (
	"context"
	"io"
	"log/slog"

	"leaveease/internal/domain/attendance"
	"leaveease/internal/domain/leave"
)

// Mutations go straight to the gateway; on success the tabs that display
// the mutated resource are marked stale so their next activation reloads.
// Failures leave every cached view exactly as it was.

// SubmitLeave creates a new leave request.
func (c *Controller) SubmitLeave(ctx context.Context, req leave.NewRequest) (leave.LeaveRequest, error) {
	created, err := c.gw.CreateLeave(ctx, req)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	slog.Info("leave request submitted", "id", created.ID, "type", created.LeaveType)
	c.invalidate(TabOverview, TabHistory, TabCalendar, TabHR)
	return created, nil
}

// CancelRequest cancels one of the caller's own leave requests. The server
// decides whether the request is still cancellable; a rejection surfaces
// as a ServerError and the cached row stays put.
func (c *Controller) CancelRequest(ctx context.Context, id string) error {
	if err := c.gw.Cancel(ctx, id); err != nil {
		return err
	}
	slog.Info("leave request cancelled", "id", id)
	c.invalidate(TabOverview, TabHistory, TabCalendar, TabHR)
	return nil
}

// ApproveRequest approves a pending request on behalf of HR.
func (c *Controller) ApproveRequest(ctx context.Context, id string) (leave.DecisionReport, error) {
	report, err := c.gw.HRApprove(ctx, id)
	if err != nil {
		return leave.DecisionReport{}, err
	}
	slog.Info("leave request approved", "id", id, "emailMethod", report.EmailMethod)
	c.invalidate(TabOverview, TabHistory, TabCalendar, TabHR)
	return report, nil
}

// RejectRequest rejects a pending request with a reason. The reason is
// validated locally before any request goes out.
func (c *Controller) RejectRequest(ctx context.Context, id, reason string) (leave.DecisionReport, error) {
	report, err := c.gw.HRReject(ctx, id, reason)
	if err != nil {
		return leave.DecisionReport{}, err
	}
	slog.Info("leave request rejected", "id", id)
	c.invalidate(TabOverview, TabHistory, TabCalendar, TabHR)
	return report, nil
}

// RecordLate marks an employee late for a day.
func (c *Controller) RecordLate(ctx context.Context, input attendance.MarkLateInput) (string, error) {
	message, err := c.gw.MarkLate(ctx, input)
	if err != nil {
		return "", err
	}
	slog.Info("late attendance recorded", "employee", input.EmployeeName, "date", input.Date.Format("2006-01-02"))
	c.invalidate(TabOverview, TabCalendar, TabHR)
	return message, nil
}

// ChangeProfilePicture uploads a new avatar and returns its URL.
func (c *Controller) ChangeProfilePicture(ctx context.Context, fileName string, content io.Reader) (string, error) {
	url, err := c.gw.UploadProfilePicture(ctx, fileName, content)
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	c.overview.Profile.ProfilePicture = url
	c.mu.Unlock()
	return url, nil
}

// invalidate drops tabs back to Unloaded so their next activation refetches.
// Loading tabs are left alone; their in-flight result will be overwritten
// by the next activation anyway.
func (c *Controller) invalidate(tabs ...Tab) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, tab := range tabs {
		if c.tabs[tab] != StateLoading {
			c.tabs[tab] = StateUnloaded
		}
	}
}
