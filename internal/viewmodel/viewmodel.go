// Package viewmodel turns domain records into display-ready strings. It is
// the only place user-facing copy lives; the rendering layer prints these
// values verbatim.
package viewmodel

import (
	"fmt"
	"strings"
	"time"

	"leaveease/internal/datemath"
	"leaveease/internal/domain/leave"
)

// FormatDate renders a date as "Jan 2, 2006". Zero dates render empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// FormatLongDate renders a date as "Monday, January 2, 2006" for the
// calendar day-detail view.
func FormatLongDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Monday, January 2, 2006")
}

// RelativeTime renders an event timestamp relative to now: "Just now"
// under an hour, then whole hours, then whole days.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	hours := int(now.Sub(t).Hours())
	switch {
	case hours < 1:
		return "Just now"
	case hours < 24:
		return fmt.Sprintf("%d hours ago", hours)
	default:
		return fmt.Sprintf("%d days ago", hours/24)
	}
}

// StatusIcon returns the marker shown next to a request status.
func StatusIcon(status string) string {
	switch status {
	case leave.StatusPending:
		return "⏳"
	case leave.StatusApproved:
		return "✅"
	case leave.StatusRejected:
		return "❌"
	default:
		return "📋"
	}
}

// StatusBadgeClass returns the css-style class suffix for a status badge.
func StatusBadgeClass(status string) string {
	return "status-" + strings.ToLower(status)
}

// StartCountdown phrases how far away an upcoming leave is. daysUntil is
// the signed distance from today.
func StartCountdown(daysUntil int) string {
	switch daysUntil {
	case 0:
		return "Starts today"
	case 1:
		return "Starts tomorrow"
	default:
		return fmt.Sprintf("Starts in %d days", daysUntil)
	}
}

// ReturnCountdown phrases when a colleague on leave comes back, given the
// days remaining until their end date. Zero means today is the last day.
func ReturnCountdown(daysRemaining int) string {
	switch daysRemaining {
	case 0:
		return "Last day of leave"
	case 1:
		return "Returns tomorrow"
	default:
		return fmt.Sprintf("Returns in %d days", daysRemaining)
	}
}

// LeaveProgress phrases how far into a leave a colleague is, e.g. "Day 2/5".
func LeaveProgress(start, end, today time.Time) string {
	total := datemath.InclusiveDuration(start, end)
	into := datemath.DaysUntil(today, start) + 1
	if into < 1 {
		into = 1
	}
	if into > total {
		into = total
	}
	return fmt.Sprintf("Day %d/%d", into, total)
}

// NotificationMessage phrases a status update about the user's own request.
func NotificationMessage(req leave.LeaveRequest) string {
	leaveType := req.LeaveType
	if leaveType == "" {
		leaveType = "Leave"
	}
	switch req.Status {
	case leave.StatusPending:
		return fmt.Sprintf("Your %s request is pending approval", leaveType)
	case leave.StatusApproved:
		return fmt.Sprintf("Your %s request has been approved", leaveType)
	case leave.StatusRejected:
		return fmt.Sprintf("Your %s request has been rejected", leaveType)
	default:
		return fmt.Sprintf("Your %s request status updated", leaveType)
	}
}

// LateNotificationMessage phrases a late-attendance notification.
func LateNotificationMessage(date time.Time, reason string) string {
	if strings.TrimSpace(reason) == "" {
		reason = "Not specified"
	}
	return fmt.Sprintf("You were marked as late on %s. Reason: %s", FormatDate(date), reason)
}

// Initials derives up to two uppercase initials from a full name for the
// avatar fallback.
func Initials(fullName string) string {
	var initials []rune
	for _, part := range strings.Fields(fullName) {
		initials = append(initials, []rune(strings.ToUpper(part))[0])
		if len(initials) == 2 {
			break
		}
	}
	if len(initials) == 0 {
		return "U"
	}
	return string(initials)
}

// DurationLabel renders an inclusive day count, e.g. "3 days" or "1 day".
func DurationLabel(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
