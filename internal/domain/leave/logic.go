package leave

import (
	"errors"
	"sort"
	"strings"
	"time"

	"leaveease/internal/datemath"
)

// MinRejectionReasonLen is the shortest rejection reason HR may submit.
const MinRejectionReasonLen = 10

var (
	ErrStartInPast      = errors.New("start date cannot be in the past")
	ErrEndBeforeStart   = errors.New("end date cannot be before start date")
	ErrMissingFields    = errors.New("leave type, start date, end date and reason are required")
	ErrReasonTooShort   = errors.New("rejection reason must be at least 10 characters")
	ErrNotPending       = errors.New("only pending requests can be cancelled")
	ErrUnknownLeaveType = errors.New("unknown leave type")
)

// ValidateNewRequest enforces the local checks that must pass before a
// submission goes on the wire: required fields, start not before today's
// midnight, end not before start. The employee name is not required; the
// server resolves it from the token.
func ValidateNewRequest(req NewRequest, today time.Time) error {
	if strings.TrimSpace(req.LeaveType) == "" ||
		strings.TrimSpace(req.Reason) == "" ||
		req.StartDate.IsZero() || req.EndDate.IsZero() {
		return ErrMissingFields
	}
	if datemath.Midnight(req.StartDate).Before(datemath.Midnight(today)) {
		return ErrStartInPast
	}
	if datemath.Midnight(req.EndDate).Before(datemath.Midnight(req.StartDate)) {
		return ErrEndBeforeStart
	}
	return nil
}

// ValidateRejectionReason enforces the minimum-length rule before the
// rejection is sent. The boundary is inclusive: exactly 10 characters pass.
func ValidateRejectionReason(reason string) error {
	if len(strings.TrimSpace(reason)) < MinRejectionReasonLen {
		return ErrReasonTooShort
	}
	return nil
}

// Duration returns the request's inclusive day count. Never stored;
// recomputed wherever it is displayed.
func Duration(req LeaveRequest) int {
	return datemath.InclusiveDuration(req.StartDate, req.EndDate)
}

// SortNewestFirst orders requests by creation time descending, falling back
// to the identifier when the timestamp is absent.
func SortNewestFirst(requests []LeaveRequest) {
	sort.SliceStable(requests, func(i, j int) bool {
		a, b := requests[i], requests[j]
		if !a.CreatedAt.IsZero() || !b.CreatedAt.IsZero() {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		}
		return a.ID > b.ID
	})
}

// Terminal reports whether the request has reached a final status.
func Terminal(status string) bool {
	return status == StatusApproved || status == StatusRejected
}
