// Package attendance models the HR-entered late-attendance log. Records are
// created by the mark-late action and are immutable from the client's side.
package attendance

import (
	"errors"
	"strings"
	"time"
)

type LateRecord struct {
	ID           string    `json:"id"`
	EmployeeName string    `json:"employeeName"`
	Date         time.Time `json:"date"`
	Reason       string    `json:"reason"`
	Notes        string    `json:"notes,omitempty"`
	MarkedBy     string    `json:"markedBy"`
}

// MarkLateInput is the payload for POST /api/late-attendance/mark-late.
type MarkLateInput struct {
	EmployeeName string    `json:"employeeName"`
	Date         time.Time `json:"date"`
	Reason       string    `json:"reason"`
	Notes        string    `json:"notes,omitempty"`
}

var ErrMissingFields = errors.New("employee name, date and reason are required")

// ValidateMarkLate enforces the required fields before any network call.
// Notes are optional.
func ValidateMarkLate(input MarkLateInput) error {
	if strings.TrimSpace(input.EmployeeName) == "" ||
		strings.TrimSpace(input.Reason) == "" ||
		input.Date.IsZero() {
		return ErrMissingFields
	}
	return nil
}
