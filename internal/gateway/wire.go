package gateway

import (
	"time"

	"leaveease/internal/domain/attendance"
	"leaveease/internal/domain/core"
	"leaveease/internal/domain/leave"
)

// The backend is loose about date encoding: date fields arrive as either
// YYYY-MM-DD or full RFC3339 timestamps depending on the endpoint. The wire
// types below absorb that before anything reaches the domain models.

const wireDateLayout = "2006-01-02"

func parseWireDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse(wireDateLayout, value)
}

func formatWireDate(t time.Time) string {
	return t.Format(wireDateLayout)
}

type leaveWire struct {
	ID              string `json:"id"`
	EmployeeName    string `json:"employeeName"`
	LeaveType       string `json:"leaveType"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	Reason          string `json:"reason"`
	Status          string `json:"status"`
	RejectionReason string `json:"rejectionReason"`
	CreatedAt       string `json:"createdAt"`
}

func (w leaveWire) toDomain() (leave.LeaveRequest, error) {
	start, err := parseWireDate(w.StartDate)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	end, err := parseWireDate(w.EndDate)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	created, err := parseWireDate(w.CreatedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return leave.LeaveRequest{
		ID:              w.ID,
		EmployeeName:    w.EmployeeName,
		LeaveType:       w.LeaveType,
		StartDate:       start,
		EndDate:         end,
		Reason:          w.Reason,
		Status:          w.Status,
		RejectionReason: w.RejectionReason,
		CreatedAt:       created,
	}, nil
}

func leavesToDomain(wires []leaveWire) ([]leave.LeaveRequest, error) {
	requests := make([]leave.LeaveRequest, 0, len(wires))
	for _, w := range wires {
		req, err := w.toDomain()
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}

type newLeaveWire struct {
	EmployeeName string `json:"employeeName"`
	LeaveType    string `json:"leaveType"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Reason       string `json:"reason"`
	Status       string `json:"status"`
}

type lateWire struct {
	ID           string `json:"id"`
	EmployeeName string `json:"employeeName"`
	Date         string `json:"date"`
	Reason       string `json:"reason"`
	Notes        string `json:"notes"`
	MarkedBy     string `json:"markedBy"`
}

func (w lateWire) toDomain() (attendance.LateRecord, error) {
	date, err := parseWireDate(w.Date)
	if err != nil {
		return attendance.LateRecord{}, err
	}
	return attendance.LateRecord{
		ID:           w.ID,
		EmployeeName: w.EmployeeName,
		Date:         date,
		Reason:       w.Reason,
		Notes:        w.Notes,
		MarkedBy:     w.MarkedBy,
	}, nil
}

func latesToDomain(wires []lateWire) ([]attendance.LateRecord, error) {
	records := make([]attendance.LateRecord, 0, len(wires))
	for _, w := range wires {
		rec, err := w.toDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

type markLateWire struct {
	EmployeeName string `json:"employeeName"`
	Date         string `json:"date"`
	Reason       string `json:"reason"`
	Notes        string `json:"notes,omitempty"`
}

type teamMemberWire struct {
	EmployeeName string `json:"employeeName"`
	LeaveType    string `json:"leaveType"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
}

func (w teamMemberWire) toDomain() (core.TeamMember, error) {
	start, err := parseWireDate(w.StartDate)
	if err != nil {
		return core.TeamMember{}, err
	}
	end, err := parseWireDate(w.EndDate)
	if err != nil {
		return core.TeamMember{}, err
	}
	return core.TeamMember{
		EmployeeName: w.EmployeeName,
		LeaveType:    w.LeaveType,
		StartDate:    start,
		EndDate:      end,
	}, nil
}

// envelope is the {success, data, message} wrapper the late-attendance and
// employee endpoints use. Leave endpoints return bare JSON.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
}

// errorBody covers the message shapes error responses arrive in.
type errorBody struct {
	Message string `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
