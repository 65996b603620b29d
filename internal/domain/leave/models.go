package leave

import "time"

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// DefaultAnnualAllowance applies when the backend omits the allowance.
const DefaultAnnualAllowance = 25

type LeaveRequest struct {
	ID              string    `json:"id"`
	EmployeeName    string    `json:"employeeName"`
	LeaveType       string    `json:"leaveType"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	Reason          string    `json:"reason"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// NewRequest is the client-side payload for submitting a leave request.
// The server assigns the id and forces status to Pending.
type NewRequest struct {
	EmployeeName string    `json:"employeeName"`
	LeaveType    string    `json:"leaveType"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Reason       string    `json:"reason"`
}

// QuarterlySummary mirrors the /api/dashboard/quarterly-data response and is
// also what the aggregation engine derives from raw requests.
type QuarterlySummary struct {
	Taken                  QuarterDays `json:"taken"`
	Remaining              QuarterDays `json:"remaining"`
	TotalTakenThisYear     int         `json:"totalTakenThisYear"`
	TotalRemainingThisYear int         `json:"totalRemainingThisYear"`
	AnnualAllowance        int         `json:"annualAllowance"`
}

type QuarterDays struct {
	Q1 int `json:"Q1"`
	Q2 int `json:"Q2"`
	Q3 int `json:"Q3"`
	Q4 int `json:"Q4"`
}

// DecisionReport is the backend's response to the HR approve/reject
// endpoints, including the notification side-effect summary.
type DecisionReport struct {
	Success     bool   `json:"success"`
	Message     string `json:"message,omitempty"`
	EmailMethod string `json:"emailMethod,omitempty"`
	FromEmail   string `json:"fromEmail,omitempty"`
	ToEmail     string `json:"toEmail,omitempty"`
}
