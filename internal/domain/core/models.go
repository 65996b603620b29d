// Package core holds the read-only directory and stats records the
// dashboard displays but never derives itself.
package core

import "time"

type UserProfile struct {
	Username       string `json:"username"`
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Department     string `json:"department"`
	Role           string `json:"role"`
	EmployeeCode   string `json:"employeeCode"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

type Employee struct {
	ID         string `json:"id"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// DashboardStats is the personal stat-card block, computed server-side.
type DashboardStats struct {
	TotalLeaveTaken    int `json:"totalLeaveTaken"`
	ApprovalRate       int `json:"approvalRate"`
	PendingRequests    int `json:"pendingRequests"`
	TeamMembersOnLeave int `json:"teamMembersOnLeave"`
	RemainingDays      int `json:"remainingDays"`
}

// HRStats is the HR aggregate stat block.
type HRStats struct {
	TotalEmployees   int `json:"totalEmployees"`
	EmployeesOnLeave int `json:"employeesOnLeave"`
	EmployeesPresent int `json:"employeesPresent"`
	PendingApprovals int `json:"pendingApprovals"`
	ApprovedRequests int `json:"approvedRequests"`
	RejectedRequests int `json:"rejectedRequests"`
}

type DepartmentStat struct {
	Department string `json:"department"`
	Employees  int    `json:"employees"`
	OnLeave    int    `json:"onLeave"`
}

// TeamMember describes a colleague currently on leave today.
type TeamMember struct {
	EmployeeName string    `json:"employeeName"`
	LeaveType    string    `json:"leaveType"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
}
