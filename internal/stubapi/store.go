package stubapi

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"leaveease/internal/domain/attendance"
	"leaveease/internal/domain/core"
	"leaveease/internal/domain/leave"
)

var (
	errNotFound       = errors.New("leave request not found")
	errNotPending     = errors.New("only pending requests can be cancelled")
	errAlreadyDecided = errors.New("request has already been decided")
)

// Store is the dev server's in-memory state. Everything resets on restart;
// that is the point of a stub.
type Store struct {
	mu        sync.Mutex
	profile   core.UserProfile
	leaves    []leave.LeaveRequest
	lates     []attendance.LateRecord
	employees []core.Employee
	now       func() time.Time
}

func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{now: now}
}

// Seed loads a believable starting state pinned to the store's clock.
func (s *Store) Seed() {
	today := s.now()
	day := func(offset int) time.Time {
		t := today.AddDate(0, 0, offset)
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = core.UserProfile{
		Username:     "jordan.reid",
		FullName:     "Jordan Reid",
		Email:        "jordan.reid@example.com",
		Department:   "Engineering",
		Role:         "EMPLOYEE",
		EmployeeCode: "EMP-0042",
	}

	s.employees = []core.Employee{
		{ID: uuid.NewString(), FullName: "Jordan Reid", Email: "jordan.reid@example.com", Department: "Engineering"},
		{ID: uuid.NewString(), FullName: "Dana Cole", Email: "dana.cole@example.com", Department: "Engineering"},
		{ID: uuid.NewString(), FullName: "Lee Park", Email: "lee.park@example.com", Department: "Sales"},
		{ID: uuid.NewString(), FullName: "Sam Ortiz", Email: "sam.ortiz@example.com", Department: "Finance"},
	}

	s.leaves = []leave.LeaveRequest{
		{
			ID:           uuid.NewString(),
			EmployeeName: "Jordan Reid",
			LeaveType:    "Vacation",
			StartDate:    day(-30),
			EndDate:      day(-28),
			Reason:       "spring break",
			Status:       leave.StatusApproved,
			CreatedAt:    today.AddDate(0, 0, -40),
		},
		{
			ID:           uuid.NewString(),
			EmployeeName: "Jordan Reid",
			LeaveType:    "Vacation",
			StartDate:    day(7),
			EndDate:      day(9),
			Reason:       "family trip",
			Status:       leave.StatusApproved,
			CreatedAt:    today.AddDate(0, 0, -5),
		},
		{
			ID:           uuid.NewString(),
			EmployeeName: "Jordan Reid",
			LeaveType:    "Sick Leave",
			StartDate:    day(14),
			EndDate:      day(14),
			Reason:       "dental appointment",
			Status:       leave.StatusPending,
			CreatedAt:    today.AddDate(0, 0, -1),
		},
		{
			ID:           uuid.NewString(),
			EmployeeName: "Dana Cole",
			LeaveType:    "Personal",
			StartDate:    day(-1),
			EndDate:      day(2),
			Reason:       "moving house",
			Status:       leave.StatusApproved,
			CreatedAt:    today.AddDate(0, 0, -10),
		},
		{
			ID:           uuid.NewString(),
			EmployeeName: "Lee Park",
			LeaveType:    "Vacation",
			StartDate:    day(3),
			EndDate:      day(5),
			Reason:       "long weekend",
			Status:       leave.StatusPending,
			CreatedAt:    today.AddDate(0, 0, -2),
		},
	}

	s.lates = []attendance.LateRecord{
		{
			ID:           uuid.NewString(),
			EmployeeName: "Jordan Reid",
			Date:         day(-3),
			Reason:       "traffic",
			MarkedBy:     "HR",
		},
		{
			ID:           uuid.NewString(),
			EmployeeName: "Lee Park",
			Date:         day(-2),
			Reason:       "train delay",
			MarkedBy:     "HR",
		},
	}
}

func (s *Store) ProfileFor() core.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

func (s *Store) SetProfilePicture(ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.ProfilePicture = ref
}

func (s *Store) Employees() []core.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Employee(nil), s.employees...)
}

func (s *Store) Leaves() []leave.LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]leave.LeaveRequest(nil), s.leaves...)
}

func (s *Store) LeavesFor(employeeName string) []leave.LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []leave.LeaveRequest
	for _, req := range s.leaves {
		if req.EmployeeName == employeeName {
			out = append(out, req)
		}
	}
	return out
}

func (s *Store) LeavesWithStatus(status string) []leave.LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []leave.LeaveRequest
	for _, req := range s.leaves {
		if req.Status == status {
			out = append(out, req)
		}
	}
	return out
}

func (s *Store) AddLeave(req leave.LeaveRequest) leave.LeaveRequest {
	req.ID = uuid.NewString()
	req.Status = leave.StatusPending
	req.CreatedAt = s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaves = append(s.leaves, req)
	return req
}

// Decide moves a pending request to a terminal status. Terminal states take
// no further transition.
func (s *Store) Decide(id, status, rejectionReason string) (leave.LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.leaves {
		if s.leaves[i].ID == id {
			if leave.Terminal(s.leaves[i].Status) {
				return leave.LeaveRequest{}, errAlreadyDecided
			}
			s.leaves[i].Status = status
			s.leaves[i].RejectionReason = rejectionReason
			return s.leaves[i], nil
		}
	}
	return leave.LeaveRequest{}, errNotFound
}

func (s *Store) Cancel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.leaves {
		if s.leaves[i].ID == id {
			if s.leaves[i].Status != leave.StatusPending {
				return errNotPending
			}
			s.leaves = append(s.leaves[:i], s.leaves[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

func (s *Store) Lates() []attendance.LateRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]attendance.LateRecord(nil), s.lates...)
}

func (s *Store) LatesFor(employeeName string) []attendance.LateRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []attendance.LateRecord
	for _, rec := range s.lates {
		if rec.EmployeeName == employeeName {
			out = append(out, rec)
		}
	}
	return out
}

func (s *Store) AddLate(rec attendance.LateRecord) attendance.LateRecord {
	rec.ID = uuid.NewString()
	rec.MarkedBy = "HR"

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lates = append(s.lates, rec)
	return rec
}
