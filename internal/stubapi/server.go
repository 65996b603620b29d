// Package stubapi is the in-memory development backend: the same routes and
// response shapes as the production API, seeded with sample data, so the
// dashboard can run without the real server.
package stubapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"leaveease/internal/aggregate"
	"leaveease/internal/datemath"
	"leaveease/internal/domain/attendance"
	"leaveease/internal/domain/core"
	"leaveease/internal/domain/leave"
	"leaveease/internal/requestctx"
)

const dateLayout = "2006-01-02"

type Server struct {
	store     *Store
	allowance int
	now       func() time.Time
}

func NewServer(store *Store, allowance int, now func() time.Time) *Server {
	if now == nil {
		now = time.Now
	}
	if allowance <= 0 {
		allowance = leave.DefaultAnnualAllowance
	}
	return &Server{store: store, allowance: allowance, now: now}
}

// Router assembles the full route table behind the request-id and logging
// middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggerMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/user/profile", s.handleProfile)
		r.Post("/user/profile-picture", s.handleUploadPicture)

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/my-stats", s.handleMyStats)
			r.Get("/stats", s.handleGlobalStats)
			r.Get("/quarterly-data", s.handleQuarterlyData)
			r.Get("/team-on-leave", s.handleTeamOnLeave)

			r.Route("/hr", func(r chi.Router) {
				r.Get("/employee-stats", s.handleHRStats)
				r.Get("/pending-requests", s.handlePendingRequests)
				r.Get("/all-requests", s.handleAllRequests)
				r.Get("/department-stats", s.handleDepartmentStats)
			})
		})

		r.Route("/late-attendance", func(r chi.Router) {
			r.Get("/my-late-records", s.handleMyLateRecords)
			r.Get("/range", s.handleLateRange)
			r.Get("/date/{date}", s.handleLateOnDate)
			r.Post("/mark-late", s.handleMarkLate)
		})

		r.Get("/employees", s.handleEmployees)
	})

	r.Route("/leaves", func(r chi.Router) {
		r.Get("/", s.handleAllLeaves)
		r.Post("/", s.handleCreateLeave)
		r.Get("/my-leaves", s.handleMyLeaves)
		r.Put("/{id}/approve", s.handleApprove)
		r.Put("/{id}/reject", s.handleReject)
		r.Put("/{id}/hr-approve", s.handleHRApprove)
		r.Put("/{id}/hr-reject", s.handleHRReject)
		r.Delete("/{id}", s.handleCancel)
	})

	return r
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ProfileFor())
}

func (s *Server) handleUploadPicture(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		fail(w, http.StatusBadRequest, "invalid_upload", "could not parse upload", reqID)
		return
	}
	_, header, err := r.FormFile("profilePicture")
	if err != nil {
		fail(w, http.StatusBadRequest, "invalid_upload", "profilePicture file is required", reqID)
		return
	}
	ref := "/uploads/" + header.Filename
	s.store.SetProfilePicture(ref)
	writeJSON(w, http.StatusOK, map[string]string{"profilePicture": ref})
}

func (s *Server) handleMyStats(w http.ResponseWriter, r *http.Request) {
	me := s.store.ProfileFor().FullName
	leaves := s.store.LeavesFor(me)
	year := s.now().Year()

	stats := core.DashboardStats{}
	for _, req := range leaves {
		switch req.Status {
		case leave.StatusApproved:
			if req.StartDate.Year() == year {
				stats.TotalLeaveTaken += leave.Duration(req)
			}
		case leave.StatusPending:
			stats.PendingRequests++
		}
	}
	if decided := countTerminal(leaves); decided > 0 {
		stats.ApprovalRate = countWithStatus(leaves, leave.StatusApproved) * 100 / decided
	}
	stats.TeamMembersOnLeave = len(s.teamOnLeave())
	stats.RemainingDays = clampZero(s.allowance - stats.TotalLeaveTaken)
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleGlobalStats(w http.ResponseWriter, r *http.Request) {
	leaves := s.store.Leaves()
	stats := core.DashboardStats{
		PendingRequests:    countWithStatus(leaves, leave.StatusPending),
		TeamMembersOnLeave: len(s.teamOnLeave()),
	}
	if decided := countTerminal(leaves); decided > 0 {
		stats.ApprovalRate = countWithStatus(leaves, leave.StatusApproved) * 100 / decided
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleQuarterlyData(w http.ResponseWriter, r *http.Request) {
	me := s.store.ProfileFor().FullName
	summary := aggregate.QuarterlySummary(s.store.LeavesFor(me), s.now().Year(), s.allowance)
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleTeamOnLeave(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.teamOnLeave())
}

// teamOnLeave lists colleagues whose approved leave covers today, excluding
// the profile user.
func (s *Server) teamOnLeave() []core.TeamMember {
	me := s.store.ProfileFor().FullName
	today := datemath.Midnight(s.now())

	members := []core.TeamMember{}
	for _, req := range s.store.Leaves() {
		if req.Status != leave.StatusApproved || req.EmployeeName == me {
			continue
		}
		start := datemath.Midnight(req.StartDate)
		end := datemath.Midnight(req.EndDate)
		if start.After(today) || end.Before(today) {
			continue
		}
		members = append(members, core.TeamMember{
			EmployeeName: req.EmployeeName,
			LeaveType:    req.LeaveType,
			StartDate:    req.StartDate,
			EndDate:      req.EndDate,
		})
	}
	return members
}

func (s *Server) handleHRStats(w http.ResponseWriter, r *http.Request) {
	leaves := s.store.Leaves()
	onLeave := len(s.teamOnLeave())
	total := len(s.store.Employees())
	writeJSON(w, http.StatusOK, core.HRStats{
		TotalEmployees:   total,
		EmployeesOnLeave: onLeave,
		EmployeesPresent: clampZero(total - onLeave),
		PendingApprovals: countWithStatus(leaves, leave.StatusPending),
		ApprovedRequests: countWithStatus(leaves, leave.StatusApproved),
		RejectedRequests: countWithStatus(leaves, leave.StatusRejected),
	})
}

func (s *Server) handlePendingRequests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.LeavesWithStatus(leave.StatusPending))
}

func (s *Server) handleAllRequests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Leaves())
}

func (s *Server) handleDepartmentStats(w http.ResponseWriter, r *http.Request) {
	onLeaveNames := map[string]bool{}
	for _, m := range s.teamOnLeave() {
		onLeaveNames[m.EmployeeName] = true
	}

	index := map[string]int{}
	stats := []core.DepartmentStat{}
	for _, emp := range s.store.Employees() {
		i, ok := index[emp.Department]
		if !ok {
			i = len(stats)
			index[emp.Department] = i
			stats = append(stats, core.DepartmentStat{Department: emp.Department})
		}
		stats[i].Employees++
		if onLeaveNames[emp.FullName] {
			stats[i].OnLeave++
		}
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleMyLeaves(w http.ResponseWriter, r *http.Request) {
	me := s.store.ProfileFor().FullName
	leaves := s.store.LeavesFor(me)
	if leaves == nil {
		leaves = []leave.LeaveRequest{}
	}
	writeJSON(w, http.StatusOK, leaves)
}

func (s *Server) handleAllLeaves(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Leaves())
}

type createLeavePayload struct {
	EmployeeName string `json:"employeeName"`
	LeaveType    string `json:"leaveType"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Reason       string `json:"reason"`
}

func (s *Server) handleCreateLeave(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	var payload createLeavePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	start, err := time.Parse(dateLayout, payload.StartDate)
	if err != nil {
		fail(w, http.StatusBadRequest, "invalid_date", "startDate must be yyyy-mm-dd", reqID)
		return
	}
	end, err := time.Parse(dateLayout, payload.EndDate)
	if err != nil {
		fail(w, http.StatusBadRequest, "invalid_date", "endDate must be yyyy-mm-dd", reqID)
		return
	}
	if end.Before(start) {
		fail(w, http.StatusBadRequest, "invalid_range", "end date cannot be before start date", reqID)
		return
	}

	name := payload.EmployeeName
	if name == "" {
		name = s.store.ProfileFor().FullName
	}
	created := s.store.AddLeave(leave.LeaveRequest{
		EmployeeName: name,
		LeaveType:    payload.LeaveType,
		StartDate:    start,
		EndDate:      end,
		Reason:       payload.Reason,
	})
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	s.decide(w, r, leave.StatusApproved, "", false)
}

type rejectPayload struct {
	RejectionReason string `json:"rejectionReason"`
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	var payload rejectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if err := leave.ValidateRejectionReason(payload.RejectionReason); err != nil {
		fail(w, http.StatusBadRequest, "invalid_reason", err.Error(), reqID)
		return
	}
	s.decide(w, r, leave.StatusRejected, payload.RejectionReason, false)
}

func (s *Server) handleHRApprove(w http.ResponseWriter, r *http.Request) {
	s.decide(w, r, leave.StatusApproved, "", true)
}

func (s *Server) handleHRReject(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	var payload rejectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if err := leave.ValidateRejectionReason(payload.RejectionReason); err != nil {
		fail(w, http.StatusBadRequest, "invalid_reason", err.Error(), reqID)
		return
	}
	s.decide(w, r, leave.StatusRejected, payload.RejectionReason, true)
}

// decide applies a terminal status. The HR endpoints also report the email
// side effect the real backend performs; the stub always claims a log-only
// delivery.
func (s *Server) decide(w http.ResponseWriter, r *http.Request, status, rejectionReason string, report bool) {
	reqID := requestctx.GetRequestID(r.Context())
	id := chi.URLParam(r, "id")

	updated, err := s.store.Decide(id, status, rejectionReason)
	switch err {
	case nil:
	case errAlreadyDecided:
		fail(w, http.StatusConflict, "already_decided", err.Error(), reqID)
		return
	default:
		fail(w, http.StatusNotFound, "not_found", err.Error(), reqID)
		return
	}
	if !report {
		writeJSON(w, http.StatusOK, updated)
		return
	}
	writeJSON(w, http.StatusOK, leave.DecisionReport{
		Success:     true,
		Message:     "Leave request " + status,
		EmailMethod: "LOG",
		FromEmail:   "hr@leaveease.local",
		ToEmail:     updated.EmployeeName,
	})
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	switch err := s.store.Cancel(chi.URLParam(r, "id")); err {
	case nil:
		w.WriteHeader(http.StatusNoContent)
	case errNotPending:
		fail(w, http.StatusBadRequest, "not_pending", err.Error(), reqID)
	default:
		fail(w, http.StatusNotFound, "not_found", err.Error(), reqID)
	}
}

func (s *Server) handleMyLateRecords(w http.ResponseWriter, r *http.Request) {
	me := s.store.ProfileFor().FullName
	records := s.store.LatesFor(me)
	if records == nil {
		records = []attendance.LateRecord{}
	}
	success(w, records, requestctx.GetRequestID(r.Context()))
}

func (s *Server) handleLateRange(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	start, err := time.Parse(dateLayout, r.URL.Query().Get("startDate"))
	if err != nil {
		fail(w, http.StatusBadRequest, "invalid_date", "startDate must be yyyy-mm-dd", reqID)
		return
	}
	end, err := time.Parse(dateLayout, r.URL.Query().Get("endDate"))
	if err != nil {
		fail(w, http.StatusBadRequest, "invalid_date", "endDate must be yyyy-mm-dd", reqID)
		return
	}
	if end.Before(start) {
		fail(w, http.StatusBadRequest, "invalid_range", "endDate cannot be before startDate", reqID)
		return
	}

	matched := []attendance.LateRecord{}
	for _, rec := range s.store.Lates() {
		day := datemath.Midnight(rec.Date)
		if day.Before(start) || day.After(end) {
			continue
		}
		matched = append(matched, rec)
	}
	success(w, matched, reqID)
}

func (s *Server) handleLateOnDate(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	date, err := time.Parse(dateLayout, chi.URLParam(r, "date"))
	if err != nil {
		fail(w, http.StatusBadRequest, "invalid_date", "date must be yyyy-mm-dd", reqID)
		return
	}

	matched := []attendance.LateRecord{}
	for _, rec := range s.store.Lates() {
		if datemath.SameCalendarDay(rec.Date, date) {
			matched = append(matched, rec)
		}
	}
	success(w, matched, reqID)
}

type markLatePayload struct {
	EmployeeName string `json:"employeeName"`
	Date         string `json:"date"`
	Reason       string `json:"reason"`
	Notes        string `json:"notes"`
}

func (s *Server) handleMarkLate(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	var payload markLatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	date, err := time.Parse(dateLayout, payload.Date)
	if err != nil {
		fail(w, http.StatusBadRequest, "invalid_date", "date must be yyyy-mm-dd", reqID)
		return
	}
	input := attendance.MarkLateInput{
		EmployeeName: payload.EmployeeName,
		Date:         date,
		Reason:       payload.Reason,
		Notes:        payload.Notes,
	}
	if err := attendance.ValidateMarkLate(input); err != nil {
		fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), reqID)
		return
	}

	s.store.AddLate(attendance.LateRecord{
		EmployeeName: input.EmployeeName,
		Date:         date,
		Reason:       input.Reason,
		Notes:        input.Notes,
	})
	successMessage(w, "Late attendance recorded", reqID)
}

func (s *Server) handleEmployees(w http.ResponseWriter, r *http.Request) {
	success(w, s.store.Employees(), requestctx.GetRequestID(r.Context()))
}

func countWithStatus(requests []leave.LeaveRequest, status string) int {
	n := 0
	for _, req := range requests {
		if req.Status == status {
			n++
		}
	}
	return n
}

func countTerminal(requests []leave.LeaveRequest) int {
	n := 0
	for _, req := range requests {
		if leave.Terminal(req.Status) {
			n++
		}
	}
	return n
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
