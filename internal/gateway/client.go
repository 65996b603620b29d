// Package gateway is the client's only I/O boundary: one method per REST
// resource, request shaping and response validation, nothing else. The
// controller decides what runs concurrently; mutating methods never retry.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"leaveease/internal/domain/attendance"
	"leaveease/internal/domain/core"
	"leaveease/internal/domain/leave"
)

// MaxPictureBytes caps profile picture uploads, matching the backend limit.
const MaxPictureBytes = 5 * 1024 * 1024

var (
	ErrPictureTooLarge = errors.New("profile picture must be smaller than 5MB")
	ErrNotAnImage      = errors.New("profile picture must be an image file")
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	now     func() time.Time
}

type Option func(*Client)

// WithToken sets the bearer token attached to every request. The token is
// opaque to the client; authorization is enforced server-side.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient swaps the underlying transport, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout. Non-positive values keep the
// default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithClock overrides the time source used by local date validation.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Profile fetches the current user's profile.
func (c *Client) Profile(ctx context.Context) (core.UserProfile, error) {
	var profile core.UserProfile
	err := c.get(ctx, "/api/user/profile", &profile)
	return profile, err
}

// UploadProfilePicture posts a new picture as multipart form data and
// returns the stored picture reference. Type and size are checked locally.
func (c *Client) UploadProfilePicture(ctx context.Context, fileName string, content io.Reader) (string, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg":
	default:
		return "", validationErr(ErrNotAnImage)
	}

	data, err := io.ReadAll(io.LimitReader(content, MaxPictureBytes+1))
	if err != nil {
		return "", &NetworkError{Op: "read picture", Err: err}
	}
	if len(data) > MaxPictureBytes {
		return "", validationErr(ErrPictureTooLarge)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("profilePicture", fileName)
	if err != nil {
		return "", fmt.Errorf("build multipart: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("build multipart: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("build multipart: %w", err)
	}

	var result struct {
		ProfilePicture string `json:"profilePicture"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/user/profile-picture", &body, writer.FormDataContentType(), &result); err != nil {
		return "", err
	}
	return result.ProfilePicture, nil
}

// MyStats fetches the personal stat-card block.
func (c *Client) MyStats(ctx context.Context) (core.DashboardStats, error) {
	var stats core.DashboardStats
	err := c.get(ctx, "/api/dashboard/my-stats", &stats)
	return stats, err
}

// GlobalStats fetches the company-wide stat block.
func (c *Client) GlobalStats(ctx context.Context) (core.DashboardStats, error) {
	var stats core.DashboardStats
	err := c.get(ctx, "/api/dashboard/stats", &stats)
	return stats, err
}

// QuarterlyData fetches the per-quarter taken/remaining chart payload.
func (c *Client) QuarterlyData(ctx context.Context) (leave.QuarterlySummary, error) {
	var summary leave.QuarterlySummary
	err := c.get(ctx, "/api/dashboard/quarterly-data", &summary)
	return summary, err
}

// MyLeaves lists the current user's leave requests.
func (c *Client) MyLeaves(ctx context.Context) ([]leave.LeaveRequest, error) {
	var wires []leaveWire
	if err := c.get(ctx, "/leaves/my-leaves", &wires); err != nil {
		return nil, err
	}
	return leavesToDomain(wires)
}

// AllLeaves lists every leave request (HR view).
func (c *Client) AllLeaves(ctx context.Context) ([]leave.LeaveRequest, error) {
	var wires []leaveWire
	if err := c.get(ctx, "/leaves", &wires); err != nil {
		return nil, err
	}
	return leavesToDomain(wires)
}

// CreateLeave validates locally, then submits. The server assigns the id
// and forces status to Pending.
func (c *Client) CreateLeave(ctx context.Context, req leave.NewRequest) (leave.LeaveRequest, error) {
	if err := leave.ValidateNewRequest(req, c.now()); err != nil {
		return leave.LeaveRequest{}, validationErr(err)
	}

	payload := newLeaveWire{
		EmployeeName: req.EmployeeName,
		LeaveType:    req.LeaveType,
		StartDate:    formatWireDate(req.StartDate),
		EndDate:      formatWireDate(req.EndDate),
		Reason:       req.Reason,
		Status:       leave.StatusPending,
	}
	var wire leaveWire
	if err := c.post(ctx, "/leaves", payload, &wire); err != nil {
		return leave.LeaveRequest{}, err
	}
	return wire.toDomain()
}

// Approve transitions a request to Approved.
func (c *Client) Approve(ctx context.Context, id string) error {
	return c.put(ctx, "/leaves/"+url.PathEscape(id)+"/approve", nil, nil)
}

// Reject transitions a request to Rejected. The reason is validated locally
// before any network call.
func (c *Client) Reject(ctx context.Context, id, reason string) error {
	if err := leave.ValidateRejectionReason(reason); err != nil {
		return validationErr(err)
	}
	body := map[string]string{"rejectionReason": reason}
	return c.put(ctx, "/leaves/"+url.PathEscape(id)+"/reject", body, nil)
}

// HRApprove approves via the HR endpoint, which also reports the email
// notification outcome.
func (c *Client) HRApprove(ctx context.Context, id string) (leave.DecisionReport, error) {
	var report leave.DecisionReport
	err := c.put(ctx, "/leaves/"+url.PathEscape(id)+"/hr-approve", nil, &report)
	return report, err
}

// HRReject rejects via the HR endpoint with a mandatory reason.
func (c *Client) HRReject(ctx context.Context, id, reason string) (leave.DecisionReport, error) {
	if err := leave.ValidateRejectionReason(reason); err != nil {
		return leave.DecisionReport{}, validationErr(err)
	}
	var report leave.DecisionReport
	body := map[string]string{"rejectionReason": reason}
	err := c.put(ctx, "/leaves/"+url.PathEscape(id)+"/hr-reject", body, &report)
	return report, err
}

// Cancel deletes a Pending request. The server may refuse if the request
// was processed meanwhile; that surfaces as a ServerError, not a crash.
func (c *Client) Cancel(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/leaves/"+url.PathEscape(id), nil, "", nil)
}

// TeamOnLeave lists colleagues on leave today.
func (c *Client) TeamOnLeave(ctx context.Context) ([]core.TeamMember, error) {
	var wires []teamMemberWire
	if err := c.get(ctx, "/api/dashboard/team-on-leave", &wires); err != nil {
		return nil, err
	}
	members := make([]core.TeamMember, 0, len(wires))
	for _, w := range wires {
		member, err := w.toDomain()
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, nil
}

// HREmployeeStats fetches the HR aggregate stat block.
func (c *Client) HREmployeeStats(ctx context.Context) (core.HRStats, error) {
	var stats core.HRStats
	err := c.get(ctx, "/api/dashboard/hr/employee-stats", &stats)
	return stats, err
}

// PendingRequests lists requests awaiting an HR decision.
func (c *Client) PendingRequests(ctx context.Context) ([]leave.LeaveRequest, error) {
	var wires []leaveWire
	if err := c.get(ctx, "/api/dashboard/hr/pending-requests", &wires); err != nil {
		return nil, err
	}
	return leavesToDomain(wires)
}

// AllRequests lists every request for the HR review view.
func (c *Client) AllRequests(ctx context.Context) ([]leave.LeaveRequest, error) {
	var wires []leaveWire
	if err := c.get(ctx, "/api/dashboard/hr/all-requests", &wires); err != nil {
		return nil, err
	}
	return leavesToDomain(wires)
}

// DepartmentStats fetches the per-department headcount/on-leave breakdown.
func (c *Client) DepartmentStats(ctx context.Context) ([]core.DepartmentStat, error) {
	var stats []core.DepartmentStat
	err := c.get(ctx, "/api/dashboard/hr/department-stats", &stats)
	return stats, err
}

// MyLateRecords lists the current user's late-attendance records.
func (c *Client) MyLateRecords(ctx context.Context) ([]attendance.LateRecord, error) {
	var env envelope[[]lateWire]
	if err := c.get(ctx, "/api/late-attendance/my-late-records", &env); err != nil {
		return nil, err
	}
	return latesToDomain(env.Data)
}

// LateRecordsInRange lists late records between start and end inclusive.
func (c *Client) LateRecordsInRange(ctx context.Context, start, end time.Time) ([]attendance.LateRecord, error) {
	if end.Before(start) {
		return nil, validationErr(leave.ErrEndBeforeStart)
	}
	query := url.Values{
		"startDate": []string{formatWireDate(start)},
		"endDate":   []string{formatWireDate(end)},
	}
	var env envelope[[]lateWire]
	if err := c.get(ctx, "/api/late-attendance/range?"+query.Encode(), &env); err != nil {
		return nil, err
	}
	return latesToDomain(env.Data)
}

// LateRecordsOn lists late records for one date.
func (c *Client) LateRecordsOn(ctx context.Context, date time.Time) ([]attendance.LateRecord, error) {
	var env envelope[[]lateWire]
	if err := c.get(ctx, "/api/late-attendance/date/"+formatWireDate(date), &env); err != nil {
		return nil, err
	}
	return latesToDomain(env.Data)
}

// MarkLate records a late arrival. Required fields are validated locally.
func (c *Client) MarkLate(ctx context.Context, input attendance.MarkLateInput) (string, error) {
	if err := attendance.ValidateMarkLate(input); err != nil {
		return "", validationErr(err)
	}
	payload := markLateWire{
		EmployeeName: input.EmployeeName,
		Date:         formatWireDate(input.Date),
		Reason:       input.Reason,
		Notes:        input.Notes,
	}
	var env envelope[json.RawMessage]
	if err := c.post(ctx, "/api/late-attendance/mark-late", payload, &env); err != nil {
		return "", err
	}
	return env.Message, nil
}

// Employees lists the directory used by the mark-late selector.
func (c *Client) Employees(ctx context.Context) ([]core.Employee, error) {
	var env envelope[[]core.Employee]
	if err := c.get(ctx, "/api/employees", &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	return c.do(ctx, method, path, reader, "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: method + " " + path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServerError{Status: resp.StatusCode, Message: extractMessage(raw)}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &NetworkError{Op: method + " " + path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// extractMessage pulls a display message out of an error body, tolerating
// both {"message": ...} and the enveloped {"error": {"message": ...}}.
// Non-JSON bodies are ignored; the status code alone still classifies.
func extractMessage(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Error != nil && body.Error.Message != "" {
		return body.Error.Message
	}
	return body.Message
}
