package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"leaveease/internal/domain/attendance"
	"leaveease/internal/domain/leave"
)

var testNow = time.Date(2025, time.July, 15, 9, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, WithToken("test-token"), WithClock(testClock))
}

func TestCreateLeaveRoundTrip(t *testing.T) {
	var captured map[string]any
	r := chi.NewRouter()
	r.Post("/leaves", func(w http.ResponseWriter, req *http.Request) {
		if err := json.NewDecoder(req.Body).Decode(&captured); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"id":        "lv-1",
			"leaveType": "Vacation",
			"startDate": "2025-07-21",
			"endDate":   "2025-07-23",
			"reason":    "summer break",
			"status":    "Pending",
			"createdAt": "2025-07-15T09:00:00Z",
		})
	})

	c := newTestClient(t, r)
	created, err := c.CreateLeave(context.Background(), leave.NewRequest{
		LeaveType: "Vacation",
		StartDate: time.Date(2025, time.July, 21, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.July, 23, 0, 0, 0, 0, time.UTC),
		Reason:    "summer break",
	})
	if err != nil {
		t.Fatalf("create leave: %v", err)
	}
	if created.Status != leave.StatusPending || created.ID != "lv-1" {
		t.Fatalf("unexpected result %+v", created)
	}
	if captured["status"] != "Pending" {
		t.Fatalf("payload should force Pending, got %v", captured["status"])
	}
	if captured["startDate"] != "2025-07-21" {
		t.Fatalf("dates should go out as yyyy-mm-dd, got %v", captured["startDate"])
	}
}

func TestCreateLeaveLocalValidationSkipsNetwork(t *testing.T) {
	hits := 0
	r := chi.NewRouter()
	r.Post("/leaves", func(w http.ResponseWriter, req *http.Request) { hits++ })

	c := newTestClient(t, r)
	_, err := c.CreateLeave(context.Background(), leave.NewRequest{
		LeaveType: "Vacation",
		StartDate: testNow.AddDate(0, 0, 3),
		EndDate:   testNow.AddDate(0, 0, 1),
		Reason:    "inverted",
	})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !errors.Is(err, leave.ErrEndBeforeStart) {
		t.Fatalf("expected ErrEndBeforeStart, got %v", err)
	}
	if hits != 0 {
		t.Fatalf("invalid request must not reach the server, got %d hits", hits)
	}
}

func TestRejectReasonBoundary(t *testing.T) {
	hits := 0
	r := chi.NewRouter()
	r.Put("/leaves/{id}/hr-reject", func(w http.ResponseWriter, req *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "rejected"})
	})

	c := newTestClient(t, r)

	// Nine characters after trimming: rejected locally.
	_, err := c.HRReject(context.Background(), "lv-1", "  too short  ")
	if !IsValidation(err) || hits != 0 {
		t.Fatalf("expected local rejection with no network call, err=%v hits=%d", err, hits)
	}

	// Exactly ten characters: goes through.
	report, err := c.HRReject(context.Background(), "lv-1", "not enough")
	if err != nil {
		t.Fatalf("ten-char reason should pass: %v", err)
	}
	if !report.Success || hits != 1 {
		t.Fatalf("expected one successful call, report=%+v hits=%d", report, hits)
	}
}

func TestApproveAndRejectEndpoints(t *testing.T) {
	r := chi.NewRouter()
	r.Put("/leaves/{id}/approve", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Put("/leaves/{id}/reject", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["rejectionReason"] == "" {
			t.Error("missing rejectionReason")
		}
		w.WriteHeader(http.StatusOK)
	})

	c := newTestClient(t, r)
	if err := c.Approve(context.Background(), "lv-1"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := c.Reject(context.Background(), "lv-1", "coverage gap that week"); err != nil {
		t.Fatalf("reject: %v", err)
	}
}

func TestGlobalStatsAndAllLeaves(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/dashboard/stats", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"pendingRequests": 4})
	})
	r.Get("/leaves", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "a", "startDate": "2025-07-01", "endDate": "2025-07-02", "status": "Approved"},
		})
	})

	c := newTestClient(t, r)
	stats, err := c.GlobalStats(context.Background())
	if err != nil {
		t.Fatalf("global stats: %v", err)
	}
	if stats.PendingRequests != 4 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	leaves, err := c.AllLeaves(context.Background())
	if err != nil {
		t.Fatalf("all leaves: %v", err)
	}
	if len(leaves) != 1 || leaves[0].ID != "a" {
		t.Fatalf("unexpected leaves %+v", leaves)
	}
}

func TestServerErrorCarriesMessage(t *testing.T) {
	r := chi.NewRouter()
	r.Delete("/leaves/{id}", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"message": "Only pending requests can be cancelled"})
	})

	c := newTestClient(t, r)
	err := c.Cancel(context.Background(), "lv-1")
	var serverErr *ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("expected ServerError, got %v", err)
	}
	if serverErr.Status != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", serverErr.Status)
	}
	if serverErr.Message != "Only pending requests can be cancelled" {
		t.Fatalf("unexpected message %q", serverErr.Message)
	}
}

func TestServerErrorEnvelopedMessage(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/user/profile", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   map[string]any{"code": "FORBIDDEN", "message": "HR role required"},
		})
	})

	c := newTestClient(t, r)
	_, err := c.Profile(context.Background())
	var serverErr *ServerError
	if !errors.As(err, &serverErr) || serverErr.Message != "HR role required" {
		t.Fatalf("expected enveloped message, got %v", err)
	}
}

func TestNetworkErrorOnUnreachableServer(t *testing.T) {
	c := New("http://127.0.0.1:1", WithClock(testClock))
	_, err := c.MyLeaves(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

func TestWithTimeoutAppliesToRequests(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/user/profile", func(w http.ResponseWriter, req *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"fullName": "late"})
	})
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	c := New(server.URL, WithClock(testClock), WithTimeout(50*time.Millisecond))
	_, err := c.Profile(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected timeout as NetworkError, got %v", err)
	}
}

func TestRequestHeaders(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/dashboard/my-stats", func(w http.ResponseWriter, req *http.Request) {
		if got := req.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected auth header %q", got)
		}
		if req.Header.Get("X-Request-ID") == "" {
			t.Error("missing request id")
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"totalLeaveTaken": 3})
	})

	c := newTestClient(t, r)
	stats, err := c.MyStats(context.Background())
	if err != nil {
		t.Fatalf("my stats: %v", err)
	}
	if stats.TotalLeaveTaken != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestMyLeavesAcceptsBothDateEncodings(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/leaves/my-leaves", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "a", "startDate": "2025-07-21", "endDate": "2025-07-23", "status": "Approved"},
			{"id": "b", "startDate": "2025-08-04T00:00:00Z", "endDate": "2025-08-05T00:00:00Z", "status": "Pending"},
		})
	})

	c := newTestClient(t, r)
	leaves, err := c.MyLeaves(context.Background())
	if err != nil {
		t.Fatalf("my leaves: %v", err)
	}
	if len(leaves) != 2 {
		t.Fatalf("expected 2 leaves, got %d", len(leaves))
	}
	if !leaves[0].StartDate.Equal(time.Date(2025, time.July, 21, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date-only start mismatch: %s", leaves[0].StartDate)
	}
	if !leaves[1].EndDate.Equal(time.Date(2025, time.August, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("rfc3339 end mismatch: %s", leaves[1].EndDate)
	}
}

func TestLateRecordsEnveloped(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/late-attendance/my-late-records", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{"id": "late-1", "employeeName": "Lee Park", "date": "2025-07-10", "reason": "traffic"},
			},
		})
	})

	c := newTestClient(t, r)
	records, err := c.MyLateRecords(context.Background())
	if err != nil {
		t.Fatalf("late records: %v", err)
	}
	if len(records) != 1 || records[0].EmployeeName != "Lee Park" {
		t.Fatalf("unexpected records %+v", records)
	}
}

func TestLateRecordsInRangeRejectsInvertedRange(t *testing.T) {
	c := New("http://example.invalid", WithClock(testClock))
	_, err := c.LateRecordsInRange(context.Background(), testNow, testNow.AddDate(0, 0, -1))
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMarkLateReturnsMessage(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/late-attendance/mark-late", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "Late attendance recorded"})
	})

	c := newTestClient(t, r)
	msg, err := c.MarkLate(context.Background(), attendance.MarkLateInput{
		EmployeeName: "Lee Park",
		Date:         testNow,
		Reason:       "traffic",
	})
	if err != nil {
		t.Fatalf("mark late: %v", err)
	}
	if msg != "Late attendance recorded" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestUploadProfilePictureValidation(t *testing.T) {
	c := New("http://example.invalid", WithClock(testClock))

	_, err := c.UploadProfilePicture(context.Background(), "resume.pdf", strings.NewReader("x"))
	if !errors.Is(err, ErrNotAnImage) {
		t.Fatalf("expected ErrNotAnImage, got %v", err)
	}

	big := strings.NewReader(strings.Repeat("a", MaxPictureBytes+1))
	_, err = c.UploadProfilePicture(context.Background(), "me.png", big)
	if !errors.Is(err, ErrPictureTooLarge) {
		t.Fatalf("expected ErrPictureTooLarge, got %v", err)
	}
}

func TestUploadProfilePictureMultipart(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/user/profile-picture", func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseMultipartForm(MaxPictureBytes); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		file, header, err := req.FormFile("profilePicture")
		if err != nil {
			t.Errorf("form file: %v", err)
		} else {
			file.Close()
			if header.Filename != "me.png" {
				t.Errorf("unexpected filename %q", header.Filename)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"profilePicture": "/uploads/me.png"})
	})

	c := newTestClient(t, r)
	url, err := c.UploadProfilePicture(context.Background(), "me.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "/uploads/me.png" {
		t.Fatalf("unexpected url %q", url)
	}
}
