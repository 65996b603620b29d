package report

import (
	"bytes"
	"testing"
	"time"

	"leaveease/internal/aggregate"
	"leaveease/internal/domain/attendance"
)

func TestWriteMonthly(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMonthly(&buf, MonthlyInput{
		EmployeeName: "Jordan Reid",
		Year:         2025,
		Month:        time.July,
		Summary:      aggregate.MonthSummary{LeaveDays: 3, LateDays: 1, WorkingDays: 23},
		LeaveDays: []aggregate.LeaveDay{
			{Date: time.Date(2025, time.July, 21, 0, 0, 0, 0, time.UTC), LeaveType: "Vacation"},
		},
		LateRecords: []attendance.LateRecord{
			{Date: time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC), Reason: "traffic"},
		},
	})
	if err != nil {
		t.Fatalf("write report: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("empty output")
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output is not a PDF, starts with %q", buf.Bytes()[:8])
	}
}

func TestWriteMonthlySkipsOtherMonths(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMonthly(&buf, MonthlyInput{
		Year:  2025,
		Month: time.July,
		LeaveDays: []aggregate.LeaveDay{
			{Date: time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)},
		},
	})
	if err != nil {
		t.Fatalf("write report: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("empty output")
	}
}
