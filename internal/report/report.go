// Package report renders the monthly leave summary as a PDF, the export
// behind the calendar tab's download button.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"leaveease/internal/aggregate"
	"leaveease/internal/domain/attendance"
	"leaveease/internal/viewmodel"
)

// MonthlyInput is everything the monthly report needs, pre-aggregated by
// the caller so the renderer stays free of fetching.
type MonthlyInput struct {
	EmployeeName string
	Year         int
	Month        time.Month
	Summary      aggregate.MonthSummary
	LeaveDays    []aggregate.LeaveDay
	LateRecords  []attendance.LateRecord
}

// WriteMonthly renders the report for one month to w.
func WriteMonthly(w io.Writer, input MonthlyInput) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Monthly Leave Summary")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	if input.EmployeeName != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", input.EmployeeName))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s %d", input.Month, input.Year))
	pdf.Ln(10)

	pdf.Cell(0, 8, fmt.Sprintf("Leave days: %d", input.Summary.LeaveDays))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Late days: %d", input.Summary.LateDays))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Working days: %d", input.Summary.WorkingDays))
	pdf.Ln(10)

	if len(input.LeaveDays) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Leave")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, d := range input.LeaveDays {
			if d.Date.Year() != input.Year || d.Date.Month() != input.Month {
				continue
			}
			line := viewmodel.FormatDate(d.Date)
			if d.LeaveType != "" {
				line += " - " + d.LeaveType
			}
			pdf.Cell(0, 7, line)
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	if len(input.LateRecords) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Late arrivals")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, rec := range input.LateRecords {
			if rec.Date.Year() != input.Year || rec.Date.Month() != input.Month {
				continue
			}
			line := viewmodel.FormatDate(rec.Date)
			if rec.Reason != "" {
				line += " - " + rec.Reason
			}
			pdf.Cell(0, 7, line)
			pdf.Ln(6)
		}
	}

	return pdf.Output(w)
}
