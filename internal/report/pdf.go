package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"leavectl/internal/auth"
	"leavectl/internal/domain/leave"
)

// WriteHistoryPDF renders the user's leave history as a PDF table.
func WriteHistoryPDF(w io.Writer, user *auth.User, requests []leave.Request) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Leave History")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", user.FullName()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", user.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Role: %s", user.Role.Label()))
	pdf.Ln(10)

	header := []struct {
		label string
		width float64
	}{
		{"Type", 45},
		{"From", 28},
		{"To", 28},
		{"Days", 16},
		{"Status", 25},
		{"Comment", 48},
	}

	pdf.SetFont("Helvetica", "B", 10)
	for _, col := range header {
		pdf.CellFormat(col.width, 8, col.label, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range requests {
		cells := []string{
			r.LeaveType.Label(),
			r.StartDate,
			r.EndDate,
			fmt.Sprintf("%g", r.Days),
			r.Status.Label(),
			r.ManagerComment,
		}
		for i, value := range cells {
			pdf.CellFormat(header[i].width, 8, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(requests) == 0 {
		pdf.Ln(4)
		pdf.Cell(0, 8, "No leave requests on record.")
	}

	return pdf.Output(w)
}
