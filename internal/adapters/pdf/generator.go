// Package pdf renders a one-page employee record sheet for a created
// employee: a header bar, the identity and employment sections, the address
// block and a footer with the record ID.
package pdf

import (
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/csg33k/hrnet/internal/domain"
)

// GenerateEmployeePDF writes the record sheet for e to w. stateName is the
// display name of e.State; the abbreviation is printed when it is empty.
func GenerateEmployeePDF(e *domain.Employee, stateName string, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AddPage()
	drawEmployeePage(pdf, e, stateName)
	return pdf.Output(w)
}

func drawEmployeePage(pdf *fpdf.Fpdf, e *domain.Employee, stateName string) {
	pageW, pageH := pdf.GetPageSize()
	marginL, marginT, marginR, marginB := pdf.GetMargins()
	contentW := pageW - marginL - marginR
	colHalf := contentW / 2

	// Header bar
	pdf.SetFillColor(30, 30, 30)
	pdf.Rect(marginL, marginT, contentW, 10, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginL+2, marginT+1.5)
	pdf.CellFormat(contentW-4, 7, "HRnet  EMPLOYEE RECORD", "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	y := marginT + 13
	y = section(pdf, marginL, y, contentW, "EMPLOYEE")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(colHalf, 6.5, e.LastName+", "+e.FirstName, "L", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(colHalf, 6.5, "Date of Birth: "+e.DateOfBirth, "R", 1, "R", false, 0, "")
	y += 6.5
	pdf.SetXY(marginL, y)
	pdf.CellFormat(colHalf, 5.5, "Department: "+e.Department, "LB", 0, "L", false, 0, "")
	pdf.CellFormat(colHalf, 5.5, "Start Date: "+e.StartDate, "RB", 1, "R", false, 0, "")
	y += 5.5 + 4

	y = section(pdf, marginL, y, contentW, "ADDRESS")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(contentW, 5.5, e.Street, "LR", 1, "L", false, 0, "")
	y += 5.5
	pdf.SetXY(marginL, y)
	pdf.CellFormat(contentW, 5.5, cityLine(e.City, regionLabel(e.State, stateName), e.ZipCode), "LRB", 1, "L", false, 0, "")

	// Footer
	pdf.SetXY(marginL, pageH-marginB-6)
	pdf.SetFont("Helvetica", "I", 7.5)
	pdf.SetTextColor(130, 130, 130)
	pdf.CellFormat(colHalf, 5, "Generated by HRnet", "", 0, "L", false, 0, "")
	created := ""
	if !e.CreatedAt.IsZero() {
		created = " | " + e.CreatedAt.UTC().Format("2006-01-02")
	}
	pdf.CellFormat(colHalf, 5, "Record "+e.ID+created, "", 0, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// section draws a gray section title and returns the y below it.
func section(pdf *fpdf.Fpdf, x, y, w float64, title string) float64 {
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(x, y)
	pdf.CellFormat(w, 5.5, title, "LRT", 1, "L", true, 0, "")
	return y + 5.5
}

func regionLabel(abbreviation, name string) string {
	if name == "" {
		return abbreviation
	}
	return name + " (" + abbreviation + ")"
}

// cityLine returns "City, State ZIP", skipping empty parts.
func cityLine(city, state, zip string) string {
	s := city
	if state != "" {
		if s != "" {
			s += ", "
		}
		s += state
	}
	if zip != "" {
		if s != "" {
			s += " "
		}
		s += zip
	}
	return s
}
