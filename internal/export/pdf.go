// Package export renders a completed fact find as a PDF or an Excel
// workbook for delivery to the advisory team.
package export

import (
	"bytes"
	"fmt"
	"time"

	"factfind/internal/model"

	"github.com/jung-kurt/gofpdf"
)

// PDFMeta carries the header fields of the summary document.
type PDFMeta struct {
	ClientName  string
	ClientEmail string
	SessionID   int
	CompletedAt time.Time
}

// BuildPDF renders the question/answer pairs into a summary document
// with a declaration and electronic-signature note at the end.
func BuildPDF(meta PDFMeta, pairs []model.QA) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Insurance Fact Find Summary", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Client: %s (%s)", meta.ClientName, meta.ClientEmail), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Session: %d", meta.SessionID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", meta.CompletedAt.Format("2 January 2006")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, qa := range pairs {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.MultiCell(0, 5, qa.Question, "", "L", false)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, qa.Answer, "", "L", false)
		pdf.Ln(2)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5,
		"I declare that the information provided above is true and complete to the best of my knowledge.",
		"", "L", false)
	pdf.Ln(2)
	pdf.MultiCell(0, 5,
		fmt.Sprintf("Signed electronically by %s on %s.", meta.ClientName, meta.CompletedAt.Format("2 January 2006")),
		"", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
