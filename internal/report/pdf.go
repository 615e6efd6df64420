package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/codescanhq/codescan/internal/similarity"
)

// WritePDF renders the ranked results as a PDF report with a risk-band
// summary followed by the per-pair detail table.
func WritePDF(w io.Writer, results []similarity.Result) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "CodeScan Plagiarism Detection Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated on: %s", time.Now().Format("2006-01-02 15:04:05")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total Comparisons: %d", len(results)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeSummaryTable(pdf, results)
	writeDetailTable(pdf, results)

	return pdf.Output(w)
}

func writeSummaryTable(pdf *fpdf.Fpdf, results []similarity.Result) {
	var high, medium, low int
	for _, r := range results {
		switch Classify(r.Score) {
		case RiskHigh:
			high++
		case RiskMedium:
			medium++
		default:
			low++
		}
	}

	pct := func(n int) string {
		if len(results) == 0 {
			return "0.0%"
		}
		return fmt.Sprintf("%.1f%%", float64(n)/float64(len(results))*100)
	}

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(60, 8, "Risk Level", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Count", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 8, "Percentage", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	rows := []struct {
		label string
		count int
	}{
		{"High Risk (>=75%)", high},
		{"Medium Risk (50-74%)", medium},
		{"Low Risk (<50%)", low},
	}
	for _, row := range rows {
		pdf.CellFormat(60, 7, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", row.count), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, pct(row.count), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(6)
}

func writeDetailTable(pdf *fpdf.Fpdf, results []similarity.Result) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Detailed Results", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(60, 8, "File 1", "1", 0, "C", true, 0, "")
	pdf.CellFormat(60, 8, "File 2", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Similarity (%)", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Risk Level", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	for _, r := range results {
		switch Classify(r.Score) {
		case RiskHigh:
			pdf.SetFillColor(240, 128, 128)
		case RiskMedium:
			pdf.SetFillColor(255, 255, 224)
		default:
			pdf.SetFillColor(144, 238, 144)
		}

		pdf.CellFormat(60, 7, truncate(r.FileA, 30), "1", 0, "L", true, 0, "")
		pdf.CellFormat(60, 7, truncate(r.FileB, 30), "1", 0, "L", true, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f%%", r.Score), "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 7, string(Classify(r.Score)), "1", 1, "C", true, 0, "")
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
