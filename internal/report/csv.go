package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/codescanhq/codescan/internal/similarity"
)

// WriteCSV renders the ranked results as a CSV report. Rows keep the
// order of the input slice.
func WriteCSV(w io.Writer, results []similarity.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"File 1", "File 2", "Similarity (%)", "Risk Level", "Export Date"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	exportDate := time.Now().Format("2006-01-02 15:04:05")
	for _, r := range results {
		row := []string{
			r.FileA,
			r.FileB,
			fmt.Sprintf("%.2f", r.Score),
			string(Classify(r.Score)),
			exportDate,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
