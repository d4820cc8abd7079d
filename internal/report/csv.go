package report

import (
	"encoding/csv"
	"io"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/service"
)

// writeCSV emits the detail rows as a flat CSV mirroring the Résultats
// sheet, one record per measure.
func writeCSV(w io.Writer, analysis service.Analysis) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(resultHeaders); err != nil {
		return err
	}

	for _, row := range analysis.Rows {
		record := []string{
			row.Theme, row.MeasureID, row.Title, row.Question, row.Answer,
			string(row.Status), scoreLabel(row), row.Priority,
			row.Recommendation, row.Justification, row.DueDate,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
