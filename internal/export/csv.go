package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"time"

	"pmportal/internal/model"
)

var header = []string{"ID", "Título", "Unidade", "Status", "Data de Submissão", "Enviado por"}

// DocumentsCSV renders the admin document listing as CSV, newest
// submission first, dates in dd/MM/yyyy like the original export.
func DocumentsCSV(documents []model.Document) ([]byte, error) {
	sorted := make([]model.Document, len(documents))
	copy(sorted, documents)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SubmissionDate > sorted[j].SubmissionDate
	})

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, doc := range sorted {
		record := []string{
			doc.ID,
			doc.Title,
			doc.UnitName,
			string(doc.Status),
			formatDate(doc.SubmissionDate),
			doc.SubmittedBy.Name,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName returns the dated export name, e.g. documentos-2025-05-08.csv.
func FileName(now time.Time) string {
	return fmt.Sprintf("documentos-%s.csv", now.Format("2006-01-02"))
}

// formatDate renders an ISO date or timestamp as dd/MM/yyyy. Values that
// do not parse are passed through untouched.
func formatDate(value string) string {
	if t, ok := model.ParseISO(value); ok {
		return t.Format("02/01/2006")
	}
	return value
}
