package handler

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/teamtasks/task-system/internal/core/ports"
)

// csvHeader is the canonical column order for both directions of the
// tabular transfer. The notes column exists only on export; import
// ignores it when present so an exported file feeds straight back in.
var csvHeader = []string{"title", "description", "due_date", "status", "assignee_username", "notes"}

// writeCSV streams export rows to w, header first.
func writeCSV(w io.Writer, rows []ports.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{r.Title, r.Description, r.DueDate, r.Status, r.AssigneeUsername, r.Notes}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// readCSV parses a tabular import into rows the service understands.
// Column order is taken from the header line; unknown columns are
// ignored. Only the file-level structure can fail here — row-level
// problems are the service's per-row business.
func readCSV(r io.Reader) ([]ports.ImportRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are tolerated, missing cells read as empty

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[name] = i
	}
	if _, ok := colIndex["title"]; !ok {
		return nil, fmt.Errorf("missing required column %q", "title")
	}

	cell := func(record []string, name string) string {
		i, ok := colIndex[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []ports.ImportRow
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		rows = append(rows, ports.ImportRow{
			Line:             line,
			Title:            cell(record, "title"),
			Description:      cell(record, "description"),
			DueDate:          cell(record, "due_date"),
			Status:           cell(record, "status"),
			AssigneeUsername: cell(record, "assignee_username"),
		})
	}
	return rows, nil
}
