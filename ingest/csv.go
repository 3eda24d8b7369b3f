package ingest

import (
	"encoding/csv"
	"fmt"
	"io"

	"fuzzylink/model"
)

// LoadCSV reads a table from r. The first record is treated as the
// header row; every later record becomes a model.Row keyed by those
// headers. A record with fewer fields than the header is padded with
// empty strings; a record with more is an error, matching
// encoding/csv's own FieldsPerRecord convention for ragged files.
func LoadCSV(r io.Reader) (model.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return model.Table{}, fmt.Errorf("ingest: csv has no header row")
		}
		return model.Table{}, fmt.Errorf("ingest: reading csv header: %w", err)
	}

	var rows []model.Row

	for lineNo := 2; ; lineNo++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.Table{}, fmt.Errorf("ingest: reading csv line %d: %w", lineNo, err)
		}

		if len(record) > len(header) {
			return model.Table{}, fmt.Errorf("ingest: csv line %d has %d fields, header has %d", lineNo, len(record), len(header))
		}

		row := make(model.Row, len(header))
		for i, h := range header {
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}

		rows = append(rows, row)
	}

	return model.NewTable(header, rows), nil
}
