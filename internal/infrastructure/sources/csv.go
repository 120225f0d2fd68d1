package sources

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVParser parses cafe records from CSV format. Any subset of the
// expected columns may be present or absent, under any of the historical
// naming conventions; the Record accessors resolve the aliases.
type CSVParser struct{}

// Parse reads CSV from the reader and returns one record per data row.
func (p *CSVParser) Parse(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	var records []Record
	lineNum := 1 // header is line 1

	for {
		lineNum++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		fields := make(map[string]any, len(header))
		for i, col := range header {
			if i < len(row) && row[i] != "" {
				fields[col] = row[i]
			}
		}
		records = append(records, Record{Kind: KindCSV, Fields: fields})
	}

	return records, nil
}
