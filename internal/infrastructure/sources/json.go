package sources

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses cafe records from a JSON array of objects. JSON
// exports carry the document-store shape.
type JSONParser struct{}

// Parse reads JSON from the reader and returns parsed records.
func (p *JSONParser) Parse(r io.Reader) ([]Record, error) {
	var rows []map[string]any

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&rows); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, Record{Kind: KindDocument, Fields: row})
	}

	return records, nil
}
