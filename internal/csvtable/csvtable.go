// Package csvtable decodes uploaded CSV payloads into the raw table the
// dataset validator consumes. It performs no schema checks of its own.
package csvtable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyFile indicates the payload contained no CSV records at all, not
// even a header row.
var ErrEmptyFile = errors.New("csv file is empty")

// Table mirrors dataset.Table without importing it, keeping the decoder
// free of domain dependencies.
type Table struct {
	Header []string
	Rows   [][]string
}

// Decode reads an entire CSV payload. The first record becomes the header;
// rows with a field count different from the header are kept as-is and left
// to schema validation. A UTF-8 BOM on the first header cell is stripped.
func Decode(r io.Reader) (Table, error) {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	csvr.LazyQuotes = true

	records, err := csvr.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return Table{}, ErrEmptyFile
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	return Table{Header: header, Rows: records[1:]}, nil
}
