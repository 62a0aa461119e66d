package dataset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDatasetNotFound indicates the dataset doesn't exist or belongs to
	// a different owner. The two cases are deliberately indistinguishable.
	ErrDatasetNotFound = errors.New("dataset not found")
	// ErrInvalidInput indicates invalid input for dataset operations.
	ErrInvalidInput = errors.New("invalid dataset input")
)

// ValidationKind identifies the category of a validation failure.
type ValidationKind string

const (
	KindMissingColumns ValidationKind = "missing_columns"
	KindEmptyTable     ValidationKind = "empty_table"
	KindTooManyRows    ValidationKind = "too_many_rows"
	KindInvalidRows    ValidationKind = "invalid_rows"
)

// RowReason identifies why a single row failed validation.
type RowReason string

const (
	ReasonEmpty      RowReason = "empty"
	ReasonNotANumber RowReason = "not_a_number"
	ReasonNegative   RowReason = "negative"
)

// RowError describes one failed cell. Row is the zero-based data row index
// (the header does not count).
type RowError struct {
	Row    int       `json:"row"`
	Column string    `json:"column"`
	Reason RowReason `json:"reason"`
}

// ValidationError is the structured rejection produced by Validate. Exactly
// one kind is set; the auxiliary fields are populated per kind.
type ValidationError struct {
	Kind           ValidationKind `json:"kind"`
	MissingColumns []string       `json:"missing_columns,omitempty"`
	RowCount       int            `json:"row_count,omitempty"`
	RowLimit       int            `json:"row_limit,omitempty"`
	Rows           []RowError     `json:"rows,omitempty"`
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindMissingColumns:
		return fmt.Sprintf("missing required columns: %s", strings.Join(e.MissingColumns, ", "))
	case KindEmptyTable:
		return "table contains no data rows"
	case KindTooManyRows:
		return fmt.Sprintf("table has %d rows, maximum allowed is %d", e.RowCount, e.RowLimit)
	case KindInvalidRows:
		return fmt.Sprintf("%d row(s) failed validation", len(e.Rows))
	default:
		return "validation failed"
	}
}
