package dataset

// Table is a decoded 2-D table of string cells: a header row of column
// names plus zero or more data rows. It is transient, produced by the CSV
// decoder and consumed only by Validate.
type Table struct {
	Header []string
	Rows   [][]string
}
