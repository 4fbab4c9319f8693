package csvimport

// Row is one flat record keyed by header name. LineNumber is the 1-indexed
// position in the source file, header included, so the first data row is 2.
type Row struct {
	LineNumber int
	Columns    []string
	Data       map[string]string
}

// NewRow maps values onto columns. Every column gets an entry; absent
// cells become "". When a header name repeats, the first column wins.
func NewRow(lineNumber int, columns, values []string) *Row {
	data := make(map[string]string, len(columns))
	for i, col := range columns {
		if _, seen := data[col]; seen {
			continue
		}
		if i < len(values) {
			data[col] = values[i]
		} else {
			data[col] = ""
		}
	}
	return &Row{
		LineNumber: lineNumber,
		Columns:    columns,
		Data:       data,
	}
}

// Get returns the value of a column by exact header name, or "" when absent
func (r *Row) Get(column string) string {
	return r.Data[column]
}

// Has reports whether the header carried the column
func (r *Row) Has(column string) bool {
	_, ok := r.Data[column]
	return ok
}

// IsEmpty returns true if the row has no non-empty values
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// Values returns the row in column order
func (r *Row) Values() []string {
	out := make([]string, len(r.Columns))
	for i, col := range r.Columns {
		out[i] = r.Data[col]
	}
	return out
}
