// Package bulk holds the domain model of spreadsheet imports: the reconciled
// catalog items and orders, the advisory diagnostics collected on the way
// and the history of committed imports.
package bulk

import "fmt"

// Diagnostic is a non-fatal, human-readable finding. Diagnostics never stop
// an import; they are shown to the user before commit.
type Diagnostic struct {
	Message string `json:"message"`
}

// NewDiagnostic creates a diagnostic from a format string
func NewDiagnostic(format string, args ...any) Diagnostic {
	return Diagnostic{Message: fmt.Sprintf(format, args...)}
}

// RowDiagnostic creates a diagnostic that points at a source row
func RowDiagnostic(line int, format string, args ...any) Diagnostic {
	return Diagnostic{Message: fmt.Sprintf("Row %d: ", line) + fmt.Sprintf(format, args...)}
}

// String implements fmt.Stringer
func (d Diagnostic) String() string {
	return d.Message
}

// Messages flattens diagnostics into their messages, preserving order.
// It never returns nil so JSON payloads carry [] instead of null.
func Messages(diags []Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Message
	}
	return out
}
