package characters

import "fmt"

// MalformedRowError reports the first dataset row that could not be loaded.
// Row is 1-based and counts data rows only (the CSV header is not a row).
type MalformedRowError struct {
	Row   int
	Field string
	Value string
	Err   error
}

func (e *MalformedRowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("row %d: invalid %s %q: %v", e.Row, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("row %d: invalid %s %q", e.Row, e.Field, e.Value)
}

func (e *MalformedRowError) Unwrap() error { return e.Err }
