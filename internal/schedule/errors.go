package schedule

import "fmt"

// InvalidInputError reports an input field that is non-numeric or out of
// range. Validation aborts at the first bad field.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}
