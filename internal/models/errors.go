package models

import "fmt"

// MissingFieldError reports a field that cannot be defaulted and was not
// supplied by the caller or any of its legacy aliases.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field missing: %s", e.Field)
}
