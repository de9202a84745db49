package utils

import "fmt"

// XError tags a low level failure with what was being attempted.
// Meta is usually the underlying error, which Unwrap exposes.
type XError struct {
	Reason string
	Meta   any
}

func (xe XError) Error() string {
	if xe.Meta == nil {
		return "xerror: " + xe.Reason
	}
	return fmt.Sprintf("xerror: %v: %v", xe.Reason, xe.Meta)
}

func (xe XError) Unwrap() error {
	err, _ := xe.Meta.(error)
	return err
}

func (xe XError) ToError() error {
	return xe
}
