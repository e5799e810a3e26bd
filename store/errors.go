package store

import "fmt"

// CorruptFileError is returned when the document exists but cannot be read,
// decoded or validated.
type CorruptFileError struct {
	Path string
	Err  error
}

func (e *CorruptFileError) Error() string {
	return fmt.Sprintf("%s: cannot load saved data: %v", e.Path, e.Err)
}

func (e *CorruptFileError) Unwrap() error {
	return e.Err
}
