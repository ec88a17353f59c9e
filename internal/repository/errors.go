package repository

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUnknownDomain = errors.New("unknown domain")
)

// ValidationError lists the fields of a record that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid record: %s", strings.Join(e.Fields, "; "))
}
