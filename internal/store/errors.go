package store

import (
	"errors"
	"strings"
)

// ErrDuplicateName is returned when registering a name that already exists.
var ErrDuplicateName = errors.New("name already registered")

// ValidationErrors collects every violated input rule so the caller can
// report them all in a single response.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return strings.Join(v, "; ")
}
