package routes

import (
	"errors"
	"fmt"
)

// ErrInvalidInputPath is matched by every path contract violation.
var ErrInvalidInputPath = errors.New("invalid input path")

// InvalidInputPathError reports a page path outside the pages root or
// without a recognized extension.
type InvalidInputPathError struct {
	Path   string
	Reason string
}

func (e *InvalidInputPathError) Error() string {
	return fmt.Sprintf("invalid input path %q: %s", e.Path, e.Reason)
}

// Is reports whether target is ErrInvalidInputPath.
func (e *InvalidInputPathError) Is(target error) bool {
	return target == ErrInvalidInputPath
}
