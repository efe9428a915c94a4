package search

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrProgressRequiresJSON is returned when progress images are requested
// without JSON output.
var ErrProgressRequiresJSON = errors.New("--progress-images option requires --json option too")

// UsageError reports a problem with how the command was invoked. It is
// raised before any file is read.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// Usagef formats a UsageError.
func Usagef(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// IsUsage reports whether err is, or wraps, a UsageError.
func IsUsage(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

// CompilePattern compiles a prompt pattern, reporting failures as usage errors.
func CompilePattern(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, Usagef("invalid prompt pattern: %w", err)
	}
	return re, nil
}
