package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/pomolit/internal/logger"
)

type hinted struct {
	err  error
	hint string
}

func (h *hinted) Error() string { return h.err.Error() }
func (h *hinted) Unwrap() error { return h.err }

// WithHint attaches a suggested next step shown by Format. The wrapped
// error still matches errors.Is and errors.As.
func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return &hinted{err: err, hint: hint}
}

// Hint returns the innermost hint attached to err, if any.
func Hint(err error) string {
	var h *hinted
	if errors.As(err, &h) {
		if inner := Hint(h.err); inner != "" {
			return inner
		}
		return h.hint
	}
	return ""
}

// Format renders err for the terminal with an "Error: " prefix and its
// hint on a second line.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

// BestEffort records the failure of an operation whose result the caller
// does not depend on. It reports whether err was non-nil.
func BestEffort(operation string, err error, keyvals ...interface{}) bool {
	if err == nil {
		return false
	}
	logger.Warn(operation+" failed", append([]interface{}{"error", err}, keyvals...)...)
	return true
}

// Fatal logs err, prints it to stderr and exits with status 1. A nil err
// is ignored.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}
