package extract

import "fmt"

// ErrorKind partitions extraction failures. A failed file aborts that
// file only; the batch continues.
type ErrorKind string

const (
	EmptyFile         ErrorKind = "EMPTY_FILE"
	NoUsableRows      ErrorKind = "NO_USABLE_ROWS"
	UnsupportedFormat ErrorKind = "UNSUPPORTED_FORMAT"
)

// Error is a per-file extraction failure.
type Error struct {
	Kind     ErrorKind
	FileName string
	Cause    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.FileName)
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(kind ErrorKind, fileName string, cause error) *Error {
	return &Error{Kind: kind, FileName: fileName, Cause: cause}
}
