package log

import (
	"fmt"
)

// Common errors that can happen on startup.
var (
	ErrMalformedConfig = newFatalError("ERR_MALFORMED_CONFIG", "config file is malformed: %v")
	ErrBadFlags        = newFatalError("ERR_BAD_FLAGS", "bad CLI flags: %v")
	ErrGenesis         = newFatalError("ERR_GENESIS", "could not apply genesis: %v")
	ErrReadBlocks      = newFatalError("ERR_READ_BLOCKS", "could not read blocks from %v: %v")
	ErrRecovery        = newFatalError("ERR_RECOVERY", "could not recover from checkpoint %v: %v")
)

// FatalError describes an error after which the process can't continue. Code is a
// stable identifier that scripts around the binary can match on.
type FatalError struct {
	Code string
	Text string
	Args []any
}

func newFatalError(code, text string) func(args ...any) *FatalError {
	return func(args ...any) *FatalError {
		return &FatalError{
			Code: code,
			Text: text,
			Args: args,
		}
	}
}

func (fe FatalError) Error() string {
	return fmt.Sprintf(fe.Text, fe.Args...)
}

// Unwrap returns the errors passed as arguments, so that errors.Is can reach them.
func (fe FatalError) Unwrap() []error {
	var errs []error
	for _, arg := range fe.Args {
		if err, ok := arg.(error); ok {
			errs = append(errs, err)
		}
	}
	return errs
}
