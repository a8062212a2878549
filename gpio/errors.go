package gpio

import (
	"errors"
	"fmt"
)

var (
	ErrFatalSetup   = errors.New("gpio: fatal setup failure")
	ErrInvalidPin   = errors.New("gpio: invalid pin number")
	ErrMisaligned   = errors.New("gpio: register block not page aligned")
	ErrInvalidPulse = errors.New("gpio: invalid reset pulse duration")
	ErrBlockClosed  = errors.New("gpio: register block is closed")
)

// SetupError reports a failure to reach the peripheral registers. It always
// matches ErrFatalSetup.
type SetupError struct {
	Op   string
	Path string
	Err  error
}

func (e *SetupError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("gpio setup: %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("gpio setup: %s: %v", e.Op, e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

func (e *SetupError) Is(target error) bool { return target == ErrFatalSetup }
