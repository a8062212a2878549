package stk500

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfSync means the target answered RespNoSync. The link has to be
	// resynchronized before further commands.
	ErrOutOfSync = errors.New("stk500: programmer is out of sync")
)

// ProtocolError reports an unexpected framing or status byte
type ProtocolError struct {
	Op       string
	Expected byte
	Actual   byte
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("stk500: %s: protocol error, expect=0x%02x, resp=0x%02x", e.Op, e.Expected, e.Actual)
}

// TransportError wraps a send or receive failure on the serial link
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("stk500: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// CapacityError means the target memory buffer cannot hold the result
type CapacityError struct {
	Memory string
	Size   int
	Need   int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("stk500: memory %q too small: size %d, need %d", e.Memory, e.Size, e.Need)
}

// IsProtocolError returns true if err is or wraps a ProtocolError.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}
