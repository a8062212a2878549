package alamode

import "errors"

var (
	ErrInvalidConfig = errors.New("alamode: invalid configuration")
	ErrNotOpen       = errors.New("alamode: programmer is not open")
	ErrAlreadyOpen   = errors.New("alamode: programmer is already open")
	ErrClosed        = errors.New("alamode: programmer is closed")
)
