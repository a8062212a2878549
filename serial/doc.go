// Package serial opens raw 8N1 serial links to a bootloader.
//
// Reads honour the configured timeout and return ErrReadTimeout when it
// expires, so callers using io.ReadFull never block indefinitely:
//
//	port, err := serial.Open("/dev/ttyAMA0",
//	    serial.WithBaudRate(115200),
//	    serial.WithReadTimeout(500*time.Millisecond),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
// The tty is opened exclusively (TIOCEXCL) for the lifetime of the Port.
package serial
