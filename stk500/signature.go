package stk500

import (
	"fmt"
	"io"

	"github.com/golang/glog"
)

// ReadSignature reads the device signature into the first three bytes of
// mem and returns the number of bytes stored.
//
// The response to CmdReadSign is fixed at five bytes with no length field:
//
//	[RespInSync][SIG0][SIG1][SIG2][RespOK]
//
// mem is only written once the whole response has been validated.
func ReadSignature(rw io.ReadWriter, mem *Memory) (int, error) {
	const op = "read signature"

	if mem == nil || mem.capacity() < SignatureSize {
		e := &CapacityError{Need: SignatureSize}
		if mem != nil {
			e.Memory, e.Size = mem.Desc, mem.capacity()
		}
		return 0, e
	}

	if err := send(rw, op, CmdReadSign, SyncCRCEOP); err != nil {
		return 0, err
	}

	var resp [signatureResponseSize]byte
	if err := recv(rw, op, resp[:]); err != nil {
		return 0, err
	}

	if err := checkFrame(op, resp[0], resp[len(resp)-1]); err != nil {
		return 0, err
	}

	copy(mem.Buf, resp[1:1+SignatureSize])
	return SignatureSize, nil
}

// GetSync performs the sync handshake, trying up to attempts times. Stale
// bytes should be flushed from the link before calling it.
func GetSync(rw io.ReadWriter, attempts int) error {
	const op = "get sync"

	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = send(rw, op, CmdGetSync, SyncCRCEOP); err != nil {
			return err
		}

		var resp [2]byte
		if err = recv(rw, op, resp[:]); err != nil {
			glog.V(1).Infof("%s attempt %d/%d: %v", op, i+1, attempts, err)
			continue
		}
		if err = checkFrame(op, resp[0], resp[1]); err != nil {
			glog.V(1).Infof("%s attempt %d/%d: %v", op, i+1, attempts, err)
			continue
		}
		return nil
	}
	return fmt.Errorf("no sync after %d attempts: %w", attempts, err)
}

// checkFrame validates the leading sync byte and trailing status byte
func checkFrame(op string, first, last byte) error {
	if first == RespNoSync {
		return ErrOutOfSync
	}
	if first != RespInSync {
		return &ProtocolError{Op: op, Expected: RespInSync, Actual: first}
	}
	if last != RespOK {
		return &ProtocolError{Op: op, Expected: RespOK, Actual: last}
	}
	return nil
}

// drainer is implemented by transports that can block until written
// bytes have left the line, such as serial.Port
type drainer interface {
	Drain() error
}

// send writes frame and, when w is a drainer, waits for it to be
// transmitted before the response is read
func send(w io.Writer, op string, frame ...byte) error {
	glog.V(2).Infof("%s: send % x", op, frame)
	n, err := w.Write(frame)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if n != len(frame) {
		return &TransportError{Op: op, Err: io.ErrShortWrite}
	}
	if d, ok := w.(drainer); ok {
		if err := d.Drain(); err != nil {
			return &TransportError{Op: op, Err: err}
		}
	}
	return nil
}

func recv(r io.Reader, op string, buf []byte) error {
	n, err := io.ReadFull(r, buf)
	glog.V(2).Infof("%s: recv % x", op, buf[:n])
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	return nil
}
