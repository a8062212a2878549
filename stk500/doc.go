// Package stk500 implements the host side of the STK500v1 exchanges used by
// the Alamode programmer: the sync handshake and its variant of the
// signature read.
//
// Requests are a command byte followed by SyncCRCEOP. Responses are framed
// by RespInSync and a trailing RespOK status. The transport is any
// io.ReadWriter whose Read gives up after a timeout instead of blocking
// forever; serial.Port satisfies this.
//
//	mem := stk500.NewMemory("signature", 3)
//	n, err := stk500.ReadSignature(port, mem)
//	if errors.Is(err, stk500.ErrOutOfSync) {
//	    // resynchronize with GetSync and retry
//	}
//
// No retries are done here; retry policy belongs to the caller.
package stk500
