package stk500

// Command codes
const (
	// CmdGetSync checks that the bootloader is listening
	CmdGetSync = 0x30

	// CmdReadSign reads the 3-byte device signature
	CmdReadSign = 0x75
)

// Framing and response sentinels, fixed by the target firmware
const (
	// SyncCRCEOP terminates every request
	SyncCRCEOP = 0x20

	// RespInSync opens every response while framing is aligned
	RespInSync = 0x14

	// RespNoSync is sent instead of RespInSync when framing is lost
	RespNoSync = 0x15

	// RespOK closes a response for a command that succeeded
	RespOK = 0x10
)

const (
	// SignatureSize is the number of signature bytes
	SignatureSize = 3

	// signatureResponseSize is InSync + 3 signature bytes + OK
	signatureResponseSize = 1 + SignatureSize + 1

	// DefaultSyncAttempts matches the bootloader handshake retry count
	DefaultSyncAttempts = 10
)
