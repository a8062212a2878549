package stk500

import "fmt"

// Signature is a 3-byte AVR device signature
type Signature [SignatureSize]byte

func (s Signature) String() string {
	return fmt.Sprintf("0x%02x%02x%02x", s[0], s[1], s[2])
}

// Known AVR parts by signature, as shipped on Arduino-compatible boards
var parts = map[Signature]string{
	{0x1E, 0x93, 0x07}: "ATmega8",
	{0x1E, 0x93, 0x0A}: "ATmega88",
	{0x1E, 0x94, 0x06}: "ATmega168",
	{0x1E, 0x94, 0x0B}: "ATmega168P",
	{0x1E, 0x95, 0x14}: "ATmega328",
	{0x1E, 0x95, 0x0F}: "ATmega328P",
	{0x1E, 0x95, 0x87}: "ATmega32U4",
	{0x1E, 0x96, 0x08}: "ATmega640",
	{0x1E, 0x97, 0x03}: "ATmega1280",
	{0x1E, 0x98, 0x01}: "ATmega2560",
}

// LookupPart returns the part name for sig.
func LookupPart(sig Signature) (string, bool) {
	name, ok := parts[sig]
	return name, ok
}
