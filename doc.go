// Package alamode drives an AVR target attached to a Raspberry Pi over the
// Alamode header: the target is reset by pulsing a GPIO line through the
// BCM peripheral registers, then spoken to over the UART with the STK500v1
// bootloader protocol.
//
// # Basic Usage
//
//	prog, err := alamode.New(alamode.WithDevice("/dev/ttyAMA0"))
//	if errors.Is(err, gpio.ErrFatalSetup) {
//	    log.Fatal(err) // no /dev/mem access, nothing else can work
//	}
//	defer prog.Close()
//
//	if err := prog.Open(); err != nil {
//	    log.Fatal(err)
//	}
//
//	mem := stk500.NewMemory("signature", 3)
//	if _, err := prog.ReadSignature(mem); err != nil {
//	    log.Fatal(err)
//	}
//
// Open resets the target, flushes stale input and performs the sync
// handshake, in that order.
//
// # Concurrency
//
// A Programmer owns one register mapping and one serial link. It is not
// safe for concurrent use; run one Programmer per physical target.
package alamode
