// Package gpio drives BCM283x GPIO lines on a Raspberry Pi host through the
// memory-mapped peripheral register block exposed by /dev/mem.
//
// The host model is resolved from /proc/cpuinfo, which selects the physical
// peripheral base address. The GPIO sub-block is mapped once and then
// accessed word by word:
//
//	platform := gpio.NewPlatform(gpio.DefaultCPUInfo)
//	block, err := gpio.MapRegisterBlock(platform.HardwareProfile(), gpio.DefaultMemDevice)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer block.Close()
//
//	drv, err := gpio.NewDriver(block, gpio.WithResetPin(16))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = drv.PulseResetLow()
//
// Mapping failures are returned as *SetupError and match ErrFatalSetup.
// There is no fallback for direct hardware access, so callers usually
// terminate on them.
//
// A Driver and its RegisterBlock are single-writer resources. No locking is
// done here, and concurrent use must be serialized by the caller.
package gpio
