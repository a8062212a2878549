package gpio

import (
	"time"

	"github.com/golang/glog"
)

// Register word indices within the GPIO block
const (
	regFSel0 = 0  // GPFSEL0..5, 10 pins per register
	regSet0  = 7  // GPSET0..1, write-1-to-set
	regClr0  = 10 // GPCLR0..1, write-1-to-clear
	regLev0  = 13 // GPLEV0..1, read-only
)

// MaxPin is the highest BCM GPIO line number
const MaxPin = 53

// PinFunction is a 3-bit GPFSEL function code
type PinFunction uint32

const (
	FuncInput  PinFunction = 0
	FuncOutput PinFunction = 1
)

const fselMask = 7

// Default reset pulse, calibrated for the Alamode reset capacitor
const (
	DefaultResetPin     = 16
	DefaultLowDuration  = 1000 * time.Millisecond
	DefaultHighDuration = 50 * time.Millisecond
)

// Config holds the reset pulse configuration
type Config struct {
	Pin          int
	LowDuration  time.Duration
	HighDuration time.Duration
}

// Option is a functional option for configuring a Driver
type Option func(*Config) error

// DefaultConfig returns the Alamode reset pulse: GPIO16, 1s low, 50ms high
func DefaultConfig() Config {
	return Config{
		Pin:          DefaultResetPin,
		LowDuration:  DefaultLowDuration,
		HighDuration: DefaultHighDuration,
	}
}

// WithResetPin sets the GPIO line wired to the target's reset
func WithResetPin(pin int) Option {
	return func(c *Config) error {
		if pin < 0 || pin > MaxPin {
			return ErrInvalidPin
		}
		c.Pin = pin
		return nil
	}
}

// WithLowDuration sets how long reset is held low
func WithLowDuration(d time.Duration) Option {
	return func(c *Config) error {
		if d <= 0 {
			return ErrInvalidPulse
		}
		c.LowDuration = d
		return nil
	}
}

// WithHighDuration sets the settle time after reset is released
func WithHighDuration(d time.Duration) Option {
	return func(c *Config) error {
		if d < 0 {
			return ErrInvalidPulse
		}
		c.HighDuration = d
		return nil
	}
}

// Driver toggles GPIO lines through a RegisterBlock
type Driver struct {
	block  RegisterBlock
	config Config
	sleep  func(time.Duration)
}

// NewDriver returns a Driver over block. The block must stay mapped for the
// lifetime of the Driver.
func NewDriver(block RegisterBlock, opts ...Option) (*Driver, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	return &Driver{
		block:  block,
		config: config,
		sleep:  time.Sleep,
	}, nil
}

// Config returns the driver configuration.
func (d *Driver) Config() Config {
	return d.config
}

// SetPinFunction replaces the 3-bit function select field of pin
func (d *Driver) SetPinFunction(pin int, fn PinFunction) error {
	if err := checkPin(pin); err != nil {
		return err
	}

	index, shift := regFSel0+pin/10, uint(pin%10)*3
	word := d.block.ReadWord(index)
	word = word&^(fselMask<<shift) | uint32(fn&fselMask)<<shift
	d.block.WriteWord(index, word)
	return nil
}

// ConfigurePinAsOutput switches pin to output. The field is cleared to
// input first; assigning output over a non-zero field is undefined on the
// hardware, so this is always two separate register writes.
func (d *Driver) ConfigurePinAsOutput(pin int) error {
	if err := d.SetPinFunction(pin, FuncInput); err != nil {
		return err
	}

	index, shift := regFSel0+pin/10, uint(pin%10)*3
	d.block.WriteWord(index, d.block.ReadWord(index)|uint32(FuncOutput)<<shift)
	return nil
}

// ClearPinsMask drives the lines set in mask low on bank (0 or 1)
func (d *Driver) ClearPinsMask(bank int, mask uint32) error {
	if bank < 0 || bank > MaxPin/32 {
		return ErrInvalidPin
	}
	glog.V(2).Infof("GPCLR%d <- %#08x", bank, mask)
	d.block.WriteWord(regClr0+bank, mask)
	return nil
}

// SetPinsMask drives the lines set in mask high on bank (0 or 1)
func (d *Driver) SetPinsMask(bank int, mask uint32) error {
	if bank < 0 || bank > MaxPin/32 {
		return ErrInvalidPin
	}
	glog.V(2).Infof("GPSET%d <- %#08x", bank, mask)
	d.block.WriteWord(regSet0+bank, mask)
	return nil
}

// PinLevel reports whether pin currently reads high
func (d *Driver) PinLevel(pin int) (bool, error) {
	if err := checkPin(pin); err != nil {
		return false, err
	}
	return d.block.ReadWord(regLev0+pin/32)&pinMask(pin) != 0, nil
}

// PulseResetLow resets the target on the configured pin using the
// configured low and high durations.
func (d *Driver) PulseResetLow() error {
	return d.Pulse(d.config.Pin, d.config.LowDuration, d.config.HighDuration)
}

// Pulse switches pin to output, drives it low for low and then high for
// high. Exactly one GPCLR and one GPSET write are issued, and both touch
// only the pin's bit.
func (d *Driver) Pulse(pin int, low, high time.Duration) error {
	if err := d.ConfigurePinAsOutput(pin); err != nil {
		return err
	}

	glog.V(1).Infof("reset pulse on GPIO%d: low %v, high %v", pin, low, high)

	if err := d.ClearPinsMask(pin/32, pinMask(pin)); err != nil {
		return err
	}
	d.sleep(low)

	if err := d.SetPinsMask(pin/32, pinMask(pin)); err != nil {
		return err
	}
	d.sleep(high)
	return nil
}

func checkPin(pin int) error {
	if pin < 0 || pin > MaxPin {
		return ErrInvalidPin
	}
	return nil
}

func pinMask(pin int) uint32 {
	return 1 << uint(pin%32)
}
