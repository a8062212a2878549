package alamode

import (
	"time"

	"github.com/allbin/go-alamode/gpio"
	"github.com/allbin/go-alamode/serial"
	"github.com/allbin/go-alamode/stk500"
)

// Config holds the programmer configuration
type Config struct {
	Device       string
	BaudRate     int
	ReadTimeout  time.Duration
	CPUInfo      string
	MemDevice    string
	ResetPin     int
	LowDuration  time.Duration
	HighDuration time.Duration
	SyncAttempts int
	SyncWrite    bool

	// block replaces the /dev/mem mapping when set
	block gpio.RegisterBlock
}

// Option is a functional option for configuring a Programmer
type Option func(*Config) error

// DefaultConfig returns the Alamode defaults: ttyAMA0 at 115200, reset on
// GPIO16 held low for 1s then high for 50ms.
func DefaultConfig() Config {
	return Config{
		Device:       serial.DefaultDevice,
		BaudRate:     115200,
		ReadTimeout:  serial.DefaultConfig().ReadTimeout,
		CPUInfo:      gpio.DefaultCPUInfo,
		MemDevice:    gpio.DefaultMemDevice,
		ResetPin:     gpio.DefaultResetPin,
		LowDuration:  gpio.DefaultLowDuration,
		HighDuration: gpio.DefaultHighDuration,
		SyncAttempts: stk500.DefaultSyncAttempts,
	}
}

// WithDevice sets the serial device the target is attached to
func WithDevice(device string) Option {
	return func(c *Config) error {
		if device == "" {
			return ErrInvalidConfig
		}
		c.Device = device
		return nil
	}
}

// WithBaudRate sets the bootloader baud rate
func WithBaudRate(rate int) Option {
	return func(c *Config) error {
		if rate <= 0 {
			return ErrInvalidConfig
		}
		c.BaudRate = rate
		return nil
	}
}

// WithReadTimeout sets the per-read serial timeout
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		c.ReadTimeout = timeout
		return nil
	}
}

// WithCPUInfo sets the platform description source
func WithCPUInfo(path string) Option {
	return func(c *Config) error {
		c.CPUInfo = path
		return nil
	}
}

// WithMemDevice sets the physical memory device
func WithMemDevice(path string) Option {
	return func(c *Config) error {
		c.MemDevice = path
		return nil
	}
}

// WithResetPin sets the GPIO line wired to the target's reset
func WithResetPin(pin int) Option {
	return func(c *Config) error {
		if pin < 0 || pin > gpio.MaxPin {
			return gpio.ErrInvalidPin
		}
		c.ResetPin = pin
		return nil
	}
}

// WithResetPulse sets how long reset is held low and the settle time after
func WithResetPulse(low, high time.Duration) Option {
	return func(c *Config) error {
		if low <= 0 || high < 0 {
			return gpio.ErrInvalidPulse
		}
		c.LowDuration = low
		c.HighDuration = high
		return nil
	}
}

// WithSyncAttempts sets how many sync handshakes Open tries
func WithSyncAttempts(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return ErrInvalidConfig
		}
		c.SyncAttempts = n
		return nil
	}
}

// WithSyncWrite opens the serial device with O_SYNC so each request has
// been handed to the UART before Write returns
func WithSyncWrite() Option {
	return func(c *Config) error {
		c.SyncWrite = true
		return nil
	}
}

// WithRegisterBlock drives GPIO through block instead of mapping /dev/mem.
// The Programmer does not close it.
func WithRegisterBlock(block gpio.RegisterBlock) Option {
	return func(c *Config) error {
		c.block = block
		return nil
	}
}
