package alamode

import (
	"errors"
	"fmt"
	"io"

	"github.com/golang/glog"

	"github.com/allbin/go-alamode/gpio"
	"github.com/allbin/go-alamode/serial"
	"github.com/allbin/go-alamode/stk500"
)

// Programmer ties the GPIO reset line and the serial bootloader link of
// one target together
type Programmer struct {
	config  Config
	profile gpio.HardwareProfile
	block   io.Closer // nil when the register block is caller-owned
	reset   *gpio.Driver
	port    serial.Port
	closed  bool

	openPort func(device string, opts ...serial.Option) (serial.Port, error)
}

// New resolves the host platform and maps the GPIO registers. Mapping
// failures are returned as *gpio.SetupError; deciding to exit is up to the
// caller.
func New(opts ...Option) (*Programmer, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	p := &Programmer{
		config:   config,
		openPort: serial.Open,
	}

	p.profile = gpio.NewPlatform(config.CPUInfo).HardwareProfile()

	block := config.block
	if block == nil {
		mapped, err := gpio.MapRegisterBlock(p.profile, config.MemDevice)
		if err != nil {
			return nil, err
		}
		glog.V(1).Infof("GPIO%d reset via registers at %#08x", config.ResetPin, mapped.PhysAddr())
		block, p.block = mapped, mapped
	}

	reset, err := gpio.NewDriver(block,
		gpio.WithResetPin(config.ResetPin),
		gpio.WithLowDuration(config.LowDuration),
		gpio.WithHighDuration(config.HighDuration),
	)
	if err != nil {
		if p.block != nil {
			p.block.Close()
		}
		return nil, err
	}
	p.reset = reset

	return p, nil
}

// Profile returns the resolved host hardware profile.
func (p *Programmer) Profile() gpio.HardwareProfile {
	return p.profile
}

// Reset pulses the target's reset line.
func (p *Programmer) Reset() error {
	if p.closed {
		return ErrClosed
	}
	return p.reset.PulseResetLow()
}

// Open opens the serial link, resets the target, discards anything the
// target sent before reset and synchronizes with its bootloader.
func (p *Programmer) Open() error {
	if p.closed {
		return ErrClosed
	}
	if p.port != nil {
		return ErrAlreadyOpen
	}

	portOpts := []serial.Option{serial.WithBaudRate(p.config.BaudRate)}
	if p.config.ReadTimeout > 0 {
		portOpts = append(portOpts, serial.WithReadTimeout(p.config.ReadTimeout))
	}
	if p.config.SyncWrite {
		portOpts = append(portOpts, serial.WithSyncWrite())
	}

	port, err := p.openPort(p.config.Device, portOpts...)
	if err != nil {
		return err
	}

	if err := p.handshake(port); err != nil {
		port.Close()
		return err
	}

	glog.Infof("in sync with bootloader on %s", p.config.Device)
	p.port = port
	return nil
}

func (p *Programmer) handshake(port serial.Port) error {
	if err := port.FlushOutput(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if err := p.reset.PulseResetLow(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if err := discardInput(port); err != nil {
		return fmt.Errorf("drain: %w", err)
	}
	if err := stk500.GetSync(port, p.config.SyncAttempts); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	return nil
}

// discardInput drops buffered input, then keeps reading until the line
// stays quiet for one read timeout
func discardInput(port serial.Port) error {
	if err := port.FlushInput(); err != nil {
		return err
	}

	buf := make([]byte, 64)
	discarded := 0
	for {
		n, err := port.Read(buf)
		discarded += n
		if errors.Is(err, serial.ErrReadTimeout) {
			if discarded > 0 {
				glog.V(2).Infof("drain: discarded %d bytes", discarded)
			}
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// ReadSignature reads the target's signature bytes into mem.
func (p *Programmer) ReadSignature(mem *stk500.Memory) (int, error) {
	if p.port == nil {
		return 0, ErrNotOpen
	}
	return stk500.ReadSignature(p.port, mem)
}

// Close closes the serial link and releases the register mapping.
func (p *Programmer) Close() error {
	if p.closed {
		return ErrClosed
	}
	p.closed = true

	var errs []error
	if p.port != nil {
		errs = append(errs, p.port.Close())
		p.port = nil
	}
	if p.block != nil {
		errs = append(errs, p.block.Close())
		p.block = nil
	}
	return errors.Join(errs...)
}
