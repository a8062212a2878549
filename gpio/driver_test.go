package gpio

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type regWrite struct {
	index int
	value uint32
}

// spyBlock is an in-memory RegisterBlock recording every write
type spyBlock struct {
	words  [BlockWords]uint32
	writes []regWrite
}

func (s *spyBlock) ReadWord(index int) uint32 { return s.words[index] }

func (s *spyBlock) WriteWord(index int, value uint32) {
	s.writes = append(s.writes, regWrite{index, value})
	// GPSET/GPCLR are write-only strobes; model their effect on GPLEV
	switch {
	case index >= regSet0 && index < regSet0+2:
		s.words[regLev0+index-regSet0] |= value
	case index >= regClr0 && index < regClr0+2:
		s.words[regLev0+index-regClr0] &^= value
	default:
		s.words[index] = value
	}
}

func (s *spyBlock) writesTo(index int) []uint32 {
	var values []uint32
	for _, w := range s.writes {
		if w.index == index {
			values = append(values, w.value)
		}
	}
	return values
}

func newTestDriver(t *testing.T, block RegisterBlock, opts ...Option) (*Driver, *[]time.Duration) {
	t.Helper()
	drv, err := NewDriver(block, opts...)
	require.NoError(t, err)

	var slept []time.Duration
	drv.sleep = func(d time.Duration) { slept = append(slept, d) }
	return drv, &slept
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	require.Equal(t, 16, config.Pin)
	require.Equal(t, 1000*time.Millisecond, config.LowDuration)
	require.Equal(t, 50*time.Millisecond, config.HighDuration)
}

func TestDriverOptions(t *testing.T) {
	_, err := NewDriver(&spyBlock{}, WithResetPin(54))
	require.ErrorIs(t, err, ErrInvalidPin)

	_, err = NewDriver(&spyBlock{}, WithLowDuration(0))
	require.ErrorIs(t, err, ErrInvalidPulse)

	_, err = NewDriver(&spyBlock{}, WithHighDuration(-time.Millisecond))
	require.ErrorIs(t, err, ErrInvalidPulse)

	drv, err := NewDriver(&spyBlock{},
		WithResetPin(18),
		WithLowDuration(200*time.Millisecond),
		WithHighDuration(0),
	)
	require.NoError(t, err)
	require.Equal(t, Config{Pin: 18, LowDuration: 200 * time.Millisecond}, drv.Config())
}

func TestConfigurePinAsOutputClearsFirst(t *testing.T) {
	block := &spyBlock{}
	// GPIO16 currently ALT0 (0b100), neighbours 15 and 17 set to output
	block.words[1] = 4<<18 | 1<<15 | 1<<21
	drv, _ := newTestDriver(t, block)

	require.NoError(t, drv.ConfigurePinAsOutput(16))

	require.Equal(t, []uint32{
		1<<15 | 1<<21,
		1<<15 | 1<<18 | 1<<21,
	}, block.writesTo(1))
}

func TestPulseResetLowTouchesOnlyPin(t *testing.T) {
	block := &spyBlock{}
	drv, slept := newTestDriver(t, block)

	require.NoError(t, drv.PulseResetLow())

	require.Equal(t, []uint32{1 << 16}, block.writesTo(regClr0))
	require.Equal(t, []uint32{1 << 16}, block.writesTo(regSet0))
	require.Empty(t, block.writesTo(regClr0+1))
	require.Empty(t, block.writesTo(regSet0+1))
	require.Equal(t, []time.Duration{time.Second, 50 * time.Millisecond}, *slept)

	// low before high
	var order []int
	for _, w := range block.writes {
		if w.index == regClr0 || w.index == regSet0 {
			order = append(order, w.index)
		}
	}
	require.Equal(t, []int{regClr0, regSet0}, order)

	high, err := drv.PinLevel(16)
	require.NoError(t, err)
	require.True(t, high)
}

func TestPulseSecondBank(t *testing.T) {
	block := &spyBlock{}
	drv, slept := newTestDriver(t, block)

	require.NoError(t, drv.Pulse(40, 10*time.Millisecond, time.Millisecond))

	require.Equal(t, []uint32{1 << 8}, block.writesTo(regClr0+1))
	require.Equal(t, []uint32{1 << 8}, block.writesTo(regSet0+1))
	require.Empty(t, block.writesTo(regClr0))
	require.Equal(t, []uint32{0, 1 << 0}, block.writesTo(4))
	require.Equal(t, []time.Duration{10 * time.Millisecond, time.Millisecond}, *slept)
}

func TestInvalidPin(t *testing.T) {
	block := &spyBlock{}
	drv, _ := newTestDriver(t, block)

	require.ErrorIs(t, drv.Pulse(-1, time.Millisecond, 0), ErrInvalidPin)
	require.ErrorIs(t, drv.SetPinFunction(54, FuncOutput), ErrInvalidPin)
	require.ErrorIs(t, drv.ClearPinsMask(2, 1), ErrInvalidPin)
	_, err := drv.PinLevel(99)
	require.ErrorIs(t, err, ErrInvalidPin)
	require.Empty(t, block.writes)
}

func TestMapRegisterBlockMissingDevice(t *testing.T) {
	profile := HardwareProfile{PeripheralBase: LegacyPeripheralBase}
	_, err := MapRegisterBlock(profile, t.TempDir()+"/mem")

	require.ErrorIs(t, err, ErrFatalSetup)
	var setupErr *SetupError
	require.ErrorAs(t, err, &setupErr)
	require.Equal(t, "open", setupErr.Op)
}

func TestMapRegisterBlockMisaligned(t *testing.T) {
	profile := HardwareProfile{PeripheralBase: LegacyPeripheralBase + 0x10}
	_, err := MapRegisterBlock(profile, DefaultMemDevice)

	require.ErrorIs(t, err, ErrFatalSetup)
	require.ErrorIs(t, err, ErrMisaligned)
}

// sparseMemDevice stands in for /dev/mem: a sparse file large enough to
// cover the legacy GPIO block
func sparseMemDevice(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mem")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(int64(LegacyPeripheralBase+GPIOOffset)+BlockSize))
	require.NoError(t, f.Close())
	return path
}

func TestMappedBlockLifecycle(t *testing.T) {
	memDevice := sparseMemDevice(t)
	profile := HardwareProfile{PeripheralBase: LegacyPeripheralBase}

	for i := 0; i < 3; i++ {
		block, err := MapRegisterBlock(profile, memDevice)
		require.NoError(t, err)
		require.Equal(t, uint32(0x20200000), block.PhysAddr())

		drv, _ := newTestDriver(t, block)
		require.NoError(t, drv.ConfigurePinAsOutput(16))
		require.Equal(t, uint32(1<<18), block.ReadWord(1))

		require.NoError(t, block.Close())
		require.ErrorIs(t, block.Close(), ErrBlockClosed)
	}

	// the mapping is shared, so register writes reach the device
	f, err := os.Open(memDevice)
	require.NoError(t, err)
	defer f.Close()

	var word [4]byte
	_, err = f.ReadAt(word[:], int64(0x20200000+4))
	require.NoError(t, err)
	require.Equal(t, uint32(1<<18), binary.NativeEndian.Uint32(word[:]))
}
