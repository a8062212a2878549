package gpio

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/golang/glog"
	"golang.org/x/sys/unix"
)

// DefaultMemDevice is the physical memory device
const DefaultMemDevice = "/dev/mem"

const (
	PageSize   = 4 * 1024
	BlockSize  = 4 * 1024
	BlockWords = BlockSize / 4

	// GPIOOffset is the GPIO sub-block offset from the peripheral base
	GPIOOffset uint32 = 0x200000
)

// RegisterBlock is a word-addressable view of a peripheral register block.
// Every access must reach the device; implementations may not cache,
// merge or reorder reads and writes.
type RegisterBlock interface {
	ReadWord(index int) uint32
	WriteWord(index int, value uint32)
}

// MappedBlock is a RegisterBlock backed by a /dev/mem mapping
type MappedBlock struct {
	fd    int
	mem   []byte
	words []uint32
	phys  uint32
}

// Ensure MappedBlock implements RegisterBlock at compile time
var _ RegisterBlock = (*MappedBlock)(nil)

// MapRegisterBlock maps the GPIO register block described by profile from
// memDevice. The returned block must be released with Close.
func MapRegisterBlock(profile HardwareProfile, memDevice string) (*MappedBlock, error) {
	phys := profile.GPIOBase()
	if phys%PageSize != 0 {
		return nil, &SetupError{Op: "map", Path: memDevice, Err: fmt.Errorf("%w: phys %#08x", ErrMisaligned, phys)}
	}

	fd, err := unix.Open(memDevice, unix.O_RDWR|unix.O_SYNC|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, &SetupError{Op: "open", Path: memDevice, Err: err}
	}

	mem, err := unix.Mmap(fd, int64(phys), BlockSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, &SetupError{Op: "mmap", Path: memDevice, Err: err}
	}

	base := uintptr(unsafe.Pointer(&mem[0]))
	if base%PageSize != 0 {
		unix.Munmap(mem)
		unix.Close(fd)
		return nil, &SetupError{Op: "mmap", Path: memDevice, Err: fmt.Errorf("%w: virt %#x", ErrMisaligned, base)}
	}

	glog.V(1).Infof("mapped GPIO block phys=%#08x size=%d from %s", phys, BlockSize, memDevice)

	return &MappedBlock{
		fd:    fd,
		mem:   mem,
		words: unsafe.Slice((*uint32)(unsafe.Pointer(&mem[0])), BlockWords),
		phys:  phys,
	}, nil
}

// ReadWord loads the register at word index. It panics if the block is
// closed or the index is outside the block.
func (b *MappedBlock) ReadWord(index int) uint32 {
	return atomic.LoadUint32(&b.words[index])
}

// WriteWord stores value to the register at word index
func (b *MappedBlock) WriteWord(index int, value uint32) {
	atomic.StoreUint32(&b.words[index], value)
}

// PhysAddr returns the physical address the block is mapped from.
func (b *MappedBlock) PhysAddr() uint32 {
	return b.phys
}

// Close unmaps the block and closes the memory device. Calling Close more
// than once returns ErrBlockClosed.
func (b *MappedBlock) Close() error {
	if b.mem == nil {
		return ErrBlockClosed
	}

	err := unix.Munmap(b.mem)
	b.mem = nil
	b.words = nil
	if cerr := unix.Close(b.fd); err == nil {
		err = cerr
	}
	return err
}
