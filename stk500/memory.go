package stk500

// Memory describes one memory space of the target device. The caller owns
// the buffer; operations only write into it.
type Memory struct {
	Desc string
	Size int
	Buf  []byte
}

// NewMemory allocates a Memory of size bytes.
func NewMemory(desc string, size int) *Memory {
	return &Memory{Desc: desc, Size: size, Buf: make([]byte, size)}
}

// capacity is the usable size, bounded by both Size and the buffer
func (m *Memory) capacity() int {
	if len(m.Buf) < m.Size {
		return len(m.Buf)
	}
	return m.Size
}
