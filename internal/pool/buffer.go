package pool

import (
	"io"
	"sync"
)

// Default sizes of the pooled buffers.
const (
	FormatBufferDefaultSize   = 256             // 256B, one formatted message
	FormatBufferMaxThreshold  = 1024 * 64       // 64KiB
	RenderBufferDefaultSize   = 1024 * 64       // 64KiB, a batch of rendered records
	RenderBufferMaxThreshold  = 1024 * 1024 * 4 // 4MiB
	smallBufferGrowthBoundary = 4 * FormatBufferDefaultSize
)

// Buffer is a growable byte buffer used as the output of formatting operations.
//
// The exported B field allows append-style APIs to write into the buffer directly:
//
//	buf.B, err = v.AppendFormat(buf.B, spec)
type Buffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewBuffer creates a new Buffer with the specified initial capacity.
func NewBuffer(defaultSize int) *Buffer {
	return &Buffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the written region of the buffer.
func (b *Buffer) Bytes() []byte {
	return b.B
}

// String returns a copy of the written region as a string.
func (b *Buffer) String() string {
	return string(b.B)
}

// Reset empties the buffer but retains the allocated memory for reuse.
func (b *Buffer) Reset() {
	b.B = b.B[:0]
}

// Len returns the number of written bytes.
func (b *Buffer) Len() int {
	return len(b.B)
}

// Cap returns the capacity of the buffer.
func (b *Buffer) Cap() int {
	return cap(b.B)
}

// Grow ensures the buffer can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// The growth strategy is as follows:
//   - For small buffers, grow by FormatBufferDefaultSize to minimize reallocations.
//   - For larger buffers, grow by 25% of current capacity to balance memory usage and reallocation cost.
func (b *Buffer) Grow(requiredBytes int) {
	if b.Cap()-b.Len() >= requiredBytes {
		return
	}

	growBy := FormatBufferDefaultSize
	if b.Cap() > smallBufferGrowthBoundary {
		growBy = b.Cap() / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(b.B), len(b.B)+growBy)
	copy(newBuf, b.B)
	b.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
func (b *Buffer) Write(data []byte) (int, error) {
	b.Grow(len(data))
	b.B = append(b.B, data...)

	return len(data), nil
}

// WriteByte appends a single byte to the buffer.
func (b *Buffer) WriteByte(c byte) error {
	b.Grow(1)
	b.B = append(b.B, c)

	return nil
}

// WriteTo writes the contents of the buffer to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.B)
	return int64(n), err
}

// BufferPool is a pool of Buffers to minimize allocations.
//
// Buffers whose capacity grew beyond maxThreshold are dropped on Put instead of
// being retained, so one oversized message does not pin memory for the life of
// the process.
type BufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewBufferPool creates a new BufferPool with buffers of the specified default size.
// A maxThreshold of zero disables the capacity limit.
func NewBufferPool(defaultSize int, maxThreshold int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty Buffer from the pool.
func (p *BufferPool) Get() *Buffer {
	b, _ := p.pool.Get().(*Buffer)
	return b
}

// Put returns a Buffer to the pool for reuse.
func (p *BufferPool) Put(b *Buffer) {
	if b == nil {
		return
	}

	if p.maxThreshold > 0 && b.Cap() > p.maxThreshold {
		return
	}

	b.Reset()
	p.pool.Put(b)
}

var (
	formatDefaultPool = NewBufferPool(FormatBufferDefaultSize, FormatBufferMaxThreshold)
	renderDefaultPool = NewBufferPool(RenderBufferDefaultSize, RenderBufferMaxThreshold)
)

// GetFormatBuffer retrieves a Buffer from the default formatting pool.
func GetFormatBuffer() *Buffer {
	return formatDefaultPool.Get()
}

// PutFormatBuffer returns a Buffer to the default formatting pool.
func PutFormatBuffer(b *Buffer) {
	formatDefaultPool.Put(b)
}

// GetRenderBuffer retrieves a Buffer from the default batch rendering pool.
func GetRenderBuffer() *Buffer {
	return renderDefaultPool.Get()
}

// PutRenderBuffer returns a Buffer to the default batch rendering pool.
func PutRenderBuffer(b *Buffer) {
	renderDefaultPool.Put(b)
}
