package pool

import "sync"

// Scratch buffers back the card parser's escape-sequence decoding of card
// text tokens. Card tokens are usually short.
const (
	// ScratchBufferDefaultSize is the initial capacity of a pooled buffer.
	ScratchBufferDefaultSize = 4 * 1024
	// ScratchBufferMaxThreshold is the largest buffer returned to the pool;
	// bigger ones are dropped so one huge card token doesn't pin memory.
	ScratchBufferMaxThreshold = 64 * 1024
)

// ByteBuffer is a minimal growable byte buffer suitable for pooling.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// String returns a copy of the buffer contents as a string.
func (bb *ByteBuffer) String() string {
	return string(bb.B)
}

// Reset resets the buffer to be empty, retaining the allocated memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// MustWriteByte appends a single byte to the buffer.
func (bb *ByteBuffer) MustWriteByte(c byte) {
	bb.B = append(bb.B, c)
}

var scratchPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(ScratchBufferDefaultSize)
	},
}

// GetScratchBuffer obtains an empty ByteBuffer from the pool.
func GetScratchBuffer() *ByteBuffer {
	buf, _ := scratchPool.Get().(*ByteBuffer)
	buf.Reset()

	return buf
}

// PutScratchBuffer returns a ByteBuffer to the pool. Buffers that grew past
// ScratchBufferMaxThreshold are dropped instead.
func PutScratchBuffer(bb *ByteBuffer) {
	if cap(bb.B) <= ScratchBufferMaxThreshold {
		scratchPool.Put(bb)
	}
}
