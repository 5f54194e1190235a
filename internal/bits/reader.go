// Package bits provides the bit-granular cursors used by the transport
// decoders: a forward reader over a byte window and a writer built on
// github.com/icza/bitio.
package bits

// Reader reads bits from a byte buffer, most significant bit first.
//
// It uses a two-buffer approach for efficient bit reading:
// - bufa holds the current 32 bits being read from
// - bufb pre-loads the next 32 bits for look-ahead
//
// Reading past the end of the buffer yields zero bits and sets the error
// flag; callers check Error once a structure has been decoded.
type Reader struct {
	buffer     []byte // Original buffer
	bufa       uint32 // Current 32-bit buffer (high bits)
	bufb       uint32 // Next 32-bit buffer (look-ahead)
	bitsLeft   uint32 // Bits remaining in bufa (0-32)
	pos        int    // Current byte position in buffer (next to load)
	bufferSize int    // Total buffer size in bytes
	err        bool   // Error flag (buffer overrun)
}

// NewReader creates a Reader from a byte slice.
//
// The reader pre-loads the first 64 bits (or as many as available) into
// two 32-bit buffers. Empty or nil buffers set the error flag.
func NewReader(data []byte) *Reader {
	r := &Reader{
		buffer:     data,
		bufferSize: len(data),
	}

	if len(data) == 0 {
		r.err = true
		return r
	}

	r.bufa = r.loadWord(0)
	r.bufb = r.loadWord(4)
	r.pos = 8
	r.bitsLeft = 32

	return r
}

// loadWord loads up to 4 bytes from buffer position as big-endian uint32.
// Handles partial reads at end of buffer by padding with zeros on the right.
func (r *Reader) loadWord(offset int) uint32 {
	if offset >= len(r.buffer) {
		return 0
	}

	remaining := len(r.buffer) - offset
	if remaining >= 4 {
		return uint32(r.buffer[offset])<<24 |
			uint32(r.buffer[offset+1])<<16 |
			uint32(r.buffer[offset+2])<<8 |
			uint32(r.buffer[offset+3])
	}

	var result uint32
	switch remaining {
	case 3:
		result = uint32(r.buffer[offset])<<24 |
			uint32(r.buffer[offset+1])<<16 |
			uint32(r.buffer[offset+2])<<8
	case 2:
		result = uint32(r.buffer[offset])<<24 |
			uint32(r.buffer[offset+1])<<16
	case 1:
		result = uint32(r.buffer[offset]) << 24
	}
	return result
}

// Error returns true if a buffer overrun occurred.
func (r *Reader) Error() bool {
	return r.err
}

// BitsLeft returns the number of unread bits in the current word.
func (r *Reader) BitsLeft() uint32 {
	return r.bitsLeft
}

// Len returns the size of the underlying window in bits.
func (r *Reader) Len() uint32 {
	return uint32(r.bufferSize) * 8
}

// Remaining returns the number of unread bits before the end of the window.
func (r *Reader) Remaining() int {
	return int(r.Len()) - int(r.GetProcessedBits())
}

// ShowBits returns the next n bits without consuming them.
// n must be 0-32.
func (r *Reader) ShowBits(n uint) uint32 {
	if n == 0 {
		return 0
	}

	if n <= uint(r.bitsLeft) {
		return (r.bufa << (32 - r.bitsLeft)) >> (32 - n)
	}

	bitsFromBufb := n - uint(r.bitsLeft)
	return ((r.bufa & ((1 << r.bitsLeft) - 1)) << bitsFromBufb) |
		(r.bufb >> (32 - bitsFromBufb))
}

// FlushBits discards n bits from the stream. n must be 0-32; use SkipBits
// for longer jumps.
func (r *Reader) FlushBits(n uint) {
	if r.err {
		return
	}

	if n < uint(r.bitsLeft) {
		r.bitsLeft -= uint32(n)
	} else {
		r.flushBitsEx(n)
	}

	if r.GetProcessedBits() > r.Len() {
		r.err = true
	}
}

// flushBitsEx handles flushing when we need to reload from buffer.
func (r *Reader) flushBitsEx(n uint) {
	r.bufa = r.bufb
	r.bufb = r.loadWord(r.pos)
	r.pos += 4

	// We gained 32 bits from the new bufa and consumed n.
	r.bitsLeft += 32 - uint32(n)
}

// GetBits reads and returns n bits from the stream.
// n must be 0-32.
func (r *Reader) GetBits(n uint) uint32 {
	if n == 0 {
		return 0
	}

	ret := r.ShowBits(n)
	r.FlushBits(n)
	return ret
}

// Get1Bit reads and returns a single bit from the stream.
func (r *Reader) Get1Bit() uint8 {
	return uint8(r.GetBits(1))
}

// GetFlag reads a single bit as a boolean.
func (r *Reader) GetFlag() bool {
	return r.GetBits(1) == 1
}

// GetProcessedBits returns the absolute bit position of the cursor.
func (r *Reader) GetProcessedBits() uint32 {
	if r.bufferSize == 0 {
		return 0
	}
	return uint32(r.pos-8)*8 + (32 - r.bitsLeft)
}

// ByteAlign advances to the next byte boundary and returns the number of
// bits skipped.
func (r *Reader) ByteAlign() uint32 {
	rem := r.GetProcessedBits() & 7
	if rem == 0 {
		return 0
	}
	r.FlushBits(uint(8 - rem))
	return 8 - rem
}

// ResetBits moves the cursor to an absolute bit position and clears the
// error flag. Positions beyond the end of the buffer set the error flag.
func (r *Reader) ResetBits(bits uint32) {
	if bits > r.Len() {
		r.err = true
		return
	}
	r.err = r.bufferSize == 0

	word := int(bits/32) * 4
	r.bufa = r.loadWord(word)
	r.bufb = r.loadWord(word + 4)
	r.pos = word + 8
	r.bitsLeft = 32 - bits%32
}

// SkipBits discards n bits, which may exceed a single word.
func (r *Reader) SkipBits(n uint32) {
	if r.err || n == 0 {
		return
	}
	target := r.GetProcessedBits() + n
	if target > r.Len() {
		r.err = true
		return
	}
	r.ResetBits(target)
}

// GetBitBuffer reads n bits and returns them as bytes. A trailing partial
// byte is left-aligned and zero padded. Requests extending past the end of
// the window set the error flag and return nil.
func (r *Reader) GetBitBuffer(n uint32) []byte {
	if n == 0 {
		return []byte{}
	}
	start := r.GetProcessedBits()
	if r.err || uint64(start)+uint64(n) > uint64(r.Len()) {
		r.err = true
		return nil
	}

	out := make([]byte, (n+7)/8)
	if start&7 == 0 {
		copy(out, r.buffer[start/8:(start+n+7)/8])
		if rem := n & 7; rem != 0 {
			out[len(out)-1] &= 0xFF << (8 - rem)
		}
		r.SkipBits(n)
		return out
	}

	full := n / 8
	for i := uint32(0); i < full; i++ {
		out[i] = uint8(r.GetBits(8))
	}
	if rem := n & 7; rem != 0 {
		out[full] = uint8(r.GetBits(uint(rem)) << (8 - rem))
	}
	return out
}

// Tail returns a fresh Reader positioned at bit 0 over the unread part of
// the window. When the cursor is byte aligned the new reader shares the
// underlying buffer; otherwise the remaining bits are shifted into a copy.
// The receiver is not advanced.
func (r *Reader) Tail() *Reader {
	start := r.GetProcessedBits()
	if r.err || start >= r.Len() {
		return NewReader(nil)
	}
	if start&7 == 0 {
		return NewReader(r.buffer[start/8:])
	}

	byteOff := start / 8
	shift := start & 7
	src := r.buffer[byteOff:]
	out := make([]byte, len(src))
	for i := range src {
		b := src[i] << shift
		if i+1 < len(src) {
			b |= src[i+1] >> (8 - shift)
		}
		out[i] = b
	}
	return NewReader(out)
}

// LATMGetValue reads the LATM escape value: a 2-bit byte count followed by
// that many big-endian bytes.
func (r *Reader) LATMGetValue() uint32 {
	bytesForValue := r.GetBits(2)
	var value uint32
	for i := uint32(0); i < bytesForValue; i++ {
		value = value<<8 | r.GetBits(8)
	}
	return value
}
