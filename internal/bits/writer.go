package bits

import (
	"bytes"

	"github.com/icza/bitio"
)

// Writer writes bits most significant bit first into an in-memory buffer.
//
// The first write error is kept and reported by Bytes; later writes become
// no-ops.
type Writer struct {
	buf *bytes.Buffer
	w   *bitio.Writer
	n   uint32 // bits written
	err error
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer {
	buf := &bytes.Buffer{}
	return &Writer{
		buf: buf,
		w:   bitio.NewWriter(buf),
	}
}

// WriteBits writes the low n bits of value. n must be 0-64.
func (w *Writer) WriteBits(value uint64, n uint8) {
	if w.err != nil || n == 0 {
		return
	}
	if n < 64 {
		value &= 1<<n - 1
	}
	w.err = w.w.WriteBits(value, n)
	w.n += uint32(n)
}

// WriteFlag writes a single bit.
func (w *Writer) WriteFlag(b bool) {
	var v uint64
	if b {
		v = 1
	}
	w.WriteBits(v, 1)
}

// WriteBytes writes whole bytes at the current (possibly unaligned) position.
func (w *Writer) WriteBytes(p []byte) {
	for _, b := range p {
		w.WriteBits(uint64(b), 8)
	}
}

// ByteAlign pads with zero bits up to the next byte boundary.
func (w *Writer) ByteAlign() {
	if rem := w.n & 7; rem != 0 {
		w.WriteBits(0, uint8(8-rem))
	}
}

// Len returns the number of bits written so far.
func (w *Writer) Len() uint32 {
	return w.n
}

// Bytes pads the stream to a byte boundary and returns the encoded bytes.
// The Writer must not be used afterwards.
func (w *Writer) Bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if err := w.w.Close(); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}
