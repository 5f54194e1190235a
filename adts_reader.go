package latm

import (
	"bufio"
	"io"
	"iter"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/llehouerou/go-latm/internal/bits"
)

// ADTSFrame is one frame of an ADTS stream.
type ADTSFrame struct {
	Header *ADTSHeader
	CRC    uint16 // Valid when Header.ProtectionAbsent is false
	// Payload is the raw data block, without header or CRC.
	Payload []byte
}

// ADTSReader reads ADTS frames from a byte stream, skipping any bytes that
// precede a sync word.
//
// ReadFrame returns io.EOF once no further sync word can be found or the
// last frame is truncated. A malformed header ends the stream: the error is
// returned by every later call.
type ADTSReader struct {
	r   *bufio.Reader
	log *zap.Logger
	err error
	n   int64 // frames read
}

// NewADTSReader returns a reader of the ADTS frames in r.
func NewADTSReader(r io.Reader, opts ...Option) *ADTSReader {
	o := newReaderOptions(opts)
	return &ADTSReader{
		r:   bufio.NewReader(r),
		log: o.logger,
	}
}

// ReadFrame returns the next frame.
func (a *ADTSReader) ReadFrame() (*ADTSFrame, error) {
	if a.err != nil {
		return nil, a.err
	}
	f, err := a.readFrame()
	if err != nil {
		a.err = err
		return nil, err
	}
	a.n++
	return f, nil
}

// All returns an iterator over the remaining frames. Iteration stops at
// end of stream; a decode error is yielded once as the last pair.
func (a *ADTSReader) All() iter.Seq2[*ADTSFrame, error] {
	return func(yield func(*ADTSFrame, error) bool) {
		for {
			f, err := a.ReadFrame()
			if err == io.EOF {
				return
			}
			if !yield(f, err) || err != nil {
				return
			}
		}
	}
}

func (a *ADTSReader) readFrame() (*ADTSFrame, error) {
	var hdr [ADTSHeaderLength]byte
	word, err := a.resync()
	if err != nil {
		return nil, err
	}
	hdr[0] = byte(word >> 8)
	hdr[1] = byte(word)
	if _, err := io.ReadFull(a.r, hdr[2:]); err != nil {
		return nil, a.endOfStream(err, "adts header")
	}

	h, err := decodeADTSHeader(bits.NewReader(hdr[:]))
	if err != nil {
		return nil, errors.Wrapf(err, "adts frame %d", a.n)
	}

	body := make([]byte, int(h.AACFrameLength)-ADTSHeaderLength)
	if _, err := io.ReadFull(a.r, body); err != nil {
		return nil, a.endOfStream(err, "adts payload")
	}

	f := &ADTSFrame{Header: h, Payload: body}
	if !h.ProtectionAbsent {
		f.CRC = uint16(body[0])<<8 | uint16(body[1])
		f.Payload = body[2:]
	}
	return f, nil
}

// resync feeds a 16-bit window one byte at a time until its top 12 bits
// hold the sync word, and returns the window.
func (a *ADTSReader) resync() (uint16, error) {
	b, err := a.r.ReadByte()
	if err != nil {
		return 0, a.endOfStream(err, "adts sync")
	}
	word := uint16(b)
	skipped := 0
	for {
		b, err := a.r.ReadByte()
		if err != nil {
			if skipped > 0 {
				a.log.Debug("no adts sync word before end of stream", zap.Int("skipped", skipped+1))
			}
			return 0, a.endOfStream(err, "adts sync")
		}
		word = word<<8 | uint16(b)
		if word>>4 == ADTSSyncword {
			break
		}
		skipped++
	}
	if skipped > 0 {
		a.log.Debug("skipped bytes before adts sync word",
			zap.Int("skipped", skipped),
			zap.Int64("frame", a.n))
	}
	return word, nil
}

func (a *ADTSReader) endOfStream(err error, what string) error {
	return endOfStream(a.log, err, what)
}

// endOfStream maps a short read to io.EOF. Other I/O errors are returned
// with context.
func endOfStream(log *zap.Logger, err error, what string) error {
	switch err {
	case io.EOF:
		return io.EOF
	case io.ErrUnexpectedEOF:
		log.Debug("truncated input at end of stream", zap.String("reading", what))
		return io.EOF
	}
	return errors.Wrapf(err, "read %s", what)
}
