package latm

import (
	"bufio"
	"io"
	"iter"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/llehouerou/go-latm/internal/bits"
)

// LOASSyncword is the 13-bit AudioSyncStream sync pattern.
const LOASSyncword = 0x2B7

// MaxAudioMuxLength is the largest element an AudioSyncStream frame can
// carry, in bytes.
const MaxAudioMuxLength = 1<<13 - 1

// LOASReader reads AudioMuxElements from an AudioSyncStream (LOAS) byte
// stream.
//
// The reader owns the active StreamMuxConfig: it is replaced whenever an
// element carries a new one, and elements that reuse the config are decoded
// against it. ReadElement returns io.EOF once no further sync word can be
// found or the last element is truncated. A decode failure ends the
// stream: the error is returned by every later call.
type LOASReader struct {
	r      *bufio.Reader
	log    *zap.Logger
	err    error
	n      int64 // elements read
	active *StreamMuxConfig
	buf    [MaxAudioMuxLength]byte
}

// NewLOASReader returns a reader of the AudioMuxElements in r.
func NewLOASReader(r io.Reader, opts ...Option) *LOASReader {
	o := newReaderOptions(opts)
	return &LOASReader{
		r:   bufio.NewReader(r),
		log: o.logger,
	}
}

// ActiveConfig returns the StreamMuxConfig in force after the last element
// read, or nil if none has been seen yet.
func (l *LOASReader) ActiveConfig() *StreamMuxConfig {
	return l.active
}

// ReadElement returns the next element. An element read before any
// StreamMuxConfig was seen has no sub-frames.
func (l *LOASReader) ReadElement() (*AudioMuxElement, error) {
	if l.err != nil {
		return nil, l.err
	}
	e, err := l.readElement()
	if err != nil {
		l.err = err
		return nil, err
	}
	l.n++
	return e, nil
}

// All returns an iterator over the remaining elements. Iteration stops at
// end of stream; a decode error is yielded once as the last pair.
func (l *LOASReader) All() iter.Seq2[*AudioMuxElement, error] {
	return func(yield func(*AudioMuxElement, error) bool) {
		for {
			e, err := l.ReadElement()
			if err == io.EOF {
				return
			}
			if !yield(e, err) || err != nil {
				return
			}
		}
	}
}

func (l *LOASReader) readElement() (*AudioMuxElement, error) {
	word, err := l.resync()
	if err != nil {
		return nil, err
	}

	length := int(word & MaxAudioMuxLength)
	data := l.buf[:length]
	if _, err := io.ReadFull(l.r, data); err != nil {
		return nil, endOfStream(l.log, err, "audio mux element")
	}

	e, err := decodeAudioMuxElement(bits.NewReader(data), l.active, true)
	if err != nil {
		return nil, errors.Wrapf(err, "audio mux element %d", l.n)
	}
	if e.StreamMuxConfig != nil {
		if l.active == nil {
			l.log.Debug("stream mux config activated",
				zap.Int64("element", l.n),
				zap.Int("streams", len(e.StreamMuxConfig.Streams)),
				zap.Int("subFrames", e.StreamMuxConfig.NumSubFrames))
		}
		l.active = e.StreamMuxConfig
	} else if l.active == nil {
		l.log.Debug("audio mux element without active config", zap.Int64("element", l.n))
	}
	return e, nil
}

// resync feeds a 24-bit window one byte at a time until its top 13 bits
// hold the sync word, and returns the window. The low 13 bits are the
// element length.
func (l *LOASReader) resync() (uint32, error) {
	var start [2]byte
	if _, err := io.ReadFull(l.r, start[:]); err != nil {
		return 0, endOfStream(l.log, err, "loas sync")
	}
	word := uint32(start[0])<<8 | uint32(start[1])
	skipped := 0
	for {
		b, err := l.r.ReadByte()
		if err != nil {
			if skipped > 0 {
				l.log.Debug("no loas sync word before end of stream", zap.Int("skipped", skipped+2))
			}
			return 0, endOfStream(l.log, err, "loas sync")
		}
		word = (word<<8 | uint32(b)) & 0xFFFFFF
		if word>>13 == LOASSyncword {
			break
		}
		skipped++
	}
	if skipped > 0 {
		l.log.Debug("skipped bytes before loas sync word",
			zap.Int("skipped", skipped),
			zap.Int64("element", l.n))
	}
	return word, nil
}
