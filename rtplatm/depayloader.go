// Package rtplatm reassembles MPEG-4 audio LATM elements from RTP packets
// (RFC 3016, MP4A-LATM with cpresent=0).
//
// The StreamMuxConfig is conveyed out of band, usually as the hex "config"
// parameter of the SDP fmtp line. Each AudioMuxElement may span several
// packets; the packet carrying the RTP marker bit ends it.
package rtplatm

import (
	"encoding/hex"
	stderrors "errors"

	"github.com/bluenviron/mediacommon/pkg/codecs/mpeg4audio"
	"github.com/pion/rtp"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/llehouerou/go-latm"
)

var (
	// ErrMorePacketsNeeded is returned while an element is incomplete.
	ErrMorePacketsNeeded = stderrors.New("rtplatm: need more packets")

	// ErrPacketLoss is returned when a sequence number gap breaks an element.
	// Packets are then discarded up to the next marker bit.
	ErrPacketLoss = stderrors.New("rtplatm: packet loss")

	// ErrElementTooLarge is returned when an element exceeds the maximum
	// size. Packets are then discarded up to the next marker bit.
	ErrElementTooLarge = stderrors.New("rtplatm: element too large")
)

// Frame is one reassembled AudioMuxElement.
type Frame struct {
	Timestamp uint32 // RTP timestamp of the element
	Element   *latm.AudioMuxElement
}

// Option configures a Depayloader.
type Option func(*Depayloader)

// WithLogger sets the logger used to report discarded packets.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Depayloader) {
		if logger != nil {
			d.log = logger
		}
	}
}

// WithMaxFrameSize sets the maximum size of a reassembled element, in
// bytes. It defaults to the maximum MPEG-4 audio access unit size.
func WithMaxFrameSize(n int) Option {
	return func(d *Depayloader) {
		if n > 0 {
			d.maxSize = n
		}
	}
}

// Depayloader turns RTP packets into AudioMuxElements. It is not safe for
// concurrent use.
type Depayloader struct {
	config  *latm.StreamMuxConfig
	log     *zap.Logger
	maxSize int

	buf       []byte
	started   bool   // buf holds the start of an element
	nextSeq   uint16 // expected sequence number while started
	timestamp uint32
	dropping  bool // discarding up to the next marker
}

// ParseConfig decodes the hex encoded StreamMuxConfig of an SDP "config"
// parameter.
func ParseConfig(s string) (*latm.StreamMuxConfig, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "decode config hex")
	}
	c, err := latm.ParseStreamMuxConfig(data)
	if err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	return c, nil
}

// NewDepayloader returns a Depayloader decoding elements against config.
func NewDepayloader(config *latm.StreamMuxConfig, opts ...Option) (*Depayloader, error) {
	if config == nil {
		return nil, errors.New("rtplatm: nil StreamMuxConfig")
	}
	d := &Depayloader{
		config:  config,
		log:     zap.NewNop(),
		maxSize: mpeg4audio.MaxAccessUnitSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Depayload adds pkt to the element being reassembled. It returns the
// element once the packet carrying the marker bit has been added, and
// ErrMorePacketsNeeded before that.
func (d *Depayloader) Depayload(pkt *rtp.Packet) (*Frame, error) {
	if d.dropping {
		if pkt.Marker {
			d.dropping = false
		}
		return nil, ErrMorePacketsNeeded
	}

	if d.started && pkt.SequenceNumber != d.nextSeq {
		d.log.Debug("sequence gap inside element",
			zap.Uint16("expected", d.nextSeq),
			zap.Uint16("got", pkt.SequenceNumber),
			zap.Int("discarded", len(d.buf)))
		err := errors.Wrapf(ErrPacketLoss, "expected sequence number %d, got %d", d.nextSeq, pkt.SequenceNumber)
		d.discard(pkt.Marker)
		return nil, err
	}

	if len(d.buf)+len(pkt.Payload) > d.maxSize {
		err := errors.Wrapf(ErrElementTooLarge, "%d bytes, maximum is %d", len(d.buf)+len(pkt.Payload), d.maxSize)
		d.discard(pkt.Marker)
		return nil, err
	}

	if !d.started {
		d.started = true
		d.timestamp = pkt.Timestamp
	}
	d.buf = append(d.buf, pkt.Payload...)
	d.nextSeq = pkt.SequenceNumber + 1

	if !pkt.Marker {
		return nil, ErrMorePacketsNeeded
	}

	defer d.reset()
	e, err := latm.DecodeAudioMuxElement(d.buf, d.config, false)
	if err != nil {
		return nil, err
	}
	return &Frame{Timestamp: d.timestamp, Element: e}, nil
}

// AccessUnits returns the non-empty payloads of stream streamID in f, one
// per sub-frame.
func (f *Frame) AccessUnits(streamID int) [][]byte {
	var aus [][]byte
	for _, packets := range f.Element.SubFrames {
		if streamID < 0 || streamID >= len(packets) {
			return nil
		}
		if p := packets[streamID].Payload; len(p) > 0 {
			aus = append(aus, p)
		}
	}
	return aus
}

// discard drops the element being reassembled. Unless the current packet
// ended it, the following packets are dropped up to the next marker.
func (d *Depayloader) discard(marker bool) {
	d.reset()
	d.dropping = !marker
}

func (d *Depayloader) reset() {
	d.buf = d.buf[:0]
	d.started = false
}
