package latm

import (
	"github.com/llehouerou/go-latm/internal/bits"
)

// Stream is one (program, layer) slot of a StreamMuxConfig.
type Stream struct {
	ID      int // Sequential over programs and layers, from 0
	Program int
	Layer   int

	// UseSameConfig is set when the stream reuses the configuration of the
	// preceding stream. Config then points to that stream's value.
	UseSameConfig bool
	Config        *AudioSpecificConfig

	FrameLengthType    uint8 // Only 0 is supported
	LATMBufferFullness uint8

	CoreFrameOffsetPresent bool
	CoreFrameOffset        uint8 // 6 bits
}

// StreamMuxConfig describes the program/layer topology of a LATM
// multiplex and the configuration of each stream.
//
// A StreamMuxConfig is immutable once decoded; elements that do not carry
// their own config are decoded against the one previously activated.
type StreamMuxConfig struct {
	AudioMuxVersion    uint8
	AudioMuxVersionA   uint8  // Only 0 is supported
	TaraBufferFullness uint32 // Present when AudioMuxVersion is 1

	AllStreamsSameTimeFraming bool
	NumSubFrames              int // 1-64
	NumProgram                int // 1-16
	NumLayer                  []int

	// Streams is indexed by stream ID.
	Streams []*Stream

	OtherDataPresent bool
	OtherDataLenBits uint32

	CRCCheckPresent bool
	CRCCheckSum     uint8
}

// Stream returns the stream carrying the given program and layer, or nil.
func (c *StreamMuxConfig) Stream(program, layer int) *Stream {
	for _, s := range c.Streams {
		if s.Program == program && s.Layer == layer {
			return s
		}
	}
	return nil
}

// ParseStreamMuxConfig decodes a StreamMuxConfig from data, as carried
// out of band in the SDP "config" parameter of MP4A-LATM.
func ParseStreamMuxConfig(data []byte) (*StreamMuxConfig, error) {
	return decodeStreamMuxConfig(bits.NewReader(data))
}

func decodeStreamMuxConfig(r *bits.Reader) (*StreamMuxConfig, error) {
	c := &StreamMuxConfig{}

	c.AudioMuxVersion = r.Get1Bit()
	if c.AudioMuxVersion == 1 {
		c.AudioMuxVersionA = r.Get1Bit()
	}
	if c.AudioMuxVersionA != 0 {
		return nil, unsupported("audioMuxVersionA %d", c.AudioMuxVersionA)
	}
	if c.AudioMuxVersion == 1 {
		c.TaraBufferFullness = r.LATMGetValue()
	}

	c.AllStreamsSameTimeFraming = r.GetFlag()
	c.NumSubFrames = int(r.GetBits(6)) + 1
	c.NumProgram = int(r.GetBits(4)) + 1
	if r.Error() {
		return nil, overrun("StreamMuxConfig")
	}

	c.NumLayer = make([]int, c.NumProgram)
	for prog := 0; prog < c.NumProgram; prog++ {
		c.NumLayer[prog] = int(r.GetBits(3)) + 1
		for lay := 0; lay < c.NumLayer[prog]; lay++ {
			s := &Stream{ID: len(c.Streams), Program: prog, Layer: lay}
			if err := c.decodeStream(r, s); err != nil {
				return nil, err
			}
			c.Streams = append(c.Streams, s)
		}
	}

	c.OtherDataPresent = r.GetFlag()
	if c.OtherDataPresent {
		if c.AudioMuxVersion == 1 {
			c.OtherDataLenBits = r.LATMGetValue()
		} else {
			for !r.Error() {
				c.OtherDataLenBits <<= 8
				esc := r.GetFlag()
				c.OtherDataLenBits |= r.GetBits(8)
				if !esc {
					break
				}
			}
		}
	}

	c.CRCCheckPresent = r.GetFlag()
	if c.CRCCheckPresent {
		c.CRCCheckSum = uint8(r.GetBits(8))
	}

	if r.Error() {
		return nil, overrun("StreamMuxConfig")
	}
	return c, nil
}

// decodeStream reads the per-stream part of a StreamMuxConfig. The streams
// decoded so far are in c.Streams.
func (c *StreamMuxConfig) decodeStream(r *bits.Reader, s *Stream) error {
	var prev *Stream
	if n := len(c.Streams); n > 0 {
		prev = c.Streams[n-1]
	}

	// The first stream always carries its config.
	if prev != nil {
		s.UseSameConfig = r.GetFlag()
	}

	switch {
	case s.UseSameConfig:
		s.Config = prev.Config
	case c.AudioMuxVersion == 0:
		asc, err := decodeAudioSpecificConfig(r, 0)
		if err != nil {
			return err
		}
		s.Config = asc
	default:
		ascLen := r.LATMGetValue()
		asc, err := decodeAudioSpecificConfig(r, ascLen)
		if err != nil {
			return err
		}
		s.Config = asc
	}

	s.FrameLengthType = uint8(r.GetBits(3))
	if s.FrameLengthType != 0 {
		return unsupported("stream %d frameLengthType %d", s.ID, s.FrameLengthType)
	}
	s.LATMBufferFullness = uint8(r.GetBits(8))

	if !c.AllStreamsSameTimeFraming && s.Layer > 0 &&
		s.Config.Format.AudioObjectType.in(ObjectTypeScalable, ObjectTypeERScalable) &&
		prev.Config.Format.AudioObjectType.in(ObjectTypeCELP, ObjectTypeERCELP) {
		s.CoreFrameOffsetPresent = true
		s.CoreFrameOffset = uint8(r.GetBits(6))
	}

	if r.Error() {
		return overrun("StreamMuxConfig stream")
	}
	return nil
}
