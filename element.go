package latm

import (
	"github.com/llehouerou/go-latm/internal/bits"
)

// LatmPacket is the payload of one stream within one sub-frame.
type LatmPacket struct {
	StreamID           int
	MuxSlotLengthBytes uint32

	// AuEndFlag is only transmitted when streams do not share time framing.
	AuEndFlagPresent bool
	AuEndFlag        bool

	Payload []byte
}

// AudioMuxElement is one LATM multiplex element.
type AudioMuxElement struct {
	// UseSameStreamMux is only read when the config may be carried in-band.
	UseSameStreamMuxPresent bool
	UseSameStreamMux        bool

	// StreamMuxConfig is set when the element carries a new config, which
	// then becomes the active one for this and the following elements.
	StreamMuxConfig *StreamMuxConfig

	// SubFrames is indexed by [sub-frame][stream ID]. It is empty when no
	// config was active.
	SubFrames [][]LatmPacket

	OtherData []byte
}

// DecodeAudioMuxElement decodes a single AudioMuxElement from data.
//
// active is the config in force before this element (nil if none).
// configMayBePresent is true for LOAS (AudioSyncStream) framing, where the
// element may carry its own StreamMuxConfig, and false for transports that
// convey the config out of band.
func DecodeAudioMuxElement(data []byte, active *StreamMuxConfig, configMayBePresent bool) (*AudioMuxElement, error) {
	return decodeAudioMuxElement(bits.NewReader(data), active, configMayBePresent)
}

func decodeAudioMuxElement(r *bits.Reader, active *StreamMuxConfig, configMayBePresent bool) (*AudioMuxElement, error) {
	e := &AudioMuxElement{}

	if configMayBePresent {
		e.UseSameStreamMuxPresent = true
		e.UseSameStreamMux = r.GetFlag()
		if !e.UseSameStreamMux {
			c, err := decodeStreamMuxConfig(r)
			if err != nil {
				return nil, err
			}
			e.StreamMuxConfig = c
			active = c
		}
	}
	if active == nil {
		return e, nil
	}
	if active.AudioMuxVersionA != 0 {
		return nil, unsupported("audioMuxVersionA %d", active.AudioMuxVersionA)
	}

	e.SubFrames = make([][]LatmPacket, active.NumSubFrames)
	for i := range e.SubFrames {
		packets := make([]LatmPacket, len(active.Streams))
		for id := range packets {
			packets[id].StreamID = id
		}
		chunks, err := decodePayloadLengthInfo(r, active, packets)
		if err != nil {
			return nil, err
		}
		if err := decodePayloadMux(r, active, packets, chunks); err != nil {
			return nil, err
		}
		e.SubFrames[i] = packets
	}

	if active.OtherDataPresent {
		e.OtherData = r.GetBitBuffer(active.OtherDataLenBits)
		if r.Error() {
			return nil, overrun("AudioMuxElement other data")
		}
	}
	r.ByteAlign()
	return e, nil
}

// decodeMuxSlotLength reads a length coded as a run of 0xFF bytes ended by
// a byte below 0xFF. The length is the sum of all bytes.
func decodeMuxSlotLength(r *bits.Reader) uint32 {
	var n uint32
	for !r.Error() {
		b := r.GetBits(8)
		n += b
		if b != 0xFF {
			break
		}
	}
	return n
}

// decodePayloadLengthInfo reads the slot lengths of one sub-frame into
// packets. Without shared time framing it returns the stream ID of each
// chunk, in transmission order.
func decodePayloadLengthInfo(r *bits.Reader, c *StreamMuxConfig, packets []LatmPacket) ([]int, error) {
	if c.AllStreamsSameTimeFraming {
		for i := range packets {
			packets[i].MuxSlotLengthBytes = decodeMuxSlotLength(r)
		}
		if r.Error() {
			return nil, overrun("PayloadLengthInfo")
		}
		return nil, nil
	}

	numChunk := int(r.GetBits(4)) + 1
	chunks := make([]int, 0, numChunk)
	for range numChunk {
		id := int(r.GetBits(4))
		if id >= len(packets) {
			return nil, malformed("chunk stream id %d with %d streams", id, len(packets))
		}
		chunks = append(chunks, id)
		p := &packets[id]
		p.MuxSlotLengthBytes = decodeMuxSlotLength(r)
		p.AuEndFlagPresent = true
		p.AuEndFlag = r.GetFlag()
	}
	if r.Error() {
		return nil, overrun("PayloadLengthInfo")
	}
	return chunks, nil
}

// decodePayloadMux reads the payloads of one sub-frame. Payloads need not
// be byte aligned.
func decodePayloadMux(r *bits.Reader, c *StreamMuxConfig, packets []LatmPacket, chunks []int) error {
	read := func(p *LatmPacket) error {
		p.Payload = r.GetBitBuffer(p.MuxSlotLengthBytes * 8)
		if r.Error() {
			return overrun("PayloadMux stream")
		}
		return nil
	}

	if c.AllStreamsSameTimeFraming {
		for i := range packets {
			if err := read(&packets[i]); err != nil {
				return err
			}
		}
		return nil
	}
	for _, id := range chunks {
		if err := read(&packets[id]); err != nil {
			return err
		}
	}
	return nil
}
