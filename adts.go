package latm

import (
	"github.com/llehouerou/go-latm/internal/bits"
	"github.com/llehouerou/go-latm/internal/tables"
)

// ADTSSyncword is the 12-bit sync pattern for ADTS frames.
const ADTSSyncword = 0x0FFF

// ADTSHeaderLength is the size of an ADTS header without CRC.
const ADTSHeaderLength = 7

// adtsBufferFullnessVBR is the reserved buffer fullness meaning "unknown"
// (variable bit rate).
const adtsBufferFullnessVBR = 0x7FF

// ADTSHeader contains Audio Data Transport Stream header data.
//
// Header structure (56 bits, followed by a 16-bit CRC if protection_absent=0):
//   - syncword: 12 bits (0xFFF)
//   - id: 1 bit (0=MPEG-4, 1=MPEG-2)
//   - layer: 2 bits (always 0)
//   - protection_absent: 1 bit (1=no CRC)
//   - profile: 2 bits (object type - 1)
//   - sf_index: 4 bits (sample rate index)
//   - private_bit: 1 bit
//   - channel_configuration: 3 bits
//   - original: 1 bit
//   - home: 1 bit
//   - copyright_id_bit: 1 bit
//   - copyright_id_start: 1 bit
//   - frame_length: 13 bits (includes header)
//   - buffer_fullness: 11 bits
//   - no_raw_data_blocks: 2 bits
type ADTSHeader struct {
	ID                   uint8      // 1 bit: 0=MPEG-4, 1=MPEG-2
	Layer                uint8      // 2 bits: always 0
	ProtectionAbsent     bool       // 1 bit: true=no CRC
	ObjectType           ObjectType // 2 bits on the wire, stored as profile + 1
	SFIndex              uint8      // 4 bits: sample frequency index
	PrivateBit           bool       // 1 bit
	ChannelConfiguration uint8      // 3 bits: channel config
	Original             bool       // 1 bit
	Home                 bool       // 1 bit

	// Variable header
	CopyrightIDBit         bool   // 1 bit
	CopyrightIDStart       bool   // 1 bit
	AACFrameLength         uint16 // 13 bits: total frame bytes
	ADTSBufferFullness     uint16 // 11 bits: buffer fullness
	NoRawDataBlocksInFrame uint8  // 2 bits: num blocks - 1
}

// HeaderSize returns the ADTS header size in bytes.
// Returns 7 if CRC is absent, 9 if CRC is present.
func (h *ADTSHeader) HeaderSize() int {
	if h.ProtectionAbsent {
		return ADTSHeaderLength
	}
	return ADTSHeaderLength + 2
}

// DataSize returns the raw audio data size (frame length minus header).
func (h *ADTSHeader) DataSize() int {
	return int(h.AACFrameLength) - h.HeaderSize()
}

// Format returns the codec parameters carried by the header.
func (h *ADTSHeader) Format() Format {
	return Format{
		AudioObjectType:        h.ObjectType,
		ChannelConfiguration:   h.ChannelConfiguration,
		SamplingFrequencyIndex: h.SFIndex,
	}
}

// ParseADTSHeader decodes the 7-byte fixed part of an ADTS header.
func ParseADTSHeader(data []byte) (*ADTSHeader, error) {
	if len(data) < ADTSHeaderLength {
		return nil, malformed("adts header needs %d bytes, got %d", ADTSHeaderLength, len(data))
	}
	return decodeADTSHeader(bits.NewReader(data[:ADTSHeaderLength]))
}

func decodeADTSHeader(r *bits.Reader) (*ADTSHeader, error) {
	if sync := r.GetBits(12); sync != ADTSSyncword {
		return nil, malformed("adts sync 0x%03X", sync)
	}

	h := &ADTSHeader{}
	h.ID = r.Get1Bit()
	h.Layer = uint8(r.GetBits(2))
	if h.Layer != 0 {
		return nil, malformed("adts layer %d", h.Layer)
	}
	h.ProtectionAbsent = r.GetFlag()
	h.ObjectType = ObjectType(r.GetBits(2) + 1)
	h.SFIndex = uint8(r.GetBits(4))
	h.PrivateBit = r.GetFlag()
	h.ChannelConfiguration = uint8(r.GetBits(3))
	h.Original = r.GetFlag()
	h.Home = r.GetFlag()
	h.CopyrightIDBit = r.GetFlag()
	h.CopyrightIDStart = r.GetFlag()
	h.AACFrameLength = uint16(r.GetBits(13))
	h.ADTSBufferFullness = uint16(r.GetBits(11))
	h.NoRawDataBlocksInFrame = uint8(r.GetBits(2))

	if r.Error() {
		return nil, overrun("adts header")
	}
	if h.NoRawDataBlocksInFrame != 0 {
		return nil, unsupported("adts frame with %d raw data blocks", int(h.NoRawDataBlocksInFrame)+1)
	}
	if h.DataSize() < 0 {
		return nil, malformed("adts frame length %d shorter than header", h.AACFrameLength)
	}
	return h, nil
}

// encode writes the 56-bit header.
func (h *ADTSHeader) encode(w *bits.Writer) error {
	if h.ObjectType < ObjectTypeMain || h.ObjectType > ObjectTypeLTP {
		return unsupported("adts object type %d (%s)", uint8(h.ObjectType), h.ObjectType)
	}
	w.WriteBits(ADTSSyncword, 12)
	w.WriteBits(uint64(h.ID), 1)
	w.WriteBits(uint64(h.Layer), 2)
	w.WriteFlag(h.ProtectionAbsent)
	w.WriteBits(uint64(h.ObjectType-1), 2)
	w.WriteBits(uint64(h.SFIndex), 4)
	w.WriteFlag(h.PrivateBit)
	w.WriteBits(uint64(h.ChannelConfiguration), 3)
	w.WriteFlag(h.Original)
	w.WriteFlag(h.Home)
	w.WriteFlag(h.CopyrightIDBit)
	w.WriteFlag(h.CopyrightIDStart)
	w.WriteBits(uint64(h.AACFrameLength), 13)
	w.WriteBits(uint64(h.ADTSBufferFullness), 11)
	w.WriteBits(uint64(h.NoRawDataBlocksInFrame), 2)
	return nil
}

// Marshal encodes the header into its 7-byte wire form. A CRC, if any, is
// not part of the header and must be appended by the caller.
func (h *ADTSHeader) Marshal() ([]byte, error) {
	w := bits.NewWriter()
	if err := h.encode(w); err != nil {
		return nil, err
	}
	return w.Bytes()
}

// ADTSHeaderFromFormat builds the header of an ADTS frame carrying
// payloadLen bytes of raw AAC data for the given format.
//
// Only AAC LC with a non-zero channel configuration can be expressed. An
// explicit sampling frequency is mapped back to its table index when it has
// one.
func ADTSHeaderFromFormat(f Format, payloadLen int) (*ADTSHeader, error) {
	if f.AudioObjectType != ObjectTypeLC || f.ChannelConfiguration == 0 {
		return nil, unsupported("adts from %s with channel configuration %d", f.AudioObjectType, f.ChannelConfiguration)
	}
	if f.ChannelConfiguration > 7 {
		return nil, unsupported("adts channel configuration %d", f.ChannelConfiguration)
	}

	sfIndex := f.SamplingFrequencyIndex
	if sfIndex == tables.ExplicitSRIndex {
		idx, ok := tables.GetSRIndex(f.SamplingFrequency)
		if !ok {
			return nil, unsupported("adts sampling frequency %d Hz", f.SamplingFrequency)
		}
		sfIndex = idx
	}

	frameLength := payloadLen + ADTSHeaderLength
	if payloadLen < 0 || frameLength > 1<<13-1 {
		return nil, unsupported("adts payload of %d bytes", payloadLen)
	}

	return &ADTSHeader{
		ProtectionAbsent:     true,
		ObjectType:           f.AudioObjectType,
		SFIndex:              sfIndex,
		ChannelConfiguration: f.ChannelConfiguration,
		AACFrameLength:       uint16(frameLength),
		ADTSBufferFullness:   adtsBufferFullnessVBR,
	}, nil
}
