package latm

import (
	"github.com/llehouerou/go-latm/internal/bits"
)

// Sync extension types of the backward compatible SBR/PS signalling.
const (
	syncExtensionSBR = 0x2B7
	syncExtensionPS  = 0x548
)

// AudioSpecificConfig describes the codec parameters of one elementary
// stream.
//
// When the stream uses SBR (explicitly through AOT 5/29 or through the
// backward compatible extension), ExtensionFormat holds the SBR layer
// parameters and Format the core codec parameters.
type AudioSpecificConfig struct {
	Format          Format
	ExtensionFormat *Format

	SBRPresent PresenceFlag
	PSPresent  PresenceFlag

	EPConfigPresent bool  // Set for the error resilient object types
	EPConfig        uint8 // Only 0 and 1 are supported

	// Specific is *GASpecificConfig or *ELDSpecificConfig depending on the
	// object type.
	Specific CodecSpecificConfig
}

// ParseAudioSpecificConfig decodes an AudioSpecificConfig occupying all of
// data, as found in an MP4 esds box or an SDP fmtp line.
func ParseAudioSpecificConfig(data []byte) (*AudioSpecificConfig, error) {
	r := bits.NewReader(data)
	return decodeAudioSpecificConfig(r, r.Len())
}

// decodeAudioSpecificConfig decodes an ASC starting at the current
// position of r.
//
// The ASC is decoded on a fresh reader whose bit 0 is the first bit of the
// ASC, since the PCE comment field is byte aligned relative to it. Then r
// is advanced by bitsToDecode bits, or by the number of bits actually
// decoded when bitsToDecode is 0. Any slack between the two is filler.
func decodeAudioSpecificConfig(r *bits.Reader, bitsToDecode uint32) (*AudioSpecificConfig, error) {
	ar := r.Tail()
	asc, err := decodeASCBody(ar, bitsToDecode)
	if err != nil {
		return nil, err
	}

	if bitsToDecode != 0 {
		r.SkipBits(bitsToDecode)
	} else {
		r.SkipBits(ar.GetProcessedBits())
	}
	if r.Error() {
		return nil, overrun("AudioSpecificConfig")
	}
	return asc, nil
}

func decodeASCBody(r *bits.Reader, bitsToDecode uint32) (*AudioSpecificConfig, error) {
	asc := &AudioSpecificConfig{
		SBRPresent: PresenceUnknown,
		PSPresent:  PresenceUnknown,
	}
	f := &asc.Format

	f.AudioObjectType = decodeObjectType(r)
	f.decodeSamplingFrequency(r)
	f.ChannelConfiguration = uint8(r.GetBits(4))

	if f.AudioObjectType.in(ObjectTypeSBR, ObjectTypePS) {
		ext := &Format{AudioObjectType: ObjectTypeSBR}
		asc.ExtensionFormat = ext
		asc.SBRPresent = PresencePresent
		if f.AudioObjectType == ObjectTypePS {
			asc.PSPresent = PresencePresent
		}
		ext.decodeSamplingFrequency(r)
		f.AudioObjectType = decodeObjectType(r)
		if f.AudioObjectType == ObjectTypeERBSAC {
			ext.ChannelConfiguration = uint8(r.GetBits(4))
		}
	}
	if r.Error() {
		return nil, overrun("AudioSpecificConfig header")
	}

	var err error
	switch {
	case f.AudioObjectType.in(ObjectTypeMain, ObjectTypeLC, ObjectTypeSSR, ObjectTypeLTP,
		ObjectTypeScalable, ObjectTypeTwinVQ, ObjectTypeERLC, ObjectTypeERLTP,
		ObjectTypeERScalable, ObjectTypeERTwinVQ, ObjectTypeERBSAC, ObjectTypeLD):
		asc.Specific, err = decodeGASpecificConfig(r, f)
	case f.AudioObjectType == ObjectTypeELD:
		asc.Specific, err = decodeELDSpecificConfig(r, f.ChannelConfiguration)
	default:
		return nil, unsupported("audio object type %d (%s)", uint8(f.AudioObjectType), f.AudioObjectType)
	}
	if err != nil {
		return nil, err
	}

	if f.AudioObjectType.in(ObjectTypeERLC, ObjectTypeERLTP, ObjectTypeERScalable,
		ObjectTypeERTwinVQ, ObjectTypeERBSAC, ObjectTypeLD, ObjectTypeERCELP,
		ObjectTypeERHVXC, ObjectTypeERHILN, ObjectTypeERParameter, ObjectTypeELD) {
		asc.EPConfigPresent = true
		asc.EPConfig = uint8(r.GetBits(2))
		if asc.EPConfig == 2 || asc.EPConfig == 3 {
			return nil, unsupported("error protection ep_config %d", asc.EPConfig)
		}
	}

	left := func() int { return int(bitsToDecode) - int(r.GetProcessedBits()) }
	if asc.SBRPresent == PresenceUnknown && left() >= 16 && r.ShowBits(11) == syncExtensionSBR {
		r.FlushBits(11)
		ext := &Format{AudioObjectType: decodeObjectType(r)}
		asc.ExtensionFormat = ext
		switch ext.AudioObjectType {
		case ObjectTypeSBR:
			asc.SBRPresent = presenceFromBit(r.Get1Bit())
			if asc.SBRPresent == PresencePresent {
				ext.decodeSamplingFrequency(r)
				if left() >= 12 && r.ShowBits(11) == syncExtensionPS {
					r.FlushBits(11)
					asc.PSPresent = PresencePresent
				}
			}
		case ObjectTypeERBSAC:
			asc.SBRPresent = presenceFromBit(r.Get1Bit())
			if asc.SBRPresent == PresencePresent {
				ext.decodeSamplingFrequency(r)
			}
			ext.ChannelConfiguration = uint8(r.GetBits(4))
		}
	}

	if r.Error() {
		return nil, overrun("AudioSpecificConfig")
	}
	return asc, nil
}

// NumSamplesPerFrame returns the number of PCM samples per channel carried
// by one access unit of the core codec, or 0 when the object type does not
// define it.
func (c *AudioSpecificConfig) NumSamplesPerFrame() int {
	if c.Specific == nil {
		return 0
	}
	short := c.Specific.FrameLengthFlag()
	switch {
	case c.Format.AudioObjectType.in(ObjectTypeMain, ObjectTypeLC, ObjectTypeSSR, ObjectTypeLTP,
		ObjectTypeScalable, ObjectTypeTwinVQ, ObjectTypeERLC, ObjectTypeERLTP,
		ObjectTypeERScalable, ObjectTypeERTwinVQ, ObjectTypeERBSAC):
		if short {
			return 960
		}
		return 1024
	case c.Format.AudioObjectType.in(ObjectTypeLD, ObjectTypeELD):
		if short {
			return 480
		}
		return 512
	}
	return 0
}

// OutputSampleRate returns the sample rate of the decoded signal, which is
// the SBR rate when SBR is present.
func (c *AudioSpecificConfig) OutputSampleRate() uint32 {
	if c.SBRPresent == PresencePresent && c.ExtensionFormat != nil {
		return c.ExtensionFormat.SampleRate()
	}
	return c.Format.SampleRate()
}
