package latm

import (
	"fmt"

	"github.com/llehouerou/go-latm/internal/bits"
	"github.com/llehouerou/go-latm/internal/tables"
)

// ObjectType represents an MPEG-4 audio object type (AOT).
type ObjectType uint8

// Audio Object Types.
// Source: ISO/IEC 14496-3 Table 1.17
const (
	ObjectTypeNull        ObjectType = 0
	ObjectTypeMain        ObjectType = 1
	ObjectTypeLC          ObjectType = 2  // Most common - Low Complexity
	ObjectTypeSSR         ObjectType = 3  // Scalable Sample Rate
	ObjectTypeLTP         ObjectType = 4  // Long Term Prediction
	ObjectTypeSBR         ObjectType = 5  // High Efficiency AAC (SBR)
	ObjectTypeScalable    ObjectType = 6  // AAC Scalable
	ObjectTypeTwinVQ      ObjectType = 7  // TwinVQ
	ObjectTypeCELP        ObjectType = 8  // CELP
	ObjectTypeERLC        ObjectType = 17 // Error Resilient LC
	ObjectTypeERLTP       ObjectType = 19 // Error Resilient LTP
	ObjectTypeERScalable  ObjectType = 20 // Error Resilient Scalable
	ObjectTypeERTwinVQ    ObjectType = 21 // Error Resilient TwinVQ
	ObjectTypeERBSAC      ObjectType = 22 // Error Resilient BSAC
	ObjectTypeLD          ObjectType = 23 // Low Delay
	ObjectTypeERCELP      ObjectType = 24 // Error Resilient CELP
	ObjectTypeERHVXC      ObjectType = 25 // Error Resilient HVXC
	ObjectTypeERHILN      ObjectType = 26 // Error Resilient HILN
	ObjectTypeERParameter ObjectType = 27 // Error Resilient Parametric
	ObjectTypePS          ObjectType = 29 // SBR + Parametric Stereo
	ObjectTypeEscape      ObjectType = 31 // Escape to 6-bit extension
	ObjectTypeELD         ObjectType = 39 // Enhanced Low Delay
)

var objectTypeNames = map[ObjectType]string{
	ObjectTypeNull:        "Null",
	ObjectTypeMain:        "AAC Main",
	ObjectTypeLC:          "AAC LC",
	ObjectTypeSSR:         "AAC SSR",
	ObjectTypeLTP:         "AAC LTP",
	ObjectTypeSBR:         "SBR",
	ObjectTypeScalable:    "AAC Scalable",
	ObjectTypeTwinVQ:      "TwinVQ",
	ObjectTypeCELP:        "CELP",
	ObjectTypeERLC:        "ER AAC LC",
	ObjectTypeERLTP:       "ER AAC LTP",
	ObjectTypeERScalable:  "ER AAC Scalable",
	ObjectTypeERTwinVQ:    "ER TwinVQ",
	ObjectTypeERBSAC:      "ER BSAC",
	ObjectTypeLD:          "ER AAC LD",
	ObjectTypeERCELP:      "ER CELP",
	ObjectTypeERHVXC:      "ER HVXC",
	ObjectTypeERHILN:      "ER HILN",
	ObjectTypeERParameter: "ER Parametric",
	ObjectTypePS:          "PS",
	ObjectTypeELD:         "ER AAC ELD",
}

// String returns the conventional name of the object type.
func (t ObjectType) String() string {
	if name, ok := objectTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("AOT(%d)", uint8(t))
}

// in reports whether t is one of the given types.
func (t ObjectType) in(types ...ObjectType) bool {
	for _, v := range types {
		if t == v {
			return true
		}
	}
	return false
}

// PresenceFlag is a tri-state flag for extensions whose presence is only
// known once the bitstream proves it one way or the other.
type PresenceFlag int8

// Presence states.
const (
	PresenceUnknown PresenceFlag = -1
	PresenceAbsent  PresenceFlag = 0
	PresencePresent PresenceFlag = 1
)

func (f PresenceFlag) String() string {
	switch f {
	case PresenceAbsent:
		return "absent"
	case PresencePresent:
		return "present"
	default:
		return "unknown"
	}
}

func presenceFromBit(b uint8) PresenceFlag {
	if b == 1 {
		return PresencePresent
	}
	return PresenceAbsent
}

// Format holds the generic codec parameters shared by the AudioSpecificConfig
// and the ADTS header.
//
// SamplingFrequency is only meaningful when SamplingFrequencyIndex is 15;
// otherwise the index into the fixed table is authoritative. A zero
// ChannelConfiguration means the layout is defined by a Program Config
// Element (or was not signalled).
type Format struct {
	AudioObjectType        ObjectType
	ChannelConfiguration   uint8
	SamplingFrequencyIndex uint8
	SamplingFrequency      uint32
}

// SampleRate returns the sampling frequency in Hz.
func (f Format) SampleRate() uint32 {
	if f.SamplingFrequencyIndex == tables.ExplicitSRIndex {
		return f.SamplingFrequency
	}
	return tables.GetSampleRate(f.SamplingFrequencyIndex)
}

// decodeSamplingFrequency reads the 4-bit index and, for index 15, the
// explicit 24-bit frequency.
func (f *Format) decodeSamplingFrequency(r *bits.Reader) {
	f.SamplingFrequencyIndex = uint8(r.GetBits(4))
	if f.SamplingFrequencyIndex == tables.ExplicitSRIndex {
		f.SamplingFrequency = r.GetBits(24)
	} else {
		f.SamplingFrequency = 0
	}
}

// encodeSamplingFrequency is the mirror of decodeSamplingFrequency.
func (f *Format) encodeSamplingFrequency(w *bits.Writer) {
	w.WriteBits(uint64(f.SamplingFrequencyIndex), 4)
	if f.SamplingFrequencyIndex == tables.ExplicitSRIndex {
		w.WriteBits(uint64(f.SamplingFrequency), 24)
	}
}

// decodeObjectType reads a 5-bit audio object type with the 6-bit escape
// for types 32 and above.
func decodeObjectType(r *bits.Reader) ObjectType {
	aot := r.GetBits(5)
	if aot == uint32(ObjectTypeEscape) {
		aot = 32 + r.GetBits(6)
	}
	return ObjectType(aot)
}

// encodeObjectType is the mirror of decodeObjectType.
func encodeObjectType(w *bits.Writer, t ObjectType) {
	if t < 31 {
		w.WriteBits(uint64(t), 5)
		return
	}
	w.WriteBits(uint64(ObjectTypeEscape), 5)
	w.WriteBits(uint64(t-32), 6)
}
