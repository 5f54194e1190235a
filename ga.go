package latm

import "github.com/llehouerou/go-latm/internal/bits"

// CodecSpecificConfig is the object-type specific tail of an
// AudioSpecificConfig: either *GASpecificConfig or *ELDSpecificConfig.
type CodecSpecificConfig interface {
	// FrameLengthFlag selects the short frame variant (960 or 480 samples).
	FrameLengthFlag() bool
	codecSpecificConfig()
}

// GAExtension is the extension payload of a GASpecificConfig: either
// *BSACExtension or *ERExtension.
type GAExtension interface {
	gaExtension()
}

// BSACExtension carries the ER BSAC (AOT 22) extension fields.
type BSACExtension struct {
	NumOfSubFrames uint8  // 5 bits
	LayerLength    uint16 // 11 bits
}

func (*BSACExtension) gaExtension() {}

// ERExtension carries the error resilience flags of the ER object types.
type ERExtension struct {
	SectionDataResilience     bool
	ScaleFactorDataResilience bool
	SpectralDataResilience    bool
}

func (*ERExtension) gaExtension() {}

func (e *ERExtension) decode(r *bits.Reader) {
	e.SectionDataResilience = r.GetFlag()
	e.ScaleFactorDataResilience = r.GetFlag()
	e.SpectralDataResilience = r.GetFlag()
}

// GASpecificConfig is the General Audio specific configuration.
type GASpecificConfig struct {
	FrameLength        bool   // 960/480 sample frames
	DependsOnCoreCoder bool   // Core coder delay present
	CoreCoderDelay     uint16 // 14 bits
	ExtensionFlag      bool   // Extension present

	// ProgramConfig is set iff the channel configuration is 0.
	ProgramConfig *ProgramConfigElement

	LayerNrPresent bool  // AOT 6 and 20 only
	LayerNr        uint8 // 3 bits

	// Extension is nil unless ExtensionFlag is set and the object type
	// defines one.
	Extension GAExtension

	ExtensionFlag3Present bool
	ExtensionFlag3        bool
}

// FrameLengthFlag implements CodecSpecificConfig.
func (c *GASpecificConfig) FrameLengthFlag() bool { return c.FrameLength }

func (*GASpecificConfig) codecSpecificConfig() {}

// decodeGASpecificConfig reads a GASpecificConfig for the given format.
func decodeGASpecificConfig(r *bits.Reader, f *Format) (*GASpecificConfig, error) {
	c := &GASpecificConfig{}

	c.FrameLength = r.GetFlag()
	c.DependsOnCoreCoder = r.GetFlag()
	if c.DependsOnCoreCoder {
		c.CoreCoderDelay = uint16(r.GetBits(14))
	}
	c.ExtensionFlag = r.GetFlag()

	if f.ChannelConfiguration == 0 {
		pce, err := decodeProgramConfigElement(r)
		if err != nil {
			return nil, err
		}
		c.ProgramConfig = pce
	}

	if f.AudioObjectType.in(ObjectTypeScalable, ObjectTypeERScalable) {
		c.LayerNrPresent = true
		c.LayerNr = uint8(r.GetBits(3))
	}

	if c.ExtensionFlag {
		switch {
		case f.AudioObjectType == ObjectTypeERBSAC:
			c.Extension = &BSACExtension{
				NumOfSubFrames: uint8(r.GetBits(5)),
				LayerLength:    uint16(r.GetBits(11)),
			}
		case f.AudioObjectType.in(ObjectTypeERLC, ObjectTypeERLTP, ObjectTypeERScalable, ObjectTypeLD):
			ext := &ERExtension{}
			ext.decode(r)
			c.Extension = ext
		}
		c.ExtensionFlag3Present = true
		c.ExtensionFlag3 = r.GetFlag()
	}

	if r.Error() {
		return nil, overrun("GASpecificConfig")
	}
	return c, nil
}
