package latm

import "github.com/llehouerou/go-latm/internal/bits"

// ChannelElement references one syntax element of a program.
// IsCPE is only carried by front, side and back elements.
type ChannelElement struct {
	IsCPE     bool  // Channel pair element (otherwise single channel)
	TagSelect uint8 // Element instance tag
}

// CCElement references a coupling channel element.
type CCElement struct {
	IsIndSW   bool  // Independently switched
	TagSelect uint8 // Element instance tag
}

// ProgramConfigElement describes a channel layout that the 3-bit
// channel configuration cannot express.
//
// The comment field is byte aligned relative to the start of the enclosing
// AudioSpecificConfig.
type ProgramConfigElement struct {
	ElementInstanceTag uint8 // Element instance tag
	ObjectType         uint8 // Profile (2 bits)
	SFIndex            uint8 // Sample frequency index

	MonoMixdownPresent         bool  // Mono mixdown element present
	MonoMixdownElementNumber   uint8 // Mono mixdown element number
	StereoMixdownPresent       bool  // Stereo mixdown element present
	StereoMixdownElementNumber uint8 // Stereo mixdown element number
	MatrixMixdownIdxPresent    bool  // Matrix mixdown present
	MatrixMixdownIdx           uint8 // Matrix mixdown index
	PseudoSurroundEnable       bool  // Pseudo surround enabled

	FrontElements     []ChannelElement
	SideElements      []ChannelElement
	BackElements      []ChannelElement
	LFEElements       []ChannelElement
	AssocDataElements []ChannelElement
	ValidCCElements   []CCElement

	Comment []byte
}

// decodeProgramConfigElement reads a PCE. r must be positioned relative to
// the start of the AudioSpecificConfig so that the byte alignment before
// the comment field lands where the encoder put it.
func decodeProgramConfigElement(r *bits.Reader) (*ProgramConfigElement, error) {
	pce := &ProgramConfigElement{}

	pce.ElementInstanceTag = uint8(r.GetBits(4))
	pce.ObjectType = uint8(r.GetBits(2))
	pce.SFIndex = uint8(r.GetBits(4))

	numFront := int(r.GetBits(4))
	numSide := int(r.GetBits(4))
	numBack := int(r.GetBits(4))
	numLFE := int(r.GetBits(2))
	numAssoc := int(r.GetBits(3))
	numCC := int(r.GetBits(4))

	pce.MonoMixdownPresent = r.GetFlag()
	if pce.MonoMixdownPresent {
		pce.MonoMixdownElementNumber = uint8(r.GetBits(4))
	}
	pce.StereoMixdownPresent = r.GetFlag()
	if pce.StereoMixdownPresent {
		pce.StereoMixdownElementNumber = uint8(r.GetBits(4))
	}
	pce.MatrixMixdownIdxPresent = r.GetFlag()
	if pce.MatrixMixdownIdxPresent {
		pce.MatrixMixdownIdx = uint8(r.GetBits(2))
		pce.PseudoSurroundEnable = r.GetFlag()
	}

	pce.FrontElements = decodeChannelElements(r, numFront, true)
	pce.SideElements = decodeChannelElements(r, numSide, true)
	pce.BackElements = decodeChannelElements(r, numBack, true)
	pce.LFEElements = decodeChannelElements(r, numLFE, false)
	pce.AssocDataElements = decodeChannelElements(r, numAssoc, false)

	pce.ValidCCElements = make([]CCElement, numCC)
	for i := range pce.ValidCCElements {
		pce.ValidCCElements[i].IsIndSW = r.GetFlag()
		pce.ValidCCElements[i].TagSelect = uint8(r.GetBits(4))
	}

	r.ByteAlign()
	n := r.GetBits(8)
	pce.Comment = r.GetBitBuffer(n * 8)

	if r.Error() {
		return nil, overrun("program config element")
	}
	return pce, nil
}

func decodeChannelElements(r *bits.Reader, n int, withCPE bool) []ChannelElement {
	els := make([]ChannelElement, n)
	for i := range els {
		if withCPE {
			els[i].IsCPE = r.GetFlag()
		}
		els[i].TagSelect = uint8(r.GetBits(4))
	}
	return els
}

// NumChannels returns the number of output channels described by the PCE.
// Channel pair elements count twice; associated data and coupling elements
// carry no output channel.
func (p *ProgramConfigElement) NumChannels() int {
	n := len(p.LFEElements)
	for _, list := range [][]ChannelElement{p.FrontElements, p.SideElements, p.BackElements} {
		for _, el := range list {
			if el.IsCPE {
				n += 2
			} else {
				n++
			}
		}
	}
	return n
}
