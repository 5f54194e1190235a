package latm

import (
	"github.com/llehouerou/go-latm/internal/bits"
	"github.com/llehouerou/go-latm/internal/tables"
)

// SBRHeaderExtra1 holds the optional first group of SBR header fields.
type SBRHeaderExtra1 struct {
	FreqScale  uint8 // bs_freq_scale, 2 bits
	AlterScale bool  // bs_alter_scale
	NoiseBands uint8 // bs_noise_bands, 2 bits
}

// SBRHeaderExtra2 holds the optional second group of SBR header fields.
type SBRHeaderExtra2 struct {
	LimiterBands  uint8 // bs_limiter_bands, 2 bits
	LimiterGains  uint8 // bs_limiter_gains, 2 bits
	InterpolFreq  bool  // bs_interpol_freq
	SmoothingMode bool  // bs_smoothing_mode
}

// SBRHeader is one per-channel-element SBR header of an ELD config.
type SBRHeader struct {
	AmpRes    bool  // bs_amp_res
	StartFreq uint8 // bs_start_freq, 4 bits
	StopFreq  uint8 // bs_stop_freq, 4 bits
	XoverBand uint8 // bs_xover_band, 3 bits

	Extra1 *SBRHeaderExtra1
	Extra2 *SBRHeaderExtra2
}

func decodeSBRHeader(r *bits.Reader) SBRHeader {
	var h SBRHeader
	h.AmpRes = r.GetFlag()
	h.StartFreq = uint8(r.GetBits(4))
	h.StopFreq = uint8(r.GetBits(4))
	h.XoverBand = uint8(r.GetBits(3))
	r.FlushBits(2) // bs_reserved
	hasExtra1 := r.GetFlag()
	hasExtra2 := r.GetFlag()
	if hasExtra1 {
		h.Extra1 = &SBRHeaderExtra1{
			FreqScale:  uint8(r.GetBits(2)),
			AlterScale: r.GetFlag(),
			NoiseBands: uint8(r.GetBits(2)),
		}
	}
	if hasExtra2 {
		h.Extra2 = &SBRHeaderExtra2{
			LimiterBands:  uint8(r.GetBits(2)),
			LimiterGains:  uint8(r.GetBits(2)),
			InterpolFreq:  r.GetFlag(),
			SmoothingMode: r.GetFlag(),
		}
	}
	return h
}

// ELDSBRConfig is the low delay SBR configuration of an ELD stream.
type ELDSBRConfig struct {
	SamplingRate bool // ld_sbr_sampling_rate (dual rate)
	CRCFlag      bool // ld_sbr_crc_flag

	// Headers has one entry per SBR channel element, a count fixed by the
	// channel configuration.
	Headers []SBRHeader
}

func decodeELDSBRConfig(r *bits.Reader, chanConfig uint8) *ELDSBRConfig {
	c := &ELDSBRConfig{
		SamplingRate: r.GetFlag(),
		CRCFlag:      r.GetFlag(),
	}
	c.Headers = make([]SBRHeader, tables.NumELDSBRHeaders(chanConfig))
	for i := range c.Headers {
		c.Headers[i] = decodeSBRHeader(r)
	}
	return c
}

// ELDExtension is an opaque extension record of an ELD config.
type ELDExtension struct {
	Type    uint8 // 4 bits, never 0
	Payload []byte
}

// ELDSpecificConfig is the configuration of an ER AAC ELD (AOT 39) stream.
type ELDSpecificConfig struct {
	FrameLength bool // 480 sample frames
	Resilience  ERExtension

	// SBR is set iff ldSbrPresentFlag was set.
	SBR *ELDSBRConfig

	Extensions []ELDExtension
}

// FrameLengthFlag implements CodecSpecificConfig.
func (c *ELDSpecificConfig) FrameLengthFlag() bool { return c.FrameLength }

func (*ELDSpecificConfig) codecSpecificConfig() {}

// eldExtTerm ends the extension list.
const eldExtTerm = 0

func decodeELDSpecificConfig(r *bits.Reader, chanConfig uint8) (*ELDSpecificConfig, error) {
	c := &ELDSpecificConfig{}
	c.FrameLength = r.GetFlag()
	c.Resilience.decode(r)

	if r.GetFlag() {
		c.SBR = decodeELDSBRConfig(r, chanConfig)
	}

	for !r.Error() {
		extType := uint8(r.GetBits(4))
		if extType == eldExtTerm {
			break
		}
		n := r.GetBits(4)
		if n == 15 {
			add := r.GetBits(8)
			n += add
			if add == 255 {
				n += r.GetBits(16)
			}
		}
		c.Extensions = append(c.Extensions, ELDExtension{
			Type:    extType,
			Payload: r.GetBitBuffer(n * 8),
		})
	}

	if r.Error() {
		return nil, overrun("ELDSpecificConfig")
	}
	return c, nil
}
