package tables

// ExplicitSRIndex is the sampling frequency index that signals an explicit
// 24-bit frequency in the bitstream.
const ExplicitSRIndex = 0x0F

// SampleRates maps sampling frequency index to sample rate in Hz.
// Indices 13 and 14 are reserved and map to 0.
//
// Source: ISO/IEC 14496-3 Table 1.18
var SampleRates = [15]uint32{
	96000, 88200, 64000, 48000, 44100, 32000,
	24000, 22050, 16000, 12000, 11025, 8000,
	7350, 0, 0,
}

// GetSampleRate returns the sample rate for a given index.
// Returns 0 for reserved indices and for the explicit index (15).
func GetSampleRate(srIndex uint8) uint32 {
	if int(srIndex) >= len(SampleRates) {
		return 0
	}
	return SampleRates[srIndex]
}

// GetSRIndex returns the table index whose rate equals sampleRate exactly.
func GetSRIndex(sampleRate uint32) (uint8, bool) {
	if sampleRate == 0 {
		return 0, false
	}
	for i, rate := range SampleRates {
		if rate == sampleRate {
			return uint8(i), true
		}
	}
	return 0, false
}
