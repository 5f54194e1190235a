package latm

import (
	"testing"

	"github.com/llehouerou/go-latm/internal/bits"
)

// fld is a bitstream field: value v written on n bits.
type fld struct {
	v uint64
	n uint8
}

func writeFields(w *bits.Writer, fields ...fld) {
	for _, x := range fields {
		w.WriteBits(x.v, x.n)
	}
}

// pack builds a byte vector from fields, zero padded to a byte boundary.
func pack(t *testing.T, fields ...fld) []byte {
	t.Helper()
	w := bits.NewWriter()
	writeFields(w, fields...)
	return finish(t, w)
}

func finish(t *testing.T, w *bits.Writer) []byte {
	t.Helper()
	data, err := w.Bytes()
	if err != nil {
		t.Fatalf("writer: %v", err)
	}
	return data
}

// lcConfig returns the fields of a GA AudioSpecificConfig with all
// GASpecificConfig flags cleared.
func lcConfig(aot ObjectType, sfIndex, chanConfig uint8) []fld {
	return []fld{
		{uint64(aot), 5},
		{uint64(sfIndex), 4},
		{uint64(chanConfig), 4},
		{0, 1}, // frameLengthFlag
		{0, 1}, // dependsOnCoreCoder
		{0, 1}, // extensionFlag
	}
}

// writeMuxSlotLength writes n as a run of 0xFF bytes and a final byte.
func writeMuxSlotLength(w *bits.Writer, n int) {
	for n >= 0xFF {
		w.WriteBits(0xFF, 8)
		n -= 0xFF
	}
	w.WriteBits(uint64(n), 8)
}

// writeSingleStreamMuxConfig writes a version 0 StreamMuxConfig with one
// program, one layer and one sub-frame carrying an AAC LC config.
func writeSingleStreamMuxConfig(w *bits.Writer, sfIndex, chanConfig uint8) {
	writeFields(w,
		fld{0, 1}, // audioMuxVersion
		fld{1, 1}, // allStreamsSameTimeFraming
		fld{0, 6}, // numSubFrames - 1
		fld{0, 4}, // numProgram - 1
		fld{0, 3}, // numLayer - 1
	)
	writeFields(w, lcConfig(ObjectTypeLC, sfIndex, chanConfig)...)
	writeFields(w,
		fld{0, 3},    // frameLengthType
		fld{0xFF, 8}, // latmBufferFullness
		fld{0, 1},    // otherDataPresent
		fld{0, 1},    // crcCheckPresent
	)
}

// singleStreamElement builds an AudioMuxElement for the config written by
// writeSingleStreamMuxConfig (48 kHz stereo). withConfig selects whether
// the element carries the config or reuses the active one.
func singleStreamElement(t *testing.T, payload []byte, withConfig bool) []byte {
	t.Helper()
	w := bits.NewWriter()
	w.WriteFlag(!withConfig) // useSameStreamMux
	if withConfig {
		writeSingleStreamMuxConfig(w, 3, 2)
	}
	writeMuxSlotLength(w, len(payload))
	w.WriteBytes(payload)
	w.ByteAlign()
	return finish(t, w)
}

// loasFrame wraps an element in AudioSyncStream framing.
func loasFrame(element []byte) []byte {
	n := len(element)
	out := []byte{0x56, 0xE0 | byte(n>>8&0x1F), byte(n)}
	return append(out, element...)
}

func testPayload(n int, seed byte) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = seed + byte(i)
	}
	return p
}
