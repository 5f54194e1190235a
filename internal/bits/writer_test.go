package bits

import (
	"bytes"
	"testing"
)

// TestWriter_ADTSHeaderLayout writes the fixed and variable ADTS header fields
// and reads them back with the Reader.
//
// Reference: ISO/IEC 13818-7 section 6.2.1
func TestWriter_ADTSHeaderLayout(t *testing.T) {
	fields := []struct {
		name  string
		value uint32
		width uint8
	}{
		{"syncword", 0xFFF, 12},
		{"id", 0, 1},
		{"layer", 0, 2},
		{"protection_absent", 1, 1},
		{"profile", 1, 2},
		{"sf_index", 3, 4},
		{"private_bit", 0, 1},
		{"channel_configuration", 2, 3},
		{"original", 0, 1},
		{"home", 0, 1},
		{"copyright_id_bit", 0, 1},
		{"copyright_id_start", 0, 1},
		{"frame_length", 107, 13},
		{"buffer_fullness", 0x7FF, 11},
		{"num_raw_data_blocks", 0, 2},
	}

	w := NewWriter()
	for _, f := range fields {
		w.WriteBits(uint64(f.value), f.width)
	}
	if w.Len() != 56 {
		t.Fatalf("header is %d bits, want 56", w.Len())
	}
	data, err := w.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	want := []byte{0xFF, 0xF1, 0x4C, 0x80, 0x0D, 0x7F, 0xFC}
	if !bytes.Equal(data, want) {
		t.Errorf("header bytes = % X, want % X", data, want)
	}

	r := NewReader(data)
	for _, f := range fields {
		if got := r.GetBits(uint(f.width)); got != f.value {
			t.Errorf("%s = %d, want %d", f.name, got, f.value)
		}
	}
}

func TestWriter_ByteAlign(t *testing.T) {
	w := NewWriter()
	w.WriteBits(0x5, 3)
	w.ByteAlign()
	if w.Len() != 8 {
		t.Errorf("Len after align = %d, want 8", w.Len())
	}
	w.ByteAlign()
	if w.Len() != 8 {
		t.Errorf("aligning an aligned writer added bits: %d", w.Len())
	}
	w.WriteFlag(true)
	w.WriteBytes([]byte{0x00, 0xFF})

	data, err := w.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	// 101 00000 | 1 0000000 | 0 1111111 | 1 0000000
	want := []byte{0xA0, 0x80, 0x7F, 0x80}
	if !bytes.Equal(data, want) {
		t.Errorf("Bytes() = % X, want % X", data, want)
	}
}

func TestWriter_MasksValue(t *testing.T) {
	w := NewWriter()
	w.WriteBits(0xFFFF, 4)
	w.WriteBits(0, 4)
	data, err := w.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, []byte{0xF0}) {
		t.Errorf("Bytes() = % X, want F0", data)
	}
}
