package bits

import (
	"bytes"
	"testing"
)

func TestNewReader_BasicInit(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0}
	r := NewReader(data)

	if r.Error() {
		t.Error("NewReader set error flag unexpectedly")
	}
	if r.BitsLeft() != 32 {
		t.Errorf("BitsLeft = %d, want 32", r.BitsLeft())
	}
	if r.Len() != 64 {
		t.Errorf("Len = %d, want 64", r.Len())
	}
}

func TestNewReader_EmptyBuffer(t *testing.T) {
	r := NewReader(nil)
	if !r.Error() {
		t.Error("NewReader(nil) should set error flag")
	}

	r = NewReader([]byte{})
	if !r.Error() {
		t.Error("NewReader([]) should set error flag")
	}
}

func TestNewReader_LoadsBuffersCorrectly(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0}
	r := NewReader(data)

	if r.bufa != 0x12345678 {
		t.Errorf("bufa = 0x%08X, want 0x12345678", r.bufa)
	}
	if r.bufb != 0x9ABCDEF0 {
		t.Errorf("bufb = 0x%08X, want 0x9ABCDEF0", r.bufb)
	}
}

func TestReader_ShowBits(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56, 0x78, 0xAB, 0xCD, 0xEF, 0x00}

	tests := []struct {
		n    uint
		want uint32
	}{
		{0, 0},
		{4, 0x1},
		{8, 0x12},
		{12, 0x123},
		{32, 0x12345678},
	}

	for _, tc := range tests {
		r := NewReader(data)
		if got := r.ShowBits(tc.n); got != tc.want {
			t.Errorf("ShowBits(%d) = 0x%X, want 0x%X", tc.n, got, tc.want)
		}
		if r.GetProcessedBits() != 0 {
			t.Errorf("ShowBits(%d) consumed bits", tc.n)
		}
	}
}

func TestReader_ShowBits_CrossBoundary(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56, 0x78, 0xAB, 0xCD, 0xEF, 0x00}
	r := NewReader(data)
	r.FlushBits(16)

	// 16 bits left in bufa (0x5678) + 1 bit from bufb (0xAB -> 1).
	got := r.ShowBits(17)
	if got != 0xACF1 {
		t.Errorf("ShowBits(17) crossing boundary = 0x%X, want 0xACF1", got)
	}
}

func TestReader_GetBits(t *testing.T) {
	data := []byte{0xFF, 0x0F, 0xAB, 0xCD}
	r := NewReader(data)

	if got := r.GetBits(8); got != 0xFF {
		t.Errorf("GetBits(8) = 0x%X, want 0xFF", got)
	}
	if got := r.GetBits(8); got != 0x0F {
		t.Errorf("GetBits(8) = 0x%X, want 0x0F", got)
	}
	if got := r.GetBits(16); got != 0xABCD {
		t.Errorf("GetBits(16) = 0x%X, want 0xABCD", got)
	}
	if r.Error() {
		t.Error("reading exactly to the end should not set the error flag")
	}
}

func TestReader_Get1Bit_CrossBuffer(t *testing.T) {
	data := []byte{0xFF, 0xFF, 0xFF, 0xFE, 0x80, 0x00, 0x00, 0x00}
	r := NewReader(data)

	_ = r.GetBits(31)

	// bit 31 is the last bit of 0xFE
	if got := r.Get1Bit(); got != 0 {
		t.Errorf("Get1Bit() at bit 31 = %d, want 0", got)
	}
	// bit 32 is the top bit of 0x80
	if got := r.Get1Bit(); got != 1 {
		t.Errorf("Get1Bit() at bit 32 = %d, want 1", got)
	}
}

func TestReader_Overrun(t *testing.T) {
	r := NewReader([]byte{0xAB})
	_ = r.GetBits(8)
	if r.Error() {
		t.Fatal("error flag set before overrun")
	}
	if got := r.GetBits(1); got != 0 {
		t.Errorf("GetBits past end = %d, want 0", got)
	}
	if !r.Error() {
		t.Error("GetBits past end should set error flag")
	}
}

func TestReader_ByteAlign(t *testing.T) {
	data := []byte{0xFF, 0xAB, 0xCD, 0xEF}
	r := NewReader(data)

	if skipped := r.ByteAlign(); skipped != 0 {
		t.Errorf("ByteAlign() when aligned = %d, want 0", skipped)
	}

	_ = r.GetBits(3)
	if skipped := r.ByteAlign(); skipped != 5 {
		t.Errorf("ByteAlign() after 3 bits = %d, want 5", skipped)
	}

	if got := r.GetBits(8); got != 0xAB {
		t.Errorf("After align: GetBits(8) = 0x%X, want 0xAB", got)
	}
}

func TestReader_GetProcessedBits_CrossBuffer(t *testing.T) {
	data := []byte{
		0xFF, 0xFF, 0xFF, 0xFF,
		0xAA, 0xBB, 0xCC, 0xDD,
		0x11, 0x22, 0x33, 0x44,
	}
	r := NewReader(data)

	_ = r.GetBits(32)
	_ = r.GetBits(8)

	if got := r.GetProcessedBits(); got != 40 {
		t.Errorf("After 40 bits: position = %d, want 40", got)
	}
	if got := r.Remaining(); got != 56 {
		t.Errorf("Remaining() = %d, want 56", got)
	}
}

func TestReader_GetBitBuffer(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		skip uint
		n    uint32
		want []byte
	}{
		{"aligned", []byte{0xFF, 0x0F, 0xAB, 0xCD}, 0, 16, []byte{0xFF, 0x0F}},
		// 1111 0000 1111 1010 after skipping the first nibble
		{"unaligned", []byte{0xFF, 0x0F, 0xAB, 0xCD, 0x12, 0x34}, 4, 16, []byte{0xF0, 0xFA}},
		{"remainder", []byte{0xF0, 0x00, 0x00, 0x00}, 0, 4, []byte{0xF0}},
		{"aligned remainder is masked", []byte{0xFF, 0xFF}, 0, 12, []byte{0xFF, 0xF0}},
		{"zero", []byte{0xFF, 0x00}, 0, 0, []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.data)
			r.FlushBits(tt.skip)
			got := r.GetBitBuffer(tt.n)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("GetBitBuffer(%d) = % X, want % X", tt.n, got, tt.want)
			}
			if pos := r.GetProcessedBits(); pos != uint32(tt.skip)+tt.n {
				t.Errorf("position = %d, want %d", pos, uint32(tt.skip)+tt.n)
			}
		})
	}
}

func TestReader_ResetBits(t *testing.T) {
	data := []byte{
		0xFF, 0xFF, 0xFF, 0xFF,
		0xAA, 0xBB, 0xCC, 0xDD,
		0x11, 0x22, 0x33, 0x44,
	}
	r := NewReader(data)

	r.ResetBits(40)
	if got := r.GetProcessedBits(); got != 40 {
		t.Errorf("Position after reset(40) = %d, want 40", got)
	}
	if got := r.GetBits(24); got != 0xBBCCDD {
		t.Errorf("After reset(40), GetBits(24) = 0x%X, want 0xBBCCDD", got)
	}

	// First 12 bits are 0xFFF; bits 12-19 are 0xFF.
	r.ResetBits(12)
	if got := r.GetBits(8); got != 0xFF {
		t.Errorf("After reset(12): got 0x%X, want 0xFF", got)
	}
}

func TestReader_ResetBits_ClearsError(t *testing.T) {
	r := NewReader([]byte{0xFF, 0x0F, 0xAB, 0xCD})
	r.err = true
	r.ResetBits(0)
	if r.Error() {
		t.Error("ResetBits should clear error flag")
	}
}

func TestReader_ResetBits_BeyondBuffer(t *testing.T) {
	r := NewReader([]byte{0xFF, 0x0F})
	r.ResetBits(64)
	if !r.Error() {
		t.Error("ResetBits beyond buffer should set error flag")
	}
}

func TestReader_SkipBits(t *testing.T) {
	data := make([]byte, 16)
	data[13] = 0x5A
	r := NewReader(data)

	r.SkipBits(104)
	if got := r.GetBits(8); got != 0x5A {
		t.Errorf("after SkipBits(104), GetBits(8) = 0x%X, want 0x5A", got)
	}

	r.SkipBits(100)
	if !r.Error() {
		t.Error("SkipBits past end should set error flag")
	}
}

func TestReader_Tail(t *testing.T) {
	data := []byte{0xAB, 0xCD, 0xEF}

	t.Run("aligned", func(t *testing.T) {
		r := NewReader(data)
		_ = r.GetBits(8)
		tail := r.Tail()
		if got := tail.GetBits(16); got != 0xCDEF {
			t.Errorf("tail GetBits(16) = 0x%X, want 0xCDEF", got)
		}
		if r.GetProcessedBits() != 8 {
			t.Error("Tail must not advance the parent reader")
		}
	})

	t.Run("unaligned", func(t *testing.T) {
		r := NewReader(data)
		_ = r.GetBits(4)
		tail := r.Tail()
		// 1011 1100 1101 1110 1111 (padded with zeros)
		if got := tail.GetBits(16); got != 0xBCDE {
			t.Errorf("tail GetBits(16) = 0x%X, want 0xBCDE", got)
		}
		if got := tail.GetBits(8); got != 0xF0 {
			t.Errorf("tail GetBits(8) = 0x%X, want 0xF0", got)
		}
	})

	t.Run("at end", func(t *testing.T) {
		r := NewReader(data)
		_ = r.GetBits(24)
		if !r.Tail().Error() {
			t.Error("Tail at end of window should be empty")
		}
	})
}

func TestReader_LATMGetValue(t *testing.T) {
	tests := []struct {
		name     string
		value    uint32
		numBytes uint8
	}{
		{"zero bytes", 0, 0},
		{"one byte", 0xA5, 1},
		{"two bytes", 0x1234, 2},
		{"three bytes", 0xFEDCBA, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter()
			w.WriteBits(uint64(tt.numBytes), 2)
			w.WriteBits(uint64(tt.value), 8*tt.numBytes)
			w.WriteBits(0x3F, 6) // trailer
			data, err := w.Bytes()
			if err != nil {
				t.Fatal(err)
			}

			r := NewReader(data)
			if got := r.LATMGetValue(); got != tt.value {
				t.Errorf("LATMGetValue() = 0x%X, want 0x%X", got, tt.value)
			}
			want := 2 + 8*uint32(tt.numBytes)
			if pos := r.GetProcessedBits(); pos != want {
				t.Errorf("consumed %d bits, want %d", pos, want)
			}
			if got := r.GetBits(6); got != 0x3F {
				t.Errorf("trailer = 0x%X, want 0x3F", got)
			}
		})
	}
}

func TestReader_GetBitBuffer_PastEnd(t *testing.T) {
	r := NewReader([]byte{0xAB, 0xCD})
	_ = r.GetBits(4)
	if got := r.GetBitBuffer(16); got != nil {
		t.Errorf("GetBitBuffer past end = % X, want nil", got)
	}
	if !r.Error() {
		t.Error("GetBitBuffer past end should set error flag")
	}
}
