package tables

import "testing"

func TestGetSampleRate(t *testing.T) {
	tests := []struct {
		index    uint8
		expected uint32
	}{
		{0, 96000},
		{1, 88200},
		{2, 64000},
		{3, 48000},
		{4, 44100},
		{5, 32000},
		{6, 24000},
		{7, 22050},
		{8, 16000},
		{9, 12000},
		{10, 11025},
		{11, 8000},
		{12, 7350},
		{13, 0}, // Reserved
		{14, 0}, // Reserved
		{15, 0}, // Explicit
	}

	for _, tt := range tests {
		got := GetSampleRate(tt.index)
		if got != tt.expected {
			t.Errorf("GetSampleRate(%d) = %d, want %d", tt.index, got, tt.expected)
		}
	}
}

func TestGetSRIndex(t *testing.T) {
	tests := []struct {
		sampleRate uint32
		index      uint8
		ok         bool
	}{
		{96000, 0, true},
		{48000, 3, true},
		{44100, 4, true},
		{7350, 12, true},
		{44000, 0, false}, // no exact match
		{0, 0, false},     // reserved entries never match
	}

	for _, tt := range tests {
		index, ok := GetSRIndex(tt.sampleRate)
		if ok != tt.ok || index != tt.index {
			t.Errorf("GetSRIndex(%d) = (%d, %v), want (%d, %v)",
				tt.sampleRate, index, ok, tt.index, tt.ok)
		}
	}
}

func TestNumELDSBRHeaders(t *testing.T) {
	expected := []int{0, 1, 1, 2, 3, 3, 3, 4}
	for cfg, want := range expected {
		if got := NumELDSBRHeaders(uint8(cfg)); got != want {
			t.Errorf("NumELDSBRHeaders(%d) = %d, want %d", cfg, got, want)
		}
	}
	if got := NumELDSBRHeaders(8); got != 0 {
		t.Errorf("NumELDSBRHeaders(8) = %d, want 0", got)
	}
}
