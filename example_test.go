package latm_test

import (
	"bytes"
	"fmt"

	"github.com/llehouerou/go-latm"
)

func ExampleParseAudioSpecificConfig() {
	// AAC LC, 44.1 kHz, stereo
	asc, err := latm.ParseAudioSpecificConfig([]byte{0x12, 0x10})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(asc.Format.AudioObjectType)
	fmt.Println(asc.Format.SampleRate(), "Hz")
	fmt.Println(asc.Format.ChannelConfiguration, "channels")
	fmt.Println(asc.NumSamplesPerFrame(), "samples per frame")

	// Output:
	// AAC LC
	// 44100 Hz
	// 2 channels
	// 1024 samples per frame
}

func ExampleADTSHeaderFromFormat() {
	h, err := latm.ADTSHeaderFromFormat(latm.Format{
		AudioObjectType:        latm.ObjectTypeLC,
		ChannelConfiguration:   2,
		SamplingFrequencyIndex: 3,
	}, 100)
	if err != nil {
		fmt.Println(err)
		return
	}
	hdr, _ := h.Marshal()

	fmt.Println(h.AACFrameLength)
	fmt.Printf("% X\n", hdr)

	// Output:
	// 107
	// FF F1 4C 80 0D 7F FC
}

func ExampleNewADTSReader() {
	frame := []byte{0xFF, 0xF1, 0x50, 0x80, 0x01, 0x3F, 0xFC, 0xDE, 0xAD}

	r := latm.NewADTSReader(bytes.NewReader(frame))
	for f, err := range r.All() {
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("%d Hz, %d bytes: % X\n", f.Header.Format().SampleRate(), len(f.Payload), f.Payload)
	}

	// Output:
	// 44100 Hz, 2 bytes: DE AD
}
