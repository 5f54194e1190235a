//go:build ignore

// This script generates LOAS and ADTS streams for integration testing.
// Run with: go run testdata/generate.go
//
// Requirements: FFmpeg must be installed and available in PATH. The HE-AAC
// profiles need the libfdk_aac encoder and are skipped without it.
//
// Generated test data structure:
//   testdata/generated/
//   ├── aac_lc/
//   │   ├── 48000_stereo_128k.latm   # AudioSyncStream
//   │   ├── 48000_stereo_128k.aac    # ADTS, same encoder settings
//   │   └── 48000_stereo_128k.json   # StreamConfig
//   ├── he_aac/
//   └── he_aac_v2/

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// StreamConfig describes one generated stream pair.
type StreamConfig struct {
	SampleRate  int    `json:"sample_rate"`
	NumChannels int    `json:"num_channels"`
	Profile     string `json:"profile"` // "aac_lc", "he_aac", "he_aac_v2"
	Bitrate     int    `json:"bitrate"` // kbps
}

var configs = []StreamConfig{
	{44100, 1, "aac_lc", 64},
	{44100, 2, "aac_lc", 128},
	{48000, 2, "aac_lc", 128},
	{22050, 2, "aac_lc", 64},
	{16000, 1, "aac_lc", 24},
	{44100, 2, "he_aac", 48},
	{48000, 2, "he_aac", 64},
	{44100, 2, "he_aac_v2", 32},
}

var profileArgs = map[string][]string{
	"aac_lc":    {"-c:a", "aac", "-profile:a", "aac_low"},
	"he_aac":    {"-c:a", "libfdk_aac", "-profile:a", "aac_he"},
	"he_aac_v2": {"-c:a", "libfdk_aac", "-profile:a", "aac_he_v2"},
}

func main() {
	if err := exec.Command("ffmpeg", "-version").Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: ffmpeg not found: %v\n", err)
		fmt.Fprintf(os.Stderr, "Please install FFmpeg: https://ffmpeg.org/download.html\n")
		os.Exit(1)
	}
	fdk := hasEncoder("libfdk_aac")

	baseDir := filepath.Join("testdata", "generated")
	for _, cfg := range configs {
		if cfg.Profile != "aac_lc" && !fdk {
			fmt.Fprintf(os.Stderr, "Skipping %s: libfdk_aac not available\n", cfg.Profile)
			continue
		}
		dir := filepath.Join(baseDir, cfg.Profile)
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating directory %s: %v\n", dir, err)
			os.Exit(1)
		}
		name := fmt.Sprintf("%d_%s_%dk", cfg.SampleRate, channelName(cfg.NumChannels), cfg.Bitrate)
		if err := generate(filepath.Join(dir, name), cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating %s/%s: %v\n", cfg.Profile, name, err)
			continue
		}
		fmt.Printf("Generated %s/%s\n", cfg.Profile, name)
	}
	fmt.Println("Done!")
}

func channelName(n int) string {
	if n == 1 {
		return "mono"
	}
	return "stereo"
}

func hasEncoder(encoder string) bool {
	output, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").Output()
	return err == nil && strings.Contains(string(output), encoder)
}

// generate encodes one second of a 1 kHz tone with the same settings into
// a LOAS and an ADTS stream, and writes cfg next to them.
func generate(base string, cfg StreamConfig) error {
	for _, out := range []struct{ format, ext string }{{"latm", ".latm"}, {"adts", ".aac"}} {
		args := []string{
			"-y", "-hide_banner", "-loglevel", "error",
			"-f", "lavfi", "-i", fmt.Sprintf("sine=frequency=1000:sample_rate=%d:duration=1", cfg.SampleRate),
			"-ac", fmt.Sprint(cfg.NumChannels),
		}
		args = append(args, profileArgs[cfg.Profile]...)
		args = append(args, "-b:a", fmt.Sprintf("%dk", cfg.Bitrate), "-f", out.format, base+out.ext)

		cmd := exec.Command("ffmpeg", args...)
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("encoding %s: %w", out.format, err)
		}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(base+".json", data, 0644)
}
