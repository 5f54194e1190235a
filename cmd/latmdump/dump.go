package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/llehouerou/go-latm"
)

type dumper struct {
	w   io.Writer
	log *zap.Logger
}

func (d *dumper) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(d.w)
	t.SetStyle(table.StyleLight)
	return t
}

func (d *dumper) loasFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(d.w, "%s (LOAS)\n", path)

	var (
		packets  table.Writer
		index    int
		skipped  int
		elements = latm.NewLOASReader(f, latm.WithLogger(d.log))
	)
	flush := func() {
		if packets != nil && packets.Length() > 0 {
			packets.Render()
		}
		packets = nil
	}

	for e, err := range elements.All() {
		if err != nil {
			flush()
			return errors.Wrapf(err, "after %d elements", index)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if e.StreamMuxConfig != nil {
			flush()
			d.renderConfig(index, e.StreamMuxConfig)
		}
		if elements.ActiveConfig() == nil {
			skipped++
			index++
			continue
		}
		if packets == nil {
			packets = d.newTable()
			packets.AppendHeader(table.Row{"Element", "Sub-frame", "Stream", "Length", "AU end", "Other data"})
		}
		for sf, slot := range e.SubFrames {
			for _, p := range slot {
				auEnd := "-"
				if p.AuEndFlagPresent {
					auEnd = fmt.Sprint(p.AuEndFlag)
				}
				packets.AppendRow(table.Row{index, sf, p.StreamID, p.MuxSlotLengthBytes, auEnd, len(e.OtherData)})
			}
		}
		index++
	}
	flush()

	if skipped > 0 {
		fmt.Fprintf(d.w, "%d elements before the first StreamMuxConfig\n", skipped)
	}
	fmt.Fprintf(d.w, "%d elements\n\n", index)
	return nil
}

func (d *dumper) renderConfig(index int, c *latm.StreamMuxConfig) {
	t := d.newTable()
	t.SetTitle("StreamMuxConfig at element %d: version %d, %d sub-frames, same time framing %v",
		index, c.AudioMuxVersion, c.NumSubFrames, c.AllStreamsSameTimeFraming)
	t.AppendHeader(table.Row{"Stream", "Program", "Layer", "Object type", "Sample rate", "Channels", "SBR", "PS", "Samples", "Fullness"})
	for _, s := range c.Streams {
		asc := s.Config
		t.AppendRow(table.Row{
			s.ID, s.Program, s.Layer,
			asc.Format.AudioObjectType,
			asc.OutputSampleRate(),
			channels(asc),
			asc.SBRPresent, asc.PSPresent,
			asc.NumSamplesPerFrame(),
			s.LATMBufferFullness,
		})
	}
	t.Render()
}

func channels(asc *latm.AudioSpecificConfig) int {
	if asc.Format.ChannelConfiguration != 0 {
		return int(asc.Format.ChannelConfiguration)
	}
	if ga, ok := asc.Specific.(*latm.GASpecificConfig); ok && ga.ProgramConfig != nil {
		return ga.ProgramConfig.NumChannels()
	}
	return 0
}

func (d *dumper) adtsFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(d.w, "%s (ADTS)\n", path)

	t := d.newTable()
	t.AppendHeader(table.Row{"Frame", "Object type", "Sample rate", "Channels", "Length", "CRC", "Fullness"})
	n := 0
	var readErr error
	for frame, err := range latm.NewADTSReader(f, latm.WithLogger(d.log)).All() {
		if err != nil {
			readErr = err
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		h := frame.Header
		crc := "-"
		if !h.ProtectionAbsent {
			crc = fmt.Sprintf("%04X", frame.CRC)
		}
		t.AppendRow(table.Row{n, h.ObjectType, h.Format().SampleRate(), h.ChannelConfiguration, h.AACFrameLength, crc, h.ADTSBufferFullness})
		n++
	}
	if n > 0 {
		t.Render()
	}
	if readErr != nil {
		return errors.Wrapf(readErr, "after %d frames", n)
	}
	fmt.Fprintf(d.w, "%d frames\n\n", n)
	return nil
}
