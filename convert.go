package latm

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ConvertLOASToADTS rewrites the access units of one stream of a LOAS
// source as an ADTS stream, and returns the number of frames written.
//
// Every sub-frame of every element contributes one ADTS frame; elements
// read before a StreamMuxConfig is known and empty slots are skipped. The
// stream must be AAC LC with a channel configuration (see
// ADTSHeaderFromFormat).
func ConvertLOASToADTS(dst io.Writer, src io.Reader, streamID int, opts ...Option) (int, error) {
	o := newReaderOptions(opts)
	lr := NewLOASReader(src, opts...)

	frames := 0
	for e, err := range lr.All() {
		if err != nil {
			return frames, err
		}
		active := lr.ActiveConfig()
		if active == nil {
			continue
		}
		if streamID < 0 || streamID >= len(active.Streams) {
			return frames, errors.Errorf("stream %d not in a multiplex of %d streams", streamID, len(active.Streams))
		}
		format := active.Streams[streamID].Config.Format

		for i, packets := range e.SubFrames {
			p := packets[streamID]
			if len(p.Payload) == 0 {
				o.logger.Debug("empty slot", zap.Int("subFrame", i), zap.Int("stream", streamID))
				continue
			}
			h, err := ADTSHeaderFromFormat(format, len(p.Payload))
			if err != nil {
				return frames, err
			}
			hdr, err := h.Marshal()
			if err != nil {
				return frames, err
			}
			if _, err := dst.Write(hdr); err != nil {
				return frames, errors.Wrap(err, "write adts header")
			}
			if _, err := dst.Write(p.Payload); err != nil {
				return frames, errors.Wrap(err, "write adts payload")
			}
			frames++
		}
	}
	return frames, nil
}
