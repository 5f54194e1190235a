// Package latm decodes the MPEG-4 AAC transport layers: ADTS framing and
// LATM/LOAS multiplexing, together with the AudioSpecificConfig they carry.
//
// # Basic Usage
//
// To read the elements of a LOAS stream:
//
//	r := latm.NewLOASReader(f)
//	for e, err := range r.All() {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    for _, packets := range e.SubFrames {
//	        // packets[streamID].Payload is one raw access unit
//	    }
//	}
//
// ADTS streams are read the same way with NewADTSReader. Both readers skip
// bytes preceding a sync word and stop with io.EOF when no further sync word
// is found or the last frame is cut short.
//
// # Errors
//
// Decode failures wrap ErrMalformedHeader (missing sync, violated structural
// constraint, truncated structure) or ErrUnsupportedFeature (valid but
// unhandled bitstream variants such as ep_config 2/3, frameLengthType other
// than 0 or several raw data blocks per ADTS frame). A failure ends the
// stream; readers do not try to resynchronize past a bad header.
//
// # Thread Safety
//
// Readers are NOT safe for concurrent use. Decoded structures are never
// modified after decoding and may be shared freely; a reused
// AudioSpecificConfig is shared between streams by pointer.
package latm
