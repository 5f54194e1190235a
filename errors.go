package latm

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// Error kinds. Every decode failure wraps one of these, so callers can
// branch with errors.Is regardless of the context attached to the error.
var (
	// ErrMalformedHeader reports a missing sync pattern or a violated
	// structural invariant (for example a non-zero ADTS layer field).
	ErrMalformedHeader = stderrors.New("latm: malformed header")

	// ErrUnsupportedFeature reports a syntactically valid value that selects
	// a bitstream variant this package does not handle.
	ErrUnsupportedFeature = stderrors.New("latm: unsupported feature")
)

// ErrBitstreamOverrun reports a structure that extends past the end of its
// bit window. It is a kind of malformed header.
var ErrBitstreamOverrun = errors.Wrap(ErrMalformedHeader, "bitstream overrun")

func malformed(format string, args ...any) error {
	return errors.Wrapf(ErrMalformedHeader, format, args...)
}

func unsupported(format string, args ...any) error {
	return errors.Wrapf(ErrUnsupportedFeature, format, args...)
}

func overrun(what string) error {
	return errors.Wrap(ErrBitstreamOverrun, what)
}
