//go:build !cgo

package assets

import (
	"errors"
	"fmt"
)

const haveDecoders = false

var errNoDecoders = errors.New("audio decoding requires cgo (build with CGO_ENABLED=1)")

// decode fails for every format; sounds and music load as registered zero
// values.
func (l *Loader) decode(name string, _ []byte) (pcmStream, error) {
	return nil, fmt.Errorf("%s: %w", fileExt(name), errNoDecoders)
}
