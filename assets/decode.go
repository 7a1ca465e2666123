//go:build cgo

package assets

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// The ebiten decoders pull in the audio player and with it cgo on Linux.
const haveDecoders = true

// decode picks a decoder by file extension and resamples to the device rate.
func (l *Loader) decode(name string, data []byte) (pcmStream, error) {
	sr := l.sampleRate()
	r := bytes.NewReader(data)
	switch ext := fileExt(name); ext {
	case ".wav":
		s, err := wav.DecodeWithSampleRate(sr, r)
		if err != nil {
			return nil, err
		}
		return s, nil
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(sr, r)
		if err != nil {
			return nil, err
		}
		return s, nil
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(sr, r)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w %q", errUnsupported, ext)
	}
}
