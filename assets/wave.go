package assets

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"time"
)

// Tone describes a generated sine tone.
type Tone struct {
	Freq     float64
	Duration time.Duration
	// Volume is the peak amplitude, 0..1.
	Volume float64
	// Decay fades the tone out exponentially instead of holding it.
	Decay bool
}

// fadeFrames avoids clicks at both ends of a tone.
const fadeFrames = 64

// GenWaveTone renders t as 16-bit mono samples.
func GenWaveTone(sampleRate int, t Tone) []int16 {
	n := int(t.Duration.Seconds() * float64(sampleRate))
	if n <= 0 || sampleRate <= 0 {
		return nil
	}
	out := make([]int16, n)
	vol := math.Max(0, math.Min(t.Volume, 1))
	for i := range out {
		env := 1.0
		if t.Decay {
			env = math.Exp(-5 * float64(i) / float64(n))
		}
		if i < fadeFrames {
			env *= float64(i) / fadeFrames
		}
		if r := n - 1 - i; r < fadeFrames {
			env *= float64(r) / fadeFrames
		}
		s := math.Sin(2 * math.Pi * t.Freq * float64(i) / float64(sampleRate))
		out[i] = int16(s * env * vol * math.MaxInt16)
	}
	return out
}

// GenWaveMelody concatenates tones.
func GenWaveMelody(sampleRate int, tones ...Tone) []int16 {
	var out []int16
	for _, t := range tones {
		out = append(out, GenWaveTone(sampleRate, t)...)
	}
	return out
}

// EncodeWAV writes interleaved samples as a 16-bit PCM RIFF file.
func EncodeWAV(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels != 1 && channels != 2 {
		return errors.New("wav: channels must be 1 or 2")
	}
	if sampleRate <= 0 {
		return errors.New("wav: invalid sample rate")
	}
	dataSize := uint32(len(samples) * 2)
	hdr := struct {
		Riff       [4]byte
		Size       uint32
		Wave       [4]byte
		Fmt        [4]byte
		FmtSize    uint32
		Format     uint16
		Channels   uint16
		SampleRate uint32
		ByteRate   uint32
		BlockAlign uint16
		Bits       uint16
		Data       [4]byte
		DataSize   uint32
	}{
		Riff:       [4]byte{'R', 'I', 'F', 'F'},
		Size:       36 + dataSize,
		Wave:       [4]byte{'W', 'A', 'V', 'E'},
		Fmt:        [4]byte{'f', 'm', 't', ' '},
		FmtSize:    16,
		Format:     1,
		Channels:   uint16(channels),
		SampleRate: uint32(sampleRate),
		ByteRate:   uint32(sampleRate * channels * 2),
		BlockAlign: uint16(channels * 2),
		Bits:       16,
		Data:       [4]byte{'d', 'a', 't', 'a'},
		DataSize:   dataSize,
	}
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, samples)
}
