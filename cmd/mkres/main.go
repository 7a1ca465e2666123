// Command mkres writes the resources the demos load and prints the format
// of WAV files.
//
//	mkres gen [--out resources]
//	mkres info file.wav...
package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"

	"showcase/assets"
	"showcase/gfx"
)

func main() {
	fs := pflag.NewFlagSet("mkres", pflag.ExitOnError)
	out := fs.StringP("out", "o", "resources", "Output directory for gen.")
	_ = fs.Parse(os.Args[1:])

	args := fs.Args()
	if len(args) == 0 {
		fatalf("usage: mkres gen [--out dir]\n       mkres info file.wav...")
	}
	switch args[0] {
	case "gen":
		if err := generate(*out); err != nil {
			fatalf("gen: %v", err)
		}
	case "info":
		for _, p := range args[1:] {
			if err := printInfo(os.Stdout, p); err != nil {
				fatalf("info %s: %v", p, err)
			}
		}
	default:
		fatalf("unknown mode: %s", args[0])
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func tone(freq float64, ms int, decay bool) assets.Tone {
	return assets.Tone{Freq: freq, Duration: time.Duration(ms) * time.Millisecond, Volume: 0.6, Decay: decay}
}

// generate writes every resource into dir.
func generate(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	coin := assets.GenWaveMelody(44100, tone(988, 80, false), tone(1319, 320, true))
	if err := writeFile(filepath.Join(dir, "sound.wav"), func(w io.Writer) error {
		return assets.EncodeWAV(w, 44100, 1, coin)
	}); err != nil {
		return err
	}

	zap := assets.GenWaveMelody(22050, tone(880, 60, true), tone(660, 60, true), tone(440, 160, true))
	if err := writeFile(filepath.Join(dir, "target.wav"), func(w io.Writer) error {
		return encodeWAV8(w, 22050, zap)
	}); err != nil {
		return err
	}

	notes := []float64{523, 659, 784, 659, 698, 880, 1047, 880, 784, 659, 523, 659, 587, 698, 494, 392}
	tones := make([]assets.Tone, 0, len(notes))
	for _, f := range notes {
		tones = append(tones, tone(f, 250, true))
	}
	music := assets.GenWaveMelody(22050, tones...)
	if err := writeFile(filepath.Join(dir, "music.wav"), func(w io.Writer) error {
		return assets.EncodeWAV(w, 22050, 1, music)
	}); err != nil {
		return err
	}

	return writeFile(filepath.Join(dir, "raylib_logo.png"), func(w io.Writer) error {
		return png.Encode(w, logo().Snapshot())
	})
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(f, 64*1024)
	if err := fn(bw); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// encodeWAV8 writes 16-bit samples as unsigned 8-bit mono PCM.
func encodeWAV8(w io.Writer, sampleRate uint32, samples []int16) error {
	if err := writeWAVHeader(w, sampleRate, 1, 8, uint32(len(samples))); err != nil {
		return err
	}
	buf := make([]byte, len(samples))
	for i, s := range samples {
		buf[i] = uint8(int(s>>8) + 128)
	}
	if len(buf)%2 == 1 {
		buf = append(buf, 0)
	}
	_, err := w.Write(buf)
	return err
}

const logoSize = 256

// logo draws the 256x256 framed logo with its name in the corner.
func logo() *gfx.Surface {
	s := gfx.NewSurface(logoSize, logoSize)
	s.Clear(gfx.Black)
	for y := 16; y < logoSize-16; y++ {
		for x := 16; x < logoSize-16; x++ {
			s.Replace(x, y, gfx.RayWhite)
		}
	}
	font := &freesans.Bold9pt7b
	const k = 3
	_, w := tinyfont.LineWidth(font, "raylib")
	d := &scaled{s: s, k: k}
	tinyfont.WriteLine(d, font, int16((logoSize-32)/k)-int16(w)-2, int16((logoSize-28)/k), "raylib", gfx.Black)
	return s
}

// scaled magnifies glyph pixels by k.
type scaled struct {
	s *gfx.Surface
	k int
}

func (d *scaled) Size() (x, y int16) { return int16(logoSize / d.k), int16(logoSize / d.k) }

func (d *scaled) SetPixel(x, y int16, c color.RGBA) {
	for j := 0; j < d.k; j++ {
		for i := 0; i < d.k; i++ {
			d.s.Replace(int(x)*d.k+i, int(y)*d.k+j, c)
		}
	}
}

func (d *scaled) Display() error { return nil }

type wavInfo struct {
	sampleRate uint32
	channels   uint16
	bits       uint16
	dataOff    int64
	dataSize   uint32
}

func (wi *wavInfo) duration() time.Duration {
	frame := uint32(wi.channels) * uint32(wi.bits/8)
	if frame == 0 || wi.sampleRate == 0 {
		return 0
	}
	return time.Duration(wi.dataSize/frame) * time.Second / time.Duration(wi.sampleRate)
}

func printInfo(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	wi, err := parseWAV(f)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s: %d Hz, %d ch, %d bit, %d bytes, %s\n",
		path, wi.sampleRate, wi.channels, wi.bits, wi.dataSize, wi.duration())
	return err
}

func parseWAV(r io.ReadSeeker) (*wavInfo, error) {
	var hdr [12]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}
	if string(hdr[0:4]) != "RIFF" || string(hdr[8:12]) != "WAVE" {
		return nil, fmt.Errorf("wav: bad header")
	}

	var (
		foundFmt  bool
		foundData bool
		wi        wavInfo
	)
	for {
		var ch [8]byte
		_, err := io.ReadFull(r, ch[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		id := string(ch[0:4])
		sz := binary.LittleEndian.Uint32(ch[4:8])

		switch id {
		case "fmt ":
			if sz < 16 {
				return nil, fmt.Errorf("wav: short fmt chunk")
			}
			buf := make([]byte, sz)
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, err
			}
			if format := binary.LittleEndian.Uint16(buf[0:2]); format != 1 {
				return nil, fmt.Errorf("wav: only PCM is supported (format=%d)", format)
			}
			wi.channels = binary.LittleEndian.Uint16(buf[2:4])
			wi.sampleRate = binary.LittleEndian.Uint32(buf[4:8])
			wi.bits = binary.LittleEndian.Uint16(buf[14:16])
			foundFmt = true

		case "data":
			off, _ := r.Seek(0, io.SeekCurrent)
			wi.dataOff = off
			wi.dataSize = sz
			if _, err := r.Seek(int64(sz), io.SeekCurrent); err != nil {
				return nil, err
			}
			foundData = true

		default:
			if _, err := r.Seek(int64(sz), io.SeekCurrent); err != nil {
				return nil, err
			}
		}

		if sz%2 == 1 {
			if _, err := r.Seek(1, io.SeekCurrent); err != nil {
				return nil, err
			}
		}
	}

	if !foundFmt || !foundData {
		return nil, fmt.Errorf("wav: missing fmt or data chunk")
	}
	return &wi, nil
}

func writeWAVHeader(w io.Writer, sampleRate uint32, channels uint16, bits uint16, dataBytes uint32) error {
	blockAlign := channels * (bits / 8)
	byteRate := sampleRate * uint32(blockAlign)
	riffSize := 4 + (8 + 16) + (8 + dataBytes + dataBytes%2)

	var hdr [44]byte
	copy(hdr[0:4], "RIFF")
	binary.LittleEndian.PutUint32(hdr[4:8], riffSize)
	copy(hdr[8:12], "WAVE")

	copy(hdr[12:16], "fmt ")
	binary.LittleEndian.PutUint32(hdr[16:20], 16)
	binary.LittleEndian.PutUint16(hdr[20:22], 1)
	binary.LittleEndian.PutUint16(hdr[22:24], channels)
	binary.LittleEndian.PutUint32(hdr[24:28], sampleRate)
	binary.LittleEndian.PutUint32(hdr[28:32], byteRate)
	binary.LittleEndian.PutUint16(hdr[32:34], blockAlign)
	binary.LittleEndian.PutUint16(hdr[34:36], bits)

	copy(hdr[36:40], "data")
	binary.LittleEndian.PutUint32(hdr[40:44], dataBytes)

	_, err := w.Write(hdr[:])
	return err
}
