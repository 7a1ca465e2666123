//go:build cgo

package hal

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// hostAudio exposes audio output on desktop via Ebiten's audio package.
type hostAudio struct {
	mu         sync.Mutex
	ctx        *audio.Context
	sampleRate int
	voices     map[*hostVoice]struct{}
}

func newHostAudio(sampleRate int) *hostAudio {
	return &hostAudio{sampleRate: sampleRate}
}

func (a *hostAudio) SampleRate() int { return a.sampleRate }

// Open creates the Ebiten audio context. Ebiten allows one context per
// process, so reopening reuses it.
func (a *hostAudio) Open() error {
	if a.sampleRate <= 0 {
		return errors.New("host audio: invalid sample rate")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ctx != nil {
		return nil
	}
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(a.sampleRate)
	} else if ctx.SampleRate() != a.sampleRate {
		return errors.New("host audio: ebiten audio context sample rate is fixed")
	}
	a.ctx = ctx
	a.voices = make(map[*hostVoice]struct{})
	return nil
}

func (a *hostAudio) IsOpen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ctx != nil
}

// Close stops every voice still playing. The Ebiten context itself stays alive.
func (a *hostAudio) Close() error {
	a.mu.Lock()
	voices := a.voices
	a.voices = nil
	a.ctx = nil
	a.mu.Unlock()

	var errs []error
	for v := range voices {
		if err := v.p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *hostAudio) NewVoice(pcm []byte) (Voice, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ctx == nil {
		return nil, ErrAudioClosed
	}
	p := a.ctx.NewPlayerFromBytes(pcm)
	return a.track(p), nil
}

func (a *hostAudio) NewStream(src io.ReadSeeker, length int64, loop bool) (Voice, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ctx == nil {
		return nil, ErrAudioClosed
	}
	var r io.Reader = src
	if loop {
		r = audio.NewInfiniteLoop(src, length)
	}
	p, err := a.ctx.NewPlayer(r)
	if err != nil {
		return nil, err
	}
	p.SetBufferSize(100 * time.Millisecond)
	return a.track(p), nil
}

func (a *hostAudio) track(p *audio.Player) *hostVoice {
	v := &hostVoice{a: a, p: p}
	a.voices[v] = struct{}{}
	return v
}

func (a *hostAudio) forget(v *hostVoice) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.voices, v)
}

type hostVoice struct {
	a *hostAudio
	p *audio.Player
}

func (v *hostVoice) Play()                   { v.p.Play() }
func (v *hostVoice) Pause()                  { v.p.Pause() }
func (v *hostVoice) IsPlaying() bool         { return v.p.IsPlaying() }
func (v *hostVoice) Rewind() error           { return v.p.Rewind() }
func (v *hostVoice) Position() time.Duration { return v.p.Position() }
func (v *hostVoice) SetVolume(vol float64)   { v.p.SetVolume(vol) }

func (v *hostVoice) Close() error {
	v.a.forget(v)
	return v.p.Close()
}
