package hal

import (
	"io"
	"sync"
	"time"
)

// virtualAudio is the headless audio device. Voices never produce sound but
// keep a playback position that advances with the virtual clock, so
// progress and end-of-stream behave as they do on a real device.
type virtualAudio struct {
	mu         sync.Mutex
	open       bool
	sampleRate int
	voices     map[*virtualVoice]struct{}
}

func newVirtualAudio(sampleRate int) *virtualAudio {
	return &virtualAudio{sampleRate: sampleRate}
}

func (a *virtualAudio) SampleRate() int { return a.sampleRate }

func (a *virtualAudio) Open() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.open {
		a.open = true
		a.voices = make(map[*virtualVoice]struct{})
	}
	return nil
}

func (a *virtualAudio) IsOpen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.open
}

func (a *virtualAudio) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for v := range a.voices {
		v.closed = true
		v.playing = false
	}
	a.voices = nil
	a.open = false
	return nil
}

func (a *virtualAudio) NewVoice(pcm []byte) (Voice, error) {
	return a.newVoice(int64(len(pcm)), false)
}

func (a *virtualAudio) NewStream(_ io.ReadSeeker, length int64, loop bool) (Voice, error) {
	return a.newVoice(length, loop)
}

func (a *virtualAudio) newVoice(length int64, loop bool) (Voice, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.open {
		return nil, ErrAudioClosed
	}
	v := &virtualVoice{a: a, loop: loop, volume: 1}
	if a.sampleRate > 0 {
		// 16-bit stereo: 4 bytes per frame.
		v.length = time.Duration(length/4) * time.Second / time.Duration(a.sampleRate)
	}
	a.voices[v] = struct{}{}
	return v, nil
}

// Voices returns the number of voices currently open.
func (a *virtualAudio) Voices() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.voices)
}

func (a *virtualAudio) step(d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for v := range a.voices {
		if !v.playing {
			continue
		}
		v.pos += d
		if v.length <= 0 {
			continue
		}
		if v.pos >= v.length {
			if v.loop {
				v.pos %= v.length
			} else {
				v.pos = v.length
				v.playing = false
			}
		}
	}
}

type virtualVoice struct {
	a       *virtualAudio
	length  time.Duration
	pos     time.Duration
	loop    bool
	playing bool
	closed  bool
	volume  float64
}

func (v *virtualVoice) Play() {
	v.a.mu.Lock()
	defer v.a.mu.Unlock()
	if v.closed {
		return
	}
	if !v.loop && v.length > 0 && v.pos >= v.length {
		v.pos = 0
	}
	v.playing = true
}

func (v *virtualVoice) Pause() {
	v.a.mu.Lock()
	defer v.a.mu.Unlock()
	v.playing = false
}

func (v *virtualVoice) IsPlaying() bool {
	v.a.mu.Lock()
	defer v.a.mu.Unlock()
	return v.playing
}

func (v *virtualVoice) Rewind() error {
	v.a.mu.Lock()
	defer v.a.mu.Unlock()
	v.pos = 0
	return nil
}

func (v *virtualVoice) Position() time.Duration {
	v.a.mu.Lock()
	defer v.a.mu.Unlock()
	return v.pos
}

func (v *virtualVoice) SetVolume(vol float64) {
	v.a.mu.Lock()
	defer v.a.mu.Unlock()
	v.volume = vol
}

func (v *virtualVoice) Close() error {
	v.a.mu.Lock()
	defer v.a.mu.Unlock()
	v.closed = true
	v.playing = false
	delete(v.a.voices, v)
	return nil
}
