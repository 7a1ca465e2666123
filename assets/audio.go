package assets

import (
	"errors"
	"io"
	"time"

	"showcase/hal"
	"showcase/resource"
)

const defaultSampleRate = 44100

// bytesPerFrame is one 16-bit stereo sample frame.
const bytesPerFrame = 4

var errUnsupported = errors.New("unsupported audio format")

// pcmStream is a decoded 16-bit little-endian stereo stream.
type pcmStream interface {
	io.ReadSeeker
	Length() int64
}

// InitAudioDevice opens the host audio device. The device is a tracked
// resource: it must be closed with CloseAudioDevice, and every sound and
// music stream loaded while it is open is released before it.
func (l *Loader) InitAudioDevice() {
	if l.reg.Live(l.device) {
		l.log.Warn().Msg("AUDIO: Device already initialized")
		return
	}
	var release func() error
	if l.audio == nil {
		l.log.Warn().Msg("AUDIO: No playback device available")
	} else if err := l.audio.Open(); err != nil {
		l.log.Warn().Err(err).Msg("AUDIO: Failed to initialize playback device")
	} else {
		release = l.audio.Close
		l.log.Info().Msgf("AUDIO: Device initialized successfully (%d Hz, 16 bit, stereo)", l.audio.SampleRate())
	}
	l.device = l.acquire(resource.KindAudioDevice, "audio_device", release)
}

// CloseAudioDevice closes the device opened by InitAudioDevice. It is
// refused while sounds loaded on the device are still live.
func (l *Loader) CloseAudioDevice() {
	if !l.reg.Live(l.device) {
		l.log.Warn().Msg("AUDIO: Device could not be closed, not currently initialized")
		return
	}
	if err := l.reg.Release(l.device); err != nil {
		l.log.Warn().Err(err).Msg("AUDIO: Device close refused")
		return
	}
	l.log.Info().Msg("AUDIO: Device closed successfully")
}

// IsAudioDeviceReady reports whether sounds can be played.
func (l *Loader) IsAudioDeviceReady() bool {
	return l.audio != nil && l.reg.Live(l.device) && l.audio.IsOpen()
}

// CanDecodeAudio reports whether sound files can be decoded in this build.
func CanDecodeAudio() bool { return haveDecoders }

func (l *Loader) sampleRate() int {
	if l.audio != nil && l.audio.SampleRate() > 0 {
		return l.audio.SampleRate()
	}
	return defaultSampleRate
}

// dependOnDevice orders h before the audio device at teardown.
func (l *Loader) dependOnDevice(h resource.Handle) {
	if h.IsZero() || !l.reg.Live(l.device) {
		return
	}
	if err := l.reg.DependOn(h, l.device); err != nil {
		l.log.Error().Err(err).Str("handle", h.String()).Msg("AUDIO: dependency not recorded")
	}
}

func (l *Loader) newVoice(pcm []byte) hal.Voice {
	if !l.IsAudioDeviceReady() || len(pcm) == 0 {
		return nil
	}
	v, err := l.audio.NewVoice(pcm)
	if err != nil {
		l.log.Warn().Err(err).Msg("AUDIO: Failed to create audio buffer")
		return nil
	}
	return v
}

func voiceCloser(v hal.Voice) func() error {
	if v == nil {
		return nil
	}
	return v.Close
}

// Sound is a fully decoded clip. Aliases share the samples of their source
// but play on their own voice.
type Sound struct {
	Handle resource.Handle
	// FrameCount is the number of stereo sample frames.
	FrameCount int

	voice hal.Voice
	pcm   []byte
}

func (s Sound) Valid() bool { return s.voice != nil }

// LoadSound decodes a WAV, OGG or MP3 file completely.
func (l *Loader) LoadSound(name string) Sound {
	var snd Sound
	if data := l.readFile(name); data != nil {
		st, err := l.decode(name, data)
		if err == nil {
			snd.pcm, err = io.ReadAll(st)
		}
		if err != nil {
			l.log.Warn().Err(err).Msgf("WAVE: [%s] Failed to load wave data", name)
			snd.pcm = nil
		}
	}
	if snd.pcm != nil && !l.IsAudioDeviceReady() {
		l.log.Warn().Msgf("SOUND: [%s] Audio device not initialized, sound will not play", name)
	}
	snd.FrameCount = len(snd.pcm) / bytesPerFrame
	snd.voice = l.newVoice(snd.pcm)
	snd.Handle = l.acquire(resource.KindSound, name, voiceCloser(snd.voice))
	l.dependOnDevice(snd.Handle)
	if snd.voice != nil {
		l.log.Info().Msgf("SOUND: [%s] Sound loaded successfully (%d frames)", name, snd.FrameCount)
	}
	return snd
}

// LoadSoundAlias creates a sound that shares src's samples. The alias must
// be unloaded before src.
func (l *Loader) LoadSoundAlias(src Sound) Sound {
	if !l.live(src.Handle, "SOUND") {
		l.log.Warn().Msg("SOUND: Alias source is not loaded")
		return Sound{}
	}
	a := Sound{FrameCount: src.FrameCount, pcm: src.pcm}
	a.voice = l.newVoice(a.pcm)
	h, err := l.reg.AcquireAlias(src.Handle, "alias", voiceCloser(a.voice))
	if err != nil {
		l.log.Error().Err(err).Msg("SOUND: Alias not registered")
		if a.voice != nil {
			_ = a.voice.Close()
		}
		return Sound{}
	}
	a.Handle = h
	return a
}

// UnloadSoundAlias releases an alias. Source sounds are refused; they go
// through UnloadSound.
func (l *Loader) UnloadSoundAlias(s Sound) {
	if !s.Handle.IsZero() && s.Handle.Kind() != resource.KindSoundAlias {
		l.log.Warn().Str("handle", s.Handle.String()).Msg("SOUND: Not an alias, use UnloadSound")
		return
	}
	l.release(s.Handle, "SOUND")
}

// UnloadSound is refused for aliases and while aliases of s are live.
func (l *Loader) UnloadSound(s Sound) {
	if s.Handle.Kind() == resource.KindSoundAlias {
		l.log.Warn().Str("handle", s.Handle.String()).Msg("SOUND: Alias unload ignored, use UnloadSoundAlias")
		return
	}
	l.release(s.Handle, "SOUND")
}

func (l *Loader) soundVoice(s Sound) hal.Voice {
	if !l.live(s.Handle, "SOUND") {
		return nil
	}
	return s.voice
}

// PlaySound starts s from the beginning.
func (l *Loader) PlaySound(s Sound) {
	if v := l.soundVoice(s); v != nil {
		_ = v.Rewind()
		v.Play()
	}
}

func (l *Loader) StopSound(s Sound) {
	if v := l.soundVoice(s); v != nil {
		v.Pause()
		_ = v.Rewind()
	}
}

func (l *Loader) PauseSound(s Sound) {
	if v := l.soundVoice(s); v != nil {
		v.Pause()
	}
}

func (l *Loader) ResumeSound(s Sound) {
	if v := l.soundVoice(s); v != nil && !v.IsPlaying() {
		v.Play()
	}
}

func (l *Loader) IsSoundPlaying(s Sound) bool {
	v := l.soundVoice(s)
	return v != nil && v.IsPlaying()
}

// SetSoundVolume sets the volume, 1 being full.
func (l *Loader) SetSoundVolume(s Sound, vol float32) {
	if v := l.soundVoice(s); v != nil {
		v.SetVolume(float64(clampVolume(vol)))
	}
}

func clampVolume(v float32) float32 {
	return max(0, min(v, 1))
}

// Music is a clip decoded while it plays.
type Music struct {
	Handle resource.Handle
	// Looping restarts the stream at its end. It is fixed at load time.
	Looping bool

	length time.Duration
	voice  hal.Voice
}

func (m Music) Valid() bool { return m.voice != nil }

// LoadMusicStream opens a looping stream over a WAV, OGG or MP3 file.
func (l *Loader) LoadMusicStream(name string) Music {
	m := Music{Looping: true}
	if data := l.readFile(name); data != nil {
		st, err := l.decode(name, data)
		if err != nil {
			l.log.Warn().Err(err).Msgf("STREAM: [%s] Failed to open music stream", name)
		} else {
			m.length = time.Duration(st.Length()/bytesPerFrame) * time.Second / time.Duration(l.sampleRate())
			if l.IsAudioDeviceReady() {
				v, err := l.audio.NewStream(st, st.Length(), m.Looping)
				if err != nil {
					l.log.Warn().Err(err).Msgf("STREAM: [%s] Failed to create audio stream", name)
				}
				m.voice = v
			} else {
				l.log.Warn().Msgf("STREAM: [%s] Audio device not initialized, music will not play", name)
			}
		}
	}
	m.Handle = l.acquire(resource.KindMusic, name, voiceCloser(m.voice))
	l.dependOnDevice(m.Handle)
	if m.voice != nil {
		l.log.Info().Msgf("STREAM: [%s] Music stream loaded successfully (%.2fs)", name, m.length.Seconds())
	}
	return m
}

func (l *Loader) UnloadMusicStream(m Music) {
	l.release(m.Handle, "STREAM")
}

func (l *Loader) musicVoice(m Music) hal.Voice {
	if !l.live(m.Handle, "STREAM") {
		return nil
	}
	return m.voice
}

func (l *Loader) PlayMusicStream(m Music) {
	if v := l.musicVoice(m); v != nil {
		v.Play()
	}
}

func (l *Loader) StopMusicStream(m Music) {
	if v := l.musicVoice(m); v != nil {
		v.Pause()
		_ = v.Rewind()
	}
}

func (l *Loader) PauseMusicStream(m Music) {
	if v := l.musicVoice(m); v != nil {
		v.Pause()
	}
}

func (l *Loader) ResumeMusicStream(m Music) {
	if v := l.musicVoice(m); v != nil && !v.IsPlaying() {
		v.Play()
	}
}

func (l *Loader) IsMusicStreamPlaying(m Music) bool {
	v := l.musicVoice(m)
	return v != nil && v.IsPlaying()
}

func (l *Loader) SetMusicVolume(m Music, vol float32) {
	if v := l.musicVoice(m); v != nil {
		v.SetVolume(float64(clampVolume(vol)))
	}
}

// GetMusicTimeLength returns the stream duration in seconds.
func (l *Loader) GetMusicTimeLength(m Music) float32 {
	return float32(m.length.Seconds())
}

// GetMusicTimePlayed returns the position within the current loop in seconds.
func (l *Loader) GetMusicTimePlayed(m Music) float32 {
	v := l.musicVoice(m)
	if v == nil {
		return 0
	}
	pos := v.Position()
	if m.length > 0 {
		pos %= m.length
	}
	return float32(pos.Seconds())
}
