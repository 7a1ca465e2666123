package hal

import (
	"errors"
	"io"
	"time"
)

var (
	ErrNotImplemented = errors.New("not implemented")

	// ErrStop is returned by App.Step to end the run loop normally.
	ErrStop = errors.New("stop")

	ErrAudioClosed = errors.New("audio device not open")
)

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

// PixelFormatRGBA8888 is 32bpp, byte order R, G, B, A.
const PixelFormatRGBA8888 PixelFormat = 1

// Framebuffer is a back buffer plus a "present" hook that publishes it.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	// Buffer returns the back buffer. It is only read by the host after Present.
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
	// Presented returns the number of completed presents.
	Presented() uint64
}

// Display provides access to the framebuffer.
type Display interface {
	Framebuffer() Framebuffer
}

// Input samples the host input devices.
type Input interface {
	// Poll returns the input state for a new frame. Every call starts a frame.
	Poll() InputState
}

// Voice is one playable audio stream.
type Voice interface {
	Play()
	Pause()
	IsPlaying() bool
	Rewind() error
	Position() time.Duration
	SetVolume(v float64)
	Close() error
}

// Audio creates voices on the host audio device.
type Audio interface {
	Open() error
	IsOpen() bool
	// Close stops and closes every voice still alive.
	Close() error
	SampleRate() int
	// NewVoice plays fully decoded 16-bit little-endian stereo PCM.
	NewVoice(pcm []byte) (Voice, error)
	// NewStream plays from src; length is the stream size in bytes.
	NewStream(src io.ReadSeeker, length int64, loop bool) (Voice, error)
}

// Window exposes the host window (or its headless stand-in).
type Window interface {
	SetTitle(title string)
	Title() string
	Size() (w, h int)
	SetTargetRate(hz int)
	TargetRate() int
	// SetCloseHandled stops the host from closing on the close button;
	// the request is reported through InputState.CloseRequested instead.
	SetCloseHandled(handled bool)
	CloseHandled() bool
}

// Time reports elapsed time since the host started.
type Time interface {
	Now() time.Duration
}

// HAL provides the only contact point between the demo runner and the outside world.
type HAL interface {
	Display() Display
	Input() Input
	Audio() Audio
	Window() Window
	Time() Time
}

// App is driven by RunWindow and RunHeadless.
type App interface {
	// Step runs one frame. Returning ErrStop ends the run without error.
	Step() error
	Close() error
}
