package hal

import (
	"sync"
	"time"
)

// Config sizes the host surface and devices.
type Config struct {
	Width      int
	Height     int
	Title      string
	TargetRate int
	SampleRate int
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 450
	}
	if c.TargetRate <= 0 {
		c.TargetRate = 60
	}
	if c.SampleRate <= 0 {
		c.SampleRate = 44100
	}
	return c
}

// Host is the desktop HAL used by both the window and the headless runner.
type Host struct {
	fb     *hostFramebuffer
	in     *hostInput
	aud    Audio
	win    *hostWindow
	t      *hostTime
	vaudio *virtualAudio
}

// NewHeadless returns a host without a window. Input is replayed from script
// (nil means no input) and every Poll advances the virtual clock and audio
// by one frame at the target rate.
func NewHeadless(cfg Config, script *Script) *Host {
	cfg = cfg.withDefaults()
	va := newVirtualAudio(cfg.SampleRate)
	h := &Host{
		fb:     newHostFramebuffer(cfg.Width, cfg.Height),
		aud:    va,
		vaudio: va,
		win:    newHostWindow(cfg),
		t:      newHostTime(true),
	}
	h.in = &hostInput{dev: newScriptInput(script), onFrame: h.advance}
	return h
}

func (h *Host) Display() Display { return hostDisplay{fb: h.fb} }
func (h *Host) Input() Input     { return h.in }
func (h *Host) Audio() Audio     { return h.aud }
func (h *Host) Window() Window   { return h.win }
func (h *Host) Time() Time       { return h.t }

// advance moves headless time forward by one frame. The first frame starts at zero.
func (h *Host) advance(frame uint64) {
	if frame <= 1 {
		return
	}
	d := time.Second / time.Duration(h.win.TargetRate())
	h.t.step(d)
	if h.vaudio != nil {
		h.vaudio.step(d)
	}
}

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

// inputDevice samples level state for a frame.
type inputDevice interface {
	sample(frame uint64) rawInput
}

type hostInput struct {
	dev     inputDevice
	tracker inputTracker
	rec     *scriptRecorder
	onFrame func(frame uint64)
}

func (in *hostInput) Poll() InputState {
	frame := in.tracker.frame + 1
	if in.onFrame != nil {
		in.onFrame(frame)
	}
	raw := in.dev.sample(frame)
	if in.rec != nil {
		in.rec.observe(frame, raw)
	}
	return in.tracker.next(raw)
}

type hostWindow struct {
	mu           sync.Mutex
	title        string
	width        int
	height       int
	rate         int
	closeHandled bool

	// Set by the window runner to forward changes to the real window.
	onTitle func(string)
	onRate  func(int)
}

func newHostWindow(cfg Config) *hostWindow {
	return &hostWindow{
		title:  cfg.Title,
		width:  cfg.Width,
		height: cfg.Height,
		rate:   cfg.TargetRate,
	}
}

func (w *hostWindow) SetTitle(title string) {
	w.mu.Lock()
	w.title = title
	fn := w.onTitle
	w.mu.Unlock()
	if fn != nil {
		fn(title)
	}
}

func (w *hostWindow) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

func (w *hostWindow) Size() (int, int) { return w.width, w.height }

func (w *hostWindow) SetTargetRate(hz int) {
	if hz <= 0 {
		hz = 60
	}
	w.mu.Lock()
	w.rate = hz
	fn := w.onRate
	w.mu.Unlock()
	if fn != nil {
		fn(hz)
	}
}

func (w *hostWindow) TargetRate() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rate
}

func (w *hostWindow) SetCloseHandled(handled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closeHandled = handled
}

func (w *hostWindow) CloseHandled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeHandled
}
