//go:build cgo

package hal

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Host  Config
	Scale int
	// Record saves the session's input as a script on exit.
	Record string
}

// RunWindow starts a desktop window that displays the framebuffer and feeds
// input to the app. It blocks until the app stops or the window closes.
func RunWindow(newApp func(HAL) (App, error), cfg WindowConfig) (err error) {
	host := cfg.Host.withDefaults()
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}

	h := &Host{
		fb:  newHostFramebuffer(host.Width, host.Height),
		aud: newHostAudio(host.SampleRate),
		win: newHostWindow(host),
		t:   newHostTime(false),
	}
	h.in = &hostInput{dev: &ebitenInput{}}
	if cfg.Record != "" {
		h.in.rec = &scriptRecorder{}
	}
	h.win.onTitle = ebiten.SetWindowTitle
	h.win.onRate = ebiten.SetTPS

	ebiten.SetWindowTitle(host.Title)
	ebiten.SetWindowSize(host.Width*cfg.Scale, host.Height*cfg.Scale)
	ebiten.SetTPS(host.TargetRate)
	// The app decides on close requests; they arrive as InputState.CloseRequested.
	ebiten.SetWindowClosingHandled(true)

	app, err := newApp(h)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, app.Close(), h.aud.Close())
		if h.in.rec != nil {
			err = errors.Join(err, h.in.rec.script.Save(cfg.Record))
		}
	}()

	g := &hostGame{h: h, app: app}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ErrStop) {
		return err
	}
	return nil
}

type hostGame struct {
	h       *Host
	app     App
	fbImg   *ebiten.Image
	scratch []byte
}

func (g *hostGame) Update() error {
	if err := g.app.Step(); err != nil {
		if errors.Is(err, ErrStop) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.fbImg == nil {
		g.scratch = make([]byte, len(fb.front))
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshot(g.scratch)
	g.fbImg.WritePixels(g.scratch)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
