package hal

import (
	"context"
	"errors"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Host Config
	// Paced runs frames on a ticker at the window target rate.
	// Unpaced runs them back to back; the virtual clock is unaffected.
	Paced bool
	// Frames stops the run after N frames (0 = run until the app stops).
	Frames uint64
	Script *Script
}

// RunHeadless runs an app without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) (App, error), cfg HeadlessConfig) (err error) {
	h := NewHeadless(cfg.Host, cfg.Script)
	app, err := newApp(h)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, app.Close())
	}()

	var (
		t    *time.Ticker
		rate int
		tick <-chan time.Time
	)
	if cfg.Paced {
		rate = h.win.TargetRate()
		t = time.NewTicker(time.Second / time.Duration(rate))
		defer t.Stop()
		tick = t.C
	}

	var frame uint64
	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
			if r := h.win.TargetRate(); r != rate {
				rate = r
				t.Reset(time.Second / time.Duration(rate))
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		if err := app.Step(); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
		frame++
		if cfg.Frames > 0 && frame >= cfg.Frames {
			return nil
		}
	}
}
