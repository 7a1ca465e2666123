package loop

import (
	"context"
	"errors"
	"math"
	"testing"

	"showcase/gfx"
	"showcase/hal"
)

type testDemo struct {
	load    func(ctx *Context) error
	update  func(ctx *Context)
	draw    func(ctx *Context, c *gfx.Canvas)
	updates int
	draws   int
}

func (d *testDemo) Load(ctx *Context) error {
	if d.load != nil {
		return d.load(ctx)
	}
	return nil
}

func (d *testDemo) Update(ctx *Context) {
	d.updates++
	if d.update != nil {
		d.update(ctx)
	}
}

func (d *testDemo) Draw(ctx *Context, c *gfx.Canvas) {
	d.draws++
	c.ClearBackground(gfx.RayWhite)
	if d.draw != nil {
		d.draw(ctx, c)
	}
}

func run(t *testing.T, d Demo, script *hal.Script, frames uint64) (*Runner, error) {
	t.Helper()
	var r *Runner
	err := hal.RunHeadless(context.Background(), func(h hal.HAL) (hal.App, error) {
		r = NewRunner(h, d, Options{Name: "test"})
		if err := r.Start(); err != nil {
			return nil, errors.Join(err, r.Close())
		}
		return r, nil
	}, hal.HeadlessConfig{Host: hal.Config{Width: 64, Height: 32}, Script: script, Frames: frames})
	return r, err
}

func presented(r *Runner) uint64 { return r.h.Display().Framebuffer().Presented() }

func TestRunsUntilFrameLimit(t *testing.T) {
	d := &testDemo{}
	r, err := run(t, d, nil, 5)
	if err != nil {
		t.Fatalf("run() err = %v", err)
	}
	if d.updates != 5 || d.draws != 5 || presented(r) != 5 {
		t.Fatalf("updates %d draws %d presented %d, want 5 each", d.updates, d.draws, presented(r))
	}
	if rep := r.Report(); rep.Violations != 0 || rep.Frames != 5 {
		t.Fatalf("Report() = %+v", rep)
	}
}

func TestEscapeStopsBeforeDraw(t *testing.T) {
	d := &testDemo{}
	r, err := run(t, d, (&hal.Script{}).KeyTap(3, hal.KeyEscape), 100)
	if err != nil {
		t.Fatalf("run() err = %v", err)
	}
	if d.updates != 3 || d.draws != 2 || presented(r) != 2 {
		t.Fatalf("updates %d draws %d presented %d, want 3 2 2", d.updates, d.draws, presented(r))
	}
}

func TestCloseButtonStops(t *testing.T) {
	d := &testDemo{}
	if _, err := run(t, d, (&hal.Script{}).Close(4), 100); err != nil {
		t.Fatalf("run() err = %v", err)
	}
	if d.updates != 4 {
		t.Fatalf("updates = %d, want 4", d.updates)
	}
}

func TestCloseHandledKeepsRunning(t *testing.T) {
	d := &testDemo{load: func(ctx *Context) error {
		ctx.SetExitKey(hal.KeyNone)
		ctx.SetCloseHandled(true)
		return nil
	}}
	script := (&hal.Script{}).KeyTap(2, hal.KeyEscape).Close(3)
	if _, err := run(t, d, script, 10); err != nil {
		t.Fatalf("run() err = %v", err)
	}
	if d.updates != 10 {
		t.Fatalf("updates = %d, want 10", d.updates)
	}
}

type confirmDemo struct {
	testDemo
	prompt ExitPrompt
	states []ExitState
}

func (d *confirmDemo) Load(ctx *Context) error {
	ctx.SetExitKey(hal.KeyNone)
	ctx.SetCloseHandled(true)
	return nil
}

func (d *confirmDemo) Update(ctx *Context) {
	d.updates++
	s := d.prompt.Update(ctx.WindowShouldClose() || ctx.IsKeyPressed(hal.KeyEscape),
		ctx.IsKeyPressed(hal.KeyY), ctx.IsKeyPressed(hal.KeyN))
	d.states = append(d.states, s)
	if s == ExitClose {
		ctx.Quit()
	}
}

func TestConfirmExitScript(t *testing.T) {
	d := &confirmDemo{}
	script := (&hal.Script{}).
		KeyTap(2, hal.KeyEscape).
		KeyTap(4, hal.KeyN).
		KeyTap(6, hal.KeyEscape).
		KeyTap(8, hal.KeyY)
	r, err := run(t, d, script, 100)
	if err != nil {
		t.Fatalf("run() err = %v", err)
	}
	want := []ExitState{ExitNormal, ExitConfirm, ExitConfirm, ExitNormal, ExitNormal, ExitConfirm, ExitConfirm, ExitClose}
	if len(d.states) != len(want) {
		t.Fatalf("states = %v, want %v", d.states, want)
	}
	for i := range want {
		if d.states[i] != want[i] {
			t.Fatalf("frame %d state = %v, want %v", i+1, d.states[i], want[i])
		}
	}
	if d.draws != 7 || presented(r) != 7 {
		t.Fatalf("draws %d presented %d, want 7", d.draws, presented(r))
	}
}

func TestExitPrompt(t *testing.T) {
	tests := []struct {
		name              string
		from              ExitState
		closeReq, yes, no bool
		want              ExitState
	}{
		{"idle", ExitNormal, false, false, false, ExitNormal},
		{"request", ExitNormal, true, false, false, ExitConfirm},
		{"yes ignored when normal", ExitNormal, false, true, false, ExitNormal},
		{"wait", ExitConfirm, false, false, false, ExitConfirm},
		{"yes", ExitConfirm, false, true, false, ExitClose},
		{"no", ExitConfirm, false, false, true, ExitNormal},
		{"repeat request", ExitConfirm, true, false, false, ExitConfirm},
		{"close is final", ExitClose, true, false, true, ExitClose},
	}
	for _, tt := range tests {
		p := ExitPrompt{state: tt.from}
		if got := p.Update(tt.closeReq, tt.yes, tt.no); got != tt.want {
			t.Fatalf("%s: Update() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

type leakyDemo struct {
	testDemo
	unloaded bool
}

func (d *leakyDemo) Load(ctx *Context) error {
	ctx.Assets.LoadRenderTexture(8, 8)
	ctx.Assets.LoadFont("proggy")
	return nil
}

func (d *leakyDemo) Unload(ctx *Context) error {
	d.unloaded = true
	return nil
}

func TestLeaksReleasedAtClose(t *testing.T) {
	d := &leakyDemo{}
	r, err := run(t, d, nil, 2)
	if err != nil {
		t.Fatalf("run() err = %v", err)
	}
	rep := r.Report()
	if !d.unloaded {
		t.Fatalf("Unload not called")
	}
	if len(rep.Leaked) != 2 || rep.Resources.Live != 0 || rep.Resources.Acquired != rep.Resources.Released {
		t.Fatalf("Report() = %+v, want 2 leaks and nothing live", rep)
	}
}

func TestDrawInUpdateIsViolation(t *testing.T) {
	var canvas *gfx.Canvas
	d := &testDemo{}
	d.draw = func(_ *Context, c *gfx.Canvas) { canvas = c }
	d.update = func(*Context) {
		if canvas != nil {
			canvas.DrawPixel(1, 1, gfx.Red)
		}
	}
	r, err := run(t, d, nil, 3)
	if err != nil {
		t.Fatalf("run() err = %v", err)
	}
	if got := r.Report().Violations; got != 2 {
		t.Fatalf("Violations = %d, want 2", got)
	}
}

func TestFrameTiming(t *testing.T) {
	var ctx *Context
	d := &testDemo{update: func(c *Context) { ctx = c }}
	if _, err := run(t, d, nil, 10); err != nil {
		t.Fatalf("run() err = %v", err)
	}
	if ctx.Frame() != 10 || ctx.FPS() != 60 {
		t.Fatalf("Frame() = %d FPS() = %d, want 10 60", ctx.Frame(), ctx.FPS())
	}
	if got := ctx.FrameTime(); math.Abs(float64(got)-1.0/60) > 1e-4 {
		t.Fatalf("FrameTime() = %v, want 1/60", got)
	}
	if got := ctx.Time(); math.Abs(got-9.0/60) > 1e-3 {
		t.Fatalf("Time() = %v, want 9/60", got)
	}
}

func TestPanicStopsWithError(t *testing.T) {
	d := &testDemo{draw: func(ctx *Context, _ *gfx.Canvas) {
		if ctx.Frame() == 2 {
			panic("boom")
		}
	}}
	r, err := run(t, d, nil, 10)
	if !errors.Is(err, ErrDemoPanic) {
		t.Fatalf("run() err = %v, want ErrDemoPanic", err)
	}
	if d.updates != 2 {
		t.Fatalf("updates = %d, want 2", d.updates)
	}
	fb := r.h.Display().Framebuffer()
	buf := fb.Buffer()
	dark := false
	for i := 0; i+3 < len(buf); i += 4 {
		if buf[i] == 0 && buf[i+1] == 0 && buf[i+2] == 0 {
			dark = true
			break
		}
	}
	if !dark {
		t.Fatalf("panic screen has no text")
	}
}

func TestLoadErrorClosesRunner(t *testing.T) {
	boom := errors.New("boom")
	d := &testDemo{load: func(ctx *Context) error {
		ctx.Assets.LoadFont("proggy")
		return boom
	}}
	r, err := run(t, d, nil, 1)
	if !errors.Is(err, boom) {
		t.Fatalf("run() err = %v, want %v", err, boom)
	}
	if r.Registry().Stats().Live != 0 {
		t.Fatalf("resources live after failed load")
	}
}

func TestFactoryReturnsNoAppOnLoadError(t *testing.T) {
	boom := errors.New("boom")
	d := &testDemo{load: func(ctx *Context) error { return boom }}
	host := hal.NewHeadless(hal.Config{Width: 16, Height: 16}, nil)
	app, err := Factory(d, Options{Name: "test"})(host)
	if !errors.Is(err, boom) {
		t.Fatalf("Factory() err = %v, want %v", err, boom)
	}
	if app != nil {
		t.Fatalf("Factory() app = %v, want nil", app)
	}
}
