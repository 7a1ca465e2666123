// Package loop drives one demo through the init, frame and teardown phases.
//
// Each frame polls input once, runs the demo update, checks the close
// condition and, if the run continues, brackets the demo draw between
// Canvas.Begin and Canvas.End, which presents the frame. Teardown unloads
// the demo and then closes the resource registry, which releases anything
// the demo left behind in reverse dependency order.
package loop

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"showcase/assets"
	"showcase/gfx"
	"showcase/hal"
	"showcase/resource"
)

var ErrDemoPanic = errors.New("demo panicked")

// Demo is one example program.
type Demo interface {
	// Load runs once after the rendering context is open.
	Load(ctx *Context) error
	Update(ctx *Context)
	Draw(ctx *Context, c *gfx.Canvas)
}

// Unloader is implemented by demos that release their resources explicitly.
// Anything still live afterwards is released by the registry and reported
// as a leak.
type Unloader interface {
	Unload(ctx *Context) error
}

// Metrics receives loop telemetry. Resource is called with the registry
// lock held and must not call back into the registry.
type Metrics interface {
	Frame(demo string, d time.Duration)
	Violations(demo string, n uint64)
	Resource(demo string, ev resource.Event)
}

// Options configures a Runner.
type Options struct {
	// Name identifies the demo in logs and metrics.
	Name string
	// Title is the window title; Name is used when empty.
	Title   string
	Log     zerolog.Logger
	Metrics Metrics
	Assets  []assets.Option
}

// Report summarizes a finished run.
type Report struct {
	Frames     uint64
	Violations uint64
	Resources  resource.Stats
	Leaked     []resource.Event
}

const fpsSamples = 30

// Runner owns everything a demo run needs and implements hal.App.
type Runner struct {
	h    hal.HAL
	demo Demo
	opts Options
	log  zerolog.Logger

	reg    *resource.Registry
	canvas *gfx.Canvas
	ctx    *Context

	started bool
	stopped bool
	closed  bool

	last    time.Duration
	samples [fpsSamples]time.Duration
	nsample int

	report Report
}

var _ hal.App = (*Runner)(nil)

func NewRunner(h hal.HAL, d Demo, opts Options) *Runner {
	if opts.Title == "" {
		opts.Title = opts.Name
	}
	log := opts.Log.With().Str("demo", opts.Name).Logger()
	r := &Runner{h: h, demo: d, opts: opts, log: log}

	regOpts := []resource.Option{resource.WithLogger(log)}
	if m := opts.Metrics; m != nil {
		regOpts = append(regOpts, resource.WithObserver(func(ev resource.Event) { m.Resource(opts.Name, ev) }))
	}
	r.reg = resource.NewRegistry(regOpts...)

	aopts := append([]assets.Option{assets.WithLogger(log)}, opts.Assets...)
	w, hgt := h.Window().Size()
	r.ctx = &Context{
		Assets:  assets.NewLoader(r.reg, h.Audio(), aopts...),
		Log:     log,
		win:     h.Window(),
		width:   w,
		height:  hgt,
		exitKey: hal.KeyEscape,
	}
	r.canvas = gfx.NewCanvas(h.Display().Framebuffer(), gfx.WithLogger(log))
	return r
}

// Factory adapts a demo to the hal runners. The runner is started before
// it is handed over and closed again if starting fails.
func Factory(d Demo, opts Options) func(hal.HAL) (hal.App, error) {
	return func(h hal.HAL) (hal.App, error) {
		r := NewRunner(h, d, opts)
		if err := r.Start(); err != nil {
			return nil, errors.Join(err, r.Close())
		}
		return r, nil
	}
}

func (r *Runner) Context() *Context            { return r.ctx }
func (r *Runner) Canvas() *gfx.Canvas          { return r.canvas }
func (r *Runner) Registry() *resource.Registry { return r.reg }

// Start opens the rendering context and loads the demo.
func (r *Runner) Start() (err error) {
	if r.started {
		return nil
	}
	r.started = true
	if err := r.reg.Open(); err != nil {
		return err
	}
	r.h.Window().SetTitle(r.opts.Title)
	r.log.Info().Str("title", r.opts.Title).Msg("starting")

	defer r.recoverPanic("load", &err)
	if err := r.demo.Load(r.ctx); err != nil {
		return fmt.Errorf("load %s: %w", r.opts.Name, err)
	}
	return nil
}

// Step runs one frame. It returns hal.ErrStop once the close condition holds.
func (r *Runner) Step() (err error) {
	if !r.started {
		if err := r.Start(); err != nil {
			return err
		}
	}
	if r.stopped {
		return hal.ErrStop
	}
	defer r.recoverPanic("frame", &err)

	in := r.h.Input().Poll()
	now := r.h.Time().Now()
	r.beginFrame(in, now)
	start := time.Now()

	r.demo.Update(r.ctx)
	if r.ctx.shouldClose() {
		r.stopped = true
		r.log.Info().Uint64("frame", in.Frame).Msg("close requested")
		return hal.ErrStop
	}

	r.canvas.SetFPS(r.ctx.fps)
	r.canvas.Begin()
	r.demo.Draw(r.ctx, r.canvas)
	if err := r.canvas.End(); err != nil {
		return err
	}
	if m := r.opts.Metrics; m != nil {
		m.Frame(r.opts.Name, time.Since(start))
		m.Violations(r.opts.Name, r.canvas.Violations())
	}
	return nil
}

func (r *Runner) beginFrame(in hal.InputState, now time.Duration) {
	dt := now - r.last
	if in.Frame <= 1 || dt <= 0 {
		dt = time.Second / time.Duration(max(r.h.Window().TargetRate(), 1))
	}
	r.last = now

	r.samples[r.nsample%fpsSamples] = dt
	r.nsample++
	n := min(r.nsample, fpsSamples)
	var sum time.Duration
	for _, s := range r.samples[:n] {
		sum += s
	}

	c := r.ctx
	c.in = in
	c.frame = in.Frame
	c.now = now
	c.frameTime = dt
	c.fps = int(math.Round(float64(n) / sum.Seconds()))
}

// Close unloads the demo and releases every resource still live. It is
// safe to call more than once.
func (r *Runner) Close() (err error) {
	if r.closed {
		return nil
	}
	r.closed = true

	var errs []error
	if u, ok := r.demo.(Unloader); ok && r.started {
		func() {
			defer r.recoverPanic("unload", &err)
			if uerr := u.Unload(r.ctx); uerr != nil {
				errs = append(errs, fmt.Errorf("unload %s: %w", r.opts.Name, uerr))
			}
		}()
	}
	if cerr := r.reg.Close(); cerr != nil {
		errs = append(errs, cerr)
	}

	r.report = Report{
		Frames:     r.canvas.Frames(),
		Violations: r.canvas.Violations(),
		Resources:  r.reg.Stats(),
		Leaked:     r.reg.Leaked(),
	}
	ev := r.log.Info()
	if len(r.report.Leaked) > 0 || r.report.Violations > 0 {
		ev = r.log.Warn()
	}
	ev.Uint64("frames", r.report.Frames).
		Uint64("violations", r.report.Violations).
		Int("acquired", r.report.Resources.Acquired).
		Int("leaked", len(r.report.Leaked)).
		Msg("closed")
	return errors.Join(append(errs, err)...)
}

// Report returns the run summary; it is complete after Close.
func (r *Runner) Report() Report { return r.report }
