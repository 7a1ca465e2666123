package all

import (
	"context"
	"testing"
	"time"

	"showcase/assets"
	"showcase/demos"
	"showcase/hal"
	"showcase/loop"
	"showcase/resource"
)

func TestCatalogComplete(t *testing.T) {
	want := []string{
		"audio/music_stream", "audio/sound_loading", "audio/sound_multi",
		"core/basic_window", "core/custom_frame_control", "core/input_keys",
		"core/input_mouse", "core/random_sequence", "core/window_should_close",
		"models/geometric_shapes", "models/mesh_generation",
		"shaders/postprocessing",
		"shapes/basic_shapes", "shapes/bouncing_ball", "shapes/collision_area", "shapes/logo_raylib",
		"text/font_loading", "text/format_text",
		"textures/image_generation", "textures/image_loading", "textures/render_texture",
	}
	got := Catalog().Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// smokeRun drives one demo headless until its script ends, plus a few frames.
func smokeRun(t *testing.T, e demos.Entry) (loop.Report, error) {
	t.Helper()
	var script *hal.Script
	if e.Smoke != nil {
		script = e.Smoke()
	}
	frames := uint64(12)
	if script != nil {
		frames += script.Frames()
	}
	var r *loop.Runner
	err := hal.RunHeadless(context.Background(), func(h hal.HAL) (hal.App, error) {
		app, err := loop.Factory(e.New(), loop.Options{
			Name:   e.Name,
			Title:  e.Title,
			Assets: []assets.Option{assets.WithDir("../.."), assets.WithSeed(1)},
		})(h)
		r, _ = app.(*loop.Runner)
		return app, err
	}, hal.HeadlessConfig{Script: script, Frames: frames})
	if r == nil {
		t.Fatalf("%s: runner not created: %v", e.Name, err)
	}
	return r.Report(), err
}

func TestEveryDemoRunsClean(t *testing.T) {
	for _, e := range Catalog().Entries() {
		t.Run(e.Name, func(t *testing.T) {
			rep, err := smokeRun(t, e)
			if err != nil {
				t.Fatalf("run err = %v", err)
			}
			if rep.Violations != 0 {
				t.Fatalf("Violations = %d, want 0", rep.Violations)
			}
			if rep.Frames == 0 {
				t.Fatalf("no frame presented")
			}
			if rep.Resources.Live != 0 || rep.Resources.Acquired != rep.Resources.Released {
				t.Fatalf("Resources = %+v, want everything released", rep.Resources)
			}
			if len(rep.Leaked) != 0 {
				t.Fatalf("Leaked = %v, want none", rep.Leaked)
			}
		})
	}
}

func TestConfirmExitEndsRun(t *testing.T) {
	e, ok := Catalog().Lookup("window_should_close")
	if !ok {
		t.Fatalf("Lookup(window_should_close) failed")
	}
	rep, err := smokeRun(t, e)
	if err != nil {
		t.Fatalf("run err = %v", err)
	}
	// Y is pressed on frame 8; the loop stops before drawing it.
	if rep.Frames != 7 {
		t.Fatalf("Frames = %d, want 7", rep.Frames)
	}
}

func TestSoundMultiReleasesAliasesFirst(t *testing.T) {
	if !assets.CanDecodeAudio() {
		t.Skip("audio decoders need cgo")
	}
	e, _ := Catalog().Lookup("audio/sound_multi")
	var events []resource.Event
	var r *loop.Runner
	err := hal.RunHeadless(context.Background(), func(h hal.HAL) (hal.App, error) {
		app, err := loop.Factory(e.New(), loop.Options{
			Name:    e.Name,
			Metrics: recorder{&events},
			Assets:  []assets.Option{assets.WithDir("../..")},
		})(h)
		r, _ = app.(*loop.Runner)
		return app, err
	}, hal.HeadlessConfig{Script: e.Smoke(), Frames: 30})
	if err != nil {
		t.Fatalf("run err = %v", err)
	}

	var order []resource.Kind
	for _, ev := range events {
		if ev.Op == resource.OpRelease {
			order = append(order, ev.Handle.Kind())
		}
	}
	want := []resource.Kind{}
	for i := 0; i < 9; i++ {
		want = append(want, resource.KindSoundAlias)
	}
	want = append(want, resource.KindSound, resource.KindAudioDevice)
	if len(order) != len(want) {
		t.Fatalf("release order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("release %d = %v, want %v", i, order[i], want[i])
		}
	}
	if len(r.Report().Leaked) != 0 {
		t.Fatalf("Leaked = %v, want none", r.Report().Leaked)
	}
}

type recorder struct{ events *[]resource.Event }

func (r recorder) Frame(string, time.Duration) {}
func (r recorder) Violations(string, uint64)   {}

func (r recorder) Resource(_ string, ev resource.Event) {
	*r.events = append(*r.events, ev)
}
