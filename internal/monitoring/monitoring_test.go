package monitoring

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"showcase/resource"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	b, err := io.ReadAll(rec.Result().Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestResourceCounters(t *testing.T) {
	m := NewMetrics()
	reg := resource.NewRegistry(resource.WithObserver(func(ev resource.Event) { m.Resource("demo", ev) }))
	if err := reg.Open(); err != nil {
		t.Fatalf("Open() err = %v", err)
	}
	nop := func() error { return nil }
	tex, _ := reg.Acquire(resource.KindTexture, "a", nop)
	if _, err := reg.Acquire(resource.KindTexture, "b", nop); err != nil {
		t.Fatalf("Acquire() err = %v", err)
	}
	if _, err := reg.Acquire(resource.KindSound, "s", nop); err != nil {
		t.Fatalf("Acquire() err = %v", err)
	}
	if err := reg.Release(tex); err != nil {
		t.Fatalf("Release() err = %v", err)
	}
	if err := reg.Close(); err != nil {
		t.Fatalf("Close() err = %v", err)
	}

	body := scrape(t, m)
	for _, want := range []string{
		`showcase_resources_acquired_total{demo="demo",kind="texture"} 2`,
		`showcase_resources_released_total{demo="demo",kind="texture"} 2`,
		`showcase_resources_leaked_total{demo="demo",kind="texture"} 1`,
		`showcase_resources_leaked_total{demo="demo",kind="sound"} 1`,
		`showcase_resources_live{demo="demo",kind="texture"} 0`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics missing %q", want)
		}
	}
}

func TestFrameAndViolations(t *testing.T) {
	m := NewMetrics()
	m.Frame("demo", 3*time.Millisecond)
	m.Frame("demo", 5*time.Millisecond)
	m.Violations("demo", 4)

	body := scrape(t, m)
	for _, want := range []string{
		`showcase_frame_seconds_count{demo="demo"} 2`,
		`showcase_draw_violations{demo="demo"} 4`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics missing %q", want)
		}
	}
}
