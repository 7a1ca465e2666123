package resource

import (
	"errors"
	"testing"
)

type releaseLog struct {
	order []string
}

func (l *releaseLog) fn(name string) func() error {
	return func() error {
		l.order = append(l.order, name)
		return nil
	}
}

func TestAcquireBeforeOpen(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Acquire(KindTexture, "tex", nil); !errors.Is(err, ErrNoContext) {
		t.Fatalf("Acquire(texture) before Open err = %v, want ErrNoContext", err)
	}
	if _, err := r.Acquire(KindImage, "img", nil); err != nil {
		t.Fatalf("Acquire(image) before Open err = %v, want nil", err)
	}
	if _, err := r.Acquire(KindAudioDevice, "audio", nil); err != nil {
		t.Fatalf("Acquire(audio_device) before Open err = %v, want nil", err)
	}
}

func TestReleaseExactlyOnce(t *testing.T) {
	r := NewRegistry()
	if err := r.Open(); err != nil {
		t.Fatalf("Open() err = %v", err)
	}

	calls := 0
	h, err := r.Acquire(KindTexture, "tex", func() error { calls++; return nil })
	if err != nil {
		t.Fatalf("Acquire() err = %v", err)
	}
	if !r.Live(h) {
		t.Fatalf("Live() = false, want true")
	}
	if err := r.Release(h); err != nil {
		t.Fatalf("Release() err = %v", err)
	}
	if err := r.Release(h); !errors.Is(err, ErrReleased) {
		t.Fatalf("second Release() err = %v, want ErrReleased", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() err = %v", err)
	}
	if calls != 1 {
		t.Fatalf("release calls = %d, want 1", calls)
	}
	if r.Live(h) {
		t.Fatalf("Live() after release = true, want false")
	}
}

func TestForeignHandle(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()
	_ = a.Open()
	_ = b.Open()

	h, err := a.Acquire(KindFont, "font", nil)
	if err != nil {
		t.Fatalf("Acquire() err = %v", err)
	}
	if err := b.Release(h); !errors.Is(err, ErrUnknownHandle) {
		t.Fatalf("Release(foreign) err = %v, want ErrUnknownHandle", err)
	}
	if err := a.Release(Handle{}); !errors.Is(err, ErrUnknownHandle) {
		t.Fatalf("Release(zero) err = %v, want ErrUnknownHandle", err)
	}
}

func TestAliasBlocksOwnerRelease(t *testing.T) {
	r := NewRegistry()
	_ = r.Open()

	var log releaseLog
	src, _ := r.Acquire(KindSound, "src", log.fn("src"))
	alias, err := r.AcquireAlias(src, "alias", log.fn("alias"))
	if err != nil {
		t.Fatalf("AcquireAlias() err = %v", err)
	}
	if alias.Kind() != KindSoundAlias {
		t.Fatalf("alias kind = %v, want %v", alias.Kind(), KindSoundAlias)
	}
	if owner, ok := r.Owner(alias); !ok || owner != src {
		t.Fatalf("Owner() = %v, %v, want %v, true", owner, ok, src)
	}

	if err := r.Release(src); !errors.Is(err, ErrAliasLive) {
		t.Fatalf("Release(owner) with live alias err = %v, want ErrAliasLive", err)
	}
	if !r.Live(src) {
		t.Fatalf("owner released despite live alias")
	}
	if err := r.Release(alias); err != nil {
		t.Fatalf("Release(alias) err = %v", err)
	}
	if err := r.Release(src); err != nil {
		t.Fatalf("Release(owner) err = %v", err)
	}
	if got, want := len(log.order), 2; got != want {
		t.Fatalf("release count = %d, want %d", got, want)
	}
	if log.order[0] != "alias" || log.order[1] != "src" {
		t.Fatalf("release order = %v, want [alias src]", log.order)
	}
}

func TestAliasOfAliasResolvesToRoot(t *testing.T) {
	r := NewRegistry()
	_ = r.Open()

	src, _ := r.Acquire(KindSound, "src", nil)
	a1, _ := r.AcquireAlias(src, "a1", nil)
	a2, err := r.AcquireAlias(a1, "a2", nil)
	if err != nil {
		t.Fatalf("AcquireAlias(alias) err = %v", err)
	}
	if owner, _ := r.Owner(a2); owner != src {
		t.Fatalf("Owner(a2) = %v, want %v", owner, src)
	}
}

func TestCloseReleasesInReverseOrder(t *testing.T) {
	var events []Event
	r := NewRegistry(WithObserver(func(ev Event) { events = append(events, ev) }))
	_ = r.Open()

	var log releaseLog
	dev, _ := r.Acquire(KindAudioDevice, "device", log.fn("device"))
	tex, _ := r.Acquire(KindTexture, "tex", log.fn("tex"))
	src, _ := r.Acquire(KindSound, "src", log.fn("src"))
	if err := r.DependOn(src, dev); err != nil {
		t.Fatalf("DependOn() err = %v", err)
	}
	for _, name := range []string{"a1", "a2", "a3"} {
		if _, err := r.AcquireAlias(src, name, log.fn(name)); err != nil {
			t.Fatalf("AcquireAlias(%s) err = %v", name, err)
		}
	}
	_ = tex

	if err := r.Close(); err != nil {
		t.Fatalf("Close() err = %v", err)
	}
	want := []string{"a3", "a2", "a1", "src", "tex", "device"}
	if len(log.order) != len(want) {
		t.Fatalf("release order = %v, want %v", log.order, want)
	}
	for i := range want {
		if log.order[i] != want[i] {
			t.Fatalf("release order = %v, want %v", log.order, want)
		}
	}

	if got := len(r.Leaked()); got != len(want) {
		t.Fatalf("Leaked() = %d events, want %d", got, len(want))
	}
	acq, rel := 0, 0
	for _, ev := range events {
		switch ev.Op {
		case OpAcquire:
			acq++
		case OpRelease:
			rel++
		}
	}
	if acq != rel {
		t.Fatalf("observer saw %d acquires and %d releases, want equal", acq, rel)
	}
}

func TestCloseRespectsLateDependency(t *testing.T) {
	r := NewRegistry()
	_ = r.Open()

	var log releaseLog
	// The owner is acquired after the dependent, so plain LIFO would be wrong.
	snd, _ := r.Acquire(KindSound, "sound", log.fn("sound"))
	dev, _ := r.Acquire(KindAudioDevice, "device", log.fn("device"))
	if err := r.DependOn(snd, dev); err != nil {
		t.Fatalf("DependOn() err = %v", err)
	}
	if err := r.Release(dev); !errors.Is(err, ErrInUse) {
		t.Fatalf("Release(device) err = %v, want ErrInUse", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() err = %v", err)
	}
	if len(log.order) != 2 || log.order[0] != "sound" || log.order[1] != "device" {
		t.Fatalf("release order = %v, want [sound device]", log.order)
	}
}

func TestDependOnRefusesCycles(t *testing.T) {
	r := NewRegistry()
	_ = r.Open()

	var log releaseLog
	a, _ := r.Acquire(KindAudioDevice, "a", log.fn("a"))
	b, _ := r.Acquire(KindSound, "b", log.fn("b"))
	c, _ := r.Acquire(KindSound, "c", log.fn("c"))
	if err := r.DependOn(b, a); err != nil {
		t.Fatalf("DependOn(b, a) err = %v", err)
	}
	if err := r.DependOn(c, b); err != nil {
		t.Fatalf("DependOn(c, b) err = %v", err)
	}
	if err := r.DependOn(a, c); !errors.Is(err, ErrCycle) {
		t.Fatalf("DependOn(a, c) err = %v, want ErrCycle", err)
	}
	if err := r.DependOn(a, a); !errors.Is(err, ErrCycle) {
		t.Fatalf("DependOn(a, a) err = %v, want ErrCycle", err)
	}
	alias, _ := r.AcquireAlias(c, "alias", log.fn("alias"))
	if err := r.DependOn(c, alias); !errors.Is(err, ErrCycle) {
		t.Fatalf("DependOn(c, alias) err = %v, want ErrCycle", err)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() err = %v", err)
	}
	want := []string{"alias", "c", "b", "a"}
	if len(log.order) != len(want) {
		t.Fatalf("release order = %v, want %v", log.order, want)
	}
	for i := range want {
		if log.order[i] != want[i] {
			t.Fatalf("release order = %v, want %v", log.order, want)
		}
	}
}

func TestCloseIdempotentAndFinal(t *testing.T) {
	r := NewRegistry()
	_ = r.Open()

	failing := errors.New("boom")
	if _, err := r.Acquire(KindModel, "model", func() error { return failing }); err != nil {
		t.Fatalf("Acquire() err = %v", err)
	}
	if err := r.Close(); !errors.Is(err, failing) {
		t.Fatalf("Close() err = %v, want wrapped release error", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close() err = %v, want nil", err)
	}
	if _, err := r.Acquire(KindImage, "img", nil); !errors.Is(err, ErrClosed) {
		t.Fatalf("Acquire() after Close err = %v, want ErrClosed", err)
	}
	if err := r.Open(); !errors.Is(err, ErrClosed) {
		t.Fatalf("Open() after Close err = %v, want ErrClosed", err)
	}
}

func TestStats(t *testing.T) {
	r := NewRegistry()
	_ = r.Open()

	t1, _ := r.Acquire(KindTexture, "t1", nil)
	_, _ = r.Acquire(KindTexture, "t2", nil)
	_, _ = r.Acquire(KindShader, "sh", nil)
	_ = r.Release(t1)

	s := r.Stats()
	if s.Acquired != 3 || s.Released != 1 || s.Live != 2 {
		t.Fatalf("Stats() = %+v, want acquired=3 released=1 live=2", s)
	}
	if s.LiveByKind[KindTexture] != 1 || s.LiveByKind[KindShader] != 1 {
		t.Fatalf("LiveByKind = %v, want texture=1 shader=1", s.LiveByKind)
	}

	_ = r.Close()
	s = r.Stats()
	if s.Live != 0 || s.AutoReleased != 2 {
		t.Fatalf("Stats() after Close = %+v, want live=0 auto=2", s)
	}
}
