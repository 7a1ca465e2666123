package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	if c.Window.Width != 800 || c.Window.Height != 450 || c.Window.TargetFPS != 60 {
		t.Fatalf("Window = %+v, want 800x450 at 60", c.Window)
	}
	if c.Log.Level != "info" || c.Monitoring.Port != 6601 {
		t.Fatalf("Load() = %+v", c)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "window:\n  target_fps: 30\n  scale: 2\nheadless:\n  enabled: true\n  frames: 120\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	if c.Window.TargetFPS != 30 || c.Window.Scale != 2 {
		t.Fatalf("Window = %+v, want fps 30 scale 2", c.Window)
	}
	if !c.Headless.Enabled || c.Headless.Frames != 120 {
		t.Fatalf("Headless = %+v, want enabled for 120 frames", c.Headless)
	}
	if c.Window.Width != 800 {
		t.Fatalf("Width = %d, want default 800", c.Window.Width)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("SHOWCASE_LOG_LEVEL", "debug")
	c, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	if c.Log.Level != "debug" {
		t.Fatalf("Log.Level = %q, want debug", c.Log.Level)
	}
}

func TestFlagsOverride(t *testing.T) {
	c, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	c.AddFlags(fs)
	if err := fs.Parse([]string{"-d", "core/input_keys", "--headless", "--frames", "10", "--scale", "0"}); err != nil {
		t.Fatalf("Parse() err = %v", err)
	}
	c.fixValues()
	if c.Demo != "core/input_keys" || !c.Headless.Enabled || c.Headless.Frames != 10 {
		t.Fatalf("after flags = %+v", c)
	}
	if c.Window.Scale != 1 || c.Window.TargetFPS != 60 {
		t.Fatalf("Window = %+v, want scale clamped to 1 and fps kept", c.Window)
	}
}
