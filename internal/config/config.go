// Package config loads the showcase settings from showcase.yaml, the
// environment and the command line, in increasing order of precedence.
package config

import (
	"errors"
	"os"

	"github.com/kkyr/fig"
	"github.com/spf13/pflag"
)

const (
	EnvPrefix = "SHOWCASE"
	FileName  = "showcase.yaml"
)

type Config struct {
	Window     Window
	Headless   Headless
	Assets     Assets
	Log        Log
	Monitoring Monitoring
	// Demo is the demo to run; empty opens the picker.
	Demo string
	List bool
}

type Window struct {
	Width     int `default:"800"`
	Height    int `default:"450"`
	TargetFPS int `fig:"target_fps" default:"60"`
	Scale     int `default:"1"`
	// Record saves the session's input to this script file.
	Record string
}

type Headless struct {
	Enabled bool
	// Paced runs headless frames at the target rate instead of back to back.
	Paced  bool
	Frames uint64
	Script string
}

type Assets struct {
	// Dir overrides the embedded resources when it exists.
	Dir  string `default:"."`
	Seed uint64
}

type Log struct {
	Level   string `default:"info"`
	NoColor bool   `fig:"no_color"`
}

type Monitoring struct {
	Enabled   bool
	Port      int    `default:"6601"`
	URLPrefix string `fig:"url_prefix"`
}

// Load reads the config file from path, or from the usual directories when
// path is empty. A missing file is not an error: defaults and environment
// variables still apply.
func Load(path string) (Config, error) {
	var c Config
	dirs := []string{path}
	if path == "" {
		dirs = []string{".", "configs"}
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, home+"/.showcase")
		}
	}
	err := fig.Load(&c, fig.File(FileName), fig.Dirs(dirs...), fig.UseEnv(EnvPrefix))
	if errors.Is(err, fig.ErrFileNotFound) {
		c = Config{}
		err = fig.Load(&c, fig.IgnoreFile(), fig.UseEnv(EnvPrefix))
	}
	if err != nil {
		return Config{}, err
	}
	c.fixValues()
	return c, nil
}

func (c *Config) fixValues() {
	if c.Window.Scale < 1 {
		c.Window.Scale = 1
	}
	if c.Window.TargetFPS <= 0 {
		c.Window.TargetFPS = 60
	}
}

// AddFlags binds the command-line overrides. Defaults are the loaded values,
// so flags only change what they name.
func (c *Config) AddFlags(fs *pflag.FlagSet) *Config {
	fs.StringVarP(&c.Demo, "demo", "d", c.Demo, "Demo to run, as category/name or a unique short name")
	fs.BoolVarP(&c.List, "list", "l", c.List, "List the demos and exit")

	fs.IntVar(&c.Window.Width, "width", c.Window.Width, "Screen width")
	fs.IntVar(&c.Window.Height, "height", c.Window.Height, "Screen height")
	fs.IntVar(&c.Window.TargetFPS, "fps", c.Window.TargetFPS, "Initial target frame rate")
	fs.IntVar(&c.Window.Scale, "scale", c.Window.Scale, "Window scale factor")
	fs.StringVar(&c.Window.Record, "record", c.Window.Record, "Record input to a script file")

	fs.BoolVar(&c.Headless.Enabled, "headless", c.Headless.Enabled, "Run without a window")
	fs.BoolVar(&c.Headless.Paced, "paced", c.Headless.Paced, "Pace headless frames at the target rate")
	fs.Uint64Var(&c.Headless.Frames, "frames", c.Headless.Frames, "Stop after N frames (0 = run until the demo stops)")
	fs.StringVar(&c.Headless.Script, "script", c.Headless.Script, "Replay an input script in headless mode")

	fs.StringVar(&c.Assets.Dir, "assets", c.Assets.Dir, "Directory holding resources/")
	fs.Uint64Var(&c.Assets.Seed, "seed", c.Assets.Seed, "Random seed (0 = time based)")

	fs.StringVar(&c.Log.Level, "log-level", c.Log.Level, "Log level: trace, debug, info, warn, error")
	fs.BoolVar(&c.Log.NoColor, "no-color", c.Log.NoColor, "Disable colored log output")

	fs.BoolVar(&c.Monitoring.Enabled, "metrics", c.Monitoring.Enabled, "Serve Prometheus metrics")
	fs.IntVar(&c.Monitoring.Port, "metrics-port", c.Monitoring.Port, "Metrics HTTP port")
	return c
}
