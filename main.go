// Command showcase runs one of the example programs in a window or headless.
//
//	showcase --list
//	showcase -d core/input_keys
//	showcase -d sound_multi --headless --script walk.json
package main

//go:generate go run ./cmd/mkres gen --out resources

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"showcase/assets"
	"showcase/demos"
	"showcase/demos/all"
	"showcase/hal"
	"showcase/internal/buildinfo"
	"showcase/internal/config"
	"showcase/internal/logger"
	"showcase/internal/monitoring"
	"showcase/internal/picker"
	"showcase/loop"
)

//go:embed resources
var embedded embed.FS

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(os.Getenv("SHOWCASE_CONFIG"))
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	flags := pflag.NewFlagSet("showcase", pflag.ContinueOnError)
	cfg.AddFlags(flags)
	version := flags.Bool("version", false, "Print the version and exit")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if *version {
		fmt.Println(buildinfo.String())
		return nil
	}
	if cfg.Demo == "" && flags.NArg() > 0 {
		cfg.Demo = flags.Arg(0)
	}

	log := logger.NewConsole(nil, cfg.Log.Level, "showcase", cfg.Log.NoColor)
	catalog := all.Catalog()

	if cfg.List {
		for _, e := range catalog.Entries() {
			fmt.Printf("%-32s %s\n", e.Name, e.Title)
		}
		return nil
	}

	entry, err := choose(catalog, cfg.Demo)
	if errors.Is(err, picker.ErrCanceled) {
		return nil
	}
	if err != nil {
		return err
	}

	opts := loop.Options{
		Name:   entry.Name,
		Title:  buildinfo.Title(entry.Title),
		Log:    log,
		Assets: assetOptions(cfg.Assets, log),
	}
	if cfg.Monitoring.Enabled {
		m := monitoring.NewMetrics()
		srv := monitoring.NewServer(cfg.Monitoring, m, log)
		if err := srv.Run(); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
		opts.Metrics = m
	}

	host := hal.Config{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Title:      opts.Title,
		TargetRate: cfg.Window.TargetFPS,
	}
	factory := loop.Factory(entry.New(), opts)

	if !cfg.Headless.Enabled {
		return hal.RunWindow(factory, hal.WindowConfig{Host: host, Scale: cfg.Window.Scale, Record: cfg.Window.Record})
	}

	hc := hal.HeadlessConfig{Host: host, Paced: cfg.Headless.Paced, Frames: cfg.Headless.Frames}
	if cfg.Headless.Script != "" {
		if hc.Script, err = hal.LoadScript(cfg.Headless.Script); err != nil {
			return err
		}
	}
	if hc.Frames == 0 && hc.Script == nil && !hc.Paced {
		log.Warn().Msg("unpaced headless run without a frame limit or script; it stops only when the demo quits")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := hal.RunHeadless(ctx, factory, hc); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// choose resolves the demo to run, asking on the terminal when none is named.
func choose(catalog *demos.Catalog, name string) (demos.Entry, error) {
	if name == "" {
		if !picker.Interactive() {
			return demos.Entry{}, errors.New("no demo given: pass --demo or run --list")
		}
		var err error
		if name, err = picker.Run(buildinfo.Title("showcase"), catalog.Names(), nil, os.Stdout); err != nil {
			return demos.Entry{}, err
		}
	}
	e, ok := catalog.Lookup(name)
	if !ok {
		return demos.Entry{}, fmt.Errorf("unknown or ambiguous demo %q (see --list)", name)
	}
	return e, nil
}

// assetOptions reads resources from dir when it holds a resources
// directory and from the copy built into the binary otherwise.
func assetOptions(c config.Assets, log zerolog.Logger) []assets.Option {
	var fsys fs.FS = embedded
	if st, err := os.Stat(filepath.Join(c.Dir, "resources")); err == nil && st.IsDir() {
		fsys = os.DirFS(c.Dir)
	} else {
		log.Debug().Str("dir", c.Dir).Msg("using embedded resources")
	}
	opts := []assets.Option{assets.WithFS(fsys)}
	if c.Seed != 0 {
		opts = append(opts, assets.WithSeed(c.Seed))
	}
	return opts
}
