// Package assets loads and generates the resources demos draw and play.
//
// Every constructor registers what it returns with a resource.Registry so
// the acquire/release pairing holds even when loading fails: a missing or
// undecodable file is logged and yields a zero resource that is still
// registered and still has to be unloaded. Unloading twice, or using a
// resource after it was unloaded, is logged and otherwise ignored.
package assets

import (
	"io/fs"
	"math/rand/v2"
	"os"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"showcase/hal"
	"showcase/resource"
)

// Loader creates resources on behalf of one running demo.
type Loader struct {
	reg   *resource.Registry
	audio hal.Audio
	fsys  fs.FS
	log   zerolog.Logger
	rng   *rand.Rand

	device resource.Handle
}

// Option configures a Loader.
type Option func(*Loader)

// WithFS reads files from fsys instead of the working directory.
func WithFS(fsys fs.FS) Option {
	return func(l *Loader) { l.fsys = fsys }
}

// WithDir reads files relative to dir.
func WithDir(dir string) Option {
	return func(l *Loader) { l.fsys = os.DirFS(dir) }
}

func WithLogger(log zerolog.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// WithSeed makes noise generators reproducible.
func WithSeed(seed uint64) Option {
	return func(l *Loader) { l.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// NewLoader binds a loader to reg. audio may be nil when the host has no
// audio device; sounds then load as zero resources.
func NewLoader(reg *resource.Registry, audio hal.Audio, opts ...Option) *Loader {
	l := &Loader{
		reg:   reg,
		audio: audio,
		fsys:  os.DirFS("."),
		log:   zerolog.Nop(),
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Registry returns the registry resources are tracked in.
func (l *Loader) Registry() *resource.Registry { return l.reg }

// Rand returns the loader's random source.
func (l *Loader) Rand() *rand.Rand { return l.rng }

// GetRandomValue returns an integer in [min, max]; the bounds may be swapped.
func (l *Loader) GetRandomValue(lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + l.rng.IntN(hi-lo+1)
}

// LoadRandomSequence returns count distinct values from [lo, hi] in random
// order, or nil when the range is too small.
func (l *Loader) LoadRandomSequence(count, lo, hi int) []int {
	if lo > hi {
		lo, hi = hi, lo
	}
	if count <= 0 || count > hi-lo+1 {
		l.log.Warn().Int("count", count).Int("min", lo).Int("max", hi).Msg("SYSTEM: Invalid random sequence range")
		return nil
	}
	seq := make([]int, 0, count)
	for _, v := range l.rng.Perm(hi - lo + 1)[:count] {
		seq = append(seq, lo+v)
	}
	return seq
}

// acquire registers a resource and logs instead of failing; the zero handle
// is returned when the registry refuses.
func (l *Loader) acquire(kind resource.Kind, name string, release func() error) resource.Handle {
	h, err := l.reg.Acquire(kind, name, release)
	if err != nil {
		l.log.Error().Err(err).Str("kind", kind.String()).Str("name", name).Msg("acquire failed")
	}
	return h
}

// release unloads h, logging misuse such as double unloads.
func (l *Loader) release(h resource.Handle, what string) {
	if h.IsZero() {
		l.log.Warn().Msgf("%s: Unload of an unregistered resource ignored", what)
		return
	}
	if err := l.reg.Release(h); err != nil {
		l.log.Warn().Err(err).Str("handle", h.String()).Msgf("%s: Unload ignored", what)
	}
}

// live reports whether h can still be used, logging when it cannot.
func (l *Loader) live(h resource.Handle, what string) bool {
	if h.IsZero() || !l.reg.Live(h) {
		l.log.Debug().Str("handle", h.String()).Msgf("%s: use of unloaded resource ignored", what)
		return false
	}
	return true
}

// readFile returns the contents of name or nil after logging the failure.
func (l *Loader) readFile(name string) []byte {
	p := cleanPath(name)
	b, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		l.log.Warn().Msgf("FILEIO: [%s] Failed to open file", name)
		return nil
	}
	l.log.Debug().Msgf("FILEIO: [%s] File loaded successfully", name)
	return b
}

func cleanPath(name string) string {
	p := path.Clean(strings.ReplaceAll(name, `\`, "/"))
	return strings.TrimPrefix(p, "/")
}

func fileExt(name string) string {
	return strings.ToLower(path.Ext(name))
}
