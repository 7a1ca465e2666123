// Package resource tracks acquire/release pairing for demo assets.
//
// Every loaded asset is registered with a release function. The registry
// guarantees the function runs exactly once: either through an explicit
// Release or, for anything still live, when the registry is closed.
// Aliases and dependents are always released before the handle they
// depend on.
package resource

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

var (
	ErrNoContext     = errors.New("resource: rendering context not open")
	ErrClosed        = errors.New("resource: registry closed")
	ErrReleased      = errors.New("resource: handle already released")
	ErrUnknownHandle = errors.New("resource: unknown handle")
	ErrAliasLive     = errors.New("resource: aliases still live")
	ErrInUse         = errors.New("resource: dependents still live")
	ErrCycle         = errors.New("resource: dependency cycle")
)

var registrySeq atomic.Uint64

// Handle is an opaque reference to a registered resource.
// The zero Handle refers to nothing.
type Handle struct {
	reg  uint64
	id   uint64
	kind Kind
}

func (h Handle) ID() uint64     { return h.id }
func (h Handle) Kind() Kind     { return h.kind }
func (h Handle) IsZero() bool   { return h.id == 0 }
func (h Handle) String() string { return fmt.Sprintf("%s#%d", h.kind, h.id) }

// Op is the journal operation type.
type Op uint8

const (
	OpAcquire Op = iota + 1
	OpRelease
)

func (o Op) String() string {
	switch o {
	case OpAcquire:
		return "acquire"
	case OpRelease:
		return "release"
	}
	return "?"
}

// Event is one journal record.
type Event struct {
	Seq    uint64
	Op     Op
	Handle Handle
	Name   string
	// Owner is set for aliases.
	Owner Handle
	// Auto is set when the release was performed by Close.
	Auto bool
	Err  error
}

// Stats summarizes registry activity.
type Stats struct {
	Acquired     int
	Released     int
	AutoReleased int
	Live         int
	LiveByKind   map[Kind]int
}

type entry struct {
	h          Handle
	name       string
	owner      *entry
	release    func() error
	aliases    []*entry
	dependents []*entry
	released   bool
}

func (e *entry) liveAliases() int {
	n := 0
	for _, a := range e.aliases {
		if !a.released {
			n++
		}
	}
	return n
}

func (e *entry) liveDependents() int {
	n := 0
	for _, d := range e.dependents {
		if !d.released {
			n++
		}
	}
	return n
}

// Registry owns the set of live resources of one application run.
type Registry struct {
	mu      sync.Mutex
	id      uint64
	seq     uint64
	evSeq   uint64
	open    bool
	closed  bool
	entries map[uint64]*entry
	order   []*entry
	journal []Event

	log      zerolog.Logger
	observer func(Event)
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// WithObserver registers a callback invoked for every journal event.
// The callback runs with the registry lock held and must not call back into it.
func WithObserver(fn func(Event)) Option {
	return func(r *Registry) { r.observer = fn }
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		id:      registrySeq.Add(1),
		entries: make(map[uint64]*entry),
		log:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Open marks the rendering context as active.
func (r *Registry) Open() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	r.open = true
	return nil
}

// IsOpen reports whether the rendering context is active.
func (r *Registry) IsOpen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.open && !r.closed
}

// Acquire registers a new resource. release is called exactly once, either by
// Release or by Close. A nil release is allowed.
func (r *Registry) Acquire(kind Kind, name string, release func() error) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return Handle{}, ErrClosed
	}
	if kind.NeedsContext() && !r.open {
		return Handle{}, fmt.Errorf("acquire %s %q: %w", kind, name, ErrNoContext)
	}
	e := r.add(kind, name, release)
	r.record(Event{Op: OpAcquire, Handle: e.h, Name: name})
	return e.h, nil
}

// AcquireAlias registers a non-owning alias of owner. Aliases of aliases
// resolve to the root owner. The owner cannot be released while any of its
// aliases are live.
func (r *Registry) AcquireAlias(owner Handle, name string, release func() error) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return Handle{}, ErrClosed
	}
	oe, err := r.lookup(owner)
	if err != nil {
		return Handle{}, err
	}
	for oe.owner != nil {
		oe = oe.owner
	}
	if oe.released {
		return Handle{}, fmt.Errorf("alias of %s: %w", oe.h, ErrReleased)
	}

	e := r.add(aliasKind(oe.h.kind), name, release)
	e.owner = oe
	oe.aliases = append(oe.aliases, e)
	r.record(Event{Op: OpAcquire, Handle: e.h, Name: name, Owner: oe.h})
	return e.h, nil
}

// DependOn records that h must be released before on. A dependency that
// would close a cycle is refused with ErrCycle.
func (r *Registry) DependOn(h, on Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.lookup(h)
	if err != nil {
		return err
	}
	oe, err := r.lookup(on)
	if err != nil {
		return err
	}
	if e.released || oe.released {
		return ErrReleased
	}
	if e.reaches(oe) {
		return fmt.Errorf("%s on %s: %w", h, on, ErrCycle)
	}
	oe.dependents = append(oe.dependents, e)
	return nil
}

// reaches reports whether target is e or is released as part of e's tree.
func (e *entry) reaches(target *entry) bool {
	if e == target {
		return true
	}
	for _, d := range e.dependents {
		if d.reaches(target) {
			return true
		}
	}
	for _, a := range e.aliases {
		if a.reaches(target) {
			return true
		}
	}
	return false
}

// Release runs the release function of h.
func (r *Registry) Release(h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.lookup(h)
	if err != nil {
		return err
	}
	if e.released {
		return fmt.Errorf("release %s: %w", h, ErrReleased)
	}
	if n := e.liveAliases(); n > 0 {
		return fmt.Errorf("release %s: %d %w", h, n, ErrAliasLive)
	}
	if n := e.liveDependents(); n > 0 {
		return fmt.Errorf("release %s: %d %w", h, n, ErrInUse)
	}
	return r.release(e, false)
}

// Live reports whether h is registered and not yet released.
func (r *Registry) Live(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.lookup(h)
	return err == nil && !e.released
}

// Owner returns the owner of an alias handle.
func (r *Registry) Owner(h Handle) (Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.lookup(h)
	if err != nil || e.owner == nil {
		return Handle{}, false
	}
	return e.owner.h, true
}

// Close releases every live resource in reverse acquisition order, aliases and
// dependents before the resource they refer to. Close is idempotent.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	r.open = false

	var errs []error
	for i := len(r.order) - 1; i >= 0; i-- {
		if err := r.releaseTree(r.order[i]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) releaseTree(e *entry) error {
	if e.released {
		return nil
	}
	var errs []error
	for i := len(e.aliases) - 1; i >= 0; i-- {
		if err := r.releaseTree(e.aliases[i]); err != nil {
			errs = append(errs, err)
		}
	}
	for i := len(e.dependents) - 1; i >= 0; i-- {
		if err := r.releaseTree(e.dependents[i]); err != nil {
			errs = append(errs, err)
		}
	}
	if err := r.release(e, true); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Stats returns a snapshot of registry counters.
func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Stats{LiveByKind: make(map[Kind]int)}
	for _, ev := range r.journal {
		switch ev.Op {
		case OpAcquire:
			s.Acquired++
		case OpRelease:
			s.Released++
			if ev.Auto {
				s.AutoReleased++
			}
		}
	}
	for _, e := range r.order {
		if !e.released {
			s.Live++
			s.LiveByKind[e.h.kind]++
		}
	}
	return s
}

// Events returns a copy of the journal.
func (r *Registry) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.journal...)
}

// Leaked returns the release events performed by Close.
func (r *Registry) Leaked() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, ev := range r.journal {
		if ev.Op == OpRelease && ev.Auto {
			out = append(out, ev)
		}
	}
	return out
}

func (r *Registry) add(kind Kind, name string, release func() error) *entry {
	r.seq++
	e := &entry{
		h:       Handle{reg: r.id, id: r.seq, kind: kind},
		name:    name,
		release: release,
	}
	r.entries[e.h.id] = e
	r.order = append(r.order, e)
	return e
}

func (r *Registry) lookup(h Handle) (*entry, error) {
	if h.IsZero() || h.reg != r.id {
		return nil, fmt.Errorf("%s: %w", h, ErrUnknownHandle)
	}
	e, ok := r.entries[h.id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", h, ErrUnknownHandle)
	}
	return e, nil
}

func (r *Registry) release(e *entry, auto bool) error {
	e.released = true
	var err error
	if e.release != nil {
		err = e.release()
		e.release = nil
	}
	ev := Event{Op: OpRelease, Handle: e.h, Name: e.name, Auto: auto, Err: err}
	if e.owner != nil {
		ev.Owner = e.owner.h
	}
	r.record(ev)

	if auto {
		r.log.Warn().Str("kind", e.h.kind.String()).Str("name", e.name).Msg("released at close")
	}
	if err != nil {
		return fmt.Errorf("release %s %q: %w", e.h, e.name, err)
	}
	return nil
}

func (r *Registry) record(ev Event) {
	r.evSeq++
	ev.Seq = r.evSeq
	r.journal = append(r.journal, ev)
	if ev.Op == OpAcquire {
		r.log.Debug().Str("kind", ev.Handle.kind.String()).Uint64("id", ev.Handle.id).Str("name", ev.Name).Msg("acquire")
	} else {
		r.log.Debug().Str("kind", ev.Handle.kind.String()).Uint64("id", ev.Handle.id).Str("name", ev.Name).Bool("auto", ev.Auto).Msg("release")
	}
	if r.observer != nil {
		r.observer(ev)
	}
}
