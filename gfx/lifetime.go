package gfx

import "sync/atomic"

// lifetime is shared by every copy of a resource value. After release,
// Valid is false on all copies and the canvas ignores them.
type lifetime struct {
	released atomic.Bool
}

func newLifetime() *lifetime { return &lifetime{} }

func (l *lifetime) live() bool { return l == nil || !l.released.Load() }

func (l *lifetime) ended() bool { return l != nil && l.released.Load() }

func (l *lifetime) release() error {
	if l != nil {
		l.released.Store(true)
	}
	return nil
}
