// Package demos holds the catalog of example programs. Each category lives
// in its own sub-package and adds its demos with a Register function.
package demos

import (
	"fmt"
	"sort"
	"strings"

	"showcase/hal"
	"showcase/loop"
)

// Entry describes one demo.
type Entry struct {
	// Name is "category/name", for example "core/basic_window".
	Name  string
	Title string
	New   func() loop.Demo
	// Smoke is optional scripted input that walks the demo through its
	// interactive states in a headless run.
	Smoke func() *hal.Script
}

func (e Entry) Category() string {
	c, _, _ := strings.Cut(e.Name, "/")
	return c
}

// Catalog maps demo names to entries.
type Catalog struct {
	entries map[string]Entry
}

func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]Entry)}
}

// Register adds e; it panics on a malformed or duplicate name since
// catalogs are built at startup from fixed tables.
func (c *Catalog) Register(e Entry) {
	cat, name, ok := strings.Cut(e.Name, "/")
	if !ok || cat == "" || name == "" || strings.Contains(name, "/") {
		panic(fmt.Sprintf("demos: malformed name %q", e.Name))
	}
	if e.New == nil {
		panic(fmt.Sprintf("demos: %s has no constructor", e.Name))
	}
	if _, dup := c.entries[e.Name]; dup {
		panic(fmt.Sprintf("demos: %s registered twice", e.Name))
	}
	if e.Title == "" {
		e.Title = fmt.Sprintf("showcase [%s] example - %s", cat, strings.ReplaceAll(name, "_", " "))
	}
	c.entries[e.Name] = e
}

// Lookup finds a demo by its full name, or by its short name when that is
// unambiguous.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	if e, ok := c.entries[name]; ok {
		return e, true
	}
	var found Entry
	n := 0
	for full, e := range c.entries {
		if _, short, _ := strings.Cut(full, "/"); short == name {
			found = e
			n++
		}
	}
	return found, n == 1
}

// Names returns all demo names sorted by category, then name.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for n := range c.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Entries returns all entries in Names order.
func (c *Catalog) Entries() []Entry {
	names := c.Names()
	out := make([]Entry, 0, len(names))
	for _, n := range names {
		out = append(out, c.entries[n])
	}
	return out
}

func (c *Catalog) Len() int { return len(c.entries) }
