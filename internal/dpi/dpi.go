// Package dpi resolves the effective pixel density for a window or for the
// primary display through an ordered chain of platform capabilities.
//
// Capability availability is probed lazily, at most once per process: once
// a capability has been found (or found missing) that answer is memoized
// for the process lifetime, since dynamic symbol lookups are costly and
// availability cannot change while the process runs. Resolution itself is
// a total function: every branch terminates in Default, and no query ever
// surfaces an error to the caller.
package dpi

import (
	"sync"

	"github.com/1broseidon/winkeep/internal/platform"
)

// Default is the process-wide fallback pixel density, used whenever no
// platform capability can answer.
const Default = 96

// QueryFunc answers a DPI query for a window (platform.None targets the
// primary display). Implementations handle their own query failures by
// returning Default; they never report errors.
type QueryFunc func(win platform.WindowID) int

// Capability is one entry in the fallback chain. Probe runs at most once
// per process; returning nil marks the capability unavailable for the
// remainder of the process lifetime.
type Capability struct {
	Name  string
	Probe func() QueryFunc
}

type capEntry struct {
	cap  Capability
	once sync.Once
	fn   QueryFunc
}

// Resolver resolves DPI through an ordered capability chain. The first
// available capability answers; an empty or fully unavailable chain
// answers Default.
type Resolver struct {
	caps []*capEntry
}

// NewResolver builds a resolver over the given capabilities, in order.
func NewResolver(caps ...Capability) *Resolver {
	entries := make([]*capEntry, len(caps))
	for i, c := range caps {
		entries[i] = &capEntry{cap: c}
	}
	return &Resolver{caps: entries}
}

// Resolve returns the effective DPI for the window, or for the primary
// display when win is platform.None. The result is always positive.
func (r *Resolver) Resolve(win platform.WindowID) int {
	for _, e := range r.caps {
		e.once.Do(func() {
			if e.cap.Probe != nil {
				e.fn = e.cap.Probe()
			}
		})
		if e.fn == nil {
			continue
		}
		if v := e.fn(win); v > 0 {
			return v
		}
		return Default
	}
	return Default
}

var processResolver = sync.OnceValue(newPlatformResolver)

// Resolve answers through the process-wide resolver for the running
// platform. The resolver is created on first use and never invalidated.
func Resolve(win platform.WindowID) int {
	return processResolver().Resolve(win)
}
