// Package ready runs a callback at the earliest moment a top-level
// window's final screen geometry is reliably observable. That moment
// differs per platform, and reading geometry too early silently yields
// wrong values, so the per-platform policies here encode empirically
// discovered toolkit and OS behavior and must not be "simplified".
package ready

import "runtime"

// Window is the minimal view of a top-level window the notifier needs.
// Implementations adapt a concrete windowing system (see the x11 package's
// WindowHooks). All methods are event-loop-thread only.
type Window interface {
	// OnShown registers fn to run when the window becomes visible. The
	// returned cancel function unregisters it.
	OnShown(fn func()) (cancel func())
	// OnDestroyed registers fn to run when the window is destroyed. The
	// returned cancel function unregisters it.
	OnDestroyed(fn func()) (cancel func())
	// CallAfter schedules fn onto a later iteration of the event loop,
	// after the notification currently being dispatched has fully
	// propagated. An implementation that cannot schedule fn must drop it
	// rather than run it synchronously.
	CallAfter(fn func())
}

// Policy selects when the geometry-ready callback fires.
type Policy int

const (
	// PolicyImmediate fires the callback synchronously at registration
	// time. On Windows the "shown" notification is not delivered for
	// windows created maximized, but geometry is available right away,
	// so waiting would both be wrong and unnecessary.
	PolicyImmediate Policy = iota

	// PolicyShownDeferred waits for the first "shown" notification and
	// then defers the callback to a later event-loop iteration. On Linux
	// the geometry is only final after the show event has propagated and
	// the platform layout pass has completed.
	PolicyShownDeferred

	// PolicyShownSync fires the callback synchronously inside the first
	// "shown" notification. On macOS geometry is final as soon as the
	// window is shown.
	PolicyShownSync
)

// DefaultPolicy returns the policy for the running operating system.
func DefaultPolicy() Policy {
	return policyForOS(runtime.GOOS)
}

func policyForOS(goos string) Policy {
	switch goos {
	case "windows":
		return PolicyImmediate
	case "darwin":
		return PolicyShownSync
	default:
		return PolicyShownDeferred
	}
}

// OnGeometryReady registers callback to run once, as soon as the window's
// final geometry is observable under the platform's default policy. If the
// window is destroyed first, the callback never runs.
func OnGeometryReady(win Window, callback func()) {
	NotifyWithPolicy(win, DefaultPolicy(), callback)
}

// NotifyWithPolicy is OnGeometryReady with an explicit policy. The
// registration is one-shot: later "shown" notifications do not re-fire the
// callback, and destruction before the first one cancels it entirely.
func NotifyWithPolicy(win Window, policy Policy, callback func()) {
	if policy == PolicyImmediate {
		callback()
		return
	}

	fired := false
	destroyed := false
	var cancelShown func()
	var cancelDestroy func()

	finish := func() {
		if cancelShown != nil {
			cancelShown()
		}
		if cancelDestroy != nil {
			cancelDestroy()
		}
	}

	cancelDestroy = win.OnDestroyed(func() {
		destroyed = true
		finish()
	})

	cancelShown = win.OnShown(func() {
		if fired || destroyed {
			return
		}
		fired = true

		switch policy {
		case PolicyShownSync:
			finish()
			callback()
		case PolicyShownDeferred:
			cancelShown()
			// Destruction can still race the deferred turn; keep the
			// destroy hook armed until the callback actually runs.
			win.CallAfter(func() {
				if destroyed {
					return
				}
				if cancelDestroy != nil {
					cancelDestroy()
				}
				callback()
			})
		}
	})
}
