package ready

import (
	"slices"
	"testing"
)

// fakeWindow simulates a toolkit window whose event loop the test drives
// by hand, recording an ordering trace.
type fakeWindow struct {
	trace     []string
	shown     []*func()
	destroyed []*func()
	deferred  []func()
}

func (w *fakeWindow) OnShown(fn func()) (cancel func()) {
	return registerHook(&w.shown, fn)
}

func (w *fakeWindow) OnDestroyed(fn func()) (cancel func()) {
	return registerHook(&w.destroyed, fn)
}

func (w *fakeWindow) CallAfter(fn func()) {
	w.deferred = append(w.deferred, fn)
}

func registerHook(hooks *[]*func(), fn func()) (cancel func()) {
	entry := &fn
	*hooks = append(*hooks, entry)
	return func() { *entry = nil }
}

// Show dispatches the "shown" notification to all subscribers, bracketing
// the dispatch in the trace so tests can assert ordering.
func (w *fakeWindow) Show() {
	w.trace = append(w.trace, "shown-begin")
	for _, fn := range slices.Clone(w.shown) {
		if *fn != nil {
			(*fn)()
		}
	}
	w.trace = append(w.trace, "shown-end")
}

// Destroy dispatches the "destroyed" notification.
func (w *fakeWindow) Destroy() {
	for _, fn := range slices.Clone(w.destroyed) {
		if *fn != nil {
			(*fn)()
		}
	}
}

// RunEventLoopTurn runs everything scheduled via CallAfter.
func (w *fakeWindow) RunEventLoopTurn() {
	pending := w.deferred
	w.deferred = nil
	for _, fn := range pending {
		fn()
	}
}

func (w *fakeWindow) mark(s string) func() {
	return func() { w.trace = append(w.trace, s) }
}

func TestImmediate_FiresSynchronouslyAtRegistration(t *testing.T) {
	w := &fakeWindow{}
	fired := false
	NotifyWithPolicy(w, PolicyImmediate, func() { fired = true })
	if !fired {
		t.Fatalf("expected callback during registration")
	}
	if len(w.shown) != 0 || len(w.destroyed) != 0 {
		t.Fatalf("immediate policy must not subscribe to window events")
	}
}

func TestShownSync_FiresInsideShownHandler(t *testing.T) {
	w := &fakeWindow{}
	NotifyWithPolicy(w, PolicyShownSync, w.mark("callback"))

	w.Show()

	want := []string{"shown-begin", "callback", "shown-end"}
	if !slices.Equal(w.trace, want) {
		t.Fatalf("expected trace %v, got %v", want, w.trace)
	}
}

func TestShownDeferred_FiresOnlyAfterHandlerReturns(t *testing.T) {
	w := &fakeWindow{}
	NotifyWithPolicy(w, PolicyShownDeferred, w.mark("callback"))

	w.Show()
	if slices.Contains(w.trace, "callback") {
		t.Fatalf("callback ran synchronously inside the shown handler: %v", w.trace)
	}

	w.RunEventLoopTurn()
	want := []string{"shown-begin", "shown-end", "callback"}
	if !slices.Equal(w.trace, want) {
		t.Fatalf("expected trace %v, got %v", want, w.trace)
	}
}

func TestShown_PropagationContinuesToOtherSubscribers(t *testing.T) {
	w := &fakeWindow{}
	NotifyWithPolicy(w, PolicyShownSync, w.mark("callback"))
	w.OnShown(w.mark("other-subscriber"))

	w.Show()

	if !slices.Contains(w.trace, "other-subscriber") {
		t.Fatalf("notification did not propagate past the notifier: %v", w.trace)
	}
}

func TestShownSync_OneShot(t *testing.T) {
	w := &fakeWindow{}
	count := 0
	NotifyWithPolicy(w, PolicyShownSync, func() { count++ })

	w.Show()
	w.Show()
	if count != 1 {
		t.Fatalf("expected exactly one invocation, got %d", count)
	}
}

func TestShownDeferred_OneShot(t *testing.T) {
	w := &fakeWindow{}
	count := 0
	NotifyWithPolicy(w, PolicyShownDeferred, func() { count++ })

	w.Show()
	w.Show()
	w.RunEventLoopTurn()
	w.Show()
	w.RunEventLoopTurn()
	if count != 1 {
		t.Fatalf("expected exactly one invocation, got %d", count)
	}
}

func TestDestroyedBeforeShown_NeverFires(t *testing.T) {
	for _, policy := range []Policy{PolicyShownSync, PolicyShownDeferred} {
		w := &fakeWindow{}
		fired := false
		NotifyWithPolicy(w, policy, func() { fired = true })

		w.Destroy()
		w.Show() // stale notification after destruction
		w.RunEventLoopTurn()

		if fired {
			t.Fatalf("policy %d: callback fired for a destroyed window", policy)
		}
	}
}

func TestDestroyedBetweenShownAndDeferredTurn_NeverFires(t *testing.T) {
	w := &fakeWindow{}
	fired := false
	NotifyWithPolicy(w, PolicyShownDeferred, func() { fired = true })

	w.Show()
	w.Destroy()
	w.RunEventLoopTurn()

	if fired {
		t.Fatalf("callback fired although the window was destroyed before the deferred turn")
	}
}

// dropWindow discards deferred work, like an adapter whose event-loop
// posting mechanism has failed.
type dropWindow struct {
	fakeWindow
}

func (w *dropWindow) CallAfter(func()) {}

func TestShownDeferred_UndeliverableDeferralNeverRunsSynchronously(t *testing.T) {
	w := &dropWindow{}
	NotifyWithPolicy(w, PolicyShownDeferred, w.mark("callback"))

	w.Show()
	w.RunEventLoopTurn()

	if slices.Contains(w.trace, "callback") {
		t.Fatalf("dropped deferral must not run the callback: %v", w.trace)
	}
}

func TestPolicyForOS(t *testing.T) {
	cases := map[string]Policy{
		"windows": PolicyImmediate,
		"darwin":  PolicyShownSync,
		"linux":   PolicyShownDeferred,
		"freebsd": PolicyShownDeferred,
	}
	for goos, want := range cases {
		if got := policyForOS(goos); got != want {
			t.Fatalf("%s: expected policy %d, got %d", goos, want, got)
		}
	}
}
