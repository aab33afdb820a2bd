package x11

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// Atom used to mark self-addressed client messages that carry deferred
// callbacks back onto the event loop.
const deferredCallAtom = "_WINKEEP_DEFERRED_CALL"

// WindowHooks adapts a foreign top-level X11 window to the event hooks the
// window-ready notifier needs: a "shown" signal (MapNotify), a "destroyed"
// signal (DestroyNotify), and deferred execution on a later event-loop
// iteration. All methods must be called from the event-loop goroutine.
type WindowHooks struct {
	conn *Connection
	win  xproto.Window

	shown     []*func()
	destroyed []*func()
}

// NewWindowHooks subscribes to StructureNotify events on the window and
// returns hooks for it. The window is owned by another client; destroying
// it invalidates the hooks.
func NewWindowHooks(conn *Connection, win xproto.Window) (*WindowHooks, error) {
	if err := xwindow.New(conn.XUtil, win).Listen(xproto.EventMaskStructureNotify); err != nil {
		return nil, fmt.Errorf("failed to listen for structure events: %w", err)
	}

	h := &WindowHooks{conn: conn, win: win}

	xevent.MapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MapNotifyEvent) {
		h.fire(h.shown)
	}).Connect(conn.XUtil, win)

	xevent.DestroyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		destroyed := h.destroyed
		h.shown = nil
		h.destroyed = nil
		h.fire(destroyed)
		xevent.Detach(xu, win)
	}).Connect(conn.XUtil, win)

	return h, nil
}

// OnShown registers fn to run every time the window becomes mapped. The
// returned cancel function unregisters it.
func (h *WindowHooks) OnShown(fn func()) (cancel func()) {
	return register(&h.shown, fn)
}

// OnDestroyed registers fn to run when the window is destroyed. The
// returned cancel function unregisters it.
func (h *WindowHooks) OnDestroyed(fn func()) (cancel func()) {
	return register(&h.destroyed, fn)
}

// CallAfter schedules fn to run on a later iteration of the event loop,
// after the event currently being dispatched has fully propagated. If the
// round trip through the X server fails, fn is dropped: running it
// synchronously would reorder it ahead of the propagation it must wait for.
func (h *WindowHooks) CallAfter(fn func()) {
	if err := h.conn.CallAfter(fn); err != nil {
		slog.Warn("dropping deferred call", "window", h.win, "error", err)
	}
}

func (h *WindowHooks) fire(hooks []*func()) {
	// Snapshot first: a hook may register or cancel other hooks.
	snapshot := make([]*func(), len(hooks))
	copy(snapshot, hooks)
	for _, fn := range snapshot {
		if *fn != nil {
			(*fn)()
		}
	}
}

func register(hooks *[]*func(), fn func()) (cancel func()) {
	entry := &fn
	*hooks = append(*hooks, entry)
	return func() {
		*entry = nil
		for i, e := range *hooks {
			if e == entry {
				*hooks = append((*hooks)[:i], (*hooks)[i+1:]...)
				break
			}
		}
	}
}

// deferredCalls holds callbacks posted via CallAfter until their marker
// events come back from the X server. Owned by the event-loop goroutine.
type deferredCalls struct {
	marker *xwindow.Window
	atom   xproto.Atom
	queue  []func()
}

// CallAfter posts fn to run on a subsequent iteration of the event loop by
// bouncing a client message off an owned, never-mapped marker window. The
// X server serializes the message behind all events already queued, which
// is exactly the "after the current notification has propagated" ordering
// deferred geometry reads need.
func (c *Connection) CallAfter(fn func()) error {
	if c.deferred == nil {
		d, err := c.newDeferredCalls()
		if err != nil {
			return err
		}
		c.deferred = d
	}

	c.deferred.queue = append(c.deferred.queue, fn)

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: c.deferred.marker.Id,
		Type:   c.deferred.atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{0, 0, 0, 0, 0}),
	}
	err := xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.deferred.marker.Id,
		xproto.EventMaskNoEvent,
		string(ev.Bytes()),
	).Check()
	if err != nil {
		// Drop the queued entry; the caller decides the fallback.
		c.deferred.queue = c.deferred.queue[:len(c.deferred.queue)-1]
		return fmt.Errorf("failed to post deferred call: %w", err)
	}
	return nil
}

func (c *Connection) newDeferredCalls() (*deferredCalls, error) {
	atom, err := xprop.Atm(c.XUtil, deferredCallAtom)
	if err != nil {
		return nil, fmt.Errorf("failed to intern %s: %w", deferredCallAtom, err)
	}

	marker, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate marker window: %w", err)
	}
	// Never mapped; override-redirect keeps window managers away from it.
	if err := marker.CreateChecked(c.Root, -1, -1, 1, 1, xproto.CwOverrideRedirect, 1); err != nil {
		return nil, fmt.Errorf("failed to create marker window: %w", err)
	}

	d := &deferredCalls{marker: marker, atom: atom}

	xevent.ClientMessageFun(func(xu *xgbutil.XUtil, ev xevent.ClientMessageEvent) {
		if ev.Type != d.atom || len(d.queue) == 0 {
			return
		}
		fn := d.queue[0]
		d.queue = d.queue[1:]
		fn()
	}).Connect(c.XUtil, marker.Id)

	return d, nil
}
