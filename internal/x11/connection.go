package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Connection manages the X11 connection and core X resources.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	// deferred is created lazily on the first CallAfter.
	deferred *deferredCalls
}

// NewConnection establishes a connection to the X11 server.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// EventLoop starts the main X11 event loop (blocking). Deferred callbacks
// registered through WindowHooks run on iterations of this loop.
func (c *Connection) EventLoop() {
	xevent.Main(c.XUtil)
}

// StopEventLoop asks the event loop to exit after the current iteration.
func (c *Connection) StopEventLoop() {
	xevent.Quit(c.XUtil)
}

// Close cleanly disconnects from the X11 server.
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
