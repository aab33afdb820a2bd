package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/1broseidon/winkeep/internal/dpi"
	"github.com/1broseidon/winkeep/internal/metrics"
	"github.com/1broseidon/winkeep/internal/platform"
	"github.com/1broseidon/winkeep/internal/store"
)

const version = "0.1.0"

func main() {
	setupLogging()

	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "capture":
		os.Exit(runCapture(os.Args[2:]))
	case "restore":
		os.Exit(runRestore(os.Args[2:]))
	case "dpi":
		os.Exit(runDPI(os.Args[2:]))
	case "displays":
		os.Exit(runDisplays(os.Args[2:]))
	case "windows":
		os.Exit(runWindows(os.Args[2:]))
	case "list":
		os.Exit(runList(os.Args[2:]))
	case "forget":
		os.Exit(runForget(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "version", "--version", "-v":
		fmt.Printf("winkeep %s\n", version)
		os.Exit(0)
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func setupLogging() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	// Timestamps are noise when a human is watching the terminal.
	if term.IsTerminal(int(os.Stderr.Fd())) {
		opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "winkeep - capture, persist and restore window geometry")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage: winkeep <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  capture     Capture a window's geometry, optionally saving it by name")
	fmt.Fprintln(w, "  restore     Restore a window's geometry from a saved entry")
	fmt.Fprintln(w, "  dpi         Resolve the effective DPI for a window or the primary display")
	fmt.Fprintln(w, "  displays    List active displays")
	fmt.Fprintln(w, "  windows     List top-level windows")
	fmt.Fprintln(w, "  list        List saved geometry entries")
	fmt.Fprintln(w, "  forget      Remove a saved geometry entry")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve   Start MCP server (stdio transport)")
	fmt.Fprintln(w, "  version     Print version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'winkeep <command> --help' for command-specific options.")
}

// openBackend connects to the platform window system.
func openBackend() (platform.Backend, int) {
	backend, err := platform.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, 1
	}
	return backend, 0
}

// findWindow resolves the target window from --id / --title / --active.
func findWindow(backend platform.Backend, id uint64, title string, active bool) (platform.WindowID, error) {
	switch {
	case id != 0:
		return platform.WindowID(id), nil
	case title != "":
		return backend.FindWindowByTitle(title)
	case active:
		return backend.ActiveWindow()
	default:
		return platform.None, fmt.Errorf("one of --id, --title or --active is required")
	}
}

func runCapture(args []string) int {
	fs := flag.NewFlagSet("capture", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	id := fs.Uint64("id", 0, "window ID")
	title := fs.String("title", "", "title substring to find the window")
	active := fs.Bool("active", false, "use the focused window")
	name := fs.String("name", "", "save the geometry under this name")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winkeep capture [--id N | --title S | --active] [--name NAME]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Print the window's geometry string; with --name, also save it.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	backend, code := openBackend()
	if code != 0 {
		return code
	}
	defer backend.Close()

	win, err := findWindow(backend, *id, *title, *active)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	m, err := metrics.Capture(backend, win)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(m.Serialize())

	if *name != "" {
		st, err := store.Open()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		st.Set(*name, m.Serialize())
		if err := st.Save(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		slog.Info("geometry saved", "name", *name, "file", st.Path())
	}
	return 0
}

func runRestore(args []string) int {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	id := fs.Uint64("id", 0, "window ID")
	title := fs.String("title", "", "title substring to find the window")
	active := fs.Bool("active", false, "use the focused window")
	name := fs.String("name", "", "saved entry to restore from")
	geometry := fs.String("geometry", "", "explicit geometry string instead of a saved entry")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winkeep restore [--id N | --title S | --active] (--name NAME | --geometry G)")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Apply saved geometry to the window, sanitized against its display")
		fmt.Fprintln(os.Stderr, "so the window never ends up off-screen.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	serialized := *geometry
	if serialized == "" {
		if *name == "" {
			fmt.Fprintln(os.Stderr, "either --name or --geometry is required")
			fs.Usage()
			return 2
		}
		st, err := store.Open()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		var ok bool
		serialized, ok = st.Get(*name)
		if !ok {
			fmt.Fprintf(os.Stderr, "no saved geometry named %q\n", *name)
			return 1
		}
	}

	m, ok := metrics.Deserialize(serialized)
	if !ok {
		// The defined fallback for malformed persisted geometry is the
		// platform's default placement, i.e. leave the window alone.
		fmt.Fprintf(os.Stderr, "malformed geometry %q; leaving window placement unchanged\n", serialized)
		return 1
	}

	backend, code := openBackend()
	if code != 0 {
		return code
	}
	defer backend.Close()

	win, err := findWindow(backend, *id, *title, *active)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	display, err := backend.DisplayFor(win)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	m.SanitizeForDisplay(display.Usable)

	if err := backend.MoveResize(win, m.Rect); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if m.Maximized {
		if err := backend.SetMaximized(win, true); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	slog.Info("geometry restored", "window", win, "metrics", m)
	return 0
}

func runDPI(args []string) int {
	fs := flag.NewFlagSet("dpi", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	id := fs.Uint64("id", 0, "window ID (0 = primary display)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winkeep dpi [--id N]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Resolve the effective DPI. Always answers; falls back to the")
		fmt.Fprintln(os.Stderr, "process default when no platform capability can tell.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	fmt.Println(dpi.Resolve(platform.WindowID(*id)))
	return 0
}

func runDisplays(args []string) int {
	fs := flag.NewFlagSet("displays", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winkeep displays")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	backend, code := openBackend()
	if code != 0 {
		return code
	}
	defer backend.Close()

	displays, err := backend.Displays()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, d := range displays {
		primary := ""
		if d.Primary {
			primary = " (primary)"
		}
		fmt.Printf("%d: %s%s bounds=%d,%d %dx%d usable=%d,%d %dx%d\n",
			d.ID, d.Name, primary,
			d.Bounds.X, d.Bounds.Y, d.Bounds.Width, d.Bounds.Height,
			d.Usable.X, d.Usable.Y, d.Usable.Width, d.Usable.Height)
	}
	return 0
}

func runWindows(args []string) int {
	fs := flag.NewFlagSet("windows", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	title := fs.String("title", "", "only windows whose title contains this substring")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winkeep windows [--title S]")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	backend, code := openBackend()
	if code != 0 {
		return code
	}
	defer backend.Close()

	windows, err := backend.ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, w := range windows {
		if *title != "" && !strings.Contains(w.Title, *title) {
			continue
		}
		fmt.Printf("%d: %q app=%s pid=%d bounds=%d,%d %dx%d\n",
			uint64(w.ID), w.Title, w.AppID, w.PID,
			w.Bounds.X, w.Bounds.Y, w.Bounds.Width, w.Bounds.Height)
	}
	return 0
}

func runList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winkeep list")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List saved geometry entries.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	st, err := store.Open()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, name := range st.Names() {
		serialized, _ := st.Get(name)
		status := ""
		if _, ok := metrics.Deserialize(serialized); !ok {
			status = " (malformed)"
		}
		fmt.Printf("%s: %s%s\n", name, serialized, status)
	}
	return 0
}

func runForget(args []string) int {
	fs := flag.NewFlagSet("forget", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winkeep forget <name>")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "forget takes exactly one name")
		fs.Usage()
		return 2
	}

	st, err := store.Open()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	st.Delete(fs.Arg(0))
	if err := st.Save(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
