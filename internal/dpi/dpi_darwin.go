//go:build darwin

package dpi

// No native DPI query is wired on macOS; resolution always answers the
// process-wide default. This is documented stub behavior, not a bug.
func newPlatformResolver() *Resolver {
	return NewResolver()
}
