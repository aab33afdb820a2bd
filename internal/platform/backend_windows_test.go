//go:build windows

package platform

import (
	"strings"
	"testing"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	procCreateWindowExW = user32.NewProc("CreateWindowExW")
	procDestroyWindow   = user32.NewProc("DestroyWindow")
)

// HWND_MESSAGE: parent for message-only windows.
const hwndMessage = ^uintptr(2)

func TestEnumerationDoesNotExhaustCallbacks(t *testing.T) {
	// The runtime caps how many callbacks a process may create (~2000),
	// so repeated enumeration must reuse the same callback rather than
	// minting a new one per call.
	b := &WindowsBackend{}

	for i := 0; i < 2100; i++ {
		if _, err := b.Displays(); err != nil {
			t.Skipf("display enumeration unavailable: %v", err)
		}
	}
	for i := 0; i < 2100; i++ {
		if _, err := b.ListWindows(); err != nil {
			t.Skipf("window enumeration unavailable: %v", err)
		}
	}
}

func TestWindowText_LongTitle(t *testing.T) {
	title := strings.Repeat("x", 300) + "needle"

	className, err := windows.UTF16PtrFromString("STATIC")
	if err != nil {
		t.Fatalf("class name: %v", err)
	}
	titlePtr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		t.Fatalf("title: %v", err)
	}

	hwnd, _, _ := procCreateWindowExW.Call(
		0,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(titlePtr)),
		0,
		0, 0, 0, 0,
		hwndMessage,
		0, 0, 0,
	)
	if hwnd == 0 {
		t.Skip("could not create a message-only test window")
	}
	defer procDestroyWindow.Call(hwnd)

	if got := windowText(hwnd); got != title {
		t.Fatalf("expected the full %d-unit title, got %d units", len(title), len(got))
	}
}
