// Package dialog injects an auxiliary checkbox panel into a native file
// dialog's extra-control slot.
//
// The native slot mechanism has a quirk worth spelling out: on Windows the
// toolkit invokes the control factory twice. The first invocation gets a
// throwaway parent purely to measure the control, and only the second gets
// the real dialog. The factory contract is therefore two-phase: it may run
// any number of times, must never fail, and only a real-dialog parent is
// authoritative for content; every invocation must still produce a
// layout-equivalent panel so the measurement pass stays representative.
package dialog

// measurementLabel stands in for the real label on the measurement pass.
// It only needs to be long enough that the measured panel fits typical
// labels.
const measurementLabel = "String long enough to contain the checkbox label"

// Parent is the window an extra control is constructed under. On the
// measurement pass it is an opaque throwaway; on the final pass it is the
// *FileDialog itself.
type Parent any

// Control is a UI element installed into a dialog's extra-control slot.
type Control interface {
	// PreferredSize returns the control's layout size in pixels.
	PreferredSize() (width, height int)
}

// Factory constructs an extra control under the given parent. It may be
// invoked more than once; see the package comment.
type Factory func(parent Parent) Control

// Checkbox is a toggle control.
type Checkbox struct {
	Label string
	value bool
}

// Value returns the toggle's current state.
func (c *Checkbox) Value() bool { return c.value }

// SetValue sets the toggle's state.
func (c *Checkbox) SetValue(v bool) { c.value = v }

// ExtraPanel is the auxiliary panel holding the injected checkbox.
type ExtraPanel struct {
	Checkbox *Checkbox
}

// Panel layout constants, applied identically on every construction pass
// so measurement and final panels are layout-equivalent.
const (
	panelPadding   = 5
	checkboxHeight = 20
	charWidth      = 7
)

// PreferredSize derives the panel's layout size from its label.
func (p *ExtraPanel) PreferredSize() (width, height int) {
	width = 2*panelPadding + charWidth*len(p.Checkbox.Label)
	height = 2*panelPadding + checkboxHeight
	return width, height
}

// FileDialog models a native file-selection dialog that supports one
// injected extra control. The actual file-picker UI belongs to the
// platform; this type owns only the extra-control protocol.
type FileDialog struct {
	Message     string
	DefaultDir  string
	DefaultFile string
	Wildcard    string

	checkboxLabel string
	defaultValue  bool
	factory       Factory
	extra         Control
}

// NewCheckboxFileDialog creates a file dialog carrying a checkbox in its
// extra-control slot. An empty label skips installing the extra control
// entirely; the dialog then behaves like a plain file dialog and
// CheckboxValue reports false.
func NewCheckboxFileDialog(checkboxLabel string, checkboxValue bool, message, defaultDir, defaultFile, wildcard string) *FileDialog {
	d := &FileDialog{
		Message:       message,
		DefaultDir:    defaultDir,
		DefaultFile:   defaultFile,
		Wildcard:      wildcard,
		checkboxLabel: checkboxLabel,
		defaultValue:  checkboxValue,
	}

	if checkboxLabel == "" {
		return d
	}

	d.factory = NewExtraPanel
	return d
}

// ExtraControlFactory returns the factory the native slot mechanism should
// invoke, or nil when no extra control is installed.
func (d *FileDialog) ExtraControlFactory() Factory {
	return d.factory
}

// InstallExtraControl records the control the native mechanism constructed
// with the real dialog as parent.
func (d *FileDialog) InstallExtraControl(c Control) {
	d.extra = c
}

// ExtraControl returns the installed control, or nil.
func (d *FileDialog) ExtraControl() Control {
	return d.extra
}

// CheckboxValue returns the injected checkbox's state by looking up the
// auxiliary panel in the extra-control slot. A dialog without the panel
// (empty label, or the control was never installed) reports false.
func (d *FileDialog) CheckboxValue() bool {
	panel, ok := d.extra.(*ExtraPanel)
	if !ok || panel == nil {
		return false
	}
	return panel.Checkbox.Value()
}

// NewExtraPanel builds the checkbox panel under the given parent. Label
// text and the initial value come from the parent only when it is the real
// dialog; the measurement pass gets a representative placeholder and must
// not require dialog state.
func NewExtraPanel(parent Parent) Control {
	label := measurementLabel
	value := true

	if dlg, ok := parent.(*FileDialog); ok && dlg != nil {
		label = dlg.checkboxLabel
		value = dlg.defaultValue
	}

	cbox := &Checkbox{Label: label}
	cbox.SetValue(value)
	return &ExtraPanel{Checkbox: cbox}
}
