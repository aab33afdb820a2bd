package dialog

import "testing"

// throwawayParent mimics the dummy window the toolkit passes on its
// measurement pass.
type throwawayParent struct{}

func TestFactory_DoubleConstruction(t *testing.T) {
	dlg := NewCheckboxFileDialog("Export config", true, "Save file", "", "out.ini", "*.ini")

	factory := dlg.ExtraControlFactory()
	if factory == nil {
		t.Fatalf("expected a factory for a non-empty label")
	}

	// Measurement pass: throwaway parent, no dialog state available.
	measured := factory(&throwawayParent{})
	if measured == nil {
		t.Fatalf("measurement pass returned no control")
	}
	mp, ok := measured.(*ExtraPanel)
	if !ok {
		t.Fatalf("measurement pass built %T, expected *ExtraPanel", measured)
	}
	if mp.Checkbox.Label == "" {
		t.Fatalf("measurement pass needs a representative placeholder label")
	}

	// Final pass: the real dialog is the parent.
	final := factory(dlg)
	fp, ok := final.(*ExtraPanel)
	if !ok {
		t.Fatalf("final pass built %T, expected *ExtraPanel", final)
	}
	if fp.Checkbox.Label != "Export config" {
		t.Fatalf("final pass label: got %q", fp.Checkbox.Label)
	}
	if !fp.Checkbox.Value() {
		t.Fatalf("final pass must carry the caller's default value")
	}

	// Both passes must be layout-equivalent in structure.
	mw, mh := measured.PreferredSize()
	fw, fh := final.PreferredSize()
	if mh != fh {
		t.Fatalf("pass heights differ: %d vs %d", mh, fh)
	}
	if mw <= 0 || fw <= 0 {
		t.Fatalf("non-positive widths: %d, %d", mw, fw)
	}
}

func TestFactory_NilParentDoesNotPanic(t *testing.T) {
	dlg := NewCheckboxFileDialog("Keep settings", false, "", "", "", "")
	panel := dlg.ExtraControlFactory()(nil)
	if panel == nil {
		t.Fatalf("expected a panel even for a nil parent")
	}
}

func TestCheckboxValue_ReadsInstalledPanel(t *testing.T) {
	dlg := NewCheckboxFileDialog("Remember choice", false, "", "", "", "")
	dlg.InstallExtraControl(dlg.ExtraControlFactory()(dlg))

	if dlg.CheckboxValue() {
		t.Fatalf("expected initial value false")
	}

	panel := dlg.ExtraControl().(*ExtraPanel)
	panel.Checkbox.SetValue(true)
	if !dlg.CheckboxValue() {
		t.Fatalf("expected value true after toggling")
	}
}

func TestEmptyLabel_SkipsExtraControl(t *testing.T) {
	dlg := NewCheckboxFileDialog("", true, "Open file", "", "", "*.*")

	if dlg.ExtraControlFactory() != nil {
		t.Fatalf("empty label must not install a factory")
	}
	if dlg.CheckboxValue() {
		t.Fatalf("missing panel must read as false, not an error")
	}
}

func TestCheckboxValue_ForeignControlReadsFalse(t *testing.T) {
	dlg := NewCheckboxFileDialog("Label", true, "", "", "", "")
	dlg.InstallExtraControl(fakeControl{})
	if dlg.CheckboxValue() {
		t.Fatalf("a non-panel control in the slot must read as false")
	}
}

type fakeControl struct{}

func (fakeControl) PreferredSize() (int, int) { return 1, 1 }
