package tui

import "testing"

func TestToCombinationCanonicalizesCase(t *testing.T) {
	lower := charEvent('g')
	combo, ok := lower.ToCombination()
	if !ok {
		t.Fatalf("expected a combination for a printable char")
	}
	if combo != CharCombo('G') {
		t.Fatalf("combo = %v, want canonicalised CharCombo('G')", combo)
	}
}

func TestToCombinationUnknownHasNone(t *testing.T) {
	if _, ok := unknownEvent([]byte{0x1b, '['}).ToCombination(); ok {
		t.Fatalf("an Unknown event must not normalise to a combination")
	}
}

func TestParseCombinationCtrl(t *testing.T) {
	combo, err := ParseCombination("Ctrl+G")
	if err != nil {
		t.Fatalf("ParseCombination: %v", err)
	}
	if combo != CtrlCombo('G') {
		t.Fatalf("ParseCombination(Ctrl+G) = %v, want CtrlCombo('G')", combo)
	}
}

func TestParseCombinationNamed(t *testing.T) {
	combo, err := ParseCombination("F3")
	if err != nil {
		t.Fatalf("ParseCombination: %v", err)
	}
	if combo != NamedCombo(F3) {
		t.Fatalf("ParseCombination(F3) = %v, want NamedCombo(F3)", combo)
	}
}

func TestParseCombinationInvalidModifier(t *testing.T) {
	if _, err := ParseCombination("Shift+G"); err == nil {
		t.Fatalf("expected an error for an unsupported modifier")
	}
}

func TestKeyCombinationStringCanonicalOrder(t *testing.T) {
	combo := CtrlCombo('G')
	if combo.String() != "Ctrl+G" {
		t.Fatalf("String() = %q, want Ctrl+G (never G+Ctrl)", combo.String())
	}
}
