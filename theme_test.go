package tui

import "testing"

func TestDefaultThemeContextCoversAllSlots(t *testing.T) {
	tc := DefaultThemeContext()
	slots := []string{
		SlotNormalText, SlotMenuText, SlotMenuHotkey, SlotStatusText, SlotStatusKey,
		SlotSelectedText, SlotActiveBorder, SlotInactiveBorder, SlotInputText,
		SlotInputCursor, SlotScrollbar, SlotErrorText, SlotWarningText,
		SlotHighlightText, SlotMutedText,
	}
	for _, slot := range slots {
		if tc.Style(slot) == "" {
			t.Errorf("slot %q resolved to the empty string, which collides with the invalidate sentinel", slot)
		}
	}
}

func TestStyleTokenNeverEmpty(t *testing.T) {
	s := Style{}
	if s.token() == "" {
		t.Fatalf("a zero-value Style must never compile to the empty-string sentinel")
	}
}

func TestColorToANSIGrayscale(t *testing.T) {
	c := RGBColor(128, 128, 128).ToANSI()
	if c.typ != ColorANSI {
		t.Fatalf("expected a grayscale RGB color to map to the ANSI palette")
	}
}
