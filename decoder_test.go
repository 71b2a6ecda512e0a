package tui

import (
	"testing"
	"time"
)

func TestDecoderEscapeBareTimeout(t *testing.T) {
	v := NewVirtualDriver(80, 24)
	v.QueueRawInput([]byte{0x1b})

	d := NewKeyDecoder(2 * time.Millisecond)
	got, ok := d.Next(v)
	if !ok {
		t.Fatalf("expected an event for a bare escape byte")
	}
	if got.Kind != KeyNamed || got.Named != Escape {
		t.Fatalf("got %s, want Escape", got)
	}
}

func TestDecoderEscapeSequenceNotBareEscape(t *testing.T) {
	v := NewVirtualDriver(80, 24)
	v.QueueRawInput([]byte{0x1b, '[', 'A'})

	d := NewKeyDecoder(50 * time.Millisecond)
	got, ok := d.Next(v)
	if !ok {
		t.Fatalf("expected an event for ESC [ A")
	}
	if got.Kind != KeyNamed || got.Named != Up {
		t.Fatalf("got %s, want Up", got)
	}
}

func TestDecoderCtrlLetter(t *testing.T) {
	v := NewVirtualDriver(80, 24)
	v.QueueRawInput([]byte{0x07}) // Ctrl+G

	d := NewKeyDecoder(time.Millisecond)
	got, ok := d.Next(v)
	if !ok {
		t.Fatalf("expected an event for Ctrl+G")
	}
	if got.Kind != KeyCtrl || got.Rune != 'g' {
		t.Fatalf("got %s, want Ctrl(g); canonicalisation to uppercase happens in ToCombination, not here", got)
	}
	if combo, ok := got.ToCombination(); !ok || combo != CtrlCombo('G') {
		t.Fatalf("ToCombination() = %v, want CtrlCombo('G')", combo)
	}
}

func TestDecoderPrintableChar(t *testing.T) {
	v := NewVirtualDriver(80, 24)
	v.QueueRawInput([]byte("q"))

	d := NewKeyDecoder(time.Millisecond)
	got, ok := d.Next(v)
	if !ok {
		t.Fatalf("expected an event for a printable character")
	}
	if got.Kind != KeyChar || got.Rune != 'q' {
		t.Fatalf("got %s, want Char('q')", got)
	}
}
