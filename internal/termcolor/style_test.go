package termcolor

import "testing"

func TestPaint(t *testing.T) {
	red := 1
	boldRed := Style{Bold: true, FGBasic: &red}
	if got, want := boldRed.Paint("Hello", true), "\x1b[1;31mHello\x1b[0m"; got != want {
		t.Fatalf("Paint produced %q, want %q", got, want)
	}
	if got := (Style{}).Paint("Hello", true); got != "Hello" {
		t.Fatalf("empty style should return original text, got %q", got)
	}
	if got := boldRed.Paint("Hello", false); got != "Hello" {
		t.Fatalf("disabled Paint should return original text, got %q", got)
	}
}

func TestPaintColorPriority(t *testing.T) {
	basic, idx := 2, 196
	rgb := [3]uint8{10, 20, 30}
	s := Style{Dim: true, FGBasic: &basic, FG256: &idx, FGTrue: &rgb}
	if got, want := s.Paint("x", true), "\x1b[2;38;2;10;20;30mx\x1b[0m"; got != want {
		t.Fatalf("truecolor should win: %q", got)
	}
	s.FGTrue = nil
	if got, want := s.Paint("x", true), "\x1b[2;38;5;196mx\x1b[0m"; got != want {
		t.Fatalf("256 color should win over basic: %q", got)
	}
	if !(Style{}).IsZero() || s.IsZero() {
		t.Fatal("IsZero mismatch")
	}
}
