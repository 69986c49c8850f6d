package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColor(5, 5, 'X', ColorRed)
	if cell := s.GetCell(5, 5); cell.Rune != 'X' || cell.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected X in red", cell)
	}

	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(0, 0, 10, 10), 'X', ColorGreen)
	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if cell := s.GetCell(x, y); cell != blank {
				t.Fatalf("After Clear, cell (%d, %d) = %+v, expected blank", x, y, cell)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	if got := s.Row(1); !strings.HasPrefix(got, "  Hello") {
		t.Errorf("Row(1) = %q, expected prefix %q", got, "  Hello")
	}

	s.DrawText(17, 2, "World")
	if got := s.Row(2); got[17:] != "Wor" {
		t.Errorf("clipped row tail = %q, expected %q", got[17:], "Wor")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "abc", ColorYellow)
	if got := s.Row(0); got != "    abc    " {
		t.Errorf("Row(0) = %q, expected %q", got, "    abc    ")
	}
	if s.GetCell(4, 0).Color != ColorYellow {
		t.Errorf("centered text color = %v, expected %v", s.GetCell(4, 0).Color, ColorYellow)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(NewRect(0, 0, 5, 3), ColorDefault)

	expected := "┌───┐\n│   │\n└───┘"
	if got := s.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.Set(1, 1, 'Z')
	s.Resize(8, 4)

	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("size = %dx%d, expected 8x4", s.Width(), s.Height())
	}
	if s.Get(1, 1) != 'Z' {
		t.Errorf("Get(1, 1) = %q after resize, expected 'Z'", s.Get(1, 1))
	}
}

func TestScreenCopyFrom(t *testing.T) {
	src := NewScreen(3, 2)
	src.SetColor(2, 1, '#', ColorBlue)

	dst := NewScreen(1, 1)
	dst.CopyFrom(src)

	if dst.Width() != 3 || dst.Height() != 2 {
		t.Fatalf("size = %dx%d, expected 3x2", dst.Width(), dst.Height())
	}
	if cell := dst.GetCell(2, 1); cell.Rune != '#' || cell.Color != ColorBlue {
		t.Errorf("GetCell(2, 1) = %+v, expected blue '#'", cell)
	}
}
