package tui

import (
	"regexp"
	"strings"
	"testing"

	"github.com/vovakirdan/arcade-loop/internal/core"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string {
	return ansi.ReplaceAllString(s, "")
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorRed)
	s.DrawTextColor(2, 0, "cd", core.ColorGreen)
	s.DrawTextColor(1, 1, "xyz", core.ColorCyan)

	got := strings.Split(plain(RenderScreen(s)), "\n")
	want := []string{"abcd  ", " xyz  "}
	if len(got) != len(want) {
		t.Fatalf("rows = %d, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, expected %q", i, got[i], want[i])
		}
	}
}

func TestCenterText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"ab", 6, "  ab"},
		{"abc", 6, " abc"},
		{"toolong", 4, "toolong"},
	}
	for _, tc := range tests {
		if got := centerText(tc.text, tc.width); got != tc.want {
			t.Errorf("centerText(%q, %d) = %q, expected %q", tc.text, tc.width, got, tc.want)
		}
	}
}
