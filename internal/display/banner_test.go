package display

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderBanner(t *testing.T) {
	out := renderBanner(120)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	want := strings.Split(strings.TrimRight(bannerRaw, "\n"), "\n")
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w > 120 {
			t.Fatalf("line %d: wider than the terminal (%d)", i, w)
		}
		if !strings.HasPrefix(l, "          ") {
			t.Fatalf("line %d not centred: %q", i, l)
		}
		if !strings.Contains(l, strings.TrimSpace(want[i])) {
			t.Fatalf("line %d lost its art: %q", i, l)
		}
	}
}

func TestRenderBannerNarrowTerminal(t *testing.T) {
	if out := renderBanner(10); !strings.Contains(out, "|_|") {
		t.Fatalf("narrow terminals still get the art, got %q", out)
	}
}
