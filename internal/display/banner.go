package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerRaw string

// RenderBanner returns the banner art centred for the current terminal.
func RenderBanner() string {
	return renderBanner(termWidth())
}

func renderBanner(width int) string {
	art := strings.TrimRight(bannerRaw, "\n")
	if art == "" {
		return ""
	}
	// Pad every line to the block width so centring keeps the letters aligned.
	block := lipgloss.NewStyle().Width(lipgloss.Width(art)).Render(art)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, BannerStyle.Render(block)) + "\n"
}

// termWidth returns the current terminal column count, or 80 as fallback.
func termWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
