package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/fepmorph/internal/scene"
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	Hidden = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ff4444"))
)

// Swatch renders a block in the given colour.
func Swatch(c colorful.Color) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Clamped().Hex())).Render("██")
}

// ElementLegend lists element counts in alphabetical order, each behind a
// swatch of its display colour.
func ElementLegend(counts map[byte]int) string {
	elements := make([]byte, 0, len(counts))
	for e := range counts {
		elements = append(elements, e)
	}
	sort.Slice(elements, func(i, j int) bool { return elements[i] < elements[j] })

	parts := make([]string, 0, len(elements))
	for _, e := range elements {
		parts = append(parts, fmt.Sprintf("%s %c %d", Swatch(scene.AtomColour(e)), e, counts[e]))
	}
	return strings.Join(parts, "  ")
}

// GradientText colours each rune of text along a blend from start to end.
func GradientText(text string, start, end colorful.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := start.BlendLab(end, t).Clamped()
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return b.String()
}

// ProgressBar renders lambda progress as a bar of the given width.
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	filled = max(0, min(width, filled))
	return StatusRunning.Render(strings.Repeat("█", filled)) + Subtle.Render(strings.Repeat("░", width-filled))
}
