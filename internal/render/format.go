package render

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// formatSize renders a byte count with binary-scaled units and one decimal
// place. The B/KB/MB/GB labels are fixed by the display contract.
func formatSize(sizeBytes int64) string {
	if sizeBytes == 0 {
		return "0 B"
	}
	size := float64(sizeBytes)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", size, sizeUnits[unit])
}

// formatETA renders an estimated remaining time as whole seconds, or
// "Unknown" when the tool supplied no estimate.
func formatETA(etaSeconds *float64) string {
	if etaSeconds == nil {
		return "Unknown"
	}
	return fmt.Sprintf("%.0fs", math.Round(*etaSeconds))
}

// barFill reports how many of width cells a percentage fills, clamped to
// [0, width].
func barFill(width int, percent float64) int {
	if width <= 0 {
		return 0
	}
	filled := int(math.Round(float64(width) * percent / 100))
	if filled < 0 {
		return 0
	}
	if filled > width {
		return width
	}
	return filled
}

func renderBar(width int, percent float64) string {
	filled := barFill(width, percent)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

var titleCaser = cases.Title(language.Und)

// fallbackTitle derives a display title from an output file name for
// chapter events whose title field arrived empty.
func fallbackTitle(outputFile string) string {
	if outputFile == "" {
		return "Unknown Chapter"
	}
	base := filepath.Base(outputFile)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case r == '_' || r == '-' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		default:
			cleaned.WriteRune(r)
			prevSpace = false
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return "Unknown Chapter"
	}
	return titleCaser.String(title)
}
