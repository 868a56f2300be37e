package outwriter

import (
	"os"

	"github.com/huangsam/capsule/internal/contract"
	"golang.org/x/term"
)

// Bounds for the free-text column of a table.
const (
	minTextWidth = 12
	maxTextWidth = 60
)

// terminalWidth returns the width override, the detected terminal width, or 80.
func terminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // CI and pipes
	}
	return detectedWidth
}

// getMaxTextWidth returns how wide the one free-text column of a table may be
// once fixedWidth columns, borders and padding are reserved.
func getMaxTextWidth(cfg *contract.Config, fixedWidth int) int {
	available := terminalWidth(cfg) - fixedWidth - 20
	return min(max(available, minTextWidth), maxTextWidth)
}
