// Package colorutil provides shared color utilities for the part annotator.
package colorutil

import (
	"fmt"
	"image/color"
	"strings"
)

// Common marker and accent colors used throughout the application.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red     = color.RGBA{R: 220, G: 50, B: 47, A: 255}
	Blue    = color.RGBA{R: 38, G: 139, B: 210, A: 255}
	Green   = color.RGBA{R: 60, G: 180, B: 75, A: 255}
	Yellow  = color.RGBA{R: 255, G: 200, B: 0, A: 255}
	Magenta = color.RGBA{R: 211, G: 54, B: 130, A: 255}
)

// ParseHex parses a "#rrggbb" or "#rgb" color string.
// Returns fallback when the string is empty or malformed.
func ParseHex(s string, fallback color.RGBA) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")

	switch len(s) {
	case 6:
		var r, g, b uint8
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return fallback
		}
		return color.RGBA{R: r, G: g, B: b, A: 255}
	case 3:
		var r, g, b uint8
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b); err != nil {
			return fallback
		}
		return color.RGBA{R: r * 17, G: g * 17, B: b * 17, A: 255}
	default:
		return fallback
	}
}

// FormatHex formats a color as a "#rrggbb" string.
func FormatHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
