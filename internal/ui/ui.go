package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Brand colors
var (
	Brand  = color.New(color.FgHiCyan, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

const Deck = "◈" // ◈

// SetColor turns colored output on or off globally.
func SetColor(on bool) {
	color.NoColor = !on
}

var emoji = true

// SetEmoji turns decorative glyphs on or off globally.
func SetEmoji(on bool) {
	emoji = on
}

// Glyph returns g, or "" when glyphs are off.
func Glyph(g string) string {
	if !emoji {
		return ""
	}
	return g
}

// Banner prints the devdeck banner.
func Banner(subtitle string) {
	fmt.Print(bannerLine(subtitle))
}

func bannerLine(subtitle string) string {
	name := Brand.Sprint("devdeck")
	if emoji {
		name = Deck + " " + name
	}
	return fmt.Sprintf("%s — %s\n\n", name, subtitle)
}

// Table prints a simple aligned table.
func Table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	// Print header
	headerLine := "  "
	sepLine := "  "
	for i, h := range headers {
		headerLine += fmt.Sprintf("%-*s  ", widths[i], h)
		sepLine += strings.Repeat("─", widths[i]) + "  "
	}
	Subtle.Println(headerLine)
	Subtle.Println(sepLine)

	// Print rows
	for _, row := range rows {
		line := "  "
		for i, cell := range row {
			if i < len(widths) {
				line += fmt.Sprintf("%-*s  ", widths[i], cell)
			}
		}
		fmt.Println(line)
	}
}

// StatusIcon returns a status icon string.
func StatusIcon(ok bool) string {
	if ok {
		return Good.Sprint("✓")
	}
	return Bad.Sprint("✗")
}

// WarnIcon returns a warning icon.
func WarnIcon() string {
	return Warn.Sprint("⚠")
}

// Swatch renders a block in the given "#rrggbb" color. Malformed colors
// render uncolored.
func Swatch(hex string) string {
	r, g, b, ok := ParseHex(hex)
	if !ok {
		return "██"
	}
	return color.RGB(r, g, b).Sprint("██")
}

// ParseHex splits "#rrggbb" into components.
func ParseHex(hex string) (r, g, b int, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}
