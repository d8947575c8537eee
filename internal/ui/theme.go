package ui

import (
	"strings"

	"github.com/Makepad-fr/kanban/internal/model"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                   string
	Title, Muted, Accent, Success, Error   string
	Todo, InProgress, Done                 string
	CornerTL, CornerTR, CornerBL, CornerBR string
	H, V                                   string
	Bullet, SymDone                        string
	// Hex-ish terminal colour codes for lipgloss, per lane.
	LaneColor [3]string
}

var current = classic()

func classic() Theme {
	return Theme{
		Name:  "classic",
		Title: bold, Muted: fgGray, Accent: fgBlue,
		Success: fgGreen, Error: fgRed,
		Todo: fgYellow, InProgress: fgBlue, Done: fgGreen,
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
		Bullet: "•", SymDone: "✔",
		LaneColor: [3]string{"214", "12", "42"},
	}
}

// SetTheme switches the palette; unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		disableColor = false
		current = Theme{
			Name:  "neon",
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed,
			Todo: "\033[93m", InProgress: "\033[96m", Done: fgMagenta,
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			Bullet: "◻", SymDone: "◼",
			LaneColor: [3]string{"226", "51", "201"},
		}
	case "mono":
		disableColor = true
		current = Theme{
			Name:     "mono",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			Bullet: "-", SymDone: "x",
			LaneColor: [3]string{"", "", ""},
		}
	default:
		disableColor = false
		current = classic()
	}
}

// Expose what renderers need
func Current() Theme { return current }

// LaneANSI is the ANSI colour for a lane heading.
func (t Theme) LaneANSI(l model.Lane) string {
	switch l {
	case model.InProgress:
		return t.InProgress
	case model.Done:
		return t.Done
	}
	return t.Todo
}
