package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// RenderSimpleTable renders a non-interactive table string.
// This is for CLI output (not TUI), producing a simple formatted table.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)
	cellStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary)
	borderStyle := lipgloss.NewStyle().
		Foreground(ColorMuted)

	var sb strings.Builder

	// Header row
	var total int
	for i, c := range columns {
		sb.WriteString(headerStyle.Render(pad(c.Title, c.Width)))
		total += c.Width
		if i < len(columns)-1 {
			sb.WriteString("  ")
			total += 2
		}
	}
	sb.WriteString("\n")
	sb.WriteString(borderStyle.Render(strings.Repeat("─", total)))
	sb.WriteString("\n")

	for _, row := range rows {
		for i, c := range columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			sb.WriteString(cellStyle.Render(pad(cell, c.Width)))
			if i < len(columns)-1 {
				sb.WriteString("  ")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// pad truncates or right-pads a cell to the column width.
func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		if width > 1 {
			return string(runes[:width-1]) + "…"
		}
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}
