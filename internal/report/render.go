// Package report renders snapshots, comparisons, and derived insights as
// styled terminal output.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jsnovaweb/ServerSensei/internal/insight"
	"github.com/jsnovaweb/ServerSensei/internal/ui"
)

// Renderer formats report sections for terminal display.
type Renderer struct {
	titleStyle   lipgloss.Style
	subStyle     lipgloss.Style
	labelStyle   lipgloss.Style
	warnStyle    lipgloss.Style
	errorStyle   lipgloss.Style
	successStyle lipgloss.Style
	mutedStyle   lipgloss.Style
}

// NewRenderer creates a renderer with the default styles.
func NewRenderer() *Renderer {
	return &Renderer{
		titleStyle:   lipgloss.NewStyle().Foreground(ui.ColorAccent).Bold(true),
		subStyle:     lipgloss.NewStyle().Foreground(ui.ColorSecondary).Bold(true),
		labelStyle:   lipgloss.NewStyle().Foreground(ui.ColorInfo),
		warnStyle:    lipgloss.NewStyle().Foreground(ui.ColorWarning),
		errorStyle:   lipgloss.NewStyle().Foreground(ui.ColorError),
		successStyle: lipgloss.NewStyle().Foreground(ui.ColorSuccess),
		mutedStyle:   lipgloss.NewStyle().Foreground(ui.ColorMuted),
	}
}

// title renders a chapter heading.
func (r *Renderer) title(sb *strings.Builder, name string) {
	sb.WriteString("\n")
	sb.WriteString(r.titleStyle.Render(name))
	sb.WriteString("\n")
}

// subtitle renders a subsection heading.
func (r *Renderer) subtitle(sb *strings.Builder, name string) {
	sb.WriteString("\n")
	sb.WriteString(r.subStyle.Render(name))
	sb.WriteString("\n")
}

// field renders an aligned "Label: value" line.
func (r *Renderer) field(sb *strings.Builder, label, value string) {
	sb.WriteString("  ")
	sb.WriteString(r.labelStyle.Render(label + ":"))
	sb.WriteString(" ")
	sb.WriteString(value)
	sb.WriteString("\n")
}

// RenderBaseline reports the first-run outcome, when no previous snapshot
// exists to compare against. This is informational, not an error.
func (r *Renderer) RenderBaseline() string {
	var sb strings.Builder
	r.title(&sb, "COMPARISON")
	sb.WriteString("  ")
	sb.WriteString(r.successStyle.Render(ui.SymbolSuccess + " Baseline snapshot recorded."))
	sb.WriteString("\n  ")
	sb.WriteString(r.mutedStyle.Render("No previous snapshot to compare against. Run again later to see changes."))
	sb.WriteString("\n")
	return sb.String()
}

// RenderInsights formats the classified warnings, recommendations, and
// positive changes.
func (r *Renderer) RenderInsights(in insight.Insights) string {
	if in.Empty() {
		return ""
	}

	var sb strings.Builder

	if len(in.Warnings) > 0 {
		r.title(&sb, "WARNINGS")
		for _, w := range in.Warnings {
			sb.WriteString("  ")
			sb.WriteString(r.warnStyle.Render(ui.SymbolWarning + " " + w))
			sb.WriteString("\n")
		}
	}

	if len(in.Recommendations) > 0 {
		r.title(&sb, "RECOMMENDATIONS")
		for _, rec := range in.Recommendations {
			sb.WriteString("  ")
			sb.WriteString(ui.SymbolBullet + " " + rec)
			sb.WriteString("\n")
		}
	}

	if len(in.Positives) > 0 {
		r.title(&sb, "POSITIVE CHANGES")
		for _, p := range in.Positives {
			sb.WriteString("  ")
			sb.WriteString(r.successStyle.Render(ui.SymbolSuccess + " " + p))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func fmtPct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func fmtGB(v float64) string {
	return fmt.Sprintf("%.2f GB", v)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
