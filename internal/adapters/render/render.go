// Package render draws a derived roster view for terminals.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/internal/domain/roster"
)

// Glyphs used in rendered rows.
const (
	badgeGlyph  = "★"
	statusGlyph = "●"
	teamMark    = "[team]"
	cellSep     = "  "
)

// Options tunes the output.
type Options struct {
	// Plain disables colour and emphasis.
	Plain bool
}

var (
	badgeColors = map[roster.Badge]lipgloss.Color{
		roster.BadgeGold:   lipgloss.Color("#FFD700"),
		roster.BadgeSilver: lipgloss.Color("#C0C0C0"),
		roster.BadgeBronze: lipgloss.Color("#CD7F32"),
	}
	statusColors = map[model.Status]lipgloss.Color{
		model.StatusOnline:  lipgloss.Color("#22C55E"),
		model.StatusAway:    lipgloss.Color("#EAB308"),
		model.StatusOffline: lipgloss.Color("#9CA3AF"),
	}
	mutedColor = lipgloss.AdaptiveColor{Light: "#555", Dark: "#999"}
)

type palette struct {
	header lipgloss.Style
	rank   lipgloss.Style
	name   lipgloss.Style
	muted  lipgloss.Style
	label  lipgloss.Style
	plain  bool
}

func newPalette(opts Options) palette {
	if opts.Plain {
		s := lipgloss.NewStyle()
		return palette{header: s, rank: s, name: s, muted: s, label: s, plain: true}
	}
	return palette{
		header: lipgloss.NewStyle().Bold(true).Underline(true),
		rank:   lipgloss.NewStyle().Bold(true),
		name:   lipgloss.NewStyle().Bold(true),
		muted:  lipgloss.NewStyle().Foreground(mutedColor),
		label:  lipgloss.NewStyle().Foreground(mutedColor).Italic(true),
	}
}

func (p palette) badge(b roster.Badge) string {
	if b == roster.BadgeNone {
		return " "
	}
	if p.plain {
		return badgeGlyph
	}
	return lipgloss.NewStyle().Foreground(badgeColors[b]).Render(badgeGlyph)
}

func (p palette) status(s model.Status) string {
	if p.plain {
		return statusGlyph
	}
	return lipgloss.NewStyle().Foreground(statusColors[s]).Render(statusGlyph)
}

// Table renders view as a header line followed by one line per row.
func Table(view roster.View, opts Options) string {
	p := newPalette(opts)

	header := fmt.Sprintf("Users %d", view.Total)
	if view.Search != "" {
		header += fmt.Sprintf(" (showing %d matching %q)", len(view.Rows), view.Search)
	}
	lines := []string{p.header.Render(header)}

	if len(view.Rows) == 0 {
		lines = append(lines, p.muted.Render("No users found"))
		return strings.Join(lines, "\n")
	}

	rankWidth, nameWidth, handleWidth := 0, 0, 0
	for _, row := range view.Rows {
		rankWidth = max(rankWidth, lipgloss.Width(rankText(row.Rank)))
		nameWidth = max(nameWidth, lipgloss.Width(nameText(row)))
		handleWidth = max(handleWidth, lipgloss.Width(row.Handle))
	}

	for _, row := range view.Rows {
		line := strings.Join([]string{
			p.rank.Width(rankWidth).Render(rankText(row.Rank)),
			p.badge(row.Badge),
			p.status(row.Status),
			p.name.Width(nameWidth).Render(nameText(row)),
			p.muted.Width(handleWidth).Render(row.Handle),
		}, " ")
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = p.label.Render(c.Label+":") + " " + c.Display
		}
		if len(cells) > 0 {
			line += cellSep + strings.Join(cells, cellSep)
		}
		lines = append(lines, strings.TrimRight(line, " "))
	}
	// Lines are joined by hand; lipgloss.JoinVertical would pad them to equal width.
	return strings.Join(lines, "\n")
}

func rankText(rank int) string {
	return fmt.Sprintf("#%d", rank)
}

func nameText(row roster.Row) string {
	if row.IsTeamMember {
		return row.Username + " " + teamMark
	}
	return row.Username
}
