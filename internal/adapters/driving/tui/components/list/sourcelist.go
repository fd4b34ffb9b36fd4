// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ragchat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ragchat/internal/core/domain"
)

// SourceList shows the documents that contributed to the latest answer.
type SourceList struct {
	matches []domain.Match
	styles  *styles.Styles
	width   int
}

// NewSourceList creates a new source list component.
func NewSourceList(s *styles.Styles) *SourceList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &SourceList{
		styles: s,
		width:  80,
	}
}

// Init initialises the source list.
func (r *SourceList) Init() tea.Cmd {
	return nil
}

// Update handles messages. The list is passive.
func (r *SourceList) Update(_ tea.Msg) (*SourceList, tea.Cmd) {
	return r, nil
}

// View renders one line per match, or nothing when there are none.
func (r *SourceList) View() string {
	if len(r.matches) == 0 {
		return ""
	}

	lines := make([]string, 0, len(r.matches)+1)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Sources (%d)", len(r.matches))))
	for i := range r.matches {
		lines = append(lines, r.renderMatch(&r.matches[i]))
	}
	return strings.Join(lines, "\n")
}

// renderMatch formats a single match as "  name  score N".
func (r *SourceList) renderMatch(m *domain.Match) string {
	name := m.Document.Name
	if name == "" {
		name = "(untitled)"
	}

	maxNameLen := r.width - 16
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if runes := []rune(name); len(runes) > maxNameLen {
		name = string(runes[:maxNameLen-3]) + "..."
	}

	return r.styles.Normal.Render("  "+name) + r.styles.Muted.Render(fmt.Sprintf("  score %d", m.Score))
}

// Height returns the number of lines View renders.
func (r *SourceList) Height() int {
	if len(r.matches) == 0 {
		return 0
	}
	return len(r.matches) + 1
}

// SetMatches replaces the matches shown.
func (r *SourceList) SetMatches(matches []domain.Match) {
	r.matches = matches
}

// Matches returns the matches shown.
func (r *SourceList) Matches() []domain.Match {
	return r.matches
}

// SetStyles replaces the styles used for rendering.
func (r *SourceList) SetStyles(s *styles.Styles) {
	if s != nil {
		r.styles = s
	}
}

// SetWidth sets the available width.
func (r *SourceList) SetWidth(width int) {
	r.width = width
}
