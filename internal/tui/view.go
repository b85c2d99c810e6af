package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/phrasedrill/internal/playback"
	"github.com/verte-zerg/phrasedrill/internal/stats"
)

const emptyCollection = "This collection has no phrases yet."

// View implements tea.Model.
func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	contentWidth := max(20, width-4)

	sections := []string{
		m.renderHeader(),
		m.renderCard(contentWidth),
		m.renderStatus(),
		m.renderProgress(),
	}
	if m.adding {
		sections = append(sections, m.renderForm())
	} else if len(m.table.Rows()) == 0 {
		sections = append(sections, m.styles.notice.Render(emptyCollection))
	} else {
		sections = append(sections, m.table.View())
	}
	if m.errMsg != "" {
		sections = append(sections, m.styles.alert.Render(m.errMsg))
	}
	if m.adding {
		sections = append(sections, m.help.View(m.formKeys))
	} else {
		sections = append(sections, m.help.View(m.keys))
	}
	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, lipgloss.NewStyle().Padding(1, 2).Render(body))
}

func (m *Model) renderHeader() string {
	total := m.repo.Len()
	return m.styles.title.Render(fmt.Sprintf("%s  (%d/%d)", m.snap.CollectionName, m.snap.CollectionIndex+1, total))
}

// renderCard shows the current phrase pair, or the empty-collection notice.
func (m *Model) renderCard(width int) string {
	inner := max(10, width-4)
	var lines []string
	if !m.snap.HasPhrase {
		lines = []string{
			m.styles.source.Render(playback.NoPhrases),
			m.styles.notice.Render("Select a collection"),
		}
	} else {
		source := m.styles.source
		target := m.styles.target
		if !m.snap.TargetEnabled {
			target = m.styles.disabled
		}
		lines = []string{
			wrapText(m.snap.Phrase.Source, source, inner),
			wrapText(m.snap.Phrase.Target, target, inner),
		}
	}
	return m.styles.card.Width(inner + 2).Render(strings.Join(lines, "\n\n"))
}

func (m *Model) renderStatus() string {
	button := m.styles.button.Render(playLabel(m.snap))
	target := "off"
	if m.snap.TargetEnabled {
		target = "on"
		if m.targetLang != "" {
			target = fmt.Sprintf("on (%s)", m.targetLang)
		}
	}
	position := "-"
	if m.snap.HasPhrase {
		position = fmt.Sprintf("%d/%d", m.snap.PhraseIndex+1, m.snap.PhraseCount)
	}
	info := m.styles.status.Render(fmt.Sprintf(
		"Phrase %s · %s · Rate %.1fx · Target %s",
		position, m.snap.State, m.snap.Rate, target,
	))
	return lipgloss.JoinHorizontal(lipgloss.Center, button, "  ", info)
}

func (m *Model) renderProgress() string {
	label := m.styles.status.Render(stats.ProgressLabel(m.listens))
	if n := m.masteredCount(); n > 0 {
		label += "  " + m.styles.mastered.Render(fmt.Sprintf("✓ %d mastered", n))
	}
	return lipgloss.JoinVertical(lipgloss.Left, label, m.progress.ViewAs(m.listens.TotalProgress()))
}

func (m *Model) renderForm() string {
	lines := []string{
		m.styles.title.Render("Add phrase to " + m.snap.CollectionName),
		m.inputs[0].View(),
		m.inputs[1].View(),
	}
	return m.styles.card.Render(strings.Join(lines, "\n"))
}

func (m *Model) masteredCount() int {
	n := 0
	for i := 0; i < m.snap.PhraseCount; i++ {
		if m.listens.Mastered(m.snap.CollectionIndex, i) {
			n++
		}
	}
	return n
}

func playLabel(s playback.Snapshot) string {
	if s.Playing {
		return "⏸ Pause"
	}
	return "▶ Play"
}

func listenedLabel(l *stats.Listens, collection, phrase int) string {
	label := fmt.Sprintf("Listened: %d", l.Count(collection, phrase))
	if l.Mastered(collection, phrase) {
		label += " ✓"
	}
	return label
}

func tableColumns(width int) []table.Column {
	const (
		indexWidth    = 4
		listenedWidth = 14
	)
	// each column carries one cell of padding on both sides
	textWidth := max(10, (width-indexWidth-listenedWidth-8)/2)
	return []table.Column{
		{Title: "#", Width: indexWidth},
		{Title: "Source", Width: textWidth},
		{Title: "Target", Width: textWidth},
		{Title: "Listened", Width: listenedWidth},
	}
}

func tableWidth(cols []table.Column) int {
	total := 0
	for _, c := range cols {
		total += c.Width + 2
	}
	return total
}
