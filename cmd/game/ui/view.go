package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ailife/internal/life"
	"ailife/internal/settings"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	textStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	aliveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	endedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	gainStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	inputStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

func (m Model) View() string {
	switch m.screen {
	case screenPicker:
		return m.viewPicker()
	case screenSettings:
		return m.viewSettings()
	}
	return m.viewPlay()
}

func (m Model) viewPicker() string {
	var b strings.Builder

	alive := 0
	for _, l := range m.lives {
		if l.Status == life.StatusAlive {
			alive++
		}
	}
	b.WriteString(titleStyle.Render("AILife") + "\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d simulations • %d alive", len(m.lives), alive)) + "\n\n")

	if len(m.lives) == 0 {
		b.WriteString(dimStyle.Render("No lives yet. Press 'n' to create one.") + "\n")
	}
	for i, l := range m.lives {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		status := aliveStyle.Render("Alive")
		if l.Status != life.StatusAlive {
			status = endedStyle.Render("Ended")
		}
		line := fmt.Sprintf("%s%s %s — Age %d • %s [%s]", cursor, l.Avatar, l.Name, l.Age, l.Stage, status)
		if l.FreeForm {
			line += promptStyle.Render(" (Free Form)")
		}
		b.WriteString(line + "\n")
		b.WriteString(dimStyle.Render("    "+l.LatestEvent) + "\n")
	}

	if m.errLine != "" {
		b.WriteString("\n" + errStyle.Render("Error: "+m.errLine) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("enter: play  n: new  f: free form  d: depreciate  x: delete  s: settings  q: quit"))
	return b.String()
}

func (m Model) viewSettings() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings") + "\n\n")

	length := m.draft.NarrativeLength
	for _, opt := range settings.LengthOptions(m.draft.YearsPerTurn) {
		if opt.Value == m.draft.NarrativeLength {
			length = opt.Text
		}
	}
	rows := []struct{ label, value string }{
		{"Model", m.draft.Model},
		{"API Key", maskKey(m.draft.APIKey)},
		{"Years per Turn", fmt.Sprintf("%d", m.draft.YearsPerTurn)},
		{"Narrative Length", length},
		{"Volatility", fmt.Sprintf("%d (%s)", m.draft.Volatility, settings.VolatilityLabel(m.draft.Volatility))},
	}
	for i, row := range rows {
		cursor := "  "
		value := textStyle.Render(row.value)
		if i == m.setCursor {
			cursor = "> "
			value = promptStyle.Render(row.value)
		}
		b.WriteString(fmt.Sprintf("%s%-17s %s\n", cursor, row.label, value))
	}

	if m.errLine != "" {
		b.WriteString("\n" + errStyle.Render("Error: "+m.errLine) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("type: edit  left/right: adjust  enter: save  esc: cancel"))
	return b.String()
}

// maskKey hides the middle of a stored API key.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 10 {
		return strings.Repeat("*", len(key))
	}
	return key[:6] + "..." + key[len(key)-4:]
}

func (m Model) viewPlay() string {
	l := m.current
	if l == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", l.Avatar, l.Name)))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  Age %d • %s • Turn %d", l.Age, l.Stage, l.TurnCount)) + "\n")
	b.WriteString(m.statLines(l))
	b.WriteString(m.identityLine(l))
	b.WriteString("\n")
	b.WriteString(m.historyLines(l))

	if m.loading {
		b.WriteString(promptStyle.Render(spinnerFrames[m.frame%len(spinnerFrames)]+" Simulating...") + "\n")
	}
	if m.errLine != "" {
		b.WriteString(errStyle.Render("Engine error: "+m.errLine) + "\n")
		b.WriteString(dimStyle.Render("The model lost its train of thought or formatted the data incorrectly. Press enter to retry.") + "\n")
	}

	placeholder := "Intervene... e.g. 'Start a journal'"
	if l.FreeForm {
		placeholder = "Talk to the AI... (e.g. 'Jump 5 years' or 'Buy a dog')"
	}
	if l.Status != life.StatusAlive {
		placeholder = "Simulation Ended."
	}
	line := m.input + "│"
	if m.input == "" {
		line = dimStyle.Render(placeholder)
	}
	width := m.width - 4
	if width < 20 {
		width = 20
	}
	b.WriteString("\n" + inputStyle.Width(width).Render(line) + "\n")
	b.WriteString(dimStyle.Render("enter: next turn  esc: back  ctrl+c: quit"))
	return b.String()
}

func (m Model) statLines(l *life.Life) string {
	var b strings.Builder
	for _, s := range l.Stats {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color))
		display := fmt.Sprintf("%d%%", s.Value)
		if s.Name == "Intelligence" {
			display = fmt.Sprintf("%d IQ", s.Value)
		}
		b.WriteString(style.Render(fmt.Sprintf("%-13s %s", s.Name, display)) + "\n")
	}
	if len(l.Traits) > 0 {
		b.WriteString(dimStyle.Render("Traits: "+strings.Join(l.Traits, ", ")) + "\n")
	}
	return b.String()
}

func (m Model) identityLine(l *life.Life) string {
	if l.Identity == nil {
		return ""
	}
	parts := []string{}
	for _, kv := range [][2]string{
		{"Gender", l.Identity.Gender}, {"Height", l.Identity.Height},
		{"Weight", l.Identity.Weight}, {"Location", l.Identity.Location},
	} {
		if kv[1] != "" {
			parts = append(parts, kv[0]+": "+kv[1])
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return dimStyle.Render(strings.Join(parts, " • ")) + "\n"
}

// historyLines renders the turn blocks: an age header (suppressed for
// consecutive same-age free-form blocks), the instruction once at the top of
// a turn, alert pills once at the bottom.
func (m Model) historyLines(l *life.Life) string {
	var b strings.Builder
	contentWidth := m.width - 4
	if contentWidth < 40 {
		contentWidth = 72
	}

	blocks := l.History
	// Cap how much scrollback is rendered; the full log is in the snapshot.
	if len(blocks) > 12 {
		blocks = blocks[len(blocks)-12:]
	}

	lastAge := -1
	for _, block := range blocks {
		if block.Age != lastAge || !l.FreeForm {
			b.WriteString(titleStyle.Render(fmt.Sprintf("— Age %d —", block.Age)) + "\n")
		}
		lastAge = block.Age

		if block.Prompt != nil && *block.Prompt != "" {
			b.WriteString(promptStyle.Render(wrapAndIndent("You: "+*block.Prompt, contentWidth, "  ")) + "\n")
		}
		b.WriteString(textStyle.Render(wrapAndIndent(block.Text, contentWidth, "  ")) + "\n")

		for _, alert := range block.Alerts {
			style := gainStyle
			marker := "▲"
			lower := strings.ToLower(alert)
			if strings.Contains(alert, "-") || strings.Contains(lower, "lost") || strings.Contains(lower, "decrease") {
				style = lossStyle
				marker = "▼"
			}
			b.WriteString("  " + style.Render(marker+" "+alert) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func wrapAndIndent(text string, width int, indent string) string {
	if len(text) <= width {
		return indent + text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return indent + text
	}

	var result strings.Builder
	currentLine := indent + words[0]
	for _, word := range words[1:] {
		if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result.WriteString(currentLine + "\n")
			currentLine = indent + word
		}
	}
	result.WriteString(currentLine)
	return result.String()
}
