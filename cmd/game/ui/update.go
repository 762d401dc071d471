package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"ailife/internal/life"
	"ailife/internal/settings"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case animationTickMsg:
		if m.loading {
			m.frame++
			return m, animationTimer()
		}
		return m, nil

	case turnDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.errLine = msg.err.Error()
		} else {
			m.errLine = ""
			m.input = ""
		}
		m.reload()
		return m, nil

	case tea.KeyMsg:
		switch m.screen {
		case screenPicker:
			return m.updatePicker(msg)
		case screenSettings:
			return m.updateSettings(msg)
		}
		return m.updatePlay(msg)
	}

	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.lives)-1 {
			m.cursor++
		}

	case "n":
		if err := m.deps.Store.AddLife(life.New()); err != nil {
			m.errLine = err.Error()
		}
		m.cursor = 0
		m.reload()

	case "f":
		// Free-form can only be toggled before genesis.
		if l := m.selected(); l != nil && l.Status == life.StatusAlive && len(l.History) == 0 {
			l.FreeForm = !l.FreeForm
			if err := m.deps.Store.SaveLife(l); err != nil {
				m.errLine = err.Error()
			}
		}

	case "d":
		if l := m.selected(); l != nil {
			l.Depreciate()
			if err := m.deps.Store.SaveLife(l); err != nil {
				m.errLine = err.Error()
			}
		}

	case "x":
		if l := m.selected(); l != nil {
			if err := m.deps.Store.DeleteLife(l.ID); err != nil {
				m.errLine = err.Error()
			}
			m.reload()
		}

	case "s":
		m.draft = m.settings()
		m.setCursor = 0
		m.errLine = ""
		m.screen = screenSettings

	case "enter":
		if l := m.selected(); l != nil {
			m.current = l
			m.screen = screenPlay
			m.errLine = ""
			m.input = ""
		}
	}

	return m, nil
}

// Settings fields, top to bottom.
const (
	fieldModel = iota
	fieldAPIKey
	fieldYearsPerTurn
	fieldLength
	fieldVolatility
	settingsFields
)

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.screen = screenPicker
		m.errLine = ""
		return m, nil

	case "up":
		if m.setCursor > 0 {
			m.setCursor--
		}

	case "down":
		if m.setCursor < settingsFields-1 {
			m.setCursor++
		}

	case "left":
		m.adjustSetting(-1)

	case "right":
		m.adjustSetting(1)

	case "enter":
		if err := m.draft.Validate(); err != nil {
			m.errLine = err.Error()
			return m, nil
		}
		if err := m.deps.Store.SetSettings(m.draft); err != nil {
			m.errLine = err.Error()
			return m, nil
		}
		m.errLine = ""
		m.screen = screenPicker

	case "backspace":
		switch m.setCursor {
		case fieldModel:
			if len(m.draft.Model) > 0 {
				m.draft.Model = m.draft.Model[:len(m.draft.Model)-1]
			}
		case fieldAPIKey:
			if len(m.draft.APIKey) > 0 {
				m.draft.APIKey = m.draft.APIKey[:len(m.draft.APIKey)-1]
			}
		}

	default:
		if len(msg.Runes) > 0 {
			switch m.setCursor {
			case fieldModel:
				m.draft.Model += string(msg.Runes)
			case fieldAPIKey:
				m.draft.APIKey += string(msg.Runes)
			}
		}
	}

	return m, nil
}

// adjustSetting nudges the selected field by dir. Raising yearsPerTurn
// re-clamps the narrative length, since longer jumps allow fewer paragraphs.
func (m *Model) adjustSetting(dir int) {
	switch m.setCursor {
	case fieldYearsPerTurn:
		years := m.draft.YearsPerTurn + dir
		if years < 1 {
			years = 1
		}
		if years > 10 {
			years = 10
		}
		m.draft.YearsPerTurn = years
		m.draft.NarrativeLength = settings.ClampLength(m.draft.NarrativeLength, years)

	case fieldLength:
		opts := settings.LengthOptions(m.draft.YearsPerTurn)
		idx := 0
		for i, opt := range opts {
			if opt.Value == m.draft.NarrativeLength {
				idx = i
			}
		}
		idx = (idx + dir + len(opts)) % len(opts)
		m.draft.NarrativeLength = opts[idx].Value

	case fieldVolatility:
		v := m.draft.Volatility + dir
		if v >= 1 && v <= 5 {
			m.draft.Volatility = v
		}
	}
}

func (m Model) updatePlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if !m.loading {
			m.screen = screenPicker
			m.current = nil
			m.reload()
		}
		return m, nil

	case "enter":
		if m.loading || m.current == nil || m.current.Status != life.StatusAlive {
			return m, nil
		}
		instruction := strings.TrimSpace(m.input)
		m.loading = true
		m.frame = 0
		m.errLine = ""
		cfg := m.settings()
		if len(m.current.History) == 0 {
			return m, tea.Batch(runGenesis(m.deps.Engine, m.current, cfg, instruction), animationTimer())
		}
		return m, tea.Batch(runAdvance(m.deps.Engine, m.current, cfg, instruction), animationTimer())

	case "backspace":
		if len(m.input) > 0 && !m.loading {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil

	default:
		if !m.loading && len(msg.Runes) > 0 {
			m.input += string(msg.Runes)
		}
		return m, nil
	}
}

func (m *Model) selected() *life.Life {
	if m.cursor < 0 || m.cursor >= len(m.lives) {
		return nil
	}
	return m.lives[m.cursor]
}
