package ui

import (
	"ailife/internal/debug"
	"ailife/internal/engine"
	"ailife/internal/life"
	"ailife/internal/settings"
	"ailife/internal/storage"
)

type screen int

const (
	screenPicker screen = iota
	screenSettings
	screenPlay
)

// Deps carries the wired collaborators into the TUI.
type Deps struct {
	Engine *engine.Engine
	Store  *storage.Store
	Debug  *debug.Logger
}

// Model is the Bubble Tea model for the whole app: a roster picker and the
// play screen for one life.
type Model struct {
	deps Deps

	screen  screen
	lives   []*life.Life
	cursor  int
	current *life.Life

	input   string
	loading bool
	frame   int
	errLine string

	// settings screen edits a draft; the store is only touched on save.
	draft     settings.Settings
	setCursor int

	width  int
	height int
}

func NewModel(deps Deps) Model {
	return Model{
		deps:  deps,
		lives: deps.Store.Lives(),
	}
}

func (m Model) settings() settings.Settings {
	return m.deps.Store.Settings()
}

func (m *Model) reload() {
	m.lives = m.deps.Store.Lives()
	if m.cursor >= len(m.lives) {
		m.cursor = len(m.lives) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
