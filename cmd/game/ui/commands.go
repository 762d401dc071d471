package ui

import (
	"context"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ailife/internal/engine"
	"ailife/internal/life"
	"ailife/internal/settings"
)

type turnDoneMsg struct {
	err error
}

type animationTickMsg struct{}

func animationTimer() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return animationTickMsg{}
	})
}

// arc spinner frames, drawn while a turn is in flight.
var spinnerFrames = []string{"◜", "◠", "◝", "◞", "◡", "◟"}

// runGenesis rolls the first turn for an unborn life. The engine blocks
// inside the command goroutine, so exactly one call is outstanding while
// m.loading guards re-entry.
func runGenesis(eng *engine.Engine, l *life.Life, cfg settings.Settings, instruction string) tea.Cmd {
	return func() tea.Msg {
		seed := life.NewSeed(rand.New(rand.NewSource(time.Now().UnixNano())))
		err := eng.Genesis(context.Background(), l, cfg, instruction, seed)
		return turnDoneMsg{err: err}
	}
}

func runAdvance(eng *engine.Engine, l *life.Life, cfg settings.Settings, instruction string) tea.Cmd {
	return func() tea.Msg {
		err := eng.Advance(context.Background(), l, cfg, instruction)
		return turnDoneMsg{err: err}
	}
}
