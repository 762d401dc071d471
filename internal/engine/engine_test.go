package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"ailife/internal/life"
	"ailife/internal/llm"
	"ailife/internal/settings"
)

type fakeCompleter struct {
	response string
	err      error
	requests []llm.ChatRequest
}

func (f *fakeCompleter) Complete(_ context.Context, req llm.ChatRequest) (string, error) {
	f.requests = append(f.requests, req)
	return f.response, f.err
}

type fakePersister struct {
	saved []*life.Life
	err   error
}

func (f *fakePersister) SaveLife(l *life.Life) error {
	f.saved = append(f.saved, l)
	return f.err
}

func newTestEngine(completer *fakeCompleter, persister *fakePersister) *Engine {
	return New(completer, persister, nil, nil)
}

func TestEngineGenesis(t *testing.T) {
	completer := &fakeCompleter{response: `{
		"yearly_logs": [{"age": 0, "text": "A child is born.", "event": "Birth"}],
		"stat_changes": {"Health": 5},
		"name": "Theo",
		"avatar": "👶"
	}`}
	persister := &fakePersister{}
	eng := newTestEngine(completer, persister)

	l := life.New()
	seed := life.Seed{
		Gender: "Male", Wealth: "to a middle-class family", Region: "Europe",
		BaseHealth: 80, BaseHappiness: 82, BaseIQ: 95,
	}
	cfg := settings.Default()

	require.NoError(t, eng.Genesis(context.Background(), l, cfg, "", seed))

	require.Equal(t, "Theo", l.Name)
	require.Equal(t, 0, l.Age)
	require.Equal(t, life.StageChildhood, l.Stage)
	require.Equal(t, 1, l.TurnCount)
	require.Equal(t, 85, l.Stat("Health").Value)
	require.Len(t, l.History, 1)

	require.Len(t, completer.requests, 1)
	req := completer.requests[0]
	require.Equal(t, cfg.Model, req.Model)
	require.Equal(t, 0.7, req.Temperature)
	require.Contains(t, req.System, "GENESIS MODE")
	require.Equal(t, "RNG Seed: Born Male, to a middle-class family, in Europe.", req.User)

	require.Len(t, persister.saved, 1)
	require.Same(t, l, persister.saved[0])
}

func TestEngineGenesisFailureLeavesLifeUntouched(t *testing.T) {
	completer := &fakeCompleter{response: "I'm sorry, I can't simulate that."}
	persister := &fakePersister{}
	eng := newTestEngine(completer, persister)

	l := life.New()
	before := *l

	err := eng.Genesis(context.Background(), l, settings.Default(), "", life.Seed{BaseHealth: 80})
	require.ErrorIs(t, err, ErrExtract)

	require.Equal(t, before.Name, l.Name)
	require.Equal(t, before.Stage, l.Stage)
	require.Equal(t, before.TurnCount, l.TurnCount)
	require.Empty(t, l.Stats)
	require.Empty(t, persister.saved)
}

func TestEngineAdvance(t *testing.T) {
	completer := &fakeCompleter{response: `{
		"yearly_logs": [{"age": 6, "text": "Started school.", "event": "First day"}],
		"stat_changes": {"Intelligence": 3}
	}`}
	persister := &fakePersister{}
	eng := newTestEngine(completer, persister)

	l := bornLife()
	cfg := settings.Default()

	require.NoError(t, eng.Advance(context.Background(), l, cfg, "study hard"))

	require.Equal(t, 6, l.Age)
	require.Equal(t, 2, l.TurnCount)
	require.Equal(t, 98, l.Stat("Intelligence").Value)
	require.Len(t, l.History, 1)
	require.Equal(t, "study hard", *l.History[0].Prompt)

	req := completer.requests[0]
	require.Equal(t, 0.7, req.Temperature)
	require.Contains(t, req.System, "Simulate up to Age 6.")
	require.Equal(t, `User Action: "study hard"`, req.User)
	require.Len(t, persister.saved, 1)
}

func TestEngineAdvanceTransportFailure(t *testing.T) {
	wantErr := errors.New("connection refused")
	completer := &fakeCompleter{err: wantErr}
	persister := &fakePersister{}
	eng := newTestEngine(completer, persister)

	l := bornLife()
	before := *l

	err := eng.Advance(context.Background(), l, settings.Default(), "")
	require.ErrorIs(t, err, wantErr)

	require.Equal(t, before.TurnCount, l.TurnCount)
	require.Equal(t, before.Age, l.Age)
	require.Empty(t, l.History)
	require.Empty(t, persister.saved)
}

func TestEngineFreeFormJump(t *testing.T) {
	completer := &fakeCompleter{response: `{
		"yearly_logs": [{"age": 10, "text": "Five years flash by."}]
	}`}
	persister := &fakePersister{}
	eng := newTestEngine(completer, persister)

	l := bornLife()
	l.FreeForm = true

	require.NoError(t, eng.Advance(context.Background(), l, settings.Default(), "jump 5 years"))

	require.Equal(t, 10, l.Age)
	require.Len(t, l.History, 1)
	require.Equal(t, 10, l.History[0].Age)

	req := completer.requests[0]
	require.Equal(t, 0.9, req.Temperature)
	require.Contains(t, req.System, "FREEFORM MODE")
}

func TestEnginePersistFailure(t *testing.T) {
	completer := &fakeCompleter{response: `{"yearly_logs": [{"age": 6, "text": "ok"}]}`}
	persister := &fakePersister{err: errors.New("disk full")}
	eng := newTestEngine(completer, persister)

	l := bornLife()
	err := eng.Advance(context.Background(), l, settings.Default(), "")

	// The merge applied; only the save step failed.
	require.Error(t, err)
	require.Contains(t, err.Error(), "disk full")
	require.Equal(t, 6, l.Age)
}
