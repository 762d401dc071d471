package engine

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"ailife/internal/debug"
	"ailife/internal/life"
	"ailife/internal/llm"
	"ailife/internal/logging"
	"ailife/internal/settings"
)

// Completer is the single LLM call a turn needs. Satisfied by *llm.Service;
// tests substitute a canned implementation.
type Completer interface {
	Complete(ctx context.Context, req llm.ChatRequest) (string, error)
}

// Persister receives the mutated life once a turn has fully applied.
type Persister interface {
	SaveLife(l *life.Life) error
}

// Engine runs one turn at a time against a life: compose the prompt, make
// the blocking model call, extract the structured result, merge it, persist.
// A transport or extraction failure aborts before any mutation.
type Engine struct {
	llm    Completer
	store  Persister
	log    *logging.CompletionLogger
	debug  *debug.Logger
	tracer trace.Tracer
}

func New(completer Completer, store Persister, completionLog *logging.CompletionLogger, debugLogger *debug.Logger) *Engine {
	return &Engine{
		llm:    completer,
		store:  store,
		log:    completionLog,
		debug:  debugLogger,
		tracer: otel.Tracer("engine"),
	}
}

// Genesis runs the first turn of an unborn life. The life is reset and
// seeded only after the response extracts cleanly, so a failed roll leaves
// it untouched and the caller can simply roll again.
func (e *Engine) Genesis(ctx context.Context, l *life.Life, cfg settings.Settings, instruction string, seed life.Seed) error {
	system := ComposeSystemPrompt(l, cfg, ModeGenesis, 0, true)
	user := ComposeUserMessage(ModeGenesis, instruction, seed)

	data, err := e.call(ctx, l, cfg, "genesis", system, user)
	if err != nil {
		return err
	}

	l.ResetForGenesis(seed)
	Merge(l, data, instruction, true)
	return e.persist(l)
}

// Advance runs one post-genesis turn. Free-form lives get the unrestricted
// rule set; narrative lives simulate up to age+yearsPerTurn.
func (e *Engine) Advance(ctx context.Context, l *life.Life, cfg settings.Settings, instruction string) error {
	mode := ModeNarrative
	targetAge := l.Age + cfg.YearsPerTurn
	if l.FreeForm {
		mode = ModeFreeForm
	}
	fullSync := FullSync(cfg.Model, l.TurnCount, l.FreeForm, false)
	system := ComposeSystemPrompt(l, cfg, mode, targetAge, fullSync)
	user := ComposeUserMessage(mode, instruction, life.Seed{})

	data, err := e.call(ctx, l, cfg, "advance", system, user)
	if err != nil {
		return err
	}

	l.TurnCount++
	Merge(l, data, instruction, false)
	return e.persist(l)
}

func (e *Engine) call(ctx context.Context, l *life.Life, cfg settings.Settings, op, system, user string) (*TurnData, error) {
	ctx, span := e.tracer.Start(ctx, "engine."+op, trace.WithAttributes(
		attribute.String("life.id", l.ID),
		attribute.Int("life.turn_count", l.TurnCount),
		attribute.Bool("life.free_form", l.FreeForm),
	))
	defer span.End()

	temperature := 0.7
	if l.FreeForm {
		temperature = 0.9
	}

	start := time.Now()
	raw, err := e.llm.Complete(ctx, llm.ChatRequest{
		Model:       cfg.Model,
		System:      system,
		User:        user,
		Temperature: temperature,
	})
	e.logCompletion(l, cfg, user, system, raw, temperature, start, err)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	data, err := Extract(raw)
	if err != nil {
		span.RecordError(err)
		e.debug.Printf("extraction failed, raw output: %q", raw)
		return nil, err
	}
	return data, nil
}

func (e *Engine) persist(l *life.Life) error {
	if e.store == nil {
		return nil
	}
	if err := e.store.SaveLife(l); err != nil {
		return fmt.Errorf("failed to persist life: %w", err)
	}
	return nil
}

// logCompletion records the exchange for later review. Best effort: a
// logging failure never fails the turn.
func (e *Engine) logCompletion(l *life.Life, cfg settings.Settings, user, system, response string, temperature float64, start time.Time, callErr error) {
	if e.log == nil {
		return
	}
	meta := logging.CompletionMetadata{
		Model:        cfg.Model,
		Temperature:  temperature,
		ResponseTime: time.Since(start),
	}
	if callErr != nil {
		msg := callErr.Error()
		meta.Error = &msg
	}
	if err := e.log.LogCompletion(l, user, system, response, meta); err != nil {
		e.debug.Printf("failed to log completion: %v", err)
	}
}
