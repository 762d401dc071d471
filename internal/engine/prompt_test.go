package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ailife/internal/life"
	"ailife/internal/settings"
)

func promptLife() *life.Life {
	l := bornLife()
	l.Identity = &life.Identity{Gender: "Male", Location: "Lisbon, Portugal"}
	l.Traits = []string{"Curious", "Brave"}
	l.Memories = []string{"m1", "m2", "m3", "m4", "m5", "m6", "m7"}
	return l
}

func TestComposeSystemPromptDeterministic(t *testing.T) {
	l := promptLife()
	cfg := settings.Default()

	a := ComposeSystemPrompt(l, cfg, ModeNarrative, 6, true)
	b := ComposeSystemPrompt(l, cfg, ModeNarrative, 6, true)
	require.Equal(t, a, b)
}

func TestComposeSystemPromptGenesis(t *testing.T) {
	l := life.New()
	cfg := settings.Default()

	prompt := ComposeSystemPrompt(l, cfg, ModeGenesis, 0, true)

	require.Contains(t, prompt, "GENESIS MODE")
	require.Contains(t, prompt, "OUTPUT STRICTLY AS VALID JSON")
	require.NotContains(t, prompt, "CURRENT STATE")
	require.NotContains(t, prompt, "FREEFORM MODE")
	require.NotContains(t, prompt, "Simulate up to Age")
}

func TestComposeSystemPromptNarrative(t *testing.T) {
	l := promptLife()
	cfg := settings.Default()
	cfg.YearsPerTurn = 3
	cfg.NarrativeLength = "2p"
	cfg.Volatility = 4

	prompt := ComposeSystemPrompt(l, cfg, ModeNarrative, 8, true)

	require.Contains(t, prompt, "Generate EXACTLY 3 objects")
	require.Contains(t, prompt, "2 paragraphs")
	require.Contains(t, prompt, "Dramatic & Unpredictable")
	require.Contains(t, prompt, "Name: Theo, Current Age: 5")
	require.Contains(t, prompt, "Stats: Health: 80, Happiness: 82, Intelligence: 95")
	require.Contains(t, prompt, "Simulate up to Age 8.")
	require.NotContains(t, prompt, "FREEFORM MODE")
}

func TestComposeSystemPromptSyncGating(t *testing.T) {
	l := promptLife()
	cfg := settings.Default()

	full := ComposeSystemPrompt(l, cfg, ModeNarrative, 6, true)
	require.Contains(t, full, "Identity: Gender: Male")
	require.Contains(t, full, "Location: Lisbon, Portugal")
	require.Contains(t, full, "Traits: Curious, Brave")
	require.NotContains(t, full, "omitted this turn")

	partial := ComposeSystemPrompt(l, cfg, ModeNarrative, 6, false)
	require.Contains(t, partial, "(Identity & Traits omitted this turn. Assume they remain consistent.)")
	require.NotContains(t, partial, "Identity: Gender")
	require.NotContains(t, partial, "Lisbon")
}

func TestComposeSystemPromptRecentMemoriesCapped(t *testing.T) {
	l := promptLife()
	prompt := ComposeSystemPrompt(l, settings.Default(), ModeNarrative, 6, false)

	require.Contains(t, prompt, "Recent Memories: m1, m2, m3, m4, m5")
	require.NotContains(t, prompt, "m6")
}

func TestComposeSystemPromptFreeForm(t *testing.T) {
	l := promptLife()
	prompt := ComposeSystemPrompt(l, settings.Default(), ModeFreeForm, 0, true)

	require.Contains(t, prompt, "FREEFORM MODE: UNRESTRICTED")
	require.Contains(t, prompt, "exactly ONE log in 'yearly_logs' for the final destination age")
	require.NotContains(t, prompt, "NARRATIVE & GAME RULES")
	require.NotContains(t, prompt, "Simulate up to Age")
}

func TestComposeSystemPromptEmptyCollections(t *testing.T) {
	l := bornLife()
	prompt := ComposeSystemPrompt(l, settings.Default(), ModeNarrative, 6, true)

	require.Contains(t, prompt, "Recent Memories: None")
	require.Contains(t, prompt, "Traits: None")
	require.Contains(t, prompt, "Gender: --")
	require.Contains(t, prompt, "Disabilities: None")
}

func TestComposeUserMessage(t *testing.T) {
	seed := life.Seed{Gender: "Female", Wealth: "in poverty", Region: "Asia"}

	msg := ComposeUserMessage(ModeGenesis, "", seed)
	require.Equal(t, "RNG Seed: Born Female, in poverty, in Asia.", msg)

	msg = ComposeUserMessage(ModeGenesis, "born a pirate", seed)
	require.True(t, strings.HasPrefix(msg, "RNG Seed: Born Female, in poverty, in Asia."))
	require.Contains(t, msg, `USER PROMPT (OVERRIDES SEED): "born a pirate"`)

	require.Equal(t, `User Action: "learn guitar"`, ComposeUserMessage(ModeNarrative, "learn guitar", life.Seed{}))
	require.Equal(t, "Continue living naturally.", ComposeUserMessage(ModeNarrative, "", life.Seed{}))
	require.Equal(t, `User Action: "jump 5 years"`, ComposeUserMessage(ModeFreeForm, "jump 5 years", life.Seed{}))
}
