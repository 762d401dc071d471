package engine

import (
	"fmt"
	"strings"

	"ailife/internal/life"
	"ailife/internal/settings"
)

// Mode selects which rule set the composed prompt carries.
type Mode int

const (
	ModeGenesis Mode = iota
	ModeNarrative
	ModeFreeForm
)

// baseRules declares the output schema and the invariants every turn must
// follow, regardless of mode. Kept as one constant so the schema the model
// sees and the TurnData struct the extractor fills stay in one place each.
const baseRules = `You are AILife, a life simulator engine.
OUTPUT STRICTLY AS VALID JSON. No conversational text outside the JSON.

JSON SCHEMA:
{
  "yearly_logs": [ { "age": integer, "text": "...", "event": "major event or null" } ],
  "stat_changes": {"Health": integer, "Happiness": integer, "Intelligence": integer},
  "physical": {"Height": "...", "Weight": "...", "Gender": "Male|Female|Non-binary", "Skin": "...", "Eyes": "...", "Location": "...", "Race": "...", "Disabilities": "..." },
  "traits": {"add": ["..."], "remove": ["..."]},
  "memories": {"add": ["..."], "remove": ["..."]},
  "misc": {"add": ["..."], "remove": ["..."]},
  "alerts": ["+5 IQ", "-10% Health"],
  "dead": boolean,
  "name": "Full Name",
  "avatar": "1 Emoji"
}

CRITICAL RULES:
1. STAT CHANGES: 'stat_changes' is for RELATIVE DELTAS ONLY (e.g., -15, +5). NEVER output the total current value! If a stat did not change, DO NOT include it. Negative events (injuries, depression) MUST use NEGATIVE numbers (e.g. "Health": -20). Positive events use positive numbers.
2. ABSOLUTE PHYSICALS: 'physical' object MUST contain absolute current values (e.g., "5'2\""). If unchanged, return the current value.
3. PERSONALITY: Use your native AI personality! If you tend to be witty, edgy, analytical, or poetic, embrace it in the story text.
4. FORMATTING: You may use markdown (**bold**, *italics*) in the text, but ABSOLUTELY NO headings (#).
5. ALERTS: The "alerts" array is ONLY for visual text. You must still put the actual math in "stat_changes".`

const freeFormRules = `
FREEFORM MODE: UNRESTRICTED.
- The user is in total control. Magic, surrealism, violence, and rule-breaking are allowed. Ignore settings limits.
- Answer their questions directly in the 'text' field.
- Do NOT advance the character's age UNLESS the user explicitly asks to "jump X years".
- If they ask to jump multiple years, DO NOT generate intermediate years. Generate exactly ONE log in 'yearly_logs' for the final destination age.`

// ComposeSystemPrompt builds the instruction block for a turn. For fixed
// inputs the output is byte-identical: everything it touches is already
// ordered (stats and history are slices, identity fields are enumerated).
func ComposeSystemPrompt(l *life.Life, cfg settings.Settings, mode Mode, targetAge int, fullSync bool) string {
	var modeRules string
	if mode == ModeFreeForm {
		modeRules = freeFormRules
	} else {
		modeRules = fmt.Sprintf(`
NARRATIVE & GAME RULES:
- Generate EXACTLY %d objects in 'yearly_logs'. 'text' length MUST be exactly: %s.
- Volatility is [%s].
- AGE-APPROPRIATE BEHAVIOR: Characters act their physical/mental age.
- LOGICAL CAUSALITY: You CANNOT magically change physical traits unless realistically contextualized (e.g., surgery) or make the attempt fail.`,
			cfg.YearsPerTurn,
			settings.DescribeLength(cfg.NarrativeLength),
			settings.VolatilityLabel(cfg.Volatility))
	}

	var state strings.Builder
	if mode == ModeGenesis {
		state.WriteString("\nGENESIS MODE: The user is being born at Age 0. Generate ONE entry in 'yearly_logs' for Age 0.")
	} else {
		state.WriteString(fmt.Sprintf("\nCURRENT STATE:\nName: %s, Current Age: %d", l.Name, l.Age))
		state.WriteString("\nStats: " + statLine(l.Stats))
		state.WriteString("\nRecent Memories: " + headOrNone(l.Memories, 5))
		if fullSync {
			state.WriteString("\nIdentity: " + identityLine(l.Identity))
			state.WriteString("\nTraits: " + headOrNone(l.Traits, 5))
		} else {
			state.WriteString("\n(Identity & Traits omitted this turn. Assume they remain consistent.)")
		}
		state.WriteString("\n\nINSTRUCTIONS: Respond to the User Action. ")
		if mode == ModeNarrative {
			state.WriteString(fmt.Sprintf("Simulate up to Age %d.", targetAge))
		}
	}

	return baseRules + "\n" + modeRules + "\n" + state.String()
}

// ComposeUserMessage builds the user-turn message. The genesis message
// carries the RNG seed; a custom instruction overrides it.
func ComposeUserMessage(mode Mode, instruction string, seed life.Seed) string {
	if mode == ModeGenesis {
		msg := fmt.Sprintf("RNG Seed: Born %s, %s, in %s.", seed.Gender, seed.Wealth, seed.Region)
		if instruction != "" {
			msg += fmt.Sprintf("\nUSER PROMPT (OVERRIDES SEED): %q", instruction)
		}
		return msg
	}
	if instruction != "" {
		return fmt.Sprintf("User Action: %q", instruction)
	}
	return "Continue living naturally."
}

func statLine(stats []life.Stat) string {
	parts := make([]string, 0, len(stats))
	for _, s := range stats {
		parts = append(parts, fmt.Sprintf("%s: %d", s.Name, s.Value))
	}
	return strings.Join(parts, ", ")
}

func headOrNone(items []string, n int) string {
	if len(items) == 0 {
		return "None"
	}
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}

func identityLine(id *life.Identity) string {
	if id == nil {
		id = &life.Identity{}
	}
	return fmt.Sprintf("Gender: %s, Skin: %s, Eyes: %s, Height: %s, Weight: %s, Location: %s, Race: %s, Disabilities: %s",
		orDash(id.Gender), orDash(id.Skin), orDash(id.Eyes), orDash(id.Height),
		orDash(id.Weight), orDash(id.Location), orDash(id.Race), orNone(id.Disabilities))
}

func orDash(s string) string {
	if s == "" {
		return "--"
	}
	return s
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
