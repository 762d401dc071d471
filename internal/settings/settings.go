package settings

import (
	"fmt"
	"strings"
)

// Settings is the flat configuration record consumed by the prompt composer
// and sync policy. It round-trips through the snapshot store alongside lives.
type Settings struct {
	APIKey          string `json:"apiKey"`
	Model           string `json:"model"`
	YearsPerTurn    int    `json:"yearsPerTurn"`
	NarrativeLength string `json:"narrativeLength"`
	Volatility      int    `json:"volatility"`
}

// Default returns the out-of-the-box settings.
func Default() Settings {
	return Settings{
		Model:           "openai/gpt-oss-120b",
		YearsPerTurn:    1,
		NarrativeLength: "2p",
		Volatility:      3,
	}
}

// VolatilityLabel maps the 1-5 volatility setting onto its prompt label.
func VolatilityLabel(v int) string {
	switch v {
	case 1:
		return "Peaceful & Mundane"
	case 2:
		return "Calm"
	case 3:
		return "Realistic Life"
	case 4:
		return "Dramatic & Unpredictable"
	case 5:
		return "Extremely Chaotic & Dangerous"
	}
	return "Realistic Life"
}

// DescribeLength expands a narrative-length code ("2p", "2s") into the prose
// the prompt uses ("2 paragraphs", "2 sentences").
func DescribeLength(code string) string {
	switch {
	case strings.HasSuffix(code, "p"):
		return strings.TrimSuffix(code, "p") + " paragraphs"
	case strings.HasSuffix(code, "s"):
		return strings.TrimSuffix(code, "s") + " sentences"
	}
	return code
}

// LengthOption is one selectable narrative length.
type LengthOption struct {
	Value string
	Text  string
}

// LengthOptions returns the narrative lengths allowed for a yearsPerTurn
// value. Longer jumps are condensed into fewer paragraphs to keep pacing.
func LengthOptions(years int) []LengthOption {
	base := []LengthOption{
		{Value: "1s", Text: "1 Sentence"},
		{Value: "2s", Text: "2 Sentences"},
	}
	paragraphs := 0
	switch {
	case years <= 2:
		paragraphs = 3
	case years <= 5:
		paragraphs = 2
	case years <= 9:
		paragraphs = 1
	}
	for i := 1; i <= paragraphs; i++ {
		plural := "s"
		if i == 1 {
			plural = ""
		}
		base = append(base, LengthOption{
			Value: fmt.Sprintf("%dp", i),
			Text:  fmt.Sprintf("%d Paragraph%s", i, plural),
		})
	}
	return base
}

// ClampLength keeps a previously chosen narrative length if it is still
// allowed for years, otherwise falls back to the longest allowed option.
func ClampLength(current string, years int) string {
	opts := LengthOptions(years)
	for _, opt := range opts {
		if opt.Value == current {
			return current
		}
	}
	return opts[len(opts)-1].Value
}

// Validate reports configuration problems that would break a turn.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.APIKey) == "" {
		return fmt.Errorf("api key is required")
	}
	if strings.TrimSpace(s.Model) == "" {
		return fmt.Errorf("model is required")
	}
	if s.YearsPerTurn < 1 {
		return fmt.Errorf("yearsPerTurn must be >= 1, got %d", s.YearsPerTurn)
	}
	if s.Volatility < 1 || s.Volatility > 5 {
		return fmt.Errorf("volatility must be 1-5, got %d", s.Volatility)
	}
	return nil
}
