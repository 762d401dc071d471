package life

import (
	"github.com/google/uuid"
)

type Status string

const (
	StatusAlive    Status = "alive"
	StatusDeceased Status = "deceased"
)

type Stage string

const (
	StageUnborn    Stage = "Unborn"
	StageChildhood Stage = "Childhood"
	StageTeenager  Stage = "Teenager"
	StageAdulthood Stage = "Adulthood"
	StageElderly   Stage = "Elderly"
)

// Identity holds physical/descriptive attributes reported by the model.
// Empty string means "unknown", never "unset" — merges may only fill or
// replace a field with a non-empty value.
type Identity struct {
	Gender       string `json:"gender,omitempty"`
	Skin         string `json:"skin,omitempty"`
	Eyes         string `json:"eyes,omitempty"`
	Height       string `json:"height,omitempty"`
	Weight       string `json:"weight,omitempty"`
	Location     string `json:"location,omitempty"`
	Race         string `json:"race,omitempty"`
	Disabilities string `json:"disabilities,omitempty"`
}

// Stat is one named numeric gauge. Values are always integers; Intelligence
// is unbounded above, everything else is clamped to [0,100] on merge.
type Stat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// HistoryBlock is one emitted narrative unit. Prompt is set only on the
// first block of a turn, Alerts only on the last.
type HistoryBlock struct {
	Age    int      `json:"age"`
	Prompt *string  `json:"prompt"`
	Text   string   `json:"text"`
	Alerts []string `json:"ui_alerts"`
}

// Life is one simulated life. History is append-only; all other fields are
// mutated turn by turn through the engine's merge step.
type Life struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Avatar      string         `json:"avatar"`
	Status      Status         `json:"status"`
	Stage       Stage          `json:"stage"`
	Age         int            `json:"age"`
	TurnCount   int            `json:"turnCount"`
	FreeForm    bool           `json:"isFreeForm"`
	LatestEvent string         `json:"latestEvent"`
	Identity    *Identity      `json:"identity"`
	Stats       []Stat         `json:"stats"`
	Traits      []string       `json:"traits"`
	Memories    []string       `json:"eventsLog"`
	Misc        []string       `json:"miscLog"`
	History     []HistoryBlock `json:"history"`
}

// New returns an unborn life waiting for its genesis turn.
func New() *Life {
	return &Life{
		ID:          uuid.NewString(),
		Name:        "Unknown Spirit",
		Avatar:      "☁️",
		Status:      StatusAlive,
		Stage:       StageUnborn,
		LatestEvent: "Waiting to be rolled...",
		Traits:      []string{},
		Memories:    []string{},
		Misc:        []string{},
		History:     []HistoryBlock{},
	}
}

// StageForAge maps an age onto a life stage. Ages 1-12 fall between the
// thresholds and keep the current stage (Childhood carried over from age 0).
func StageForAge(age int, current Stage) Stage {
	switch {
	case age == 0:
		return StageChildhood
	case age > 12 && age < 18:
		return StageTeenager
	case age >= 18 && age < 60:
		return StageAdulthood
	case age >= 60:
		return StageElderly
	}
	return current
}

// ResetForGenesis wipes the life back to a newborn shell and installs the
// seeded stat baselines. Called only once a genesis response has been
// successfully extracted, so a failed roll leaves the life untouched.
func (l *Life) ResetForGenesis(seed Seed) {
	l.Identity = &Identity{}
	l.Stats = []Stat{
		{Name: "Health", Value: seed.BaseHealth, Color: ColorForStat("Health")},
		{Name: "Happiness", Value: seed.BaseHappiness, Color: ColorForStat("Happiness")},
		{Name: "Intelligence", Value: seed.BaseIQ, Color: ColorForStat("Intelligence")},
	}
	l.Traits = []string{}
	l.Memories = []string{}
	l.Misc = []string{}
	l.History = []HistoryBlock{}
	l.TurnCount = 1
}

// Depreciate manually ends a life without a simulated death.
func (l *Life) Depreciate() {
	if l.Status != StatusAlive {
		return
	}
	l.Status = StatusDeceased
	l.LatestEvent = "Life was depreciated manually."
}

// Stat returns a pointer into Stats for the named stat, or nil.
func (l *Life) Stat(name string) *Stat {
	for i := range l.Stats {
		if l.Stats[i].Name == name {
			return &l.Stats[i]
		}
	}
	return nil
}

// ColorForStat picks the ANSI display color for a stat gauge.
func ColorForStat(name string) string {
	switch name {
	case "Health":
		return "10"
	case "Intelligence":
		return "11"
	default:
		return "12"
	}
}
