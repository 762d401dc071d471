package engine

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrExtract reports that no stage of the extractor produced parseable JSON.
// It is an expected, recoverable condition: models wrap output in prose.
var ErrExtract = errors.New("could not parse model response")

// ListDelta is an add/remove pair for one of the string collections.
type ListDelta struct {
	Add    []string `json:"add"`
	Remove []string `json:"remove"`
}

// YearlyLog is one narrative entry emitted by the model. Age and Event are
// loosely typed because models emit numbers as strings and null freely.
type YearlyLog struct {
	Age   any    `json:"age"`
	Text  string `json:"text"`
	Event string `json:"event"`
}

// TurnData is the structured result of one model turn. Stat changes and
// physical fields stay loosely typed; the merger sanitizes them.
type TurnData struct {
	YearlyLogs  []YearlyLog    `json:"yearly_logs"`
	StatChanges map[string]any `json:"stat_changes"`
	// Some models echo the pre-rename schema key; the merger falls back to it.
	LegacyStats map[string]any `json:"stats"`
	Physical    map[string]any `json:"physical"`
	Traits      ListDelta      `json:"traits"`
	Memories    ListDelta      `json:"memories"`
	Misc        ListDelta      `json:"misc"`
	Alerts      []string       `json:"alerts"`
	Dead        bool           `json:"dead"`
	Name        string         `json:"name"`
	Avatar      string         `json:"avatar"`
}

var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// Extract pulls a TurnData out of raw model output. Stages run in strictly
// widening order, first success wins:
//
//  1. the whole text is JSON
//  2. a fenced code block contains JSON
//  3. the slice from the first '{' to the last '}' is JSON
//
// Anything else is ErrExtract.
func Extract(raw string) (*TurnData, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, ErrExtract
	}

	if data, ok := tryParse(text); ok {
		return data, nil
	}

	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		if data, ok := tryParse(m[1]); ok {
			return data, nil
		}
	}

	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first != -1 && last > first {
		if data, ok := tryParse(text[first : last+1]); ok {
			return data, nil
		}
	}

	return nil, ErrExtract
}

func tryParse(candidate string) (*TurnData, bool) {
	if !strings.HasPrefix(candidate, "{") {
		return nil, false
	}
	var data TurnData
	if err := json.Unmarshal([]byte(candidate), &data); err != nil {
		return nil, false
	}
	return &data, true
}
