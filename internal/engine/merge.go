package engine

import (
	"regexp"
	"strconv"
	"strings"

	"ailife/internal/life"
)

const memoryCap = 15

// identityAliases is the ordered list of accepted keys per identity field.
// First match wins; models flip-flop between cased and lowercase keys.
var identityAliases = []struct {
	keys []string
	get  func(*life.Identity) *string
}{
	{[]string{"Gender", "gender"}, func(i *life.Identity) *string { return &i.Gender }},
	{[]string{"Skin", "skin"}, func(i *life.Identity) *string { return &i.Skin }},
	{[]string{"Eyes", "eyes"}, func(i *life.Identity) *string { return &i.Eyes }},
	{[]string{"Height", "height"}, func(i *life.Identity) *string { return &i.Height }},
	{[]string{"Weight", "weight"}, func(i *life.Identity) *string { return &i.Weight }},
	{[]string{"Location", "location"}, func(i *life.Identity) *string { return &i.Location }},
	{[]string{"Race", "race"}, func(i *life.Identity) *string { return &i.Race }},
	{[]string{"Disabilities", "disabilities"}, func(i *life.Identity) *string { return &i.Disabilities }},
}

var nonNumeric = regexp.MustCompile(`[^0-9-]`)

// Merge applies an extracted turn to l. Field-level problems (unparsable
// deltas or ages) are skipped, never fatal: once a TurnData exists the turn
// applies best-effort. instruction is recorded on the first history block of
// the batch only; alerts on the last only.
func Merge(l *life.Life, data *TurnData, instruction string, genesis bool) {
	if data.Name != "" {
		l.Name = data.Name
	}
	if data.Avatar != "" {
		l.Avatar = data.Avatar
	}
	if data.Dead {
		l.Status = life.StatusDeceased
	}

	mergeIdentity(l, data.Physical)
	mergeStats(l, data.statChanges(), genesis)

	l.Traits = removeAll(dedupUnion(data.Traits.Add, l.Traits), data.Traits.Remove)
	l.Memories = removeAll(append(append([]string{}, data.Memories.Add...), l.Memories...), data.Memories.Remove)
	if len(l.Memories) > memoryCap {
		l.Memories = l.Memories[:memoryCap]
	}
	l.Misc = removeAll(dedupUnion(data.Misc.Add, l.Misc), data.Misc.Remove)

	mergeLogs(l, data, instruction)
}

// statChanges prefers the current schema key but tolerates the legacy one.
func (d *TurnData) statChanges() map[string]any {
	if len(d.StatChanges) > 0 {
		return d.StatChanges
	}
	return d.LegacyStats
}

func mergeIdentity(l *life.Life, physical map[string]any) {
	if len(physical) == 0 {
		return
	}
	if l.Identity == nil {
		l.Identity = &life.Identity{}
	}
	for _, field := range identityAliases {
		for _, key := range field.keys {
			val, ok := physical[key].(string)
			if !ok || val == "" {
				continue
			}
			// Non-empty incoming values overwrite; a known value is never
			// replaced by null or absence.
			*field.get(l.Identity) = val
			break
		}
	}
}

func mergeStats(l *life.Life, changes map[string]any, genesis bool) {
	if len(changes) == 0 {
		return
	}
	for key, raw := range changes {
		delta, ok := sanitizeDelta(raw)
		if !ok {
			continue
		}
		name := canonicalStatName(key)
		if stat := l.Stat(name); stat != nil {
			stat.Value += delta
			continue
		}
		base := delta
		if !genesis {
			if name == "Intelligence" {
				base = 100 + delta
			} else {
				base = 50 + delta
			}
		}
		l.Stats = append(l.Stats, life.Stat{Name: name, Value: base, Color: life.ColorForStat(name)})
	}
	for i := range l.Stats {
		s := &l.Stats[i]
		if s.Name == "Intelligence" {
			if s.Value < 0 {
				s.Value = 0
			}
			continue
		}
		if s.Value > 100 {
			s.Value = 100
		}
		if s.Value < 0 {
			s.Value = 0
		}
	}
}

// sanitizeDelta strips everything that is not a digit or minus sign before
// parsing, so "+5", "5%", and " -10 IQ " all survive as integers.
func sanitizeDelta(raw any) (int, bool) {
	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case float64:
		return int(v), true
	default:
		return 0, false
	}
	s = nonNumeric.ReplaceAllString(s, "")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// canonicalStatName folds aliases like "IQ" or "health_points" onto the three
// known stats; anything else passes through and becomes an emergent stat.
func canonicalStatName(key string) string {
	lower := strings.ToLower(key)
	switch {
	case strings.Contains(lower, "iq"), strings.Contains(lower, "intelligence"):
		return "Intelligence"
	case strings.Contains(lower, "health"):
		return "Health"
	case strings.Contains(lower, "happ"):
		return "Happiness"
	}
	return key
}

func mergeLogs(l *life.Life, data *TurnData, instruction string) {
	for i, log := range data.YearlyLogs {
		if age, ok := parseAge(log.Age); ok {
			l.Age = age
		}
		l.Stage = life.StageForAge(l.Age, l.Stage)
		if log.Event != "" {
			l.LatestEvent = log.Event
		}

		text := log.Text
		if text == "" {
			text = "..."
		}
		block := life.HistoryBlock{Age: l.Age, Text: text, Alerts: []string{}}
		if i == 0 && instruction != "" {
			prompt := instruction
			block.Prompt = &prompt
		}
		if i == len(data.YearlyLogs)-1 && len(data.Alerts) > 0 {
			block.Alerts = data.Alerts
		}
		l.History = append(l.History, block)
	}
}

func parseAge(raw any) (int, bool) {
	switch v := raw.(type) {
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// dedupUnion keeps insertion order with added entries ahead of existing ones.
func dedupUnion(added, existing []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(added))
	out := make([]string, 0, len(existing)+len(added))
	for _, s := range append(append([]string{}, added...), existing...) {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func removeAll(items, remove []string) []string {
	if len(remove) == 0 {
		return items
	}
	drop := make(map[string]struct{}, len(remove))
	for _, s := range remove {
		drop[s] = struct{}{}
	}
	out := items[:0]
	for _, s := range items {
		if _, ok := drop[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}
