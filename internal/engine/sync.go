package engine

import "strings"

// Sync intervals: lives send their full identity/trait context to the model
// only every N turns to bound prompt size. Large-context model families can
// afford to re-sync rarely; everything else syncs often to avoid drift.
const (
	largeContextInterval = 15
	defaultInterval      = 5
)

var largeContextFamilies = []string{"grok", "kimi", "claude", "scout", "70b", "405b", "4o"}

// SyncInterval returns how many turns pass between full context syncs for a
// model identifier, matched by substring against known family names.
func SyncInterval(model string) int {
	for _, family := range largeContextFamilies {
		if strings.Contains(model, family) {
			return largeContextInterval
		}
	}
	return defaultInterval
}

// FullSync decides whether this turn's prompt carries complete identity and
// trait context. Genesis and free-form lives always do.
func FullSync(model string, turnCount int, freeForm, genesis bool) bool {
	if genesis || freeForm {
		return true
	}
	return turnCount%SyncInterval(model) == 0
}
