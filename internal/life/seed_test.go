package life

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSeedDeterministic(t *testing.T) {
	a := NewSeed(rand.New(rand.NewSource(42)))
	b := NewSeed(rand.New(rand.NewSource(42)))

	require.Equal(t, a, b)
}

func TestNewSeedRanges(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		seed := NewSeed(r)

		require.Contains(t, seedGenders, seed.Gender)
		require.Contains(t, seedWealth, seed.Wealth)
		require.Contains(t, seedRegions, seed.Region)

		require.GreaterOrEqual(t, seed.BaseHealth, 75)
		require.LessOrEqual(t, seed.BaseHealth, 85)
		require.GreaterOrEqual(t, seed.BaseHappiness, 75)
		require.LessOrEqual(t, seed.BaseHappiness, 85)
		require.GreaterOrEqual(t, seed.BaseIQ, 90)
		require.LessOrEqual(t, seed.BaseIQ, 100)
	}
}
