package life

import "math/rand"

// Seed holds the randomized starting conditions for a genesis turn.
type Seed struct {
	Gender        string
	Wealth        string
	Region        string
	BaseHealth    int
	BaseHappiness int
	BaseIQ        int
}

var (
	seedGenders = []string{"Male", "Female"}
	seedWealth  = []string{
		"in poverty",
		"to a working-class family",
		"to a middle-class family",
		"to a wealthy family",
	}
	seedRegions = []string{
		"North America", "South America", "Europe", "Asia", "Africa", "Oceania",
	}
)

// NewSeed draws starting conditions from r. Pure function of the source, so
// tests can pass a fixed-seed rand.Rand and get reproducible births.
func NewSeed(r *rand.Rand) Seed {
	return Seed{
		Gender:        seedGenders[r.Intn(len(seedGenders))],
		Wealth:        seedWealth[r.Intn(len(seedWealth))],
		Region:        seedRegions[r.Intn(len(seedRegions))],
		BaseHealth:    r.Intn(11) + 75,
		BaseHappiness: r.Intn(11) + 75,
		BaseIQ:        r.Intn(11) + 90,
	}
}
