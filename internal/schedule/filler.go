package schedule

import (
	"math/rand"
	"time"

	"github.com/derekprior/ssgen/internal/config"
)

// maxFillAttempts bounds how many full restarts a single Fill call makes
// before giving up on this trial.
const maxFillAttempts = 1_000_000

// Filler constructs candidate schedules by greedy randomized packing. It is
// not safe for concurrent use; the search layer creates one per worker.
type Filler struct {
	cfg      *config.Config
	days     []time.Time
	matchups []Matchup
}

func NewFiller(cfg *config.Config) *Filler {
	return &Filler{
		cfg:      cfg,
		days:     cfg.GameDays(),
		matchups: Matchups(cfg.NumTeams()),
	}
}

// Fill produces one candidate schedule, or reports failure when the restart
// bound is exhausted. Failure is the expected outcome for tight
// configurations, not an error.
//
// Each attempt shuffles the matchup list and sweeps every slot once, packing
// up to diamondCount games per (date, timeslot) by drawing eligible matchups
// uniformly at random. A slot with no eligible matchup is left short and the
// sweep moves on; per-slot choices are never revisited. Any matchups left
// over after the sweep trigger a full restart with a fresh shuffle.
func (f *Filler) Fill(rng *rand.Rand) ([]Game, bool) {
	for attempt := 0; attempt < maxFillAttempts; attempt++ {
		pool := make([]Matchup, len(f.matchups))
		copy(pool, f.matchups)
		rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})

		games, leftover := f.sweep(pool, rng)
		if len(leftover) == 0 {
			return games, true
		}
	}
	return nil, false
}

// sweep walks every (date, timeslot) slot once, consuming matchups from the
// pool. Returns the games placed and whatever could not be placed.
func (f *Filler) sweep(pool []Matchup, rng *rand.Rand) ([]Game, []Matchup) {
	games := make([]Game, 0, len(pool))

	for _, day := range f.days {
		for _, slot := range f.cfg.Timeslots {
			used := make(map[int]bool) // teams already playing in this slot

			for diamond := 1; diamond <= f.cfg.Diamonds; diamond++ {
				if len(pool) == 0 {
					return games, pool
				}

				idx := pickEligible(pool, used, rng)
				if idx < 0 {
					break // slot left partially filled
				}

				m := pool[idx]
				pool = append(pool[:idx], pool[idx+1:]...)
				used[m.Home] = true
				used[m.Away] = true
				games = append(games, Game{
					Date:     day,
					Timeslot: slot,
					Diamond:  diamond,
					Home:     m.Home,
					Away:     m.Away,
				})
			}
		}
	}

	return games, pool
}

// pickEligible returns the index of a uniformly random matchup whose teams
// are both free in the current slot, or -1 when none qualifies.
func pickEligible(pool []Matchup, used map[int]bool, rng *rand.Rand) int {
	eligible := make([]int, 0, len(pool))
	for i, m := range pool {
		if used[m.Home] || used[m.Away] {
			continue
		}
		eligible = append(eligible, i)
	}
	if len(eligible) == 0 {
		return -1
	}
	return eligible[rng.Intn(len(eligible))]
}
