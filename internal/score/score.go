// Package score rates valid schedules for fairness. The score is a balance
// measure across teams, not a feasibility flag: schedules where doubleheader
// load, single-game clustering, and early/late distribution are uniform
// score highest.
package score

import (
	"math"

	"github.com/derekprior/ssgen/internal/config"
	"github.com/derekprior/ssgen/internal/schedule"
)

// Scoring constants. The magnitudes were tuned against the output
// distribution of the restart heuristic; change them together or not at all.
const (
	baseScore         = 1000
	byeWeekBonus      = 5
	doubleheaderBonus = 10
	penaltyMultiplier = 10
)

// TeamStats aggregates one team's season shape across the full theoretical
// game-day calendar.
type TeamStats struct {
	Team          int
	Games         int
	Byes          int
	Doubleheaders int
	Early         int // single games in the first configured timeslot
	Late          int // single games in any other timeslot
	PeakSingleRun int // longest run of consecutive single-game dates; byes and doubleheaders reset it
}

// imbalance measures how far the team's early/late split sits from an even
// one: |early - totalSingles/2|.
func (ts TeamStats) imbalance() int {
	ideal := (ts.Early + ts.Late) / 2
	d := ts.Early - ideal
	if d < 0 {
		d = -d
	}
	return d
}

// Breakdown computes per-team stats over every theoretical game day in the
// season, whether or not any game landed on it.
func Breakdown(cfg *config.Config, games []schedule.Game) []TeamStats {
	// team -> date -> timeslots played that date
	played := make(map[int]map[int64][]string)
	record := func(team int, g schedule.Game) {
		if played[team] == nil {
			played[team] = make(map[int64][]string)
		}
		key := g.Date.Unix()
		played[team][key] = append(played[team][key], g.Timeslot)
	}
	for _, g := range games {
		record(g.Home, g)
		record(g.Away, g)
	}

	days := cfg.GameDays()
	stats := make([]TeamStats, cfg.NumTeams())

	for team := 1; team <= cfg.NumTeams(); team++ {
		ts := TeamStats{Team: team}
		run := 0
		for _, day := range days {
			slots := played[team][day.Unix()]
			switch len(slots) {
			case 0:
				ts.Byes++
				run = 0
			case 1:
				if slots[0] == cfg.Timeslots[0] {
					ts.Early++
				} else {
					ts.Late++
				}
				ts.Games++
				run++
				if run > ts.PeakSingleRun {
					ts.PeakSingleRun = run
				}
			default:
				ts.Doubleheaders++
				ts.Games += len(slots)
				run = 0
			}
		}
		stats[team-1] = ts
	}

	return stats
}

// Score maps a schedule to its integer fitness. Pure and deterministic:
// identical schedules always score identically, regardless of game order.
func Score(cfg *config.Config, games []schedule.Game) int {
	stats := Breakdown(cfg, games)

	total := baseScore
	for _, ts := range stats {
		total += ts.Byes * byeWeekBonus
		total += ts.Doubleheaders * doubleheaderBonus
	}

	doubleheaders := make([]int, len(stats))
	peaks := make([]int, len(stats))
	imbalances := make([]int, len(stats))
	for i, ts := range stats {
		doubleheaders[i] = ts.Doubleheaders
		peaks[i] = ts.PeakSingleRun
		imbalances[i] = ts.imbalance()
	}

	for _, metric := range [][]int{doubleheaders, peaks, imbalances} {
		total -= spread(metric) * penaltyMultiplier
		total -= int(math.Floor(deviation(metric) * penaltyMultiplier))
	}

	return total
}

// spread is max - min across teams.
func spread(values []int) int {
	if len(values) == 0 {
		return 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return hi - lo
}

// deviation is the population standard deviation.
func deviation(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += float64(v)
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := float64(v) - mean
		variance += d * d
	}
	variance /= float64(len(values))

	return math.Sqrt(variance)
}
