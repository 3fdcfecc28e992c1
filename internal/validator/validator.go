package validator

import (
	"sort"
	"time"

	"github.com/derekprior/ssgen/internal/config"
	"github.com/derekprior/ssgen/internal/schedule"
)

// maxConsecutiveSingles is the longest run of single-game dates a team may
// have between two of its doubleheaders.
const maxConsecutiveSingles = 2

// Valid runs the full hard-constraint chain. Candidates fail silently;
// rejections are frequent and must be cheap, so no diagnostics are built.
func Valid(cfg *config.Config, games []schedule.Game) bool {
	return CheckCounts(cfg, games) &&
		CheckSlotIntegrity(cfg, games) &&
		CheckDoubleheaders(cfg, games) &&
		CheckConsecutiveSingles(cfg, games)
}

// CheckCounts verifies the schedule holds exactly teams*gamesPerTeam/2 games
// and that every team appears in exactly gamesPerTeam of them.
func CheckCounts(cfg *config.Config, games []schedule.Game) bool {
	if len(games) != cfg.TotalGames() {
		return false
	}

	counts := make(map[int]int, cfg.NumTeams())
	for _, g := range games {
		counts[g.Home]++
		counts[g.Away]++
	}

	for team := 1; team <= cfg.NumTeams(); team++ {
		if counts[team] != cfg.GamesPerTeam {
			return false
		}
	}
	return true
}

// CheckSlotIntegrity verifies that within each (date, timeslot) group no
// team appears twice and the distinct-team count never exceeds diamonds*2.
func CheckSlotIntegrity(cfg *config.Config, games []schedule.Game) bool {
	type slotKey struct {
		date time.Time
		slot string
	}
	teams := make(map[slotKey]map[int]bool)

	for _, g := range games {
		sk := slotKey{g.Date, g.Timeslot}
		if teams[sk] == nil {
			teams[sk] = make(map[int]bool)
		}
		if teams[sk][g.Home] || teams[sk][g.Away] {
			return false
		}
		teams[sk][g.Home] = true
		teams[sk][g.Away] = true
		if len(teams[sk]) > cfg.Diamonds*2 {
			return false
		}
	}
	return true
}

// CheckDoubleheaders verifies every team has at least the required number of
// dates on which it plays exactly two games.
func CheckDoubleheaders(cfg *config.Config, games []schedule.Game) bool {
	needed := cfg.DoubleheadersNeeded()
	counts := teamDateCounts(games)

	for team := 1; team <= cfg.NumTeams(); team++ {
		doubleheaders := 0
		for _, n := range counts[team] {
			if n == 2 {
				doubleheaders++
			}
		}
		if doubleheaders < needed {
			return false
		}
	}
	return true
}

// CheckConsecutiveSingles bounds each team's runs of consecutive single-game
// dates. Only dates the team actually plays are in the sequence; byes are
// invisible here. A run longer than the bound is a violation only when
// another doubleheader still follows it — a long stretch of singles after a
// team's last doubleheader is tolerated.
func CheckConsecutiveSingles(cfg *config.Config, games []schedule.Game) bool {
	counts := teamDateCounts(games)

	for team := 1; team <= cfg.NumTeams(); team++ {
		dates := sortedDates(counts[team])

		run := 0
		for i, d := range dates {
			if counts[team][d] == 2 {
				run = 0
				continue
			}
			run++
			if run > maxConsecutiveSingles && doubleheaderAfter(counts[team], dates, i) {
				return false
			}
		}
	}
	return true
}

// doubleheaderAfter reports whether the team has a two-game date anywhere
// past position i in its date sequence.
func doubleheaderAfter(counts map[time.Time]int, dates []time.Time, i int) bool {
	for _, d := range dates[i+1:] {
		if counts[d] == 2 {
			return true
		}
	}
	return false
}

// teamDateCounts maps team -> date -> games played that date.
func teamDateCounts(games []schedule.Game) map[int]map[time.Time]int {
	counts := make(map[int]map[time.Time]int)
	add := func(team int, date time.Time) {
		if counts[team] == nil {
			counts[team] = make(map[time.Time]int)
		}
		counts[team][date]++
	}
	for _, g := range games {
		add(g.Home, g.Date)
		add(g.Away, g.Date)
	}
	return counts
}

func sortedDates(counts map[time.Time]int) []time.Time {
	dates := make([]time.Time, 0, len(counts))
	for d := range counts {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
