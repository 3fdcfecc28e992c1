package schedule

import "time"

// Matchup is an ordered (home, away) pair of team ids requiring one game.
type Matchup struct {
	Home int
	Away int
}

// Game is a matchup placed into a specific (date, timeslot, diamond) slot.
type Game struct {
	Date     time.Time
	Timeslot string
	Diamond  int // 1-based
	Home     int
	Away     int
}

// Matchups returns the full double-round-robin matchup list for teams
// numbered 1..n: every ordered pair exactly once, n*(n-1) in total. Each
// unordered pair meets twice, once per venue assignment.
func Matchups(n int) []Matchup {
	matchups := make([]Matchup, 0, n*(n-1))
	for home := 1; home <= n; home++ {
		for away := 1; away <= n; away++ {
			if home == away {
				continue
			}
			matchups = append(matchups, Matchup{Home: home, Away: away})
		}
	}
	return matchups
}
