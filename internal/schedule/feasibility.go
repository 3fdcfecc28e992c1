package schedule

import (
	"fmt"

	"github.com/derekprior/ssgen/internal/config"
)

// Violation names a feasibility condition the configuration fails.
type Violation struct {
	Name    string
	Message string
}

// Feasibility checks whether the configuration can possibly yield a valid
// schedule, before any trial runs. It returns one entry per violated
// condition; an empty result means the search is worth starting. The check
// is deterministic and idempotent.
func Feasibility(cfg *config.Config) []Violation {
	var violations []Violation

	totalGames := cfg.TotalGames()
	days := len(cfg.GameDays())
	capacity := days * len(cfg.Timeslots) * cfg.Diamonds

	if capacity < totalGames {
		violations = append(violations, Violation{
			Name: "slot_capacity",
			Message: fmt.Sprintf("%d available slots (%d game days x %d timeslots x %d diamonds) cannot hold %d games",
				capacity, days, len(cfg.Timeslots), cfg.Diamonds, totalGames),
		})
	}

	// A team plays at most two games per date, so the season needs at least
	// gamesPerTeam/2 game days.
	minDays := (cfg.GamesPerTeam + 1) / 2
	if days < minDays {
		violations = append(violations, Violation{
			Name: "game_days",
			Message: fmt.Sprintf("%d game days in season but %d games per team need at least %d",
				days, cfg.GamesPerTeam, minDays),
		})
	}

	if cfg.GamesPerTeam%2 != 0 {
		violations = append(violations, Violation{
			Name:    "odd_games_per_team",
			Message: fmt.Sprintf("games per team must be even for a balanced home/away split, got %d", cfg.GamesPerTeam),
		})
	}

	if (cfg.NumTeams()*cfg.GamesPerTeam)%2 != 0 {
		violations = append(violations, Violation{
			Name: "odd_total_games",
			Message: fmt.Sprintf("%d teams x %d games per team is odd; every game needs two participants",
				cfg.NumTeams(), cfg.GamesPerTeam),
		})
	}

	return violations
}
