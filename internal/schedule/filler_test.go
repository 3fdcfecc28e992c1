package schedule

import (
	"math/rand"
	"testing"
	"time"

	"github.com/derekprior/ssgen/internal/config"
)

func date(y, m, d int) config.Date {
	return config.Date{Time: time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)}
}

func testConfig() *config.Config {
	return &config.Config{
		Teams:        []string{"Bombers", "Cyclones", "Dingers", "Mudcats"},
		GamesPerTeam: 6,
		Diamonds:     2,
		Timeslots:    []string{"10:00", "12:00"},
		Season: config.Season{
			StartDate: date(2026, 6, 7),
			EndDate:   date(2026, 8, 30),
			GameDay:   "sunday",
		},
		Search: config.Search{
			TargetValidSchedules: 10,
			SaveTop:              3,
			MaxWorkers:           2,
		},
	}
}

// zeroSlackConfig has exactly as many slots as games: 4 teams x 6 games / 2
// = 12 games into 12 game days x 1 timeslot x 1 diamond.
func zeroSlackConfig() *config.Config {
	cfg := testConfig()
	cfg.Diamonds = 1
	cfg.Timeslots = []string{"10:00"}
	cfg.Season.EndDate = date(2026, 8, 23) // 12 Sundays from June 7
	return cfg
}

func TestFill(t *testing.T) {
	cfg := testConfig()
	filler := NewFiller(cfg)
	rng := rand.New(rand.NewSource(42))

	games, ok := filler.Fill(rng)
	if !ok {
		t.Fatal("Fill() failed on a loose configuration")
	}

	t.Run("places every matchup", func(t *testing.T) {
		if len(games) != cfg.TotalGames() {
			t.Errorf("placed %d games, want %d", len(games), cfg.TotalGames())
		}
		seen := make(map[Matchup]bool)
		for _, g := range games {
			m := Matchup{g.Home, g.Away}
			if seen[m] {
				t.Errorf("matchup %+v placed twice", m)
			}
			seen[m] = true
		}
	})

	t.Run("respects slot capacity", func(t *testing.T) {
		type slotKey struct {
			date time.Time
			slot string
		}
		counts := make(map[slotKey]int)
		for _, g := range games {
			counts[slotKey{g.Date, g.Timeslot}]++
		}
		for sk, n := range counts {
			if n > cfg.Diamonds {
				t.Errorf("slot %v holds %d games, max %d", sk, n, cfg.Diamonds)
			}
		}
	})

	t.Run("no team twice in one slot", func(t *testing.T) {
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
			for _, team := range []int{g.Home, g.Away} {
				if teams[sk][team] {
					t.Errorf("team %d appears twice in slot %v", team, sk)
				}
				teams[sk][team] = true
			}
		}
	})

	t.Run("games land on game days only", func(t *testing.T) {
		valid := make(map[time.Time]bool)
		for _, d := range cfg.GameDays() {
			valid[d] = true
		}
		for _, g := range games {
			if !valid[g.Date] {
				t.Errorf("game on %v which is not a game day", g.Date)
			}
		}
	})
}

func TestFillZeroSlack(t *testing.T) {
	cfg := zeroSlackConfig()

	if got := len(cfg.GameDays()); got != 12 {
		t.Fatalf("game days = %d, want 12", got)
	}

	filler := NewFiller(cfg)
	games, ok := filler.Fill(rand.New(rand.NewSource(7)))
	if !ok {
		t.Fatal("Fill() failed on the zero-slack configuration")
	}
	if len(games) != 12 {
		t.Fatalf("placed %d games, want 12", len(games))
	}

	// Every slot must be used exactly once: 12 matchups, 12 slots.
	used := make(map[time.Time]int)
	for _, g := range games {
		used[g.Date]++
	}
	for _, d := range cfg.GameDays() {
		if used[d] != 1 {
			t.Errorf("game day %v hosts %d games, want exactly 1", d, used[d])
		}
	}
}
