package config

import (
	"strings"
	"testing"
	"time"
)

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

const testConfigYAML = `
teams:
  - Bombers
  - Cyclones
  - Dingers
  - Mudcats
  - Renegades
  - Sandlot Kings

games_per_team: 10
diamonds: 2
timeslots: ["10:00", "12:00"]

season:
  start_date: "2026-06-07"
  end_date: "2026-08-30"
  game_day: sunday

search:
  target_valid_schedules: 1000
  save_top: 5
  min_score: 0
  max_workers: 8
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(testConfigYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("teams", func(t *testing.T) {
		if cfg.NumTeams() != 6 {
			t.Fatalf("NumTeams() = %d, want 6", cfg.NumTeams())
		}
		if cfg.TeamName(1) != "Bombers" {
			t.Errorf("TeamName(1) = %q, want %q", cfg.TeamName(1), "Bombers")
		}
		if cfg.TeamName(6) != "Sandlot Kings" {
			t.Errorf("TeamName(6) = %q, want %q", cfg.TeamName(6), "Sandlot Kings")
		}
	})

	t.Run("season", func(t *testing.T) {
		if cfg.Season.StartDate.Time != mustDate("2026-06-07") {
			t.Errorf("start date = %v, want 2026-06-07", cfg.Season.StartDate.Time)
		}
		if cfg.Season.EndDate.Time != mustDate("2026-08-30") {
			t.Errorf("end date = %v, want 2026-08-30", cfg.Season.EndDate.Time)
		}
		if cfg.Season.Weekday() != time.Sunday {
			t.Errorf("weekday = %v, want Sunday", cfg.Season.Weekday())
		}
	})

	t.Run("timeslots", func(t *testing.T) {
		if len(cfg.Timeslots) != 2 || cfg.Timeslots[0] != "10:00" {
			t.Errorf("timeslots = %v, want [10:00 12:00]", cfg.Timeslots)
		}
	})

	t.Run("search", func(t *testing.T) {
		if cfg.Search.TargetValidSchedules != 1000 {
			t.Errorf("target = %d, want 1000", cfg.Search.TargetValidSchedules)
		}
		if cfg.Search.SaveTop != 5 {
			t.Errorf("save_top = %d, want 5", cfg.Search.SaveTop)
		}
		if cfg.Search.MaxWorkers != 8 {
			t.Errorf("max_workers = %d, want 8", cfg.Search.MaxWorkers)
		}
	})

	t.Run("derived values", func(t *testing.T) {
		if cfg.TotalGames() != 30 {
			t.Errorf("TotalGames() = %d, want 30", cfg.TotalGames())
		}
		if cfg.DoubleheadersNeeded() != 3 {
			t.Errorf("DoubleheadersNeeded() = %d, want 3", cfg.DoubleheadersNeeded())
		}
	})
}

func TestGameDays(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(testConfigYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	days := cfg.GameDays()
	if len(days) != 13 {
		t.Fatalf("GameDays() = %d days, want 13", len(days))
	}
	if days[0] != mustDate("2026-06-07") {
		t.Errorf("first game day = %v, want 2026-06-07", days[0])
	}
	if days[12] != mustDate("2026-08-30") {
		t.Errorf("last game day = %v, want 2026-08-30", days[12])
	}
	for i, d := range days {
		if d.Weekday() != time.Sunday {
			t.Errorf("game day %d = %v, not a Sunday", i, d)
		}
	}
}

func TestDoubleheadersNeeded(t *testing.T) {
	for _, tc := range []struct {
		teams int
		want  int
	}{
		{2, 1},
		{4, 2},
		{5, 2},
		{6, 3},
		{7, 3},
		{12, 6},
	} {
		cfg := &Config{Teams: make([]string, tc.teams)}
		if got := cfg.DoubleheadersNeeded(); got != tc.want {
			t.Errorf("DoubleheadersNeeded() with %d teams = %d, want %d", tc.teams, got, tc.want)
		}
	}
}

func TestLoadConfigValidation(t *testing.T) {
	base := func() string { return testConfigYAML }

	cases := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{
			name:    "too few teams",
			mutate:  func(s string) string { return strings.Replace(s, "  - Cyclones\n  - Dingers\n  - Mudcats\n  - Renegades\n  - Sandlot Kings\n", "", 1) },
			wantErr: "at least two teams",
		},
		{
			name:    "duplicate team",
			mutate:  func(s string) string { return strings.Replace(s, "Cyclones", "Bombers", 1) },
			wantErr: "more than once",
		},
		{
			name:    "odd games per team",
			mutate:  func(s string) string { return strings.Replace(s, "games_per_team: 10", "games_per_team: 9", 1) },
			wantErr: "must be even",
		},
		{
			name:    "zero diamonds",
			mutate:  func(s string) string { return strings.Replace(s, "diamonds: 2", "diamonds: 0", 1) },
			wantErr: "diamonds",
		},
		{
			name:    "no timeslots",
			mutate:  func(s string) string { return strings.Replace(s, `timeslots: ["10:00", "12:00"]`, "timeslots: []", 1) },
			wantErr: "timeslot",
		},
		{
			name:    "unknown game day",
			mutate:  func(s string) string { return strings.Replace(s, "game_day: sunday", "game_day: someday", 1) },
			wantErr: "game_day",
		},
		{
			name:    "end before start",
			mutate:  func(s string) string { return strings.Replace(s, `end_date: "2026-08-30"`, `end_date: "2026-05-30"`, 1) },
			wantErr: "start date",
		},
		{
			name:    "zero target",
			mutate:  func(s string) string { return strings.Replace(s, "target_valid_schedules: 1000", "target_valid_schedules: 0", 1) },
			wantErr: "target_valid_schedules",
		},
		{
			name:    "zero save top",
			mutate:  func(s string) string { return strings.Replace(s, "save_top: 5", "save_top: 0", 1) },
			wantErr: "save_top",
		},
		{
			name:    "zero workers",
			mutate:  func(s string) string { return strings.Replace(s, "max_workers: 8", "max_workers: 0", 1) },
			wantErr: "max_workers",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tc.mutate(base())))
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(testConfigYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := cfg.Summary()
	for _, want := range []string{"Bombers", "Games per team: 10", "Total games: 30", "Game days: 13", "Doubleheaders needed per team: 3"} {
		if !strings.Contains(s, want) {
			t.Errorf("Summary() missing %q", want)
		}
	}
}
