package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Date is a wrapper around time.Time for YAML date parsing.
type Date struct {
	Time time.Time
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse("2006-01-02", value.Value)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", value.Value, err)
	}
	d.Time = t
	return nil
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Season defines the date range and weekly cadence for the league.
type Season struct {
	StartDate Date   `yaml:"start_date"`
	EndDate   Date   `yaml:"end_date"`
	GameDay   string `yaml:"game_day"` // weekday name, e.g. "sunday"
}

// Weekday returns the parsed game-day weekday. Only meaningful after the
// config has been validated.
func (s *Season) Weekday() time.Weekday {
	return weekdays[strings.ToLower(s.GameDay)]
}

// Search holds the knobs for the randomized schedule search.
type Search struct {
	TargetValidSchedules int `yaml:"target_valid_schedules"`
	SaveTop              int `yaml:"save_top"`
	MinScore             int `yaml:"min_score"`
	MaxWorkers           int `yaml:"max_workers"`
}

type Config struct {
	Teams        []string `yaml:"teams"`
	GamesPerTeam int      `yaml:"games_per_team"`
	Diamonds     int      `yaml:"diamonds"`
	Timeslots    []string `yaml:"timeslots"` // ordered; the first slot is the "early" game
	Season       Season   `yaml:"season"`
	Search       Search   `yaml:"search"`
}

// NumTeams returns the number of teams in the league.
func (c *Config) NumTeams() int {
	return len(c.Teams)
}

// TeamName returns the display name for a 1-based team id.
func (c *Config) TeamName(id int) string {
	if id < 1 || id > len(c.Teams) {
		return fmt.Sprintf("Team %d", id)
	}
	return c.Teams[id-1]
}

// TotalGames returns the number of games a complete schedule holds.
func (c *Config) TotalGames() int {
	return len(c.Teams) * c.GamesPerTeam / 2
}

// DoubleheadersNeeded returns the minimum doubleheaders each team must get:
// ceil((teams - 1) / 2).
func (c *Config) DoubleheadersNeeded() int {
	n := len(c.Teams) - 1
	return (n + 1) / 2
}

// GameDays returns every date in the season range that falls on the
// configured game day, in chronological order.
func (c *Config) GameDays() []time.Time {
	var days []time.Time
	day := c.Season.Weekday()
	d := c.Season.StartDate.Time
	for !d.After(c.Season.EndDate.Time) {
		if d.Weekday() == day {
			days = append(days, d)
		}
		d = d.AddDate(0, 0, 1)
	}
	return days
}

// LoadFromBytes parses YAML bytes into a Config and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

func (c *Config) validate() error {
	if len(c.Teams) < 2 {
		return fmt.Errorf("at least two teams are required, got %d", len(c.Teams))
	}

	seen := make(map[string]bool)
	for _, team := range c.Teams {
		if team == "" {
			return fmt.Errorf("team names must not be empty")
		}
		if seen[team] {
			return fmt.Errorf("team %q appears more than once", team)
		}
		seen[team] = true
	}

	if c.GamesPerTeam < 1 {
		return fmt.Errorf("games_per_team must be at least 1, got %d", c.GamesPerTeam)
	}
	if c.GamesPerTeam%2 != 0 {
		return fmt.Errorf("games_per_team must be even, got %d", c.GamesPerTeam)
	}
	if c.Diamonds < 1 {
		return fmt.Errorf("diamonds must be at least 1, got %d", c.Diamonds)
	}
	if len(c.Timeslots) == 0 {
		return fmt.Errorf("at least one timeslot is required")
	}

	if _, ok := weekdays[strings.ToLower(c.Season.GameDay)]; !ok {
		return fmt.Errorf("unknown game_day %q", c.Season.GameDay)
	}
	if c.Season.EndDate.Time.Before(c.Season.StartDate.Time) {
		return fmt.Errorf("end date %s must be on or after start date %s",
			c.Season.EndDate.Time.Format("2006-01-02"),
			c.Season.StartDate.Time.Format("2006-01-02"))
	}

	if c.Search.TargetValidSchedules < 1 {
		return fmt.Errorf("target_valid_schedules must be at least 1, got %d", c.Search.TargetValidSchedules)
	}
	if c.Search.SaveTop < 1 {
		return fmt.Errorf("save_top must be at least 1, got %d", c.Search.SaveTop)
	}
	if c.Search.MaxWorkers < 1 {
		return fmt.Errorf("max_workers must be at least 1, got %d", c.Search.MaxWorkers)
	}

	return nil
}

// Summary renders a human-readable description of the configuration for the
// run summary file.
func (c *Config) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Teams (%d):\n", len(c.Teams))
	for i, team := range c.Teams {
		fmt.Fprintf(&b, "  %2d. %s\n", i+1, team)
	}
	fmt.Fprintf(&b, "Games per team: %d\n", c.GamesPerTeam)
	fmt.Fprintf(&b, "Total games: %d\n", c.TotalGames())
	fmt.Fprintf(&b, "Diamonds: %d\n", c.Diamonds)
	fmt.Fprintf(&b, "Timeslots: %s\n", strings.Join(c.Timeslots, ", "))
	fmt.Fprintf(&b, "Season: %s through %s, games on %ss\n",
		c.Season.StartDate.Time.Format("2006-01-02"),
		c.Season.EndDate.Time.Format("2006-01-02"),
		c.Season.Weekday())
	fmt.Fprintf(&b, "Game days: %d\n", len(c.GameDays()))
	fmt.Fprintf(&b, "Doubleheaders needed per team: %d\n", c.DoubleheadersNeeded())
	fmt.Fprintf(&b, "Search: %d valid schedules, keep top %d, minimum score %d, %d workers\n",
		c.Search.TargetValidSchedules, c.Search.SaveTop, c.Search.MinScore, c.Search.MaxWorkers)
	return b.String()
}
