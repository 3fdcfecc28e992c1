package excel

import (
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/ssgen/internal/config"
	"github.com/derekprior/ssgen/internal/schedule"
	"github.com/derekprior/ssgen/internal/score"
	"github.com/derekprior/ssgen/internal/search"
)

// Generate creates an Excel workbook for one accepted schedule: the master
// grid, a stats sheet, and one sheet per team.
func Generate(cfg *config.Config, result search.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	// Set default font for the workbook
	f.SetDefaultFont("Arial")

	if err := writeMasterSheet(f, cfg, result.Games); err != nil {
		return nil, fmt.Errorf("writing master sheet: %w", err)
	}

	if err := writeStatsSheet(f, cfg, result); err != nil {
		return nil, fmt.Errorf("writing stats sheet: %w", err)
	}

	if err := writeTeamSheets(f, cfg, result.Games); err != nil {
		return nil, fmt.Errorf("writing team sheets: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func headerStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 16, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	return style
}

func bodyStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})
	return style
}

func writeMasterSheet(f *excelize.File, cfg *config.Config, games []schedule.Game) error {
	sheet := "Master Schedule"
	f.NewSheet(sheet)

	headers := []string{"Date", "Day", "Time"}
	for d := 1; d <= cfg.Diamonds; d++ {
		headers = append(headers, fmt.Sprintf("Diamond %d", d))
	}
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}

	hs := headerStyle(f)
	if hs != 0 {
		for i := range headers {
			f.SetCellStyle(sheet, cellRef(i+1, 1), cellRef(i+1, 1), hs)
		}
	}

	cellStyle := bodyStyle(f)
	gameCellStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 16, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	// Build game lookup: (date, timeslot, diamond) -> game
	type slotKey struct {
		date    time.Time
		slot    string
		diamond int
	}
	gameMap := make(map[slotKey]schedule.Game)
	for _, g := range games {
		gameMap[slotKey{g.Date, g.Timeslot, g.Diamond}] = g
	}

	row := 2
	for _, day := range cfg.GameDays() {
		for _, slot := range cfg.Timeslots {
			f.SetCellValue(sheet, cellRef(1, row), day.Format("01/02/2006"))
			f.SetCellValue(sheet, cellRef(2, row), day.Format("Mon"))
			f.SetCellValue(sheet, cellRef(3, row), slot)

			for d := 1; d <= cfg.Diamonds; d++ {
				if g, ok := gameMap[slotKey{day, slot, d}]; ok {
					f.SetCellValue(sheet, cellRef(d+3, row),
						fmt.Sprintf("%s @ %s", cfg.TeamName(g.Away), cfg.TeamName(g.Home)))
				}
			}

			if cellStyle != 0 {
				for col := 1; col <= 3; col++ {
					f.SetCellStyle(sheet, cellRef(col, row), cellRef(col, row), cellStyle)
				}
				for col := 4; col <= len(headers); col++ {
					f.SetCellStyle(sheet, cellRef(col, row), cellRef(col, row), gameCellStyle)
				}
			}
			row++
		}
	}

	// Set column widths (sized for Arial 16)
	f.SetColWidth(sheet, "A", "A", 18)
	f.SetColWidth(sheet, "B", "B", 8)
	f.SetColWidth(sheet, "C", "C", 10)
	for d := 1; d <= cfg.Diamonds; d++ {
		col := colLetter(d + 3)
		f.SetColWidth(sheet, col, col, 30)
	}

	return nil
}

func writeStatsSheet(f *excelize.File, cfg *config.Config, result search.Result) error {
	sheet := "Stats"
	f.NewSheet(sheet)

	cellStyle := bodyStyle(f)

	f.SetCellValue(sheet, "A1", "Score")
	f.SetCellValue(sheet, "B1", result.Score)

	headers := []string{"Team", "Games", "Doubleheaders", "Early", "Late", "Longest Single Stretch", "Byes"}
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 3), h)
	}
	hs := headerStyle(f)
	if hs != 0 {
		for i := range headers {
			f.SetCellStyle(sheet, cellRef(i+1, 3), cellRef(i+1, 3), hs)
		}
	}

	for i, ts := range score.Breakdown(cfg, result.Games) {
		row := i + 4
		f.SetCellValue(sheet, cellRef(1, row), cfg.TeamName(ts.Team))
		f.SetCellValue(sheet, cellRef(2, row), ts.Games)
		f.SetCellValue(sheet, cellRef(3, row), ts.Doubleheaders)
		f.SetCellValue(sheet, cellRef(4, row), ts.Early)
		f.SetCellValue(sheet, cellRef(5, row), ts.Late)
		f.SetCellValue(sheet, cellRef(6, row), ts.PeakSingleRun)
		f.SetCellValue(sheet, cellRef(7, row), ts.Byes)
		if cellStyle != 0 {
			for col := 1; col <= len(headers); col++ {
				f.SetCellStyle(sheet, cellRef(col, row), cellRef(col, row), cellStyle)
			}
		}
	}

	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "G", 22)

	return nil
}

func writeTeamSheets(f *excelize.File, cfg *config.Config, games []schedule.Game) error {
	for team := 1; team <= cfg.NumTeams(); team++ {
		sheet := cfg.TeamName(team)
		f.NewSheet(sheet)

		headers := []string{"Date", "Day", "Time", "Diamond", "Opponent", "Home/Away"}
		for i, h := range headers {
			f.SetCellValue(sheet, cellRef(i+1, 1), h)
		}

		hs := headerStyle(f)
		if hs != 0 {
			for i := range headers {
				f.SetCellStyle(sheet, cellRef(i+1, 1), cellRef(i+1, 1), hs)
			}
		}

		// Collect and sort this team's games
		type teamGame struct {
			date     time.Time
			slot     string
			diamond  int
			opponent string
			homeAway string
		}
		var rows []teamGame
		for _, g := range games {
			if g.Home == team {
				rows = append(rows, teamGame{
					date: g.Date, slot: g.Timeslot, diamond: g.Diamond,
					opponent: cfg.TeamName(g.Away), homeAway: "Home",
				})
			} else if g.Away == team {
				rows = append(rows, teamGame{
					date: g.Date, slot: g.Timeslot, diamond: g.Diamond,
					opponent: cfg.TeamName(g.Home), homeAway: "Away",
				})
			}
		}
		sort.Slice(rows, func(i, j int) bool {
			if !rows[i].date.Equal(rows[j].date) {
				return rows[i].date.Before(rows[j].date)
			}
			return rows[i].slot < rows[j].slot
		})

		cellStyle := bodyStyle(f)

		for i, g := range rows {
			row := i + 2
			f.SetCellValue(sheet, cellRef(1, row), g.date.Format("01/02/2006"))
			f.SetCellValue(sheet, cellRef(2, row), g.date.Format("Mon"))
			f.SetCellValue(sheet, cellRef(3, row), g.slot)
			f.SetCellValue(sheet, cellRef(4, row), g.diamond)
			f.SetCellValue(sheet, cellRef(5, row), g.opponent)
			f.SetCellValue(sheet, cellRef(6, row), g.homeAway)
			if cellStyle != 0 {
				for col := 1; col <= len(headers); col++ {
					f.SetCellStyle(sheet, cellRef(col, row), cellRef(col, row), cellStyle)
				}
			}
		}

		// Set column widths (sized for Arial 16)
		widths := map[string]float64{"A": 18, "B": 8, "C": 10, "D": 12, "E": 20, "F": 14}
		for col, w := range widths {
			f.SetColWidth(sheet, col, col, w)
		}
	}

	return nil
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
