package export

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"

	"pwhl-schedule-service/internal/domain"
	"pwhl-schedule-service/internal/seasons"
	"pwhl-schedule-service/internal/timeutil"
)

// ErrEmptyExport reports an export over an empty collection when the caller
// opted into requiring rows.
var ErrEmptyExport = errors.New("no games to export")

var header = []string{"date", "season", "phase", "away_team", "home_team", "status", "away_score", "home_score"}

// WriteCSV renders the games as CSV with a fixed column order, one row per
// game plus a header. Absent scores become empty cells, and field quoting
// follows standard CSV rules. An empty collection yields a header-only
// document; callers that consider that an error use WriteCSVRequireRows.
func WriteCSV(w io.Writer, games []domain.Game) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return err
	}
	for _, g := range games {
		if err := cw.Write(row(g)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVRequireRows behaves like WriteCSV but fails with ErrEmptyExport
// instead of emitting a header-only document.
func WriteCSVRequireRows(w io.Writer, games []domain.Game) error {
	if len(games) == 0 {
		return ErrEmptyExport
	}
	return WriteCSV(w, games)
}

func row(g domain.Game) []string {
	label, phase := "", ""
	if season, err := seasons.Resolve(g.SeasonID); err == nil {
		label = season.Label
		phase = string(season.Phase)
	}
	return []string{
		timeutil.FormatDate(g.Date),
		label,
		phase,
		g.AwayTeam,
		g.HomeTeam,
		string(g.Status),
		scoreCell(g.AwayScore),
		scoreCell(g.HomeScore),
	}
}

func scoreCell(score *int) string {
	if score == nil {
		return ""
	}
	return strconv.Itoa(*score)
}
