package leaguestat

import (
	"log/slog"
	"strconv"
	"strings"

	"pwhl-schedule-service/internal/domain"
	"pwhl-schedule-service/internal/logging"
	"pwhl-schedule-service/internal/seasons"
	"pwhl-schedule-service/internal/timeutil"
)

// statusTable maps the feed's free-text status to the canonical enum. The
// vocabulary has grown before; anything unrecognized becomes UNKNOWN rather
// than failing.
var statusTable = map[string]domain.GameStatus{
	"":           domain.StatusScheduled,
	"scheduled":  domain.StatusScheduled,
	"final":      domain.StatusFinal,
	"final ot":   domain.StatusFinalOT,
	"final (ot)": domain.StatusFinalOT,
	"final so":   domain.StatusFinalSO,
	"final (so)": domain.StatusFinalSO,
	"final s.o.": domain.StatusFinalSO,
	"postponed":  domain.StatusPostponed,
	"ppd":        domain.StatusPostponed,
}

func mapStatus(raw string) domain.GameStatus {
	if status, ok := statusTable[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return status
	}
	return domain.StatusUnknown
}

// Normalizer converts raw feed rows into canonical game records.
type Normalizer struct {
	logger *slog.Logger
}

// NewNormalizer constructs a Normalizer. The logger receives a warning for
// every skipped entry; nil disables that reporting.
func NewNormalizer(logger *slog.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize maps feed rows onto domain games, preserving input order. The
// only error it returns is an unknown season; a row that cannot be
// normalized is logged with its index and skipped so the rest of the season
// still loads.
func (n *Normalizer) Normalize(seasonID int, entries []RawGameEntry) ([]domain.Game, error) {
	season, err := seasons.Resolve(seasonID)
	if err != nil {
		return nil, err
	}

	games := make([]domain.Game, 0, len(entries))
	for i, entry := range entries {
		game, err := n.normalizeEntry(season, entry)
		if err != nil {
			entryErr := &MalformedEntryError{Index: i, Err: err}
			logging.Warn(n.logger, "skipping malformed schedule entry",
				slog.Int(logging.FieldSeason, seasonID),
				slog.Int(logging.FieldEntryIndex, i),
				"error", entryErr,
			)
			continue
		}
		games = append(games, game)
	}
	return games, nil
}

func (n *Normalizer) normalizeEntry(season seasons.Season, entry RawGameEntry) (domain.Game, error) {
	date, err := timeutil.ParseFeedDate(entry.DateWithDay, season.StartYear)
	if err != nil {
		return domain.Game{}, err
	}

	game := domain.Game{
		ID:       entry.GameID,
		SeasonID: season.ID,
		Date:     date,
		AwayTeam: entry.VisitingTeamCity,
		HomeTeam: entry.HomeTeamCity,
		Status:   mapStatus(entry.GameStatus),
		Venue:    entry.VenueName,
	}

	// Scores only exist on completed games; the feed sometimes carries
	// zeroes on scheduled rows and those must not leak through.
	if game.Status.Completed() {
		away, awayErr := strconv.Atoi(strings.TrimSpace(entry.VisitingGoalCount))
		home, homeErr := strconv.Atoi(strings.TrimSpace(entry.HomeGoalCount))
		if awayErr == nil && homeErr == nil {
			game.AwayScore = &away
			game.HomeScore = &home
		}
	}

	return game, nil
}
