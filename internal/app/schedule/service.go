package schedule

import (
	"context"
	"io"
	"log/slog"
	"sort"

	"pwhl-schedule-service/internal/domain"
	"pwhl-schedule-service/internal/export"
	"pwhl-schedule-service/internal/filter"
	"pwhl-schedule-service/internal/logging"
	"pwhl-schedule-service/internal/seasons"
)

// Cache defines the schedule source the service reads from.
type Cache interface {
	Get(ctx context.Context, seasonID int) ([]domain.Game, error)
	Invalidate(seasonID int)
	InvalidateAll()
}

// Service composes the season registry, the cache, and the filter engine
// into the operations the HTTP surface exposes.
type Service struct {
	cache  Cache
	logger *slog.Logger
}

// NewService constructs a schedule Service.
func NewService(cache Cache, logger *slog.Logger) *Service {
	return &Service{cache: cache, logger: logger}
}

// View is one filtered look at the schedule: the matching games, their
// aggregate stats, and the filter options present in the result.
type View struct {
	Games   []domain.Game  `json:"games"`
	Stats   filter.Summary `json:"stats"`
	Filters FilterOptions  `json:"filters"`
}

// FilterOptions lists the distinct team names and status values present in
// a filtered set, used to populate selection controls.
type FilterOptions struct {
	Teams    []string `json:"teams"`
	Statuses []string `json:"statuses"`
}

// Seasons lists every known season in ascending identifier order.
func (s *Service) Seasons() []seasons.Season {
	return seasons.List()
}

// Schedule loads games for the criteria's season (or every season when none
// is set), applies the criteria, and summarizes the result. In the
// multi-season case a failing season is logged and skipped as long as at
// least one season loads; when all fail the last error propagates.
func (s *Service) Schedule(ctx context.Context, criteria filter.Criteria) (View, error) {
	games, err := s.load(ctx, criteria)
	if err != nil {
		return View{}, err
	}

	filtered := filter.Apply(games, criteria)
	return View{
		Games:   filtered,
		Stats:   filter.Summarize(filtered),
		Filters: buildFilterOptions(filtered),
	}, nil
}

// ExportCSV renders the filtered schedule as CSV. An empty result is a
// legitimate header-only export.
func (s *Service) ExportCSV(ctx context.Context, criteria filter.Criteria, w io.Writer) error {
	view, err := s.Schedule(ctx, criteria)
	if err != nil {
		return err
	}
	return export.WriteCSV(w, view.Games)
}

// Refresh invalidates and re-fetches one season, or every season when
// seasonID is nil.
func (s *Service) Refresh(ctx context.Context, seasonID *int) error {
	if seasonID != nil {
		if _, err := seasons.Resolve(*seasonID); err != nil {
			return err
		}
		s.cache.Invalidate(*seasonID)
		_, err := s.cache.Get(ctx, *seasonID)
		return err
	}

	s.cache.InvalidateAll()
	var lastErr error
	for _, season := range seasons.List() {
		if _, err := s.cache.Get(ctx, season.ID); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func (s *Service) load(ctx context.Context, criteria filter.Criteria) ([]domain.Game, error) {
	if criteria.SeasonID != nil {
		if _, err := seasons.Resolve(*criteria.SeasonID); err != nil {
			return nil, err
		}
		return s.cache.Get(ctx, *criteria.SeasonID)
	}

	var (
		all     []domain.Game
		loaded  int
		lastErr error
	)
	for _, season := range seasons.List() {
		games, err := s.cache.Get(ctx, season.ID)
		if err != nil {
			lastErr = err
			logging.Warn(s.logger, "skipping season in aggregate view",
				slog.Int(logging.FieldSeason, season.ID),
				"error", err,
			)
			continue
		}
		loaded++
		all = append(all, games...)
	}
	if loaded == 0 && lastErr != nil {
		return nil, lastErr
	}

	// Per-season slices arrive in upstream order; the combined view reads
	// chronologically. The sort is stable so same-day games keep their
	// feed order.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date.Before(all[j].Date)
	})
	return all, nil
}

func buildFilterOptions(games []domain.Game) FilterOptions {
	teamSet := make(map[string]struct{})
	statusSet := make(map[string]struct{})
	for _, g := range games {
		teamSet[g.AwayTeam] = struct{}{}
		teamSet[g.HomeTeam] = struct{}{}
		statusSet[string(g.Status)] = struct{}{}
	}

	opts := FilterOptions{
		Teams:    make([]string, 0, len(teamSet)),
		Statuses: make([]string, 0, len(statusSet)),
	}
	for team := range teamSet {
		opts.Teams = append(opts.Teams, team)
	}
	for status := range statusSet {
		opts.Statuses = append(opts.Statuses, status)
	}
	sort.Strings(opts.Teams)
	sort.Strings(opts.Statuses)
	return opts
}
