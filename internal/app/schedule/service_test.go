package schedule

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"pwhl-schedule-service/internal/domain"
	"pwhl-schedule-service/internal/filter"
	"pwhl-schedule-service/internal/providers"
	"pwhl-schedule-service/internal/seasons"
	"pwhl-schedule-service/internal/testutil"
)

// fakeCache is an in-test Cache keyed by season, with optional per-season
// failures and call tracking.
type fakeCache struct {
	games          map[int][]domain.Game
	errs           map[int]error
	gets           map[int]int
	invalidated    []int
	invalidatedAll bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		games: make(map[int][]domain.Game),
		errs:  make(map[int]error),
		gets:  make(map[int]int),
	}
}

func (f *fakeCache) Get(ctx context.Context, seasonID int) ([]domain.Game, error) {
	f.gets[seasonID]++
	if err, ok := f.errs[seasonID]; ok {
		return nil, err
	}
	return f.games[seasonID], nil
}

func (f *fakeCache) Invalidate(seasonID int) {
	f.invalidated = append(f.invalidated, seasonID)
}

func (f *fakeCache) InvalidateAll() {
	f.invalidatedAll = true
}

func TestScheduleSingleSeason(t *testing.T) {
	cache := newFakeCache()
	cache.games[5] = []domain.Game{
		testutil.FinalGame("1", 5, testutil.Date(2024, time.November, 30), 2, 3),
		testutil.ScheduledGame("2", 5, testutil.Date(2025, time.February, 2)),
	}
	svc := NewService(cache, nil)

	season := 5
	view, err := svc.Schedule(context.Background(), filter.Criteria{SeasonID: &season})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(view.Games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(view.Games))
	}
	if view.Stats.Total != 2 || view.Stats.Completed != 1 || view.Stats.Pending != 1 {
		t.Fatalf("unexpected stats: %+v", view.Stats)
	}
	if view.Stats.AverageCombinedScore != 5.0 {
		t.Fatalf("expected average 5.0, got %v", view.Stats.AverageCombinedScore)
	}
	if len(cache.gets) != 1 {
		t.Fatalf("expected only season 5 loaded, got %v", cache.gets)
	}
}

func TestScheduleUnknownSeasonSkipsCache(t *testing.T) {
	cache := newFakeCache()
	svc := NewService(cache, nil)

	season := 42
	_, err := svc.Schedule(context.Background(), filter.Criteria{SeasonID: &season})
	if _, ok := seasons.AsUnknownSeason(err); !ok {
		t.Fatalf("expected unknown season error, got %v", err)
	}
	if len(cache.gets) != 0 {
		t.Fatalf("expected no cache access, got %v", cache.gets)
	}
}

func TestScheduleAggregatesAllSeasonsChronologically(t *testing.T) {
	cache := newFakeCache()
	cache.games[5] = []domain.Game{testutil.ScheduledGame("late", 5, testutil.Date(2025, time.March, 1))}
	cache.games[1] = []domain.Game{testutil.ScheduledGame("early", 1, testutil.Date(2024, time.January, 1))}
	svc := NewService(cache, nil)

	view, err := svc.Schedule(context.Background(), filter.Criteria{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(view.Games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(view.Games))
	}
	if view.Games[0].ID != "early" || view.Games[1].ID != "late" {
		t.Fatalf("expected chronological order, got %s then %s", view.Games[0].ID, view.Games[1].ID)
	}
	if len(cache.gets) != len(seasons.List()) {
		t.Fatalf("expected every season loaded, got %v", cache.gets)
	}
}

func TestScheduleAggregateSkipsFailingSeason(t *testing.T) {
	cache := newFakeCache()
	cache.games[5] = []domain.Game{testutil.ScheduledGame("1", 5, testutil.Date(2025, time.March, 1))}
	cache.errs[8] = &providers.UpstreamUnavailableError{Provider: "test", StatusCode: 503}
	logger, buf := testutil.NewBufferLogger()
	svc := NewService(cache, logger)

	view, err := svc.Schedule(context.Background(), filter.Criteria{})
	if err != nil {
		t.Fatalf("expected partial result, got %v", err)
	}
	if len(view.Games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(view.Games))
	}
	if buf.Len() == 0 {
		t.Fatalf("expected skipped season to be logged")
	}
}

func TestScheduleAggregateAllSeasonsFailing(t *testing.T) {
	cache := newFakeCache()
	for _, season := range seasons.List() {
		cache.errs[season.ID] = &providers.UpstreamUnavailableError{Provider: "test", StatusCode: 503}
	}
	svc := NewService(cache, nil)

	_, err := svc.Schedule(context.Background(), filter.Criteria{})
	if _, ok := providers.AsUpstreamUnavailable(err); !ok {
		t.Fatalf("expected upstream unavailable error, got %v", err)
	}
}

func TestScheduleBuildsFilterOptions(t *testing.T) {
	cache := newFakeCache()
	cache.games[5] = []domain.Game{
		testutil.FinalGame("1", 5, testutil.Date(2024, time.November, 30), 2, 3),
		testutil.ScheduledGame("2", 5, testutil.Date(2025, time.February, 2)),
	}
	svc := NewService(cache, nil)

	season := 5
	view, err := svc.Schedule(context.Background(), filter.Criteria{SeasonID: &season})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(view.Filters.Teams) != 2 || view.Filters.Teams[0] != "Montreal" || view.Filters.Teams[1] != "Toronto" {
		t.Fatalf("expected sorted distinct teams, got %v", view.Filters.Teams)
	}
	if len(view.Filters.Statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %v", view.Filters.Statuses)
	}
}

func TestExportCSVStreamsFilteredView(t *testing.T) {
	cache := newFakeCache()
	cache.games[5] = []domain.Game{
		testutil.FinalGame("1", 5, testutil.Date(2024, time.November, 30), 2, 3),
		testutil.ScheduledGame("2", 5, testutil.Date(2025, time.February, 2)),
	}
	svc := NewService(cache, nil)

	season := 5
	var buf bytes.Buffer
	err := svc.ExportCSV(context.Background(), filter.Criteria{SeasonID: &season, Status: "final"}, &buf)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to read csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus 1 row, got %d records", len(records))
	}
}

func TestRefreshSingleSeason(t *testing.T) {
	cache := newFakeCache()
	cache.games[5] = []domain.Game{testutil.ScheduledGame("1", 5, testutil.Date(2025, time.March, 1))}
	svc := NewService(cache, nil)

	season := 5
	if err := svc.Refresh(context.Background(), &season); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != 5 {
		t.Fatalf("expected season 5 invalidated, got %v", cache.invalidated)
	}
	if cache.gets[5] != 1 {
		t.Fatalf("expected season 5 refetched, got %v", cache.gets)
	}
}

func TestRefreshUnknownSeason(t *testing.T) {
	cache := newFakeCache()
	svc := NewService(cache, nil)

	season := 42
	err := svc.Refresh(context.Background(), &season)
	if _, ok := seasons.AsUnknownSeason(err); !ok {
		t.Fatalf("expected unknown season error, got %v", err)
	}
	if len(cache.invalidated) != 0 {
		t.Fatalf("expected no invalidation, got %v", cache.invalidated)
	}
}

func TestRefreshAllSeasons(t *testing.T) {
	cache := newFakeCache()
	svc := NewService(cache, nil)

	if err := svc.Refresh(context.Background(), nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !cache.invalidatedAll {
		t.Fatalf("expected InvalidateAll")
	}
	if len(cache.gets) != len(seasons.List()) {
		t.Fatalf("expected every season refetched, got %v", cache.gets)
	}
}
