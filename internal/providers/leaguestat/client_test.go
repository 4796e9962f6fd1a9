package leaguestat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"pwhl-schedule-service/internal/providers"
	"pwhl-schedule-service/internal/seasons"
)

const scheduleBody = `([{"sections":[{"data":[
  {"row":{"game_id":"101","date_with_day":"Sat, Nov 30","game_status":"Final","home_team_city":"Montreal","visiting_team_city":"Toronto","home_goal_count":"3","visiting_goal_count":"2","venue_name":"Place Bell"}},
  {"row":{"game_id":"102","date_with_day":"Sun, Feb 2","game_status":"","home_team_city":"Ottawa","visiting_team_city":"New York","home_goal_count":"0","visiting_goal_count":"0"}}
]}]}])`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	return client, srv
}

func TestFetchScheduleParsesWrappedEnvelope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(scheduleBody))
	})

	entries, err := client.FetchSchedule(context.Background(), 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].GameID != "101" || entries[0].DateWithDay != "Sat, Nov 30" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].GameStatus != "" {
		t.Fatalf("expected empty status preserved, got %q", entries[1].GameStatus)
	}
}

func TestFetchScheduleSendsFeedQuery(t *testing.T) {
	var gotQuery atomic.Value
	var gotUA atomic.Value
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		gotUA.Store(r.Header.Get("User-Agent"))
		w.Write([]byte(`([])`))
	})

	if _, err := client.FetchSchedule(context.Background(), 5); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	q := gotQuery.Load().(url.Values)
	if q.Get("feed") != "statviewfeed" || q.Get("view") != "schedule" {
		t.Fatalf("unexpected feed/view parameters")
	}
	if q.Get("season") != "5" {
		t.Fatalf("expected season 5, got %q", q.Get("season"))
	}
	if q.Get("client_code") != "pwhl" {
		t.Fatalf("expected default client code, got %q", q.Get("client_code"))
	}
	if q.Get("key") == "" {
		t.Fatalf("expected a feed key to be sent")
	}
	if gotUA.Load().(string) == "" {
		t.Fatalf("expected a User-Agent header")
	}
}

func TestFetchScheduleRejectsUnknownSeasonBeforeNetwork(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`([])`))
	})

	_, err := client.FetchSchedule(context.Background(), 42)
	if _, ok := seasons.AsUnknownSeason(err); !ok {
		t.Fatalf("expected unknown season error, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no upstream call, got %d", calls.Load())
	}
}

func TestFetchScheduleNonSuccessStatusIsUnavailable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.FetchSchedule(context.Background(), 5)
	uuErr, ok := providers.AsUpstreamUnavailable(err)
	if !ok {
		t.Fatalf("expected upstream unavailable error, got %v", err)
	}
	if uuErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503 in error, got %d", uuErr.StatusCode)
	}
}

func TestFetchScheduleUndecodableBodyIsMalformed(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	})

	_, err := client.FetchSchedule(context.Background(), 5)
	if _, ok := providers.AsUpstreamMalformed(err); !ok {
		t.Fatalf("expected upstream malformed error, got %v", err)
	}
}

func TestFetchScheduleEmptyEnvelopeIsEmptySchedule(t *testing.T) {
	for _, body := range []string{`([])`, `([{"sections":[]}])`, `([{"sections":[{"data":[]}]}])`} {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})
		entries, err := client.FetchSchedule(context.Background(), 5)
		if err != nil {
			t.Fatalf("body %q: expected no error, got %v", body, err)
		}
		if len(entries) != 0 {
			t.Fatalf("body %q: expected empty schedule, got %d entries", body, len(entries))
		}
	}
}

func TestFetchScheduleConnectionErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(Config{BaseURL: url})
	_, err := client.FetchSchedule(context.Background(), 5)
	if _, ok := providers.AsUpstreamUnavailable(err); !ok {
		t.Fatalf("expected upstream unavailable error, got %v", err)
	}
}
