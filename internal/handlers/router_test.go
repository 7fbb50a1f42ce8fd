package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/nitesh-shaw-098/m-indicator-app/internal/dataset"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/live"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/logging"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/models"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/notify"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/transit"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/userdata"
)

type testServer struct {
	handler http.Handler
	feed    *notify.Feed
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ds, err := dataset.Load()
	if err != nil {
		t.Fatalf("failed to load dataset: %v", err)
	}
	now := func() time.Time { return time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC) }
	core := transit.New(ds, transit.Options{Seed: 1, Now: now})

	store, err := userdata.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "userdata.db"))
	if err != nil {
		t.Fatalf("OpenSQLite error: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	log := logging.Nop()
	feed := notify.NewFeed(ds.Notifications(now()))
	return &testServer{
		handler: NewRouter(RouterConfig{
			Core:          core,
			UserData:      userdata.NewService(store, now),
			Notifications: feed,
			Notifier:      notify.NewNotifier(feed, notify.NewLogPublisher(log), log, now),
			Log:           log,
			CORSOrigins:   []string{"http://localhost:5173"},
		}),
		feed: feed,
	}
}

func (s *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func TestStatusCodes(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		method, target, body string
		want                 int
	}{
		{"GET", "/health", "", http.StatusOK},
		{"GET", "/api/stations?q=dad", "", http.StatusOK},
		{"GET", "/api/stations/THN", "", http.StatusOK},
		{"GET", "/api/stations/Lonavala", "", http.StatusNotFound},
		{"GET", "/api/stations/nearest?lat=19.0186&lon=72.8430", "", http.StatusOK},
		{"GET", "/api/stations/nearest?lat=north&lon=72.8", "", http.StatusBadRequest},
		{"GET", "/api/lines/central/stations", "", http.StatusOK},
		{"GET", "/api/lines/metro/stations", "", http.StatusBadRequest},
		{"GET", "/api/schedule?from=Churchgate&to=Virar", "", http.StatusOK},
		{"GET", "/api/schedule?from=Churchgate", "", http.StatusBadRequest},
		{"GET", "/api/schedule?from=Dadar&to=dadar", "", http.StatusBadRequest},
		{"GET", "/api/schedule?from=Churchgate&to=Virar&category=express", "", http.StatusBadRequest},
		{"GET", "/api/fares?fromZone=1&toZone=3&class=first", "", http.StatusOK},
		{"GET", "/api/fares?fromZone=one&toZone=3", "", http.StatusBadRequest},
		{"GET", "/api/fares?fromZone=1&toZone=3&class=business", "", http.StatusBadRequest},
		{"GET", "/api/routes?from=Andheri&to=Thane", "", http.StatusOK},
		{"GET", "/api/routes?to=Thane", "", http.StatusBadRequest},
		{"GET", "/api/live/western", "", http.StatusOK},
		{"GET", "/api/live/monorail", "", http.StatusBadRequest},
		{"POST", "/api/live/harbour/refresh", "", http.StatusOK},
		{"GET", "/api/live/central/stats", "", http.StatusOK},
		{"GET", "/api/live/monorail/stats", "", http.StatusBadRequest},
		{"GET", "/api/favorites", "", http.StatusOK},
		{"POST", "/api/favorites", `{"from":"Churchgate","to":"Andheri"}`, http.StatusCreated},
		{"POST", "/api/favorites", `{"from":"","to":"Andheri"}`, http.StatusBadRequest},
		{"POST", "/api/favorites", `not json`, http.StatusBadRequest},
		{"DELETE", "/api/favorites/x", "", http.StatusBadRequest},
		{"DELETE", "/api/favorites/7", "", http.StatusNotFound},
		{"GET", "/api/preferences", "", http.StatusOK},
		{"PUT", "/api/preferences", `{"theme":"sepia","notifications":true,"defaultLine":"western","language":"en"}`, http.StatusBadRequest},
		{"GET", "/api/recent-searches", "", http.StatusOK},
		{"GET", "/api/service-updates", "", http.StatusOK},
		{"GET", "/api/notifications", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := srv.do(t, tt.method, tt.target, tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestGetStationByName(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, "GET", "/api/stations/Dadar", "")
	var station models.Station
	decode(t, rec, &station)
	if station.Code != "DDR" || station.Line != models.LineWestern {
		t.Errorf("expected western Dadar, got %+v", station)
	}

	rec = srv.do(t, "GET", "/api/stations/Lonavala", "")
	var errResp ErrorResponse
	decode(t, rec, &errResp)
	if errResp.Error != "Station not found" || errResp.Details["id"] != "Lonavala" {
		t.Errorf("unexpected error body %+v", errResp)
	}
}

func TestNearestStationSuggestion(t *testing.T) {
	srv := newTestServer(t)

	var near NearestStationResponse
	decode(t, srv.do(t, "GET", "/api/stations/nearest?lat=18.9330&lon=72.8270", ""), &near)
	if near.Station.Code != "CG" || !near.Suggested {
		t.Errorf("expected Churchgate suggested, got %+v", near)
	}

	var far NearestStationResponse
	decode(t, srv.do(t, "GET", "/api/stations/nearest?lat=18.5204&lon=73.8567", ""), &far)
	if far.Suggested || far.Station.DistanceMeters <= SuggestionRadiusMeters {
		t.Errorf("a point in Pune should not be suggested, got %+v", far)
	}
}

func TestScheduleRecordsRecentSearch(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, "GET", "/api/schedule?from=Churchgate&to=Virar&category=fast", "")
	var schedule ScheduleResponse
	decode(t, rec, &schedule)
	if schedule.Count != 10 || schedule.Category != models.CategoryFast {
		t.Errorf("unexpected schedule %d/%s", schedule.Count, schedule.Category)
	}
	if schedule.From == nil || schedule.From.Code != "CG" || schedule.Fare != 15 {
		t.Errorf("unexpected schedule header %+v fare %d", schedule.From, schedule.Fare)
	}
	if schedule.DistanceKm < 55 || schedule.DistanceKm > 61 {
		t.Errorf("distance = %.1f km", schedule.DistanceKm)
	}

	var recent struct {
		Items []models.RecentSearch `json:"items"`
	}
	decode(t, srv.do(t, "GET", "/api/recent-searches", ""), &recent)
	if len(recent.Items) != 1 || recent.Items[0].From != "Churchgate" {
		t.Errorf("expected the search to be recorded, got %+v", recent.Items)
	}

	// unresolved stations yield an empty schedule, not an error
	rec = srv.do(t, "GET", "/api/schedule?from=Churchgate&to=Lonavala", "")
	var empty ScheduleResponse
	decode(t, rec, &empty)
	if rec.Code != http.StatusOK || empty.Count != 0 || empty.From != nil {
		t.Errorf("expected an empty schedule, got %d %+v", rec.Code, empty)
	}
}

func TestFavoritesLifecycle(t *testing.T) {
	srv := newTestServer(t)

	srv.do(t, "POST", "/api/favorites", `{"from":"Churchgate","to":"Andheri"}`)
	if rec := srv.do(t, "POST", "/api/favorites", `{"from":"Churchgate","to":"Andheri"}`); rec.Code != http.StatusOK {
		t.Errorf("duplicate favorite status = %d, want 200", rec.Code)
	}
	srv.do(t, "POST", "/api/favorites", `{"from":"Dadar","to":"Thane"}`)

	var list struct {
		Items []models.FavoriteRoute `json:"items"`
		Count int                    `json:"count"`
	}
	decode(t, srv.do(t, "GET", "/api/favorites", ""), &list)
	if list.Count != 2 || list.Items[0].From != "Dadar" {
		t.Fatalf("unexpected favorites %+v", list)
	}

	if rec := srv.do(t, "DELETE", "/api/favorites/0", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	decode(t, srv.do(t, "GET", "/api/favorites", ""), &list)
	if list.Count != 1 || list.Items[0].From != "Churchgate" {
		t.Errorf("unexpected favorites after delete %+v", list)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	var prefs models.Preferences
	decode(t, srv.do(t, "GET", "/api/preferences", ""), &prefs)
	if prefs != models.DefaultPreferences() {
		t.Errorf("expected defaults, got %+v", prefs)
	}

	body := `{"theme":"dark","notifications":false,"defaultLine":"central","language":"hi"}`
	if rec := srv.do(t, "PUT", "/api/preferences", body); rec.Code != http.StatusOK {
		t.Fatalf("save status = %d: %s", rec.Code, rec.Body.String())
	}
	decode(t, srv.do(t, "GET", "/api/preferences", ""), &prefs)
	if prefs.Theme != "dark" || prefs.DefaultLine != models.LineCentral || prefs.Notifications {
		t.Errorf("preferences not saved: %+v", prefs)
	}
}

func TestLiveEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, "GET", "/api/live/western", "")
	var board LiveTrainsResponse
	decode(t, rec, &board)
	if board.Count != 3 || board.Trains[0].ETALabel == "" {
		t.Errorf("unexpected board %+v", board)
	}
	if rec.Header().Get("Cache-Control") == "" {
		t.Error("live responses should be cacheable briefly")
	}
	if board.RefreshedAt != nil {
		t.Error("no refresh has happened yet")
	}

	decode(t, srv.do(t, "POST", "/api/live/western/refresh", ""), &board)
	if board.RefreshedAt == nil || board.Count != 3 {
		t.Errorf("refresh response %+v", board)
	}

	var stats live.DelayStats
	decode(t, srv.do(t, "GET", "/api/live/western/stats", ""), &stats)
	if stats.Line != models.LineWestern || stats.Observations != 3 {
		t.Errorf("stats after one refresh = %+v", stats)
	}
	if stats.DelayedCount+stats.OnTimeCount != stats.Observations {
		t.Errorf("delayed + on-time should equal observations: %+v", stats)
	}

	rec = srv.do(t, "GET", "/api/live/feed", "")
	if rec.Header().Get("Content-Type") != "application/x-protobuf" {
		t.Errorf("content type = %q", rec.Header().Get("Content-Type"))
	}
	var feed gtfs.FeedMessage
	if err := proto.Unmarshal(rec.Body.Bytes(), &feed); err != nil {
		t.Fatalf("feed is not valid protobuf: %v", err)
	}
	if len(feed.Entity) != 6 {
		t.Errorf("expected 6 feed entities, got %d", len(feed.Entity))
	}
}

func TestNotifications(t *testing.T) {
	srv := newTestServer(t)

	var list struct {
		Items []models.Notification `json:"items"`
		Count int                   `json:"count"`
	}
	decode(t, srv.do(t, "GET", "/api/notifications", ""), &list)
	if list.Count != 3 {
		t.Errorf("expected 3 seeded notifications, got %d", list.Count)
	}

	if rec := srv.do(t, "DELETE", "/api/notifications", ""); rec.Code != http.StatusNoContent {
		t.Errorf("clear status = %d", rec.Code)
	}
	if len(srv.feed.List()) != 0 {
		t.Error("feed should be empty after clearing")
	}
}
