package schedule

import (
	"errors"
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/nitesh-shaw-098/m-indicator-app/internal/dataset"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/models"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/network"
)

// scriptedRand replays fixed draws, cycling when exhausted
type scriptedRand struct {
	ints   []int
	floats []float64
	i, f   int
}

func (r *scriptedRand) Intn(n int) int {
	v := r.ints[r.i%len(r.ints)] % n
	r.i++
	return v
}

func (r *scriptedRand) Float64() float64 {
	v := r.floats[r.f%len(r.floats)]
	r.f++
	return v
}

var fixedNow = time.Date(2024, 3, 4, 22, 50, 0, 0, time.UTC)

func newStore(t *testing.T, rnd Rand) *Store {
	t.Helper()
	return newStoreAt(t, rnd, fixedNow)
}

func newStoreAt(t *testing.T, rnd Rand, now time.Time) *Store {
	t.Helper()
	ds, err := dataset.Load()
	if err != nil {
		t.Fatalf("failed to load dataset: %v", err)
	}
	return NewStore(network.NewRegistry(ds.Stations), ds.Timetables, rnd, func() time.Time { return now })
}

func TestGetScheduleExplicit(t *testing.T) {
	store := newStore(t, rand.New(rand.NewSource(1)))

	all, err := store.GetSchedule("Churchgate", "Virar", models.CategoryAll)
	if err != nil {
		t.Fatalf("GetSchedule error: %v", err)
	}
	if len(all) != 22 {
		t.Fatalf("expected 22 runs (10 slow + 10 fast + 2 ladies), got %d", len(all))
	}
	if all[0].Category != models.CategorySlow || all[10].Category != models.CategoryFast || all[20].Category != models.CategoryLadies {
		t.Errorf("categories not concatenated slow, fast, ladies: %s %s %s", all[0].Category, all[10].Category, all[20].Category)
	}
	if all[0].Departure.String() != "05:27" {
		t.Errorf("first slow run departs %s, want 05:27", all[0].Departure)
	}

	fast, err := store.GetSchedule("CG", "VRR", models.CategoryFast)
	if err != nil {
		t.Fatalf("GetSchedule error: %v", err)
	}
	if len(fast) != 10 {
		t.Fatalf("expected 10 fast runs, got %d", len(fast))
	}
	for _, e := range fast {
		if e.Category != models.CategoryFast {
			t.Errorf("run %s has category %s", e.TrainNumber, e.Category)
		}
	}

	fast[0].Platform = 99
	again, _ := store.GetSchedule("CG", "VRR", models.CategoryFast)
	if again[0].Platform == 99 {
		t.Error("GetSchedule must not expose the stored timetable")
	}
}

func TestGetScheduleMissingCategoryIsEmpty(t *testing.T) {
	store := newStore(t, rand.New(rand.NewSource(1)))

	ladies, err := store.GetSchedule("Churchgate", "Borivali", models.CategoryLadies)
	if err != nil {
		t.Fatalf("GetSchedule error: %v", err)
	}
	if !store.HasTimetable(models.LineWestern, "CG", "BHY") {
		t.Fatal("expected an explicit CG-BHY timetable")
	}
	if len(ladies) != 0 {
		t.Errorf("expected no ladies runs on CG-BHY, got %d", len(ladies))
	}
}

func TestGetScheduleSynthetic(t *testing.T) {
	rnd := &scriptedRand{ints: []int{0, 5, 2}, floats: []float64{0.1, 0.95}}
	store := newStore(t, rnd)

	entries, err := store.GetSchedule("Andheri", "Dadar", models.CategoryFast)
	if err != nil {
		t.Fatalf("GetSchedule error: %v", err)
	}
	if len(entries) != SyntheticRuns {
		t.Fatalf("expected %d synthetic runs, got %d", SyntheticRuns, len(entries))
	}

	start := models.TimeOfDayOf(fixedNow)
	for i, e := range entries {
		if want := start.Add(SyntheticHeadway * models.Minutes(i)); e.Departure != want {
			t.Errorf("run %d departs %s, want %s", i, e.Departure, want)
		}
		if e.Duration != 30 || e.Arrival != e.Departure.Add(30) {
			t.Errorf("fast run %d: duration %d arrival %s", i, e.Duration, e.Arrival)
		}
		if e.Platform < 1 || e.Platform > 6 {
			t.Errorf("run %d platform %d out of range", i, e.Platform)
		}
	}

	// The last run leaves after midnight and still sorts last
	if entries[9].Departure.String() != "01:05" || entries[9].Departure.Day() != 1 {
		t.Errorf("last departure %s (day %d), want 01:05 on day 1", entries[9].Departure, entries[9].Departure.Day())
	}

	if entries[0].TrainNumber != "WR-F-001" || entries[9].TrainNumber != "WR-F-010" {
		t.Errorf("unexpected train numbers %s, %s", entries[0].TrainNumber, entries[9].TrainNumber)
	}
	if entries[0].Platform != 1 || entries[1].Platform != 6 || entries[2].Platform != 3 {
		t.Errorf("platforms did not follow the random source: %d %d %d", entries[0].Platform, entries[1].Platform, entries[2].Platform)
	}
	if entries[0].Status != models.StatusOnTime || entries[1].Status != models.StatusDelayed {
		t.Errorf("statuses did not follow the random source: %s %s", entries[0].Status, entries[1].Status)
	}
}

func TestGetScheduleSyntheticAcrossMidnight(t *testing.T) {
	for _, clock := range []string{"21:46", "23:00", "23:55", "23:59"} {
		at, _ := time.Parse("15:04", clock)
		now := time.Date(2024, 3, 4, at.Hour(), at.Minute(), 0, 0, time.UTC)
		store := newStoreAt(t, rand.New(rand.NewSource(7)), now)

		entries, err := store.GetSchedule("Andheri", "Dadar", models.CategorySlow)
		if err != nil {
			t.Fatalf("%s: GetSchedule error: %v", clock, err)
		}
		if len(entries) != SyntheticRuns {
			t.Fatalf("%s: expected %d runs, got %d", clock, SyntheticRuns, len(entries))
		}
		if entries[0].Departure.String() != clock {
			t.Errorf("%s: first run departs %s", clock, entries[0].Departure)
		}
		for i := 1; i < len(entries); i++ {
			prev, cur := entries[i-1].Departure, entries[i].Departure
			if cur < prev {
				t.Errorf("%s: run %d departs %s before run %d at %s", clock, i+1, cur, i, prev)
			}
			if models.Minutes(cur-prev) != SyntheticHeadway {
				t.Errorf("%s: runs %d and %d are %d minutes apart, want %d", clock, i, i+1, cur-prev, SyntheticHeadway)
			}
			if entries[i].Arrival < cur {
				t.Errorf("%s: run %d arrives %s before it departs", clock, i+1, entries[i].Arrival)
			}
		}
	}
}

func TestGetScheduleSyntheticDefaults(t *testing.T) {
	store := newStore(t, rand.New(rand.NewSource(42)))
	pattern := regexp.MustCompile(`^CR-[SLA]-\d{3}$`)

	for _, category := range []models.Category{models.CategorySlow, models.CategoryLadies, models.CategoryAll} {
		entries, err := store.GetSchedule("Thane", "Kurla", category)
		if err != nil {
			t.Fatalf("GetSchedule error: %v", err)
		}
		if len(entries) != SyntheticRuns {
			t.Fatalf("%s: expected %d runs, got %d", category, SyntheticRuns, len(entries))
		}
		for _, e := range entries {
			if e.Duration != 45 {
				t.Errorf("%s: duration %d, want 45", category, e.Duration)
			}
			if !pattern.MatchString(e.TrainNumber) {
				t.Errorf("%s: train number %q does not match %s", category, e.TrainNumber, pattern)
			}
			if !e.Status.Valid() {
				t.Errorf("%s: invalid status %q", category, e.Status)
			}
		}
	}
}

func TestGetScheduleUnresolved(t *testing.T) {
	store := newStore(t, rand.New(rand.NewSource(1)))

	entries, err := store.GetSchedule("Pune", "Dadar", models.CategoryAll)
	if err != nil {
		t.Fatalf("GetSchedule error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no runs for an unknown origin, got %d", len(entries))
	}

	entries, _ = store.GetSchedule("Dadar", "Nashik", models.CategoryAll)
	if len(entries) != 0 {
		t.Errorf("expected no runs for an unknown destination, got %d", len(entries))
	}
}

func TestGetScheduleErrors(t *testing.T) {
	store := newStore(t, rand.New(rand.NewSource(1)))

	if _, err := store.GetSchedule("", "Dadar", models.CategoryAll); !errors.Is(err, network.ErrEmptyIdentifier) {
		t.Errorf("expected ErrEmptyIdentifier, got %v", err)
	}
	if _, err := store.GetSchedule("Dadar", "Bandra", models.Category("express")); !errors.Is(err, models.ErrInvalidCategory) {
		t.Errorf("expected ErrInvalidCategory, got %v", err)
	}
}
