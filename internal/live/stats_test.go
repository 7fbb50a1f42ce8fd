package live

import (
	"errors"
	"math"
	"testing"

	"github.com/nitesh-shaw-098/m-indicator-app/internal/models"
)

func TestWelfordMatchesDirectComputation(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	var w welford
	for _, v := range values {
		w.update(v)
	}
	if w.count != len(values) {
		t.Fatalf("count = %d", w.count)
	}
	if math.Abs(w.mean-5) > 1e-9 {
		t.Errorf("mean = %f, want 5", w.mean)
	}
	if math.Abs(w.stdDev()-2) > 1e-9 {
		t.Errorf("stddev = %f, want 2", w.stdDev())
	}

	var single welford
	single.update(3)
	if single.stdDev() != 0 {
		t.Errorf("single observation stddev = %f, want 0", single.stdDev())
	}
}

func TestStatsAccumulateAcrossRefreshes(t *testing.T) {
	rnd := &scriptedRand{ints: []int{1}, floats: []float64{0.99}}
	state := NewState(seed(
		train("WR-S-025", 4, models.StatusDelayed, 6),
		train("WR-F-012", 3, models.StatusOnTime, 0),
	), rnd, nil)

	before, err := state.Stats(models.LineWestern)
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if before.Observations != 0 || before.Line != models.LineWestern {
		t.Errorf("stats before refresh = %+v", before)
	}

	state.Refresh(models.LineWestern)
	state.Refresh(models.LineWestern)

	got, _ := state.Stats(models.LineWestern)
	if got.Observations != 4 {
		t.Errorf("Observations = %d, want 4", got.Observations)
	}
	if math.Abs(got.MeanDelay-3) > 1e-9 || math.Abs(got.StdDevDelay-3) > 1e-9 {
		t.Errorf("mean/stddev = %f/%f, want 3/3", got.MeanDelay, got.StdDevDelay)
	}
	if got.DelayedCount != 2 || got.OnTimeCount != 2 {
		t.Errorf("delayed/on-time = %d/%d, want 2/2", got.DelayedCount, got.OnTimeCount)
	}
	if got.MaxDelay != 6 {
		t.Errorf("MaxDelay = %d, want 6", got.MaxDelay)
	}

	other, _ := state.Stats(models.LineCentral)
	if other.Observations != 0 {
		t.Errorf("central line observed %d delays without a refresh", other.Observations)
	}
}

func TestStatsRefreshAllCoversEveryLine(t *testing.T) {
	rnd := &scriptedRand{ints: []int{1}, floats: []float64{0.99}}
	central := train("CR-F-101", 5, models.StatusOnTime, 0)
	central.Line = models.LineCentral
	state := NewState(map[models.Line][]models.LiveTrain{
		models.LineWestern: {train("WR-F-012", 3, models.StatusOnTime, 0)},
		models.LineCentral: {central},
	}, rnd, nil)

	state.RefreshAll()

	for _, line := range []models.Line{models.LineWestern, models.LineCentral} {
		got, _ := state.Stats(line)
		if got.Observations != 1 {
			t.Errorf("%s: Observations = %d, want 1", line, got.Observations)
		}
	}
	harbour, _ := state.Stats(models.LineHarbour)
	if harbour.Observations != 0 {
		t.Errorf("harbour has no trains but recorded %d observations", harbour.Observations)
	}
}

func TestStatsInvalidLine(t *testing.T) {
	state := NewState(nil, &scriptedRand{ints: []int{0}, floats: []float64{0}}, nil)
	if _, err := state.Stats("metro"); !errors.Is(err, models.ErrInvalidLine) {
		t.Errorf("expected ErrInvalidLine, got %v", err)
	}
}
