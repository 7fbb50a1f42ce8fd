package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nitesh-shaw-098/m-indicator-app/internal/live"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/models"
)

// MaxNotifications caps the in-memory feed
const MaxNotifications = 50

// Feed is the in-memory notification list, newest first
type Feed struct {
	mu    sync.RWMutex
	items []models.Notification
}

// NewFeed seeds the feed. Seed notifications are ordered newest first.
func NewFeed(seed []models.Notification) *Feed {
	f := &Feed{}
	for i := len(seed) - 1; i >= 0; i-- {
		f.push(seed[i])
	}
	return f
}

// Add puts a notification at the front of the feed
func (f *Feed) Add(n models.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.push(n)
}

func (f *Feed) push(n models.Notification) {
	f.items = append([]models.Notification{n}, f.items...)
	if len(f.items) > MaxNotifications {
		f.items = f.items[:MaxNotifications]
	}
}

func (f *Feed) List() []models.Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]models.Notification, len(f.items))
	copy(out, f.items)
	return out
}

func (f *Feed) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = nil
}

// DelayAlerts turns live status transitions into notifications: a warning
// when a train falls behind, a success note when it recovers.
func DelayAlerts(transitions []live.Transition, now time.Time) []models.Notification {
	var out []models.Notification
	for _, tr := range transitions {
		t := tr.Train
		n := models.Notification{
			ID:          uuid.New().String(),
			Line:        t.Line,
			TrainNumber: t.TrainNumber,
			CreatedAt:   now,
		}
		if t.Status == models.StatusDelayed {
			n.Title = "Delay Alert"
			n.Type = models.NotificationWarning
			n.Message = fmt.Sprintf("%s (%s) is running %s late near %s", t.TrainNumber, t.Route, t.Delay, t.CurrentStation)
		} else {
			n.Title = "Back On Time"
			n.Type = models.NotificationSuccess
			n.Message = fmt.Sprintf("%s (%s) is running on time", t.TrainNumber, t.Route)
		}
		out = append(out, n)
	}
	return out
}
