package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nitesh-shaw-098/m-indicator-app/internal/live"
)

// Notifier raises delay alerts from live refreshes into the feed and the
// publisher
type Notifier struct {
	feed      *Feed
	publisher Publisher
	log       *zap.SugaredLogger
	now       func() time.Time
}

func NewNotifier(feed *Feed, publisher Publisher, log *zap.SugaredLogger, now func() time.Time) *Notifier {
	if now == nil {
		now = time.Now
	}
	return &Notifier{feed: feed, publisher: publisher, log: log, now: now}
}

// HandleTransitions records one notification per transition. Publish
// failures are logged and do not stop the remaining alerts.
func (n *Notifier) HandleTransitions(ctx context.Context, transitions []live.Transition) {
	for _, alert := range DelayAlerts(transitions, n.now()) {
		n.feed.Add(alert)
		if err := n.publisher.Publish(ctx, alert); err != nil {
			n.log.Warnw("error publishing notification", "train", alert.TrainNumber, "error", err)
		} else {
			n.log.Debugw("published notification", "train", alert.TrainNumber, "type", alert.Type)
		}
	}
}
