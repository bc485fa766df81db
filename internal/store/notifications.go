package store

import (
	"context"
	"time"

	"github.com/shopease/storefront-client/internal/models"
)

// pushNotificationLocked appends a notification with a monotonic id and
// schedules its auto-dismissal. Display order follows insertion order.
func (s *Store) pushNotificationLocked(message string, severity models.Severity) {

	s.notifSeq++
	id := s.notifSeq

	s.state.Notifications = append(s.state.Notifications, models.Notification{
		ID:        id,
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now(),
	})

	if s.notificationTTL <= 0 {
		return
	}

	s.dismissTimers[id] = time.AfterFunc(s.notificationTTL, func() {
		s.Dispatch(context.Background(), DismissNotification{ID: id})
	})
}

func (s *Store) dismissNotificationLocked(id int64) {

	if timer, ok := s.dismissTimers[id]; ok {
		timer.Stop()
		delete(s.dismissTimers, id)
	}

	out := s.state.Notifications[:0]

	for _, n := range s.state.Notifications {
		if n.ID != id {
			out = append(out, n)
		}
	}

	s.state.Notifications = out
}

// Notify is the dispatch shorthand the services layer uses for user-facing
// messages.
func (s *Store) Notify(ctx context.Context, message string, severity models.Severity) {
	s.Dispatch(ctx, PushNotification{Message: message, Severity: severity})
}
