package secondary

import "context"

// Notifier pushes events to a session's own channel or to the admin audience.
// Delivery is fire-and-forget and at-most-once.
type Notifier interface {
	NotifySession(ctx context.Context, sessionID string, event string, payload interface{}) error
	NotifyAudience(ctx context.Context, event string, payload interface{}) error
}
