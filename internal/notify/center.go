// Package notify holds the in-app notification center: short-lived
// signals shown to the acting session, expired automatically after a
// fixed display window.
package notify

import (
	"sync"
	"time"

	"github.com/turnkey-platform/turnkey-service/internal/domain"
)

// DefaultTTL is the display window before a notification expires.
const DefaultTTL = 5 * time.Second

// Center stores active notifications and expires them on a timer. Ids
// are timestamp-derived and strictly increasing.
type Center struct {
	mu     sync.Mutex
	ttl    time.Duration
	lastID int64
	active map[int64]domain.Notification
	timers map[int64]*time.Timer
}

// NewCenter creates a center with the given TTL; ttl <= 0 uses
// DefaultTTL.
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{
		ttl:    ttl,
		active: make(map[int64]domain.Notification),
		timers: make(map[int64]*time.Timer),
	}
}

// Push adds a notification and schedules its expiry.
func (c *Center) Push(message string, kind domain.NotificationType) domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id

	n := domain.Notification{ID: id, Message: message, Type: kind}
	c.active[id] = n
	c.timers[id] = time.AfterFunc(c.ttl, func() { c.Dismiss(id) })
	return n
}

// Dismiss removes a notification early and cancels its expiry timer.
// Dismissing an unknown or already-expired id is a no-op.
func (c *Center) Dismiss(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}
	delete(c.active, id)
}

// Active returns the currently visible notifications, oldest first.
func (c *Center) Active() []domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]domain.Notification, 0, len(c.active))
	for _, n := range c.active {
		result = append(result, n)
	}
	for i := 1; i < len(result); i++ {
		for j := i; j > 0 && result[j-1].ID > result[j].ID; j-- {
			result[j-1], result[j] = result[j], result[j-1]
		}
	}
	return result
}

// Close cancels all pending expiry timers.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
	c.active = make(map[int64]domain.Notification)
}
