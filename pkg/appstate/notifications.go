package appstate

import (
	"sync"
	"time"
)

// Notification is an in-app notice shown to the user
type Notification struct {
	ID        int64
	Title     string
	Body      string
	Read      bool
	CreatedAt time.Time
}

// NotificationState holds in-app notifications for the current session.
// Notifications are client-local; nothing here is persisted server-side.
type NotificationState struct {
	mu     sync.RWMutex
	nextID int64
	items  []*Notification
}

// NewNotificationState creates an empty notification list
func NewNotificationState() *NotificationState {
	return &NotificationState{}
}

// Add appends a notification and returns it
func (n *NotificationState) Add(title, body string) *Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	item := &Notification{
		ID:        n.nextID,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}
	n.items = append(n.items, item)
	return item
}

// All returns a snapshot of the notifications, newest first
func (n *NotificationState) All() []*Notification {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]*Notification, len(n.items))
	for i, item := range n.items {
		copied := *item
		out[len(n.items)-1-i] = &copied
	}
	return out
}

// UnreadCount returns how many notifications are unread
func (n *NotificationState) UnreadCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	count := 0
	for _, item := range n.items {
		if !item.Read {
			count++
		}
	}
	return count
}

// MarkRead marks one notification as read. Unknown IDs are ignored.
func (n *NotificationState) MarkRead(id int64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, item := range n.items {
		if item.ID == id {
			item.Read = true
			return
		}
	}
}

// MarkAllRead marks every notification as read
func (n *NotificationState) MarkAllRead() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, item := range n.items {
		item.Read = true
	}
}

// Close drops all notifications
func (n *NotificationState) Close() {
	n.mu.Lock()
	n.items = nil
	n.mu.Unlock()
}
