package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type NotificationLevel string

const (
	LevelInfo  NotificationLevel = "info"
	LevelError NotificationLevel = "error"
)

// Notification — неблокирующее уведомление ("тост"). Слайсы складывают сюда
// сообщения об ошибках действий; слой интерфейса забирает их через Drain.
type Notification struct {
	ID      string
	Level   NotificationLevel
	Message string
	At      time.Time
}

type NotificationQueue struct {
	mu    sync.Mutex
	items []Notification
}

func NewNotificationQueue() *NotificationQueue {
	return &NotificationQueue{}
}

func (q *NotificationQueue) Push(level NotificationLevel, message string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, Notification{
		ID:      uuid.New().String(),
		Level:   level,
		Message: message,
		At:      time.Now(),
	})
}

// Drain возвращает накопленные уведомления и очищает очередь.
func (q *NotificationQueue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}
