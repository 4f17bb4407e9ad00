package repository

import (
	"sync"
	"time"

	"bedadmin/admin-service/internal/app/admin/entity"
)

// Inbox - toast-канал одного экрана
// Хранит последние size уведомлений, пока клиент их не заберет
type Inbox struct {
	mu    sync.Mutex
	items []entity.Notification
	size  int
	now   func() time.Time
}

func NewInbox(size int) *Inbox {
	if size <= 0 {
		size = 1
	}
	return &Inbox{size: size, now: time.Now}
}

func (i *Inbox) Success(message string) {
	i.push(entity.NotificationSuccess, message)
}

func (i *Inbox) Error(message string) {
	i.push(entity.NotificationError, message)
}

func (i *Inbox) push(level entity.NotificationLevel, message string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.items = append(i.items, entity.Notification{Level: level, Message: message, CreatedAt: i.now()})
	if len(i.items) > i.size {
		i.items = i.items[len(i.items)-i.size:]
	}
}

// Drain отдает накопленные уведомления и очищает канал
func (i *Inbox) Drain() []entity.Notification {
	i.mu.Lock()
	defer i.mu.Unlock()

	out := i.items
	i.items = nil
	if out == nil {
		out = []entity.Notification{}
	}
	return out
}
