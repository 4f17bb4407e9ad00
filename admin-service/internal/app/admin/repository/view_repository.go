package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryViewRepository хранит смонтированные экраны в памяти процесса
// Экраны не переживают перезапуск: клиент монтирует их заново
type InMemoryViewRepository struct {
	mu    sync.RWMutex
	views map[string]*View
	now   func() time.Time
}

func NewInMemoryViewRepository() *InMemoryViewRepository {
	return &InMemoryViewRepository{
		views: make(map[string]*View),
		now:   time.Now,
	}
}

// Save сохраняет экран; id присваивается, если его еще нет
func (r *InMemoryViewRepository) Save(view *View) string {
	if view.ID == "" {
		view.ID = uuid.New().String()
	}
	view.Touch(r.now())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[view.ID] = view
	return view.ID
}

// Get возвращает экран и продлевает ему жизнь
func (r *InMemoryViewRepository) Get(id string) (*View, error) {
	r.mu.RLock()
	view, ok := r.views[id]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrViewNotFound
	}
	view.Touch(r.now())
	return view, nil
}

func (r *InMemoryViewRepository) Delete(id string) (*View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	view, ok := r.views[id]
	if !ok {
		return nil, ErrViewNotFound
	}
	delete(r.views, id)
	return view, nil
}

// IdleSince возвращает экраны без обращений после cutoff
func (r *InMemoryViewRepository) IdleSince(cutoff time.Time) []*View {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var idle []*View
	for _, view := range r.views {
		if view.LastActive().Before(cutoff) {
			idle = append(idle, view)
		}
	}
	return idle
}

func (r *InMemoryViewRepository) Count() map[Kind]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := map[Kind]int{KindList: 0, KindForm: 0}
	for _, view := range r.views {
		counts[view.Kind]++
	}
	return counts
}
