package repository

import (
	"errors"
	"sync"
	"time"

	"bedadmin/admin-service/internal/app/admin/controller"
)

var (
	ErrViewNotFound = errors.New("view not found")
	ErrWrongKind    = errors.New("view has another kind")
)

// Kind - тип смонтированного экрана
type Kind string

const (
	KindList Kind = "list"
	KindForm Kind = "form"
)

// View - смонтированный экран: контроллер, его toast-канал и время последнего обращения
type View struct {
	ID       string
	Kind     Kind
	Resource string
	Tab      string
	List     controller.ListView
	Form     controller.FormView
	Inbox    *Inbox

	mu         sync.Mutex
	lastActive time.Time
}

// Touch отмечает обращение к экрану
func (v *View) Touch(now time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastActive = now
}

func (v *View) LastActive() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastActive
}

// Unmount останавливает контроллер экрана
func (v *View) Unmount() {
	switch v.Kind {
	case KindList:
		if v.List != nil {
			v.List.Unmount()
		}
	case KindForm:
		if v.Form != nil {
			v.Form.Unmount()
		}
	}
}

type ViewRepository interface {
	Save(view *View) string
	Get(id string) (*View, error)
	Delete(id string) (*View, error)
	IdleSince(cutoff time.Time) []*View
	Count() map[Kind]int
}
