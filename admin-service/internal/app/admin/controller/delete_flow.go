package controller

import (
	"errors"

	"bedadmin/admin-service/internal/app/admin/entity"
)

var ErrNoPendingDelete = errors.New("no delete awaiting confirmation")

// DeleteFlow - подтверждение удаления: Idle -> Awaiting(id) -> Idle
// Одновременно ждет подтверждения не больше одной записи
type DeleteFlow struct {
	target  entity.ID
	pending bool
}

// Request открывает подтверждение; повторный вызов заменяет цель
func (d *DeleteFlow) Request(id entity.ID) {
	d.target = id
	d.pending = true
}

func (d *DeleteFlow) Pending() (entity.ID, bool) {
	return d.target, d.pending
}

// Confirm закрывает подтверждение и отдает id для удаления
func (d *DeleteFlow) Confirm() (entity.ID, error) {
	if !d.pending {
		return "", ErrNoPendingDelete
	}
	id := d.target
	d.Cancel()
	return id, nil
}

// Cancel закрывает подтверждение без побочных эффектов
func (d *DeleteFlow) Cancel() {
	d.target = ""
	d.pending = false
}
