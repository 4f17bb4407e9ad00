package controller

import (
	"context"

	"bedadmin/admin-service/internal/app/admin/entity"
)

// Notifier - канал toast-уведомлений экрана
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Auditor получает успешные изменения записей
type Auditor interface {
	RecordDeleted(ctx context.Context, resource string, id entity.ID)
	RecordSaved(ctx context.Context, resource string, mode Mode, id entity.ID)
}

// OptionLoader отдает справочник для выпадающего списка формы
type OptionLoader interface {
	LoadOptions(ctx context.Context, key string) (entity.OptionSet, error)
}

// FormClient - операции backend, нужные форме
type FormClient interface {
	Get(ctx context.Context, endpoint string, id entity.ID) ([]byte, error)
	Create(ctx context.Context, endpoint string, body interface{}) ([]byte, error)
	Update(ctx context.Context, endpoint string, id entity.ID, body interface{}) ([]byte, error)
	CreateMultipart(ctx context.Context, endpoint string, fields map[string]string, file *entity.FileUpload) ([]byte, error)
}

// ListView - смонтированный экран списка, независимо от типа записей
type ListView interface {
	Mount(ctx context.Context)
	Unmount()
	Done() <-chan struct{}
	Snapshot() ListSnapshot
	ChangePage(target int) ListSnapshot
	RequestDelete(id entity.ID) (ListSnapshot, error)
	CancelDelete() ListSnapshot
	ConfirmDelete(ctx context.Context) (ListSnapshot, error)
}

// FormView - смонтированный экран формы
type FormView interface {
	Initialize(ctx context.Context) error
	Unmount()
	Snapshot() FormSnapshot
	SetValues(patch []byte) (FormSnapshot, error)
	Submit(ctx context.Context, file *entity.FileUpload) (SubmitOutcome, error)
}

type noopNotifier struct{}

func (noopNotifier) Success(string) {}
func (noopNotifier) Error(string) {}

type noopAuditor struct{}

func (noopAuditor) RecordDeleted(context.Context, string, entity.ID) {}
func (noopAuditor) RecordSaved(context.Context, string, Mode, entity.ID) {}
