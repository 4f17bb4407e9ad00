package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bedadmin/admin-service/internal/app/admin/controller"
	"bedadmin/admin-service/internal/app/admin/entity"
	"bedadmin/admin-service/internal/app/admin/infrastructure"
	"bedadmin/admin-service/internal/app/admin/repository"
	"bedadmin/admin-service/internal/app/admin/resource"
	"bedadmin/pkg/logger"
	"bedadmin/pkg/metrics"

	"github.com/google/uuid"
)

var (
	// Ошибки для обработки в handlers
	ErrNoStatuses = errors.New("resource has no status table")
)

// ViewService управляет жизненным циклом экранов админки
// Монтирует контроллеры списков и форм, отдает их состояние и размонтирует
type ViewService struct {
	registry  *resource.Registry
	views     repository.ViewRepository
	client    infrastructure.RESTClient
	options   *OptionProvider
	audit     *AuditPublisher
	inboxSize int
	now       func() time.Time
}

func NewViewService(
	registry *resource.Registry,
	views repository.ViewRepository,
	client infrastructure.RESTClient,
	options *OptionProvider,
	audit *AuditPublisher,
	inboxSize int,
) *ViewService {
	return &ViewService{
		registry:  registry,
		views:     views,
		client:    client,
		options:   options,
		audit:     audit,
		inboxSize: inboxSize,
		now:       time.Now,
	}
}

// === RESOURCES ===

// Resources возвращает таблицу конфигурации для меню и вкладок
func (s *ViewService) Resources() []resource.Definition {
	return s.registry.All()
}

// Statuses возвращает подписи статусов ресурса (заказы, транзакции)
func (s *ViewService) Statuses(name string) ([]entity.StatusLabel, error) {
	def, err := s.registry.Get(name)
	if err != nil {
		return nil, err
	}
	if def.StatusDomain == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoStatuses, name)
	}
	return entity.Statuses(def.StatusDomain), nil
}

// === LISTS ===

// MountList создает экран списка и запускает его загрузку
// Загрузка не привязана к HTTP запросу: она живет, пока экран смонтирован
func (s *ViewService) MountList(name, tab string) (*repository.View, controller.ListSnapshot, error) {
	def, err := s.registry.Get(name)
	if err != nil {
		return nil, controller.ListSnapshot{}, err
	}

	view := s.newView(repository.KindList, name)
	view.Tab = tab

	list, err := def.NewList(tab, s.deps(view))
	if err != nil {
		return nil, controller.ListSnapshot{}, err
	}
	view.List = list

	s.views.Save(view)
	metrics.ViewsMounted.WithLabelValues(string(repository.KindList)).Inc()
	list.Mount(context.Background())

	viewLog := logger.View(view.ID, string(view.Kind), name)
	viewLog.Info().Str("tab", tab).Msg("List view mounted")
	return view, list.Snapshot(), nil
}

func (s *ViewService) ListSnapshot(id string) (controller.ListSnapshot, error) {
	view, err := s.view(id, repository.KindList)
	if err != nil {
		return controller.ListSnapshot{}, err
	}
	return view.List.Snapshot(), nil
}

func (s *ViewService) ChangePage(id string, page int) (controller.ListSnapshot, error) {
	view, err := s.view(id, repository.KindList)
	if err != nil {
		return controller.ListSnapshot{}, err
	}
	return view.List.ChangePage(page), nil
}

func (s *ViewService) RequestDelete(id string, recordID entity.ID) (controller.ListSnapshot, error) {
	view, err := s.view(id, repository.KindList)
	if err != nil {
		return controller.ListSnapshot{}, err
	}
	return view.List.RequestDelete(recordID)
}

func (s *ViewService) CancelDelete(id string) (controller.ListSnapshot, error) {
	view, err := s.view(id, repository.KindList)
	if err != nil {
		return controller.ListSnapshot{}, err
	}
	return view.List.CancelDelete(), nil
}

func (s *ViewService) ConfirmDelete(ctx context.Context, id string) (controller.ListSnapshot, error) {
	view, err := s.view(id, repository.KindList)
	if err != nil {
		return controller.ListSnapshot{}, err
	}
	return view.List.ConfirmDelete(ctx)
}

// === FORMS ===

// MountForm создает форму и загружает ее данные
// Форма, которая не смогла загрузить запись, остается смонтированной с fetch_error
func (s *ViewService) MountForm(ctx context.Context, name string, mode controller.Mode, recordID entity.ID) (*repository.View, controller.FormSnapshot, error) {
	def, err := s.registry.Get(name)
	if err != nil {
		return nil, controller.FormSnapshot{}, err
	}

	view := s.newView(repository.KindForm, name)
	form, err := def.NewForm(mode, recordID, s.deps(view))
	if err != nil {
		return nil, controller.FormSnapshot{}, err
	}
	view.Form = form

	s.views.Save(view)
	metrics.ViewsMounted.WithLabelValues(string(repository.KindForm)).Inc()

	viewLog := logger.View(view.ID, string(view.Kind), name)
	if err := form.Initialize(ctx); err != nil && !errors.Is(err, controller.ErrFormUnavailable) {
		return view, form.Snapshot(), err
	}

	viewLog.Info().Str("mode", string(mode)).Str("record_id", recordID.String()).Msg("Form view mounted")
	return view, form.Snapshot(), nil
}

func (s *ViewService) FormSnapshot(id string) (controller.FormSnapshot, error) {
	view, err := s.view(id, repository.KindForm)
	if err != nil {
		return controller.FormSnapshot{}, err
	}
	return view.Form.Snapshot(), nil
}

func (s *ViewService) UpdateForm(id string, patch []byte) (controller.FormSnapshot, error) {
	view, err := s.view(id, repository.KindForm)
	if err != nil {
		return controller.FormSnapshot{}, err
	}
	return view.Form.SetValues(patch)
}

// SubmitForm отправляет форму; после успеха экран закрывается переходом к списку
func (s *ViewService) SubmitForm(ctx context.Context, id string, file *entity.FileUpload) (controller.SubmitOutcome, controller.FormSnapshot, error) {
	view, err := s.view(id, repository.KindForm)
	if err != nil {
		return controller.SubmitOutcome{}, controller.FormSnapshot{}, err
	}

	outcome, err := view.Form.Submit(ctx, file)
	if err != nil {
		return outcome, view.Form.Snapshot(), err
	}

	if unmountErr := s.Unmount(id); unmountErr != nil && !errors.Is(unmountErr, repository.ErrViewNotFound) {
		logger.Warn().Err(unmountErr).Str("view_id", id).Msg("Failed to unmount submitted form")
	}
	return outcome, controller.FormSnapshot{}, nil
}

// === LIFECYCLE ===

// Notifications отдает накопленные toast-уведомления экрана
func (s *ViewService) Notifications(id string) ([]entity.Notification, error) {
	view, err := s.views.Get(id)
	if err != nil {
		return nil, err
	}
	return view.Inbox.Drain(), nil
}

// Unmount останавливает контроллер; незавершенная загрузка будет отброшена
func (s *ViewService) Unmount(id string) error {
	view, err := s.views.Delete(id)
	if err != nil {
		return err
	}
	view.Unmount()
	metrics.ViewsMounted.WithLabelValues(string(view.Kind)).Dec()
	viewLog := logger.View(view.ID, string(view.Kind), view.Resource)
	viewLog.Debug().Msg("View unmounted")
	return nil
}

// SweepIdle размонтирует экраны без обращений дольше ttl
func (s *ViewService) SweepIdle(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)
	swept := 0
	for _, view := range s.views.IdleSince(cutoff) {
		if err := s.Unmount(view.ID); err != nil {
			continue
		}
		swept++
	}
	if swept > 0 {
		metrics.ViewsSwept.Add(float64(swept))
	}
	return swept
}

// UnmountAll закрывает все экраны при остановке сервиса
func (s *ViewService) UnmountAll() int {
	closed := 0
	for _, view := range s.views.IdleSince(s.now().Add(time.Hour)) {
		if err := s.Unmount(view.ID); err == nil {
			closed++
		}
	}
	return closed
}

func (s *ViewService) newView(kind repository.Kind, name string) *repository.View {
	return &repository.View{
		ID:       uuid.New().String(),
		Kind:     kind,
		Resource: name,
		Inbox:    repository.NewInbox(s.inboxSize),
	}
}

func (s *ViewService) deps(view *repository.View) resource.Deps {
	var auditor controller.Auditor
	if s.audit != nil {
		auditor = s.audit.ForView(view.ID)
	}
	var options controller.OptionLoader
	if s.options != nil {
		options = s.options
	}
	return resource.Deps{
		Client:   s.client,
		Options:  options,
		Notifier: view.Inbox,
		Auditor:  auditor,
	}
}

func (s *ViewService) view(id string, kind repository.Kind) (*repository.View, error) {
	view, err := s.views.Get(id)
	if err != nil {
		return nil, err
	}
	if view.Kind != kind {
		return nil, fmt.Errorf("%w: %s is a %s view", repository.ErrWrongKind, id, view.Kind)
	}
	return view, nil
}
