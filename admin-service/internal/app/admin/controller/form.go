package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"bedadmin/admin-service/internal/app/admin/entity"
	"bedadmin/admin-service/internal/app/admin/schema"
	"bedadmin/pkg/logger"
	"bedadmin/pkg/metrics"
)

// Mode - режим формы
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

var (
	ErrValidation        = errors.New("form has invalid fields")
	ErrFormUnavailable   = errors.New("form failed to load")
	ErrSubmitInProgress  = errors.New("form is already submitting")
	ErrSubmitFailed      = errors.New("form submission failed")
	ErrMissingRecordID   = errors.New("edit mode requires record id")
	ErrMultipartRequired = errors.New("form does not support multipart create")
)

// FormConfig - параметры одного экрана создания/редактирования
type FormConfig[R entity.Record, F schema.Form] struct {
	Resource   string
	Label      string // "Category", "Product", ... для toast
	Endpoint   string
	ListRoute  string // куда перейти после успешной отправки
	Defaults   func() F
	FromRecord func(R) F
	Multipart  bool              // создание через multipart/form-data
	Options    []string          // справочники для выпадающих списков
	References map[string]string // поле формы -> справочник, в котором должно быть его значение
}

// FormSnapshot - состояние формы для отрисовки
type FormSnapshot struct {
	Resource    string                      `json:"resource"`
	Mode        Mode                        `json:"mode"`
	RecordID    entity.ID                   `json:"record_id,omitempty"`
	Values      interface{}                 `json:"values"`
	Options     map[string]entity.OptionSet `json:"options,omitempty"`
	Ready       bool                        `json:"ready"`
	Submitting  bool                        `json:"submitting"`
	FieldErrors schema.FieldErrors          `json:"field_errors,omitempty"`
	ServerError string                      `json:"server_error,omitempty"`
	FetchError  string                      `json:"fetch_error,omitempty"`
}

// SubmitOutcome - результат успешной отправки: сообщение и маршрут списка
type SubmitOutcome struct {
	Message    string    `json:"message"`
	RedirectTo string    `json:"redirect_to"`
	RecordID   entity.ID `json:"record_id,omitempty"`
}

// Form - экземпляр Form Controller
type Form[R entity.Record, F schema.Form] struct {
	cfg      FormConfig[R, F]
	client   FormClient
	options  OptionLoader
	notifier Notifier
	auditor  Auditor
	mode     Mode
	id       entity.ID

	mu          sync.Mutex
	values      F
	defaults    F
	optionSets  map[string]entity.OptionSet
	ready       bool
	mounted     bool
	submitting  bool
	fieldErrors schema.FieldErrors
	serverError string
	fetchError  string
}

func NewForm[R entity.Record, F schema.Form](cfg FormConfig[R, F], mode Mode, id entity.ID,
	client FormClient, options OptionLoader, notifier Notifier, auditor Auditor) (*Form[R, F], error) {
	if mode != ModeCreate && mode != ModeEdit {
		return nil, fmt.Errorf("unknown form mode %q", mode)
	}
	if mode == ModeEdit && id == "" {
		return nil, ErrMissingRecordID
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if auditor == nil {
		auditor = noopAuditor{}
	}

	defaults := cfg.Defaults()
	return &Form[R, F]{
		cfg:         cfg,
		client:      client,
		options:     options,
		notifier:    notifier,
		auditor:     auditor,
		mode:        mode,
		id:          id,
		values:      defaults,
		defaults:    defaults,
		optionSets:  map[string]entity.OptionSet{},
		mounted:     true,
		fieldErrors: schema.FieldErrors{},
	}, nil
}

// Initialize загружает справочники и, в режиме редактирования, саму запись
// Ошибка чтения записи делает форму нерабочей до следующего монтирования
func (f *Form[R, F]) Initialize(ctx context.Context) error {
	optionSets := make(map[string]entity.OptionSet, len(f.cfg.Options))
	for _, key := range f.cfg.Options {
		if f.options == nil {
			optionSets[key] = entity.OptionSet{}
			continue
		}
		set, err := f.options.LoadOptions(ctx, key)
		if err != nil {
			// Пустой справочник не блокирует форму, выбор просто недоступен
			logger.Warn().Err(err).Str("resource", f.cfg.Resource).Str("options", key).Msg("Failed to load form options")
			set = entity.OptionSet{}
		}
		optionSets[key] = set
	}

	var (
		values   F
		fetchErr error
	)
	if f.mode == ModeEdit {
		values, fetchErr = f.fetch(ctx)
	} else {
		values = f.cfg.Defaults()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.mounted {
		return ErrUnmounted
	}
	f.optionSets = optionSets
	if fetchErr != nil {
		f.fetchError = fetchMessage(fetchErr)
		logger.Error().Err(fetchErr).Str("resource", f.cfg.Resource).Str("id", f.id.String()).Msg("Form record load failed")
		return fmt.Errorf("%w: %v", ErrFormUnavailable, fetchErr)
	}
	f.values = values
	f.defaults = values
	f.ready = true
	return nil
}

func (f *Form[R, F]) fetch(ctx context.Context) (F, error) {
	var zero F

	body, err := f.client.Get(ctx, f.cfg.Endpoint, f.id)
	if err != nil {
		return zero, err
	}
	record, err := DecodeRecord[R](body)
	if err != nil {
		return zero, err
	}
	return f.cfg.FromRecord(record), nil
}

func (f *Form[R, F]) Unmount() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mounted = false
}

func (f *Form[R, F]) Snapshot() FormSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// SetValues меняет только поля, присутствующие в patch
// Ошибка поля сбрасывается, когда пользователь его правит
func (f *Form[R, F]) SetValues(patch []byte) (FormSnapshot, error) {
	var touched map[string]json.RawMessage
	if err := json.Unmarshal(patch, &touched); err != nil {
		return f.Snapshot(), fmt.Errorf("invalid form values: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.ready {
		return f.snapshotLocked(), ErrFormUnavailable
	}

	next := f.values
	decoder := json.NewDecoder(bytes.NewReader(patch))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&next); err != nil {
		return f.snapshotLocked(), fmt.Errorf("invalid form values: %w", err)
	}

	f.values = next
	for field := range touched {
		delete(f.fieldErrors, field)
	}
	return f.snapshotLocked(), nil
}

// Submit проверяет форму локально и только потом обращается к backend
// Запущенная отправка доводится до конца даже при уходе со страницы
func (f *Form[R, F]) Submit(ctx context.Context, file *entity.FileUpload) (SubmitOutcome, error) {
	f.mu.Lock()
	if !f.ready {
		f.mu.Unlock()
		return SubmitOutcome{}, ErrFormUnavailable
	}
	if f.submitting {
		f.mu.Unlock()
		return SubmitOutcome{}, ErrSubmitInProgress
	}

	f.fieldErrors = schema.Validate(f.values)
	f.checkReferencesLocked()
	if !f.fieldErrors.Valid() {
		f.mu.Unlock()
		metrics.FormSubmissions.WithLabelValues(f.cfg.Resource, string(f.mode), "invalid").Inc()
		return SubmitOutcome{}, ErrValidation
	}
	f.submitting = true
	f.serverError = ""
	values := f.values
	f.mu.Unlock()

	id, err := f.send(context.WithoutCancel(ctx), values, file)

	f.mu.Lock()
	f.submitting = false
	if err != nil {
		message := userMessage(err, msgSubmitFailed)
		f.serverError = message
		f.mu.Unlock()

		metrics.FormSubmissions.WithLabelValues(f.cfg.Resource, string(f.mode), "error").Inc()
		logger.Error().Err(err).Str("resource", f.cfg.Resource).Str("mode", string(f.mode)).Msg("Form submission failed")
		f.notifier.Error(message)
		return SubmitOutcome{}, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	f.mu.Unlock()

	metrics.FormSubmissions.WithLabelValues(f.cfg.Resource, string(f.mode), "success").Inc()
	outcome := SubmitOutcome{
		Message:    f.successMessage(),
		RedirectTo: f.cfg.ListRoute,
		RecordID:   id,
	}
	f.notifier.Success(outcome.Message)
	f.auditor.RecordSaved(ctx, f.cfg.Resource, f.mode, id)
	return outcome, nil
}

// checkReferencesLocked - внешний ключ должен быть в загруженном справочнике
// Пустой справочник (не загрузился или еще нет записей) не проверяется
func (f *Form[R, F]) checkReferencesLocked() {
	if len(f.cfg.References) == 0 {
		return
	}
	raw, err := json.Marshal(f.values)
	if err != nil {
		return
	}
	var values map[string]interface{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return
	}

	for field, key := range f.cfg.References {
		if _, failed := f.fieldErrors[field]; failed {
			continue
		}
		value, _ := values[field].(string)
		value = strings.TrimSpace(value)
		set := f.optionSets[key]
		if value == "" || len(set) == 0 {
			continue
		}
		if !set.Contains(entity.ID(value)) {
			f.fieldErrors[field] = msgUnknownReference
		}
	}
}

func (f *Form[R, F]) send(ctx context.Context, values F, file *entity.FileUpload) (entity.ID, error) {
	if f.mode == ModeEdit {
		payload, err := values.Payload()
		if err != nil {
			return "", err
		}
		if _, err := f.client.Update(ctx, f.cfg.Endpoint, f.id, payload); err != nil {
			return "", err
		}
		return f.id, nil
	}

	var (
		body []byte
		err  error
	)
	if f.cfg.Multipart {
		multipartForm, ok := any(values).(schema.MultipartForm)
		if !ok {
			return "", ErrMultipartRequired
		}
		fields, ferr := multipartForm.MultipartFields()
		if ferr != nil {
			return "", ferr
		}
		body, err = f.client.CreateMultipart(ctx, f.cfg.Endpoint, fields, file)
	} else {
		payload, perr := values.Payload()
		if perr != nil {
			return "", perr
		}
		body, err = f.client.Create(ctx, f.cfg.Endpoint, payload)
	}
	if err != nil {
		return "", err
	}
	return createdID(body), nil
}

// createdID достает id созданной записи из ответа, если backend его вернул
func createdID(body []byte) entity.ID {
	var created struct {
		ID       entity.ID `json:"id"`
		MongoID  entity.ID `json:"_id"`
		Inserted entity.ID `json:"insertedId"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return ""
	}
	switch {
	case created.ID != "":
		return created.ID
	case created.MongoID != "":
		return created.MongoID
	default:
		return created.Inserted
	}
}

func (f *Form[R, F]) successMessage() string {
	if f.mode == ModeEdit {
		return f.cfg.Label + " updated successfully"
	}
	return f.cfg.Label + " created successfully"
}

func (f *Form[R, F]) snapshotLocked() FormSnapshot {
	fieldErrors := make(schema.FieldErrors, len(f.fieldErrors))
	for k, v := range f.fieldErrors {
		fieldErrors[k] = v
	}
	options := make(map[string]entity.OptionSet, len(f.optionSets))
	for k, v := range f.optionSets {
		options[k] = v
	}

	return FormSnapshot{
		Resource:    f.cfg.Resource,
		Mode:        f.mode,
		RecordID:    f.id,
		Values:      f.values,
		Options:     options,
		Ready:       f.ready,
		Submitting:  f.submitting,
		FieldErrors: fieldErrors,
		ServerError: f.serverError,
		FetchError:  f.fetchError,
	}
}
