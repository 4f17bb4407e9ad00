package controller

import (
	"context"
	"errors"
	"sync"

	"bedadmin/admin-service/internal/app/admin/entity"
	"bedadmin/pkg/logger"
	"bedadmin/pkg/metrics"
)

var (
	ErrNotLoaded = errors.New("list is not loaded")
	ErrUnmounted = errors.New("view is unmounted")
)

// ListConfig - параметры одного экрана списка
type ListConfig[T entity.Record] struct {
	Resource         string
	Endpoint         string // откуда читать список
	MutationEndpoint string // куда слать DELETE; пусто = Endpoint
	PageSize         int
	Filter           Predicate[T] // фильтр вкладки, nil = все записи
}

// ListSnapshot - состояние экрана списка для отрисовки
type ListSnapshot struct {
	Resource      string      `json:"resource"`
	Rows          interface{} `json:"rows"`
	Page          int         `json:"page"`
	PageSize      int         `json:"page_size"`
	TotalPages    int         `json:"total_pages"`
	TotalRecords  int         `json:"total_records"`
	Loading       bool        `json:"loading"`
	Error         string      `json:"error,omitempty"`
	Empty         bool        `json:"empty"`
	PendingDelete *entity.ID  `json:"pending_delete,omitempty"`
}

// List - экземпляр List Data Controller, принадлежащий одному экрану
// Загрузка запускается при монтировании и отменяется при размонтировании
type List[T entity.Record] struct {
	cfg      ListConfig[T]
	source   Fetcher
	deleter  Deleter
	notifier Notifier
	auditor  Auditor

	mu      sync.Mutex
	query   Query[T]
	result  Result[T]
	deletes DeleteFlow
	started bool
	mounted bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewList[T entity.Record](cfg ListConfig[T], source Fetcher, deleter Deleter, notifier Notifier, auditor Auditor) *List[T] {
	if cfg.MutationEndpoint == "" {
		cfg.MutationEndpoint = cfg.Endpoint
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if auditor == nil {
		auditor = noopAuditor{}
	}

	return &List[T]{
		cfg:      cfg,
		source:   source,
		deleter:  deleter,
		notifier: notifier,
		auditor:  auditor,
		query: Query[T]{
			Endpoint:    cfg.Endpoint,
			Filter:      cfg.Filter,
			PageSize:    cfg.PageSize,
			CurrentPage: 1,
		},
		result: Result[T]{Loading: true},
		done:   make(chan struct{}),
	}
}

// Mount запускает единственную загрузку экрана
func (l *List[T]) Mount(ctx context.Context) {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return
	}
	loadCtx, cancel := context.WithCancel(ctx)
	l.started = true
	l.mounted = true
	l.cancel = cancel
	query := l.query
	l.mu.Unlock()

	go l.load(loadCtx, query)
}

func (l *List[T]) load(ctx context.Context, query Query[T]) {
	defer close(l.done)

	res := Load(ctx, l.source, query)

	l.mu.Lock()
	defer l.mu.Unlock()

	// Экран уже закрыт: результат никому не нужен
	if !l.mounted {
		metrics.ListLoads.WithLabelValues(l.cfg.Resource, "discarded").Inc()
		return
	}

	l.result = res
	l.query = clampPage(l.query, len(res.Records))

	if res.Err != nil {
		metrics.ListLoads.WithLabelValues(l.cfg.Resource, "error").Inc()
		logger.Error().Err(res.Err).Str("resource", l.cfg.Resource).Msg("List load failed")
		return
	}
	metrics.ListLoads.WithLabelValues(l.cfg.Resource, "success").Inc()
}

// Unmount отменяет загрузку; поздний результат будет отброшен
func (l *List[T]) Unmount() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.started {
		l.started = true
		close(l.done)
		return
	}
	if !l.mounted {
		return
	}
	l.mounted = false
	l.cancel()
}

// Done закрывается, когда загрузка завершена или экран размонтирован до нее
func (l *List[T]) Done() <-chan struct{} {
	return l.done
}

func (l *List[T]) Snapshot() ListSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// ChangePage - номер вне [1, totalPages] молча игнорируется
func (l *List[T]) ChangePage(target int) ListSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.query = ChangePage(l.query, target, len(l.result.Records))
	return l.snapshotLocked()
}

// RequestDelete открывает подтверждение удаления записи
func (l *List[T]) RequestDelete(id entity.ID) (ListSnapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.readyLocked(); err != nil {
		return l.snapshotLocked(), err
	}
	l.deletes.Request(id)
	return l.snapshotLocked(), nil
}

func (l *List[T]) CancelDelete() ListSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.deletes.Cancel()
	return l.snapshotLocked()
}

// ConfirmDelete удаляет ожидающую запись на сервере и убирает ее из списка без перезагрузки
// Ошибка сервера не меняет список, пользователь получает toast
func (l *List[T]) ConfirmDelete(ctx context.Context) (ListSnapshot, error) {
	l.mu.Lock()
	if err := l.readyLocked(); err != nil {
		snapshot := l.snapshotLocked()
		l.mu.Unlock()
		return snapshot, err
	}
	id, err := l.deletes.Confirm()
	if err != nil {
		snapshot := l.snapshotLocked()
		l.mu.Unlock()
		return snapshot, err
	}
	current := l.result
	l.mu.Unlock()

	_, err = Remove(ctx, l.deleter, l.cfg.MutationEndpoint, current, id)

	l.mu.Lock()
	if err != nil {
		metrics.RecordsDeleted.WithLabelValues(l.cfg.Resource, "error").Inc()
		l.notifier.Error(userMessage(err, msgDeleteFailed))
		snapshot := l.snapshotLocked()
		l.mu.Unlock()
		return snapshot, err
	}

	// Применяем к актуальному состоянию: за время запроса список мог измениться
	if l.mounted {
		l.result = exclude(l.result, id)
		l.query = clampPage(l.query, len(l.result.Records))
	}
	metrics.RecordsDeleted.WithLabelValues(l.cfg.Resource, "success").Inc()
	l.notifier.Success(msgDeleted)
	snapshot := l.snapshotLocked()
	l.mu.Unlock()

	l.auditor.RecordDeleted(ctx, l.cfg.Resource, id)
	return snapshot, nil
}

func (l *List[T]) readyLocked() error {
	if !l.mounted {
		return ErrUnmounted
	}
	if l.result.Loading || l.result.Err != nil {
		return ErrNotLoaded
	}
	return nil
}

func (l *List[T]) snapshotLocked() ListSnapshot {
	n := len(l.result.Records)
	snapshot := ListSnapshot{
		Resource:     l.cfg.Resource,
		Rows:         Page(l.result, l.query),
		Page:         l.query.CurrentPage,
		PageSize:     l.query.PageSize,
		TotalPages:   TotalPages(n, l.query.PageSize),
		TotalRecords: n,
		Loading:      l.result.Loading,
		Empty:        !l.result.Loading && l.result.Err == nil && n == 0,
	}
	if l.result.Err != nil {
		snapshot.Error = msgLoadFailed
	}
	if id, ok := l.deletes.Pending(); ok {
		snapshot.PendingDelete = &id
	}
	return snapshot
}

func exclude[T entity.Record](res Result[T], id entity.ID) Result[T] {
	remaining := make([]T, 0, len(res.Records))
	for _, r := range res.Records {
		if r.RecordID() != id {
			remaining = append(remaining, r)
		}
	}
	return Result[T]{Records: remaining, Loading: res.Loading, Err: res.Err}
}
