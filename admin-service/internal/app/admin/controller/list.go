package controller

import (
	"context"
	"fmt"

	"bedadmin/admin-service/internal/app/admin/entity"
)

// Fetcher - источник списка записей (backend API или статический набор)
type Fetcher interface {
	List(ctx context.Context, endpoint string) ([]byte, error)
}

// Deleter - удаление записи на backend
type Deleter interface {
	Delete(ctx context.Context, endpoint string, id entity.ID) error
}

// Predicate - фильтр вкладки, например "status == 3" для доставленных заказов
type Predicate[T any] func(T) bool

// Query - параметры списка: откуда читать, чем фильтровать, как делить на страницы
type Query[T any] struct {
	Endpoint    string
	Filter      Predicate[T]
	PageSize    int
	CurrentPage int
}

// Result - загруженные записи в порядке сервера
// Err выставляется только при неудачной загрузке и остается до следующего монтирования
type Result[T entity.Record] struct {
	Records []T
	Loading bool
	Err     error
}

// StatusIs строит фильтр вкладки по коду статуса
func StatusIs[T entity.StatusRecord](code int) Predicate[T] {
	return func(record T) bool {
		return record.StatusCode() == code
	}
}

// Load выполняет один запрос списка без повторов
// При ошибке Records пустой, Err заполнен; Loading всегда false
func Load[T entity.Record](ctx context.Context, fetcher Fetcher, q Query[T]) Result[T] {
	body, err := fetcher.List(ctx, q.Endpoint)
	if err != nil {
		return Result[T]{Err: fmt.Errorf("failed to load %s: %w", q.Endpoint, err)}
	}

	records, err := DecodeCollection[T](body)
	if err != nil {
		return Result[T]{Err: fmt.Errorf("failed to load %s: %w", q.Endpoint, err)}
	}

	if q.Filter != nil {
		filtered := make([]T, 0, len(records))
		for _, r := range records {
			if q.Filter(r) {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}
	if records == nil {
		records = []T{}
	}

	return Result[T]{Records: records}
}

// TotalPages = ceil(n / size); 0 записей - 0 страниц
func TotalPages(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Page возвращает срез [(p-1)*size, p*size) без изменения res
func Page[T entity.Record](res Result[T], q Query[T]) []T {
	n := len(res.Records)
	if q.PageSize <= 0 || q.CurrentPage < 1 {
		return []T{}
	}

	start := (q.CurrentPage - 1) * q.PageSize
	if start >= n {
		return []T{}
	}
	end := start + q.PageSize
	if end > n {
		end = n
	}

	page := make([]T, end-start)
	copy(page, res.Records[start:end])
	return page
}

// ChangePage переключает страницу, только если target в [1, totalPages]
// Иначе возвращает q без изменений
func ChangePage[T any](q Query[T], target, n int) Query[T] {
	if target < 1 || target > TotalPages(n, q.PageSize) {
		return q
	}
	q.CurrentPage = target
	return q
}

// Remove удаляет запись на сервере и исключает ее из res без перезагрузки
// При ошибке возвращает res без изменений; Err списка не трогается
func Remove[T entity.Record](ctx context.Context, deleter Deleter, endpoint string, res Result[T], id entity.ID) (Result[T], error) {
	if err := deleter.Delete(ctx, endpoint, id); err != nil {
		return res, fmt.Errorf("failed to delete %s/%s: %w", endpoint, id, err)
	}

	return exclude(res, id), nil
}

// clampPage держит текущую страницу в [1, totalPages]
func clampPage[T any](q Query[T], n int) Query[T] {
	total := TotalPages(n, q.PageSize)
	if q.CurrentPage > total {
		q.CurrentPage = total
	}
	if q.CurrentPage < 1 {
		q.CurrentPage = 1
	}
	return q
}
