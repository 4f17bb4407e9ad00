package infrastructure

import (
	"context"
	"time"

	"bedadmin/admin-service/internal/app/admin/entity"
)

// RESTClient - HTTP Client Adapter к backend REST API
// Единая точка конфигурации base URL, заголовков и таймаута
type RESTClient interface {
	List(ctx context.Context, endpoint string) ([]byte, error)
	Get(ctx context.Context, endpoint string, id entity.ID) ([]byte, error)
	Create(ctx context.Context, endpoint string, body interface{}) ([]byte, error)
	Update(ctx context.Context, endpoint string, id entity.ID, body interface{}) ([]byte, error)
	Delete(ctx context.Context, endpoint string, id entity.ID) error
	CreateMultipart(ctx context.Context, endpoint string, fields map[string]string, file *entity.FileUpload) ([]byte, error)
}

// OptionCache - кеш справочников для выпадающих списков форм
type OptionCache interface {
	GetOptions(ctx context.Context, key string) (entity.OptionSet, bool, error)
	SetOptions(ctx context.Context, key string, options entity.OptionSet, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
	Close() error
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
