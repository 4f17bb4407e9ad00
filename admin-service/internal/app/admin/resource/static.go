package resource

import (
	"context"
	"encoding/json"
	"fmt"

	"bedadmin/admin-service/internal/app/admin/entity"
)

// StaticEndpoint - путь демо-каталога товаров, который сервис отдает сам
const StaticEndpoint = "/api/products"

// StaticSource - источник списка из фикстуры вместо backend API
type StaticSource struct{}

func (StaticSource) List(_ context.Context, endpoint string) ([]byte, error) {
	if endpoint != StaticEndpoint {
		return nil, fmt.Errorf("static source has no collection %s", endpoint)
	}
	data, err := json.Marshal(entity.StaticProducts())
	if err != nil {
		return nil, fmt.Errorf("failed to encode static products: %w", err)
	}
	return data, nil
}
