package mocks

import (
	"context"
	"time"

	"bedadmin/admin-service/internal/app/admin/entity"

	"github.com/stretchr/testify/mock"
)

// MockRESTClient мок для RESTClient
type MockRESTClient struct {
	mock.Mock
}

func (m *MockRESTClient) List(ctx context.Context, endpoint string) ([]byte, error) {
	args := m.Called(ctx, endpoint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRESTClient) Get(ctx context.Context, endpoint string, id entity.ID) ([]byte, error) {
	args := m.Called(ctx, endpoint, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRESTClient) Create(ctx context.Context, endpoint string, body interface{}) ([]byte, error) {
	args := m.Called(ctx, endpoint, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRESTClient) Update(ctx context.Context, endpoint string, id entity.ID, body interface{}) ([]byte, error) {
	args := m.Called(ctx, endpoint, id, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRESTClient) Delete(ctx context.Context, endpoint string, id entity.ID) error {
	args := m.Called(ctx, endpoint, id)
	return args.Error(0)
}

func (m *MockRESTClient) CreateMultipart(ctx context.Context, endpoint string, fields map[string]string, file *entity.FileUpload) ([]byte, error) {
	args := m.Called(ctx, endpoint, fields, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockOptionCache мок для OptionCache
type MockOptionCache struct {
	mock.Mock
}

func (m *MockOptionCache) GetOptions(ctx context.Context, key string) (entity.OptionSet, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(entity.OptionSet), args.Bool(1), args.Error(2)
}

func (m *MockOptionCache) SetOptions(ctx context.Context, key string, options entity.OptionSet, ttl time.Duration) error {
	args := m.Called(ctx, key, options, ttl)
	return args.Error(0)
}

func (m *MockOptionCache) Invalidate(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockOptionCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockMessagePublisher мок для MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
