package service

import (
	"context"
	"fmt"
	"time"

	"bedadmin/admin-service/internal/app/admin/controller"
	"bedadmin/admin-service/internal/app/admin/entity"
	"bedadmin/admin-service/internal/app/admin/infrastructure"
	"bedadmin/admin-service/internal/app/admin/resource"
	"bedadmin/pkg/logger"
)

// OptionProvider грузит справочники форм из backend, с коротким кешем в Redis
// Без Redis каждая форма читает справочник сама
type OptionProvider struct {
	client infrastructure.RESTClient
	cache  infrastructure.OptionCache // nil = кеш выключен
	ttl    time.Duration
}

func NewOptionProvider(client infrastructure.RESTClient, cache infrastructure.OptionCache, ttl time.Duration) *OptionProvider {
	return &OptionProvider{client: client, cache: cache, ttl: ttl}
}

// LoadOptions реализует controller.OptionLoader
// Ошибки кеша не мешают форме: справочник берется из backend
func (p *OptionProvider) LoadOptions(ctx context.Context, key string) (entity.OptionSet, error) {
	endpoint, ok := resource.OptionEndpoints[key]
	if !ok {
		return nil, fmt.Errorf("unknown options %q", key)
	}

	if p.cache != nil {
		options, found, err := p.cache.GetOptions(ctx, key)
		if err != nil {
			logger.Warn().Err(err).Str("options", key).Msg("Option cache read failed")
		} else if found {
			return options, nil
		}
	}

	body, err := p.client.List(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s options: %w", key, err)
	}

	options, err := decodeOptions(key, body)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if err := p.cache.SetOptions(ctx, key, options, p.ttl); err != nil {
			logger.Warn().Err(err).Str("options", key).Msg("Option cache write failed")
		}
	}
	return options, nil
}

// Invalidate сбрасывает справочник после изменения его записей
func (p *OptionProvider) Invalidate(ctx context.Context, resourceName string) {
	if p.cache == nil {
		return
	}
	key, ok := resource.OptionKeyFor(resourceName)
	if !ok {
		return
	}
	if err := p.cache.Invalidate(ctx, key); err != nil {
		logger.Warn().Err(err).Str("options", key).Msg("Option cache invalidation failed")
	}
}

func decodeOptions(key string, body []byte) (entity.OptionSet, error) {
	switch key {
	case resource.OptionsCategories:
		records, err := controller.DecodeCollection[entity.Category](body)
		if err != nil {
			return nil, err
		}
		return entity.OptionsFrom(records), nil
	case resource.OptionsSubcategories:
		records, err := controller.DecodeCollection[entity.SubCategory](body)
		if err != nil {
			return nil, err
		}
		return entity.OptionsFrom(records), nil
	case resource.OptionsBrands:
		records, err := controller.DecodeCollection[entity.Brand](body)
		if err != nil {
			return nil, err
		}
		return entity.OptionsFrom(records), nil
	default:
		return nil, fmt.Errorf("unknown options %q", key)
	}
}

var _ controller.OptionLoader = (*OptionProvider)(nil)
