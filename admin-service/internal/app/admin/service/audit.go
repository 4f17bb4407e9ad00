package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bedadmin/admin-service/internal/app/admin/controller"
	"bedadmin/admin-service/internal/app/admin/entity"
	"bedadmin/admin-service/internal/app/admin/infrastructure"
	"bedadmin/pkg/logger"
)

// AuditPublisher отправляет события изменений записей в Kafka
// Ошибка публикации только логируется: пользователь о ней не узнает
type AuditPublisher struct {
	publisher infrastructure.MessagePublisher // nil = аудит выключен
	options   *OptionProvider
	now       func() time.Time
}

func NewAuditPublisher(publisher infrastructure.MessagePublisher, options *OptionProvider) *AuditPublisher {
	return &AuditPublisher{publisher: publisher, options: options, now: time.Now}
}

// ForView - аудитор конкретного экрана, события несут его id
func (a *AuditPublisher) ForView(viewID string) controller.Auditor {
	return &viewAuditor{audit: a, viewID: viewID}
}

func (a *AuditPublisher) publish(ctx context.Context, event entity.AdminEvent) {
	if a.options != nil {
		a.options.Invalidate(ctx, event.Resource)
	}
	if a.publisher == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event", event.EventType).Msg("Failed to marshal admin event")
		return
	}

	key := fmt.Sprintf("%s:%s", event.Resource, event.RecordID)
	if err := a.publisher.PublishMessage(ctx, key, data); err != nil {
		logger.Error().Err(err).
			Str("event", event.EventType).
			Str("resource", event.Resource).
			Str("record_id", event.RecordID).
			Msg("Failed to publish admin event")
	}
}

type viewAuditor struct {
	audit  *AuditPublisher
	viewID string
}

func (v *viewAuditor) RecordDeleted(ctx context.Context, resourceName string, id entity.ID) {
	v.audit.publish(ctx, entity.AdminEvent{
		EventType: entity.EventRecordDeleted,
		Resource:  resourceName,
		RecordID:  id.String(),
		ViewID:    v.viewID,
		Timestamp: v.audit.now(),
	})
}

func (v *viewAuditor) RecordSaved(ctx context.Context, resourceName string, mode controller.Mode, id entity.ID) {
	eventType := entity.EventRecordCreated
	if mode == controller.ModeEdit {
		eventType = entity.EventRecordUpdated
	}
	v.audit.publish(ctx, entity.AdminEvent{
		EventType: eventType,
		Resource:  resourceName,
		RecordID:  id.String(),
		ViewID:    v.viewID,
		Timestamp: v.audit.now(),
	})
}
