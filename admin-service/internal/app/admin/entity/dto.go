package entity

import "time"

type MountListRequest struct {
	Resource string `json:"resource" binding:"required"`
	Tab      string `json:"tab"`
}

// ChangePageRequest - Page указателем: required проверяет наличие поля, 0 допустим
type ChangePageRequest struct {
	Page *int `json:"page" binding:"required"`
}

type DeleteIntentRequest struct {
	RecordID string `json:"record_id" binding:"required"`
}

type MountFormRequest struct {
	Resource string `json:"resource" binding:"required"`
	Mode     string `json:"mode" binding:"required,oneof=create edit"`
	ID       string `json:"id"`
}

type ErrorResponse struct {
	Error       string            `json:"error"`
	Message     string            `json:"message,omitempty"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// MountResponse возвращается при монтировании экрана
type MountResponse struct {
	ViewID string      `json:"view_id"`
	Kind   string      `json:"kind"`
	State  interface{} `json:"state"`
}

// SubmitResponse - успешная отправка формы: куда перейти после сохранения
type SubmitResponse struct {
	Message    string `json:"message"`
	RedirectTo string `json:"redirect_to"`
}

// NotificationLevel - тип toast-уведомления
type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

// Notification - транзиентное toast-уведомление для экрана
type Notification struct {
	Level     NotificationLevel `json:"level"`
	Message   string            `json:"message"`
	CreatedAt time.Time         `json:"created_at"`
}

// AdminEvent - событие аудита изменений для Kafka
type AdminEvent struct {
	EventType string    `json:"event_type"` // RECORD_CREATED, RECORD_UPDATED, RECORD_DELETED
	Resource  string    `json:"resource"`
	RecordID  string    `json:"record_id,omitempty"`
	ViewID    string    `json:"view_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventRecordCreated = "RECORD_CREATED"
	EventRecordUpdated = "RECORD_UPDATED"
	EventRecordDeleted = "RECORD_DELETED"
)

// FileUpload - файл из multipart формы, пересылается в backend как есть
type FileUpload struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}
