package controller

import (
	"bedadmin/admin-service/internal/app/admin/infrastructure/upstream"
)

const (
	msgLoadFailed    = "Failed to load records"
	msgDeleteFailed  = "Failed to delete record"
	msgDeleted       = "Record deleted successfully"
	msgSubmitFailed  = "Something went wrong. Please try again."
	msgFormLoadError = "Failed to load record"
	msgNotFound      = "Record not found"

	msgUnknownReference = "must be one of the available options"
)

// userMessage - сообщение сервера, если оно есть, иначе общий текст
func userMessage(err error, fallback string) string {
	if msg, ok := upstream.ServerMessage(err); ok {
		return msg
	}
	return fallback
}

// fetchMessage - текст ошибки загрузки записи формы
func fetchMessage(err error) string {
	if msg, ok := upstream.ServerMessage(err); ok {
		return msg
	}
	if upstream.IsNotFound(err) {
		return msgNotFound
	}
	return msgFormLoadError
}
