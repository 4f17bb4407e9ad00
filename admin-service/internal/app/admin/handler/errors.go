package handler

import (
	"errors"
	"net/http"

	"bedadmin/admin-service/internal/app/admin/controller"
	"bedadmin/admin-service/internal/app/admin/entity"
	"bedadmin/admin-service/internal/app/admin/infrastructure/upstream"
	"bedadmin/admin-service/internal/app/admin/repository"
	"bedadmin/admin-service/internal/app/admin/resource"
	"bedadmin/admin-service/internal/app/admin/service"

	"github.com/gin-gonic/gin"
)

// statusFor сопоставляет ошибки сервиса с HTTP кодами
func statusFor(err error) int {
	var apiErr *upstream.APIError
	switch {
	case errors.Is(err, repository.ErrViewNotFound),
		errors.Is(err, resource.ErrUnknownResource):
		return http.StatusNotFound
	case errors.Is(err, resource.ErrUnknownTab),
		errors.Is(err, resource.ErrNoForm),
		errors.Is(err, repository.ErrWrongKind),
		errors.Is(err, service.ErrNoStatuses),
		errors.Is(err, controller.ErrMissingRecordID),
		errors.Is(err, controller.ErrMultipartRequired):
		return http.StatusBadRequest
	case errors.Is(err, controller.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, controller.ErrNoPendingDelete),
		errors.Is(err, controller.ErrNotLoaded),
		errors.Is(err, controller.ErrUnmounted),
		errors.Is(err, controller.ErrSubmitInProgress),
		errors.Is(err, controller.ErrFormUnavailable):
		return http.StatusConflict
	case errors.Is(err, upstream.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500:
		return apiErr.Status
	default:
		return http.StatusBadGateway
	}
}

// respondError пишет ErrorResponse; текст backend (если он есть) попадает в message
func respondError(c *gin.Context, err error, fallback string) {
	status := statusFor(err)
	response := entity.ErrorResponse{Error: fallback}
	if message, ok := upstream.ServerMessage(err); ok {
		response.Message = message
	} else if status < http.StatusInternalServerError {
		response.Message = err.Error()
	}
	c.JSON(status, response)
}
