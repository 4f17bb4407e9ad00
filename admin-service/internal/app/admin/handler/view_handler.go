package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"bedadmin/admin-service/internal/app/admin/controller"
	"bedadmin/admin-service/internal/app/admin/entity"
	"bedadmin/admin-service/internal/app/admin/service"

	"github.com/gin-gonic/gin"
)

// maxUploadSize - предел размера изображения товара
const maxUploadSize = 10 << 20

// ViewHandler обрабатывает HTTP запросы экранов админки
// Каждый экран - смонтированный контроллер с id, клиент работает с ним через view_id
type ViewHandler struct {
	views *service.ViewService
}

// NewViewHandler создает новый обработчик экранов
func NewViewHandler(views *service.ViewService) *ViewHandler {
	return &ViewHandler{views: views}
}

// === RESOURCES ===

// ListResources обрабатывает GET /admin/resources
func (h *ViewHandler) ListResources(c *gin.Context) {
	resources := h.views.Resources()
	c.JSON(http.StatusOK, gin.H{
		"resources": resources,
		"total":     len(resources),
	})
}

// GetStatuses обрабатывает GET /admin/resources/:resource/statuses
func (h *ViewHandler) GetStatuses(c *gin.Context) {
	statuses, err := h.views.Statuses(c.Param("resource"))
	if err != nil {
		respondError(c, err, "Failed to get statuses")
		return
	}
	c.JSON(http.StatusOK, gin.H{"statuses": statuses})
}

// === LISTS ===

// MountList обрабатывает POST /admin/views/lists
func (h *ViewHandler) MountList(c *gin.Context) {
	var req entity.MountListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	view, snapshot, err := h.views.MountList(req.Resource, req.Tab)
	if err != nil {
		respondError(c, err, "Failed to mount list")
		return
	}

	c.JSON(http.StatusCreated, entity.MountResponse{
		ViewID: view.ID,
		Kind:   string(view.Kind),
		State:  snapshot,
	})
}

// GetList обрабатывает GET /admin/views/lists/:id
func (h *ViewHandler) GetList(c *gin.Context) {
	snapshot, err := h.views.ListSnapshot(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get list")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// ChangePage обрабатывает POST /admin/views/lists/:id/page
// Страница вне диапазона [1, total_pages] игнорируется, снимок не меняется
func (h *ViewHandler) ChangePage(c *gin.Context) {
	var req entity.ChangePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	snapshot, err := h.views.ChangePage(c.Param("id"), *req.Page)
	if err != nil {
		respondError(c, err, "Failed to change page")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// RequestDelete обрабатывает POST /admin/views/lists/:id/delete
// Запись только помечается: удаление выполняет confirm
func (h *ViewHandler) RequestDelete(c *gin.Context) {
	var req entity.DeleteIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	snapshot, err := h.views.RequestDelete(c.Param("id"), entity.ID(req.RecordID))
	if err != nil {
		respondError(c, err, "Failed to request delete")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// ConfirmDelete обрабатывает POST /admin/views/lists/:id/delete/confirm
func (h *ViewHandler) ConfirmDelete(c *gin.Context) {
	snapshot, err := h.views.ConfirmDelete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to delete record")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// CancelDelete обрабатывает POST /admin/views/lists/:id/delete/cancel
func (h *ViewHandler) CancelDelete(c *gin.Context) {
	snapshot, err := h.views.CancelDelete(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to cancel delete")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// === FORMS ===

// MountForm обрабатывает POST /admin/views/forms
// Форма, не загрузившая запись, монтируется с fetch_error, чтобы экран показал ошибку
func (h *ViewHandler) MountForm(c *gin.Context) {
	var req entity.MountFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	view, snapshot, err := h.views.MountForm(c.Request.Context(), req.Resource, controller.Mode(req.Mode), entity.ID(req.ID))
	if err != nil {
		respondError(c, err, "Failed to mount form")
		return
	}

	c.JSON(http.StatusCreated, entity.MountResponse{
		ViewID: view.ID,
		Kind:   string(view.Kind),
		State:  snapshot,
	})
}

// GetForm обрабатывает GET /admin/views/forms/:id
func (h *ViewHandler) GetForm(c *gin.Context) {
	snapshot, err := h.views.FormSnapshot(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get form")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// UpdateForm обрабатывает PATCH /admin/views/forms/:id
// Тело - частичный набор значений полей формы
func (h *ViewHandler) UpdateForm(c *gin.Context) {
	patch, err := io.ReadAll(c.Request.Body)
	if err != nil || len(patch) == 0 {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	snapshot, err := h.views.UpdateForm(c.Param("id"), patch)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusBadGateway {
			status = http.StatusBadRequest
		}
		c.JSON(status, entity.ErrorResponse{Error: "Invalid form values", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// SubmitForm обрабатывает POST /admin/views/forms/:id/submit
// JSON тело не нужно; multipart запрос несет изображение товара в поле image
func (h *ViewHandler) SubmitForm(c *gin.Context) {
	file, err := uploadedFile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid upload", Message: err.Error()})
		return
	}

	outcome, snapshot, err := h.views.SubmitForm(c.Request.Context(), c.Param("id"), file)
	if err != nil {
		if statusFor(err) == http.StatusUnprocessableEntity {
			c.JSON(http.StatusUnprocessableEntity, entity.ErrorResponse{
				Error:       "Validation failed",
				FieldErrors: snapshot.FieldErrors,
			})
			return
		}
		status := statusFor(err)
		c.JSON(status, entity.ErrorResponse{Error: "Failed to submit form", Message: snapshot.ServerError})
		return
	}

	c.JSON(http.StatusOK, entity.SubmitResponse{
		Message:    outcome.Message,
		RedirectTo: outcome.RedirectTo,
	})
}

// === LIFECYCLE ===

// GetNotifications обрабатывает GET /admin/views/:id/notifications
// Уведомления отдаются один раз
func (h *ViewHandler) GetNotifications(c *gin.Context) {
	notifications, err := h.views.Notifications(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// Unmount обрабатывает DELETE /admin/views/:id
func (h *ViewHandler) Unmount(c *gin.Context) {
	if err := h.views.Unmount(c.Param("id")); err != nil {
		respondError(c, err, "Failed to unmount view")
		return
	}
	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "View unmounted"})
}

// uploadedFile читает файл image из multipart запроса
// Для JSON запроса и multipart без image - nil: изображение необязательно
func uploadedFile(c *gin.Context) (*entity.FileUpload, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return nil, nil
	}

	header, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invalid multipart body: %w", err)
	}
	if header.Size > maxUploadSize {
		return nil, fmt.Errorf("image exceeds %d bytes", maxUploadSize)
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	return &entity.FileUpload{
		Field:       "image",
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
