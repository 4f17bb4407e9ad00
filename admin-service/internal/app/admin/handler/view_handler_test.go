package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bedadmin/admin-service/internal/app/admin/controller"
	"bedadmin/admin-service/internal/app/admin/entity"
	"bedadmin/admin-service/internal/app/admin/infrastructure/mocks"
	"bedadmin/admin-service/internal/app/admin/infrastructure/upstream"
	"bedadmin/admin-service/internal/app/admin/repository"
	"bedadmin/admin-service/internal/app/admin/resource"
	"bedadmin/admin-service/internal/app/admin/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestRouter() (*gin.Engine, *mocks.MockRESTClient) {
	gin.SetMode(gin.TestMode)

	client := new(mocks.MockRESTClient)
	options := service.NewOptionProvider(client, nil, time.Minute)
	audit := service.NewAuditPublisher(nil, options)
	views := service.NewViewService(resource.NewRegistry(), repository.NewInMemoryViewRepository(), client, options, audit, 10)

	return SetupRoutes(NewViewHandler(views), []string{"http://localhost:3000"}), client
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func mountList(t *testing.T, router *gin.Engine, name string) string {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/admin/views/lists", entity.MountListRequest{Resource: name})
	require.Equal(t, http.StatusCreated, w.Code)

	var response entity.MountResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.ViewID)

	id := response.ViewID
	require.Eventually(t, func() bool {
		return !listState(t, router, id).Loading
	}, 2*time.Second, 10*time.Millisecond)
	return id
}

func listState(t *testing.T, router *gin.Engine, id string) controller.ListSnapshot {
	t.Helper()
	w := doJSON(router, http.MethodGet, "/admin/views/lists/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var snapshot controller.ListSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	return snapshot
}

func mountForm(t *testing.T, router *gin.Engine, req entity.MountFormRequest) (string, map[string]interface{}) {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/admin/views/forms", req)
	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		ViewID string                 `json:"view_id"`
		State  map[string]interface{} `json:"state"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response.ViewID, response.State
}

// ===================== Service Endpoints Tests =====================

func TestHealth(t *testing.T) {
	router, _ := setupTestRouter()

	w := doJSON(router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin-service")
}

func TestGetStaticProducts(t *testing.T) {
	router, client := setupTestRouter()

	w := doJSON(router, http.MethodGet, "/api/products", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var products []entity.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.Len(t, products, 10)
	client.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestListResources(t *testing.T) {
	router, _ := setupTestRouter()

	w := doJSON(router, http.MethodGet, "/admin/resources", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Resources []resource.Definition `json:"resources"`
		Total     int                   `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 12, response.Total)
	assert.Equal(t, "orders", response.Resources[0].Name)
}

func TestGetStatuses(t *testing.T) {
	tests := []struct {
		name           string
		resource       string
		expectedStatus int
	}{
		{name: "orders", resource: "orders", expectedStatus: http.StatusOK},
		{name: "no status table", resource: "brands", expectedStatus: http.StatusBadRequest},
		{name: "unknown resource", resource: "invoices", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupTestRouter()

			w := doJSON(router, http.MethodGet, "/admin/resources/"+tt.resource+"/statuses", nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

// ===================== List Handler Tests =====================

func TestMountList_InvalidBody(t *testing.T) {
	router, _ := setupTestRouter()

	w := doJSON(router, http.MethodPost, "/admin/views/lists", map[string]string{"tab": "all"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMountList_UnknownResource(t *testing.T) {
	router, _ := setupTestRouter()

	w := doJSON(router, http.MethodPost, "/admin/views/lists", entity.MountListRequest{Resource: "invoices"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMountList_UnknownTab(t *testing.T) {
	router, _ := setupTestRouter()

	w := doJSON(router, http.MethodPost, "/admin/views/lists", entity.MountListRequest{Resource: "orders", Tab: "archived"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListFlow_PageAndDelete(t *testing.T) {
	// Arrange
	router, client := setupTestRouter()
	coupons := []entity.Coupon{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}, {ID: "5"}, {ID: "6"}}
	body, _ := json.Marshal(coupons)
	client.On("List", mock.Anything, "/coupons").Return(body, nil).Once()
	client.On("Delete", mock.Anything, "/coupons", entity.ID("6")).Return(nil).Once()

	id := mountList(t, router, "coupons")

	// Act - вторая страница
	w := doJSON(router, http.MethodPost, "/admin/views/lists/"+id+"/page", map[string]int{"page": 2})
	require.Equal(t, http.StatusOK, w.Code)

	// Act - удаление единственной записи страницы
	w = doJSON(router, http.MethodPost, "/admin/views/lists/"+id+"/delete", entity.DeleteIntentRequest{RecordID: "6"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(router, http.MethodPost, "/admin/views/lists/"+id+"/delete/confirm", nil)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	var snapshot controller.ListSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Equal(t, 5, snapshot.TotalRecords)
	assert.Equal(t, 1, snapshot.Page)
	assert.Nil(t, snapshot.PendingDelete)
	client.AssertExpectations(t)
}

func TestChangePage_OutOfRangeKeepsSnapshot(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
	}{
		{name: "zero", body: map[string]int{"page": 0}},
		{name: "negative", body: map[string]int{"page": -1}},
		{name: "past last page", body: map[string]int{"page": 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			router, client := setupTestRouter()
			coupons := []entity.Coupon{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}, {ID: "5"}, {ID: "6"}}
			body, _ := json.Marshal(coupons)
			client.On("List", mock.Anything, "/coupons").Return(body, nil).Once()
			id := mountList(t, router, "coupons")

			// Act
			w := doJSON(router, http.MethodPost, "/admin/views/lists/"+id+"/page", tt.body)

			// Assert
			require.Equal(t, http.StatusOK, w.Code)
			var snapshot controller.ListSnapshot
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
			assert.Equal(t, 1, snapshot.Page)
		})
	}
}

func TestChangePage_MissingPage(t *testing.T) {
	router, client := setupTestRouter()
	client.On("List", mock.Anything, "/coupons").Return([]byte(`[]`), nil)
	id := mountList(t, router, "coupons")

	w := doJSON(router, http.MethodPost, "/admin/views/lists/"+id+"/page", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfirmDelete_WithoutRequest(t *testing.T) {
	router, client := setupTestRouter()
	client.On("List", mock.Anything, "/reviews").Return([]byte(`[]`), nil)
	id := mountList(t, router, "reviews")

	w := doJSON(router, http.MethodPost, "/admin/views/lists/"+id+"/delete/confirm", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	client.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmDelete_ServerRejects(t *testing.T) {
	// Arrange
	router, client := setupTestRouter()
	client.On("List", mock.Anything, "/brands").Return([]byte(`[{"id":"b1","name":"SleepWell"}]`), nil)
	client.On("Delete", mock.Anything, "/brands", entity.ID("b1")).
		Return(&upstream.APIError{Method: "DELETE", Endpoint: "/brands/b1", Status: http.StatusConflict, Message: "Brand is used by products"})
	id := mountList(t, router, "brands")

	// Act
	doJSON(router, http.MethodPost, "/admin/views/lists/"+id+"/delete", entity.DeleteIntentRequest{RecordID: "b1"})
	w := doJSON(router, http.MethodPost, "/admin/views/lists/"+id+"/delete/confirm", nil)

	// Assert
	assert.Equal(t, http.StatusConflict, w.Code)
	var response entity.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Brand is used by products", response.Message)
	assert.Equal(t, 1, listState(t, router, id).TotalRecords)

	// Toast уходит в уведомления экрана
	w = doJSON(router, http.MethodGet, "/admin/views/"+id+"/notifications", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Brand is used by products")
}

func TestCancelDelete(t *testing.T) {
	router, client := setupTestRouter()
	client.On("List", mock.Anything, "/support").Return([]byte(`[{"id":"t1","subject":"Late delivery"}]`), nil)
	id := mountList(t, router, "support")
	doJSON(router, http.MethodPost, "/admin/views/lists/"+id+"/delete", entity.DeleteIntentRequest{RecordID: "t1"})

	w := doJSON(router, http.MethodPost, "/admin/views/lists/"+id+"/delete/cancel", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, listState(t, router, id).PendingDelete)
}

func TestProductsList_ReadsStaticCatalog(t *testing.T) {
	router, client := setupTestRouter()

	id := mountList(t, router, "products")

	state := listState(t, router, id)
	assert.Equal(t, 10, state.TotalRecords)
	client.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

// ===================== Form Handler Tests =====================

func TestFormFlow_CreateCategory(t *testing.T) {
	// Arrange
	router, client := setupTestRouter()
	client.On("Create", mock.Anything, "/categories", mock.Anything).Return([]byte(`{"id":"42"}`), nil).Once()
	id, state := mountForm(t, router, entity.MountFormRequest{Resource: "categories", Mode: "create"})
	assert.Equal(t, true, state["ready"])

	// Act - пустая форма не уходит в backend
	w := doJSON(router, http.MethodPost, "/admin/views/forms/"+id+"/submit", nil)

	// Assert
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var invalid entity.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &invalid))
	assert.Contains(t, invalid.FieldErrors, "name")
	client.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)

	// Act - заполняем и отправляем
	w = doJSON(router, http.MethodPatch, "/admin/views/forms/"+id, map[string]string{"name": "Pillows"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(router, http.MethodPost, "/admin/views/forms/"+id+"/submit", nil)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	var response entity.SubmitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Category created successfully", response.Message)
	assert.Equal(t, "/categories", response.RedirectTo)

	// Форма размонтирована после успеха
	w = doJSON(router, http.MethodGet, "/admin/views/forms/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	client.AssertExpectations(t)
}

func TestUpdateForm_UnknownField(t *testing.T) {
	router, _ := setupTestRouter()
	id, _ := mountForm(t, router, entity.MountFormRequest{Resource: "brands", Mode: "create"})

	w := doJSON(router, http.MethodPatch, "/admin/views/forms/"+id, map[string]string{"colour": "red"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMountForm_EditFetchFailure(t *testing.T) {
	router, client := setupTestRouter()
	client.On("Get", mock.Anything, "/coupons", entity.ID("c9")).
		Return(nil, &upstream.APIError{Method: "GET", Endpoint: "/coupons/c9", Status: http.StatusNotFound})

	id, state := mountForm(t, router, entity.MountFormRequest{Resource: "coupons", Mode: "edit", ID: "c9"})

	assert.Equal(t, false, state["ready"])
	assert.NotEmpty(t, state["fetch_error"])
	w := doJSON(router, http.MethodPost, "/admin/views/forms/"+id+"/submit", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMountForm_Errors(t *testing.T) {
	tests := []struct {
		name           string
		req            entity.MountFormRequest
		expectedStatus int
	}{
		{name: "no form", req: entity.MountFormRequest{Resource: "reviews", Mode: "create"}, expectedStatus: http.StatusBadRequest},
		{name: "edit without id", req: entity.MountFormRequest{Resource: "brands", Mode: "edit"}, expectedStatus: http.StatusBadRequest},
		{name: "bad mode", req: entity.MountFormRequest{Resource: "brands", Mode: "clone"}, expectedStatus: http.StatusBadRequest},
		{name: "unknown resource", req: entity.MountFormRequest{Resource: "invoices", Mode: "create"}, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupTestRouter()

			w := doJSON(router, http.MethodPost, "/admin/views/forms", tt.req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestSubmitForm_ProductMultipart(t *testing.T) {
	// Arrange
	router, client := setupTestRouter()
	client.On("List", mock.Anything, mock.Anything).Return([]byte(`[]`), nil)
	client.On("CreateMultipart", mock.Anything, "/products", mock.Anything, mock.MatchedBy(func(file *entity.FileUpload) bool {
		return file != nil && file.Filename == "pillow.png" && string(file.Data) == "png-bytes"
	})).Return([]byte(`{"_id":"p11"}`), nil).Once()

	id, _ := mountForm(t, router, entity.MountFormRequest{Resource: "products", Mode: "create"})
	w := doJSON(router, http.MethodPatch, "/admin/views/forms/"+id, map[string]string{
		"name":     "Memory Foam Pillow",
		"price":    "1299.00",
		"quantity": "15",
		"category": "1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "pillow.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	// Act
	req := httptest.NewRequest(http.MethodPost, "/admin/views/forms/"+id+"/submit", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Product created successfully")
	client.AssertExpectations(t)
}

func TestSubmitForm_MultipartWithoutImage(t *testing.T) {
	// Arrange
	router, client := setupTestRouter()
	client.On("List", mock.Anything, mock.Anything).Return([]byte(`[]`), nil)
	client.On("CreateMultipart", mock.Anything, "/products", mock.Anything, mock.MatchedBy(func(file *entity.FileUpload) bool {
		return file == nil
	})).Return([]byte(`{"_id":"p12"}`), nil).Once()

	id, _ := mountForm(t, router, entity.MountFormRequest{Resource: "products", Mode: "create"})
	w := doJSON(router, http.MethodPatch, "/admin/views/forms/"+id, map[string]string{
		"name":     "Latex Topper",
		"price":    "250",
		"quantity": "4",
		"category": "1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("note", "no image"))
	require.NoError(t, writer.Close())

	// Act
	req := httptest.NewRequest(http.MethodPost, "/admin/views/forms/"+id+"/submit", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Product created successfully")
	client.AssertExpectations(t)
}

func TestSubmitForm_MalformedMultipart(t *testing.T) {
	router, client := setupTestRouter()
	client.On("List", mock.Anything, mock.Anything).Return([]byte(`[]`), nil)
	id, _ := mountForm(t, router, entity.MountFormRequest{Resource: "products", Mode: "create"})

	req := httptest.NewRequest(http.MethodPost, "/admin/views/forms/"+id+"/submit", strings.NewReader("not a multipart body"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	client.AssertNotCalled(t, "CreateMultipart", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// ===================== Lifecycle Handler Tests =====================

func TestUnmount(t *testing.T) {
	router, client := setupTestRouter()
	client.On("List", mock.Anything, "/studios").Return([]byte(`[]`), nil)
	id := mountList(t, router, "studios")

	w := doJSON(router, http.MethodDelete, "/admin/views/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodDelete, "/admin/views/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(router, http.MethodGet, "/admin/views/lists/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWrongViewKind(t *testing.T) {
	router, client := setupTestRouter()
	client.On("List", mock.Anything, "/userslist").Return([]byte(`[]`), nil)
	id := mountList(t, router, "userslist")

	w := doJSON(router, http.MethodGet, "/admin/views/forms/"+id, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ===================== Error Mapping Tests =====================

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "view not found", err: repository.ErrViewNotFound, expected: http.StatusNotFound},
		{name: "validation", err: controller.ErrValidation, expected: http.StatusUnprocessableEntity},
		{name: "breaker open", err: upstream.ErrUnavailable, expected: http.StatusServiceUnavailable},
		{name: "backend 4xx", err: &upstream.APIError{Status: http.StatusUnprocessableEntity}, expected: http.StatusUnprocessableEntity},
		{name: "backend 5xx", err: &upstream.APIError{Status: http.StatusInternalServerError}, expected: http.StatusBadGateway},
		{name: "pending delete", err: controller.ErrNoPendingDelete, expected: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, statusFor(tt.err))
		})
	}
}
