package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/sony/gobreaker/v2"

	"bedadmin/admin-service/internal/app/admin/config"
	"bedadmin/admin-service/internal/app/admin/entity"
	"bedadmin/pkg/logger"
	"bedadmin/pkg/metrics"
)

const userAgent = "bedadmin-admin-service"

// Client - HTTP Client Adapter к backend REST API
// Все запросы идут относительно BaseURL, с общими заголовками и таймаутом
// Повторов нет: ошибка сразу возвращается вызывающему коду
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     *TokenSource
	breaker    *gobreaker.CircuitBreaker[response]
}

type response struct {
	status int
	body   []byte
}

// NewClient создает клиент по настройкам upstream
func NewClient(cfg config.UpstreamConfig) *Client {
	return NewClientWithHTTP(cfg, &http.Client{Timeout: cfg.Timeout})
}

// NewClientWithHTTP позволяет подставить свой http.Client (тесты, транспорт)
func NewClientWithHTTP(cfg config.UpstreamConfig, httpClient *http.Client) *Client {
	var tokens *TokenSource
	if cfg.TokenSecret != "" {
		tokens = NewTokenSource(cfg.TokenSecret, cfg.TokenTTL)
	}

	settings := gobreaker.Settings{
		Name:        cfg.BreakerName,
		MaxRequests: 1,
		Interval:    cfg.BreakerWindow,
		Timeout:     cfg.BreakerCool,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Upstream circuit breaker state change")
			metrics.UpstreamBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
		// Отмена запроса экраном (размонтирование) не считается сбоем backend
		IsExcluded: func(err error) bool {
			return errors.Is(err, context.Canceled)
		},
	}
	metrics.UpstreamBreakerState.WithLabelValues(cfg.BreakerName).Set(0)

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
		breaker:    gobreaker.NewCircuitBreaker[response](settings),
	}
}

func stateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// ===================== Операции =====================

// List - GET {base}{endpoint}, тело ответа возвращается как есть
func (c *Client) List(ctx context.Context, endpoint string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, endpoint, "", nil, "")
}

// Get - GET {base}{endpoint}/{id}
func (c *Client) Get(ctx context.Context, endpoint string, id entity.ID) ([]byte, error) {
	return c.do(ctx, http.MethodGet, endpoint, id, nil, "")
}

// Create - POST {base}{endpoint} с JSON телом
func (c *Client) Create(ctx context.Context, endpoint string, body interface{}) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, endpoint, "", payload, "application/json")
}

// Update - PUT {base}{endpoint}/{id} с JSON телом
func (c *Client) Update(ctx context.Context, endpoint string, id entity.ID, body interface{}) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return c.do(ctx, http.MethodPut, endpoint, id, payload, "application/json")
}

// Delete - DELETE {base}{endpoint}/{id}, тело ответа не нужно
func (c *Client) Delete(ctx context.Context, endpoint string, id entity.ID) error {
	_, err := c.do(ctx, http.MethodDelete, endpoint, id, nil, "")
	return err
}

// CreateMultipart - POST {base}{endpoint} как multipart/form-data (товар с изображением)
func (c *Client) CreateMultipart(ctx context.Context, endpoint string, fields map[string]string, file *entity.FileUpload) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("failed to write field %s: %w", name, err)
		}
	}

	if file != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.Filename))
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, fmt.Errorf("failed to write file part: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return c.do(ctx, http.MethodPost, endpoint, "", buf.Bytes(), writer.FormDataContentType())
}

// ===================== Транспорт =====================

func (c *Client) do(ctx context.Context, method, endpoint string, id entity.ID, body []byte, contentType string) ([]byte, error) {
	path := endpoint
	if id != "" {
		// id - один сегмент пути: "/" и "?" в нем не меняют адрес запроса
		path = endpoint + "/" + url.PathEscape(string(id))
	}

	timer := metrics.NewUpstreamTimer(method, endpoint)

	resp, err := c.breaker.Execute(func() (response, error) {
		resp, err := c.send(ctx, method, path, body, contentType)
		if err != nil {
			return response{}, err
		}
		// 5xx считаем сбоем backend, 4xx - ошибкой запроса
		if resp.status >= http.StatusInternalServerError {
			return resp, c.apiError(method, path, resp)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			timer.Observe(0)
			return nil, fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
		}
		timer.Observe(resp.status)
		return nil, err
	}

	timer.Observe(resp.status)
	if resp.status < 200 || resp.status >= 300 {
		return nil, c.apiError(method, path, resp)
	}
	return resp.body, nil
}

func (c *Client) send(ctx context.Context, method, path string, body []byte, contentType string) (response, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return response{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return response{}, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return response{}, fmt.Errorf("failed to read response body: %w", err)
	}

	return response{status: httpResp.StatusCode, body: data}, nil
}

func (c *Client) apiError(method, path string, resp response) *APIError {
	return &APIError{
		Method:   method,
		Endpoint: path,
		Status:   resp.status,
		Message:  parseErrorBody(resp.body),
	}
}
