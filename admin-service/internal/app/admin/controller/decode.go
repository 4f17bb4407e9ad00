package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnexpectedPayload = errors.New("unexpected collection payload")

// DecodeCollection разбирает ответ списка backend
// Принимает массив или объект-обертку: {"data": [...]} либо объект с единственным массивом
func DecodeCollection[T any](body []byte) ([]T, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrUnexpectedPayload)
	}

	switch body[0] {
	case '[':
		var records []T
		if err := json.Unmarshal(body, &records); err != nil {
			return nil, fmt.Errorf("failed to decode collection: %w", err)
		}
		return records, nil
	case '{':
		return decodeWrapped[T](body)
	default:
		return nil, fmt.Errorf("%w: not a json array or object", ErrUnexpectedPayload)
	}
}

func decodeWrapped[T any](body []byte) ([]T, error) {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to decode collection: %w", err)
	}

	if raw, ok := wrapper["data"]; ok && isArray(raw) {
		var records []T
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("failed to decode collection: %w", err)
		}
		return records, nil
	}

	var found json.RawMessage
	for _, raw := range wrapper {
		if !isArray(raw) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: ambiguous object with several arrays", ErrUnexpectedPayload)
		}
		found = raw
	}
	if found == nil {
		return nil, fmt.Errorf("%w: object without records array", ErrUnexpectedPayload)
	}

	var records []T
	if err := json.Unmarshal(found, &records); err != nil {
		return nil, fmt.Errorf("failed to decode collection: %w", err)
	}
	return records, nil
}

// DecodeRecord разбирает одну запись: сам объект или {"data": {...}}
func DecodeRecord[T any](body []byte) (T, error) {
	var record T

	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && len(wrapper.Data) > 0 && bytes.TrimSpace(wrapper.Data)[0] == '{' {
		body = wrapper.Data
	}

	if err := json.Unmarshal(body, &record); err != nil {
		return record, fmt.Errorf("failed to decode record: %w", err)
	}
	return record, nil
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}
