package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID - стабильный идентификатор записи backend API
// Backend отдает id то строкой, то числом, поэтому принимаем оба варианта
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Ref - ссылка на другую запись (категория, бренд)
// Помнит, пришел ли id числом, чтобы вернуть его backend в том же виде
type Ref struct {
	ID      ID
	Numeric bool
}

// NewRef - ссылка из значения поля формы
func NewRef(value string, numeric bool) Ref {
	id := ID(strings.TrimSpace(value))
	return Ref{ID: id, Numeric: numeric && isJSONNumber(id)}
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	var id ID
	if err := id.UnmarshalJSON(data); err != nil {
		return err
	}
	data = bytes.TrimSpace(data)
	r.ID = id
	r.Numeric = id != "" && data[0] != '"'
	return nil
}

func (r Ref) MarshalJSON() ([]byte, error) {
	if r.Numeric && isJSONNumber(r.ID) {
		return []byte(r.ID), nil
	}
	return json.Marshal(string(r.ID))
}

func (r Ref) String() string {
	return string(r.ID)
}

func (r Ref) IsZero() bool {
	return r.ID == ""
}

func isJSONNumber(id ID) bool {
	s := string(id)
	if s == "" || (s[0] != '-' && (s[0] < '0' || s[0] > '9')) {
		return false
	}
	return json.Valid([]byte(s))
}

// Number - числовое поле, которое backend иногда присылает строкой ("1,200", "99.99")
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid number: %w", err)
		}
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
		if s == "" {
			*n = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", s, err)
		}
		*n = Number(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid number: %w", err)
	}
	*n = Number(v)
	return nil
}

// Text возвращает число в текстовом виде без потерь (для полей формы)
func (n Number) Text() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// Record - любая запись, отображаемая в таблице админки
type Record interface {
	RecordID() ID
}

// StatusRecord - запись с числовым статусом (вкладки заказов и транзакций)
type StatusRecord interface {
	Record
	StatusCode() int
}
