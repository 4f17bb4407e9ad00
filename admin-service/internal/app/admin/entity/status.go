package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// StatusCode - непрозрачный числовой статус из backend
// Значение имеет смысл только вместе с таблицей подписей конкретного домена
type StatusCode int

func (s *StatusCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("invalid status: %w", err)
		}
		v, err := strconv.Atoi(str)
		if err != nil {
			return fmt.Errorf("invalid status %q: %w", str, err)
		}
		*s = StatusCode(v)
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid status: %w", err)
	}
	*s = StatusCode(v)
	return nil
}

// Domain - домен статусов (одинаковые числа значат разное у заказов и транзакций)
type Domain string

const (
	DomainOrder       Domain = "order"
	DomainTransaction Domain = "transaction"
)

// Коды статусов заказа
const (
	OrderPending    StatusCode = 0
	OrderProcessing StatusCode = 1
	OrderShipping   StatusCode = 2
	OrderDelivered  StatusCode = 3
	OrderReturned   StatusCode = 4
	OrderCancelled  StatusCode = 5
)

// Коды статусов транзакции
const (
	TransactionAttempted StatusCode = 0
	TransactionCompleted StatusCode = 1
	TransactionCancelled StatusCode = 2
	TransactionFailed    StatusCode = 3
)

// StatusLabel - подпись статуса для бейджа в таблице
type StatusLabel struct {
	Code  StatusCode `json:"code"`
	Key   string     `json:"key"`
	Label string     `json:"label"`
}

var statusTables = map[Domain][]StatusLabel{
	DomainOrder: {
		{Code: OrderPending, Key: "pending", Label: "Pending"},
		{Code: OrderProcessing, Key: "processing", Label: "Processing"},
		{Code: OrderShipping, Key: "shipping", Label: "Shipping"},
		{Code: OrderDelivered, Key: "delivered", Label: "Delivered"},
		{Code: OrderReturned, Key: "returned", Label: "Return/Replacement"},
		{Code: OrderCancelled, Key: "cancelled", Label: "Cancelled"},
	},
	DomainTransaction: {
		{Code: TransactionAttempted, Key: "pending", Label: "Attempted/Pending"},
		{Code: TransactionCompleted, Key: "completed", Label: "Completed"},
		{Code: TransactionCancelled, Key: "cancelled", Label: "Cancelled"},
		{Code: TransactionFailed, Key: "failed", Label: "Failed"},
	},
}

// Statuses возвращает таблицу статусов домена (копию)
func Statuses(d Domain) []StatusLabel {
	table := statusTables[d]
	out := make([]StatusLabel, len(table))
	copy(out, table)
	return out
}

// Label возвращает подпись статуса, для неизвестного кода - UnknownLabel
func (d Domain) Label(code StatusCode) string {
	for _, s := range statusTables[d] {
		if s.Code == code {
			return s.Label
		}
	}
	return UnknownLabel
}

// Lookup ищет статус по ключу вкладки ("delivered", "failed", ...)
func (d Domain) Lookup(key string) (StatusLabel, bool) {
	for _, s := range statusTables[d] {
		if s.Key == key {
			return s, true
		}
	}
	return StatusLabel{}, false
}
