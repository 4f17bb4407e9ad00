package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainLabel_Orders(t *testing.T) {
	expected := map[StatusCode]string{
		0: "Pending",
		1: "Processing",
		2: "Shipping",
		3: "Delivered",
		4: "Return/Replacement",
		5: "Cancelled",
	}
	for code, label := range expected {
		assert.Equal(t, label, DomainOrder.Label(code))
	}
	assert.Equal(t, UnknownLabel, DomainOrder.Label(9))
}

func TestDomainLabel_Transactions(t *testing.T) {
	// Одинаковые числа значат разное в разных доменах
	assert.Equal(t, "Attempted/Pending", DomainTransaction.Label(0))
	assert.Equal(t, "Completed", DomainTransaction.Label(1))
	assert.Equal(t, "Cancelled", DomainTransaction.Label(2))
	assert.Equal(t, "Failed", DomainTransaction.Label(3))
	assert.Equal(t, "Delivered", DomainOrder.Label(3))
}

func TestDomainLookup(t *testing.T) {
	s, ok := DomainOrder.Lookup("delivered")
	assert.True(t, ok)
	assert.Equal(t, OrderDelivered, s.Code)

	_, ok = DomainTransaction.Lookup("delivered")
	assert.False(t, ok)
}

func TestStatuses_ReturnsCopy(t *testing.T) {
	table := Statuses(DomainOrder)
	table[0].Label = "changed"
	assert.Equal(t, "Pending", DomainOrder.Label(OrderPending))
}
