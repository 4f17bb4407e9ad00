package schema

import (
	"encoding/json"
	"testing"

	"bedadmin/admin-service/internal/app/admin/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===================== Нормализация =====================

func TestCouponPayload_StripsGroupSeparators(t *testing.T) {
	// Arrange
	form := CouponForm{Code: " SPRING10 ", Discount: "10%", MinimumAmount: "5,000"}

	// Act
	payload, err := form.Payload()

	// Assert
	require.NoError(t, err)
	coupon := payload.(CouponPayload)
	assert.Equal(t, "SPRING10", coupon.Code)
	assert.Equal(t, "10%", coupon.Discount)
	assert.Equal(t, 5000.0, coupon.MinimumAmount)
}

func TestProductPayload_ParsesNumbers(t *testing.T) {
	// Arrange
	form := ProductForm{Name: "Memory Foam Pillow", Price: "79.90", SalePrice: "59.5", Quantity: "40", Category: "2"}

	// Act
	payload, err := form.Payload()

	// Assert
	require.NoError(t, err)
	product := payload.(ProductPayload)
	assert.Equal(t, 79.9, product.Price)
	require.NotNil(t, product.SalePrice)
	assert.Equal(t, 59.5, *product.SalePrice)
	assert.Equal(t, 40, product.Quantity)
	assert.Equal(t, entity.Ref{ID: "2"}, product.Category)
}

func TestProductPayload_EmptySalePriceOmitted(t *testing.T) {
	payload, err := ProductForm{Name: "Topper", Price: "120", Quantity: "3", Category: "1"}.Payload()

	require.NoError(t, err)
	assert.Nil(t, payload.(ProductPayload).SalePrice)
}

func TestProductPayload_InvalidNumber(t *testing.T) {
	_, err := ProductForm{Name: "Topper", Price: "cheap", Quantity: "3"}.Payload()

	assert.Error(t, err)
}

func TestProductMultipartFields(t *testing.T) {
	// Arrange
	form := ProductForm{Name: "Cloud Mattress", Price: "499.99", Quantity: "12", Category: "1", Brands: "b1"}

	// Act
	fields, err := form.MultipartFields()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"name":     "Cloud Mattress",
		"price":    "499.99",
		"quantity": "12",
		"category": "1",
		"brands":   "b1",
	}, fields)
}

// ===================== Round trip =====================

func TestProductForm_RoundTripIsLossless(t *testing.T) {
	// Arrange
	original := entity.Product{
		ID:        "5",
		Name:      "Hybrid Mattress",
		Price:     1299.99,
		SalePrice: 999.5,
		Quantity:  7,
		Category:  entity.Ref{ID: "1"},
	}

	// Act
	form := ProductFormFrom(original)
	errs := Validate(form)
	payload, err := form.Payload()

	// Assert
	require.NoError(t, err)
	assert.True(t, errs.Valid())
	assert.Equal(t, "1299.99", form.Price)
	assert.Equal(t, "999.5", form.SalePrice)
	assert.Equal(t, "7", form.Quantity)

	product := payload.(ProductPayload)
	assert.Equal(t, float64(original.Price), product.Price)
	assert.Equal(t, float64(original.SalePrice), *product.SalePrice)
	assert.Equal(t, int(original.Quantity), product.Quantity)
}

func TestProductForm_RoundTripKeepsZeroSalePriceAndNumericRefs(t *testing.T) {
	// Arrange
	var original entity.Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":5,"name":"M","price":100,"salePrice":0,"quantity":3,"category":1,"brands":"b1"}`), &original))

	// Act
	form := ProductFormFrom(original)
	payload, err := form.Payload()
	require.NoError(t, err)
	body, err := json.Marshal(payload)

	// Assert
	require.NoError(t, err)
	assert.True(t, Validate(form).Valid())
	assert.Equal(t, "0", form.SalePrice)
	assert.JSONEq(t, `{"name":"M","price":100,"salePrice":0,"quantity":3,"category":1,"brands":"b1"}`, string(body))
}

func TestProductForm_EditedRefStaysNumeric(t *testing.T) {
	// Arrange
	var original entity.Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":5,"name":"M","price":100,"quantity":3,"category":1}`), &original))
	form := ProductFormFrom(original)
	form.Category = "4"

	// Act
	payload, err := form.Payload()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entity.Ref{ID: "4", Numeric: true}, payload.(ProductPayload).Category)
}

func TestSubCategoryForm_StringParentStaysString(t *testing.T) {
	var original entity.SubCategory
	require.NoError(t, json.Unmarshal([]byte(`{"id":"s1","name":"Latex","parentCategoryId":"1"}`), &original))

	payload, err := SubCategoryFormFrom(original).Payload()
	require.NoError(t, err)
	body, err := json.Marshal(payload)

	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Latex","parentCategoryId":"1"}`, string(body))
}

func TestCouponForm_RoundTripIsLossless(t *testing.T) {
	// Arrange
	original := entity.Coupon{ID: "c1", Code: "WINTER", Discount: "15%", MinimumAmount: 2500}

	// Act
	form := CouponFormFrom(original)
	payload, err := form.Payload()

	// Assert
	require.NoError(t, err)
	assert.True(t, Validate(form).Valid())
	assert.Equal(t, "2500", form.MinimumAmount)
	assert.Equal(t, float64(original.MinimumAmount), payload.(CouponPayload).MinimumAmount)
}

func TestSubCategoryFormFrom_KeepsParentReference(t *testing.T) {
	form := SubCategoryFormFrom(entity.SubCategory{ID: "s1", Name: "Latex", ParentCategoryID: entity.Ref{ID: "1"}})

	assert.Equal(t, "1", form.ParentCategoryID)
	assert.True(t, Validate(form).Valid())
}
