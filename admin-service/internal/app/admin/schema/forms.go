package schema

import (
	"fmt"
	"strconv"
	"strings"

	"bedadmin/admin-service/internal/app/admin/entity"
)

// Form - значения формы в текстовом виде, как их вводит пользователь
// Payload нормализует значения в тело запроса к backend
type Form interface {
	Payload() (interface{}, error)
}

// MultipartForm - форма, которая при создании уходит как multipart/form-data
type MultipartForm interface {
	Form
	MultipartFields() (map[string]string, error)
}

// ===================== Категории =====================

type CategoryForm struct {
	Name        string `json:"name" validate:"required,notblank,max=100"`
	Description string `json:"description" validate:"max=500"`
	Image       string `json:"image" validate:"omitempty,url"`
}

type CategoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

func (f CategoryForm) Payload() (interface{}, error) {
	return CategoryPayload{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Image:       strings.TrimSpace(f.Image),
	}, nil
}

func CategoryFormFrom(c entity.Category) CategoryForm {
	return CategoryForm{Name: c.Name, Description: c.Description, Image: c.Image}
}

type SubCategoryForm struct {
	Name             string `json:"name" validate:"required,notblank,max=100"`
	ParentCategoryID string `json:"parentCategoryId" validate:"required,notblank"`
	Image            string `json:"image" validate:"omitempty,url"`

	parentNumeric bool
}

type SubCategoryPayload struct {
	Name             string     `json:"name"`
	ParentCategoryID entity.Ref `json:"parentCategoryId"`
	Image            string     `json:"image,omitempty"`
}

func (f SubCategoryForm) Payload() (interface{}, error) {
	return SubCategoryPayload{
		Name:             strings.TrimSpace(f.Name),
		ParentCategoryID: entity.NewRef(f.ParentCategoryID, f.parentNumeric),
		Image:            strings.TrimSpace(f.Image),
	}, nil
}

func SubCategoryFormFrom(c entity.SubCategory) SubCategoryForm {
	return SubCategoryForm{
		Name:             c.Name,
		ParentCategoryID: c.ParentCategoryID.String(),
		Image:            c.Image,
		parentNumeric:    c.ParentCategoryID.Numeric,
	}
}

type ChildCategoryForm struct {
	Name          string `json:"name" validate:"required,notblank,max=100"`
	SubcategoryID string `json:"subcategoryid" validate:"required,notblank"`
	Image         string `json:"image" validate:"omitempty,url"`

	subcategoryNumeric bool
}

type ChildCategoryPayload struct {
	Name          string     `json:"name"`
	SubcategoryID entity.Ref `json:"subcategoryid"`
	Image         string     `json:"image,omitempty"`
}

func (f ChildCategoryForm) Payload() (interface{}, error) {
	return ChildCategoryPayload{
		Name:          strings.TrimSpace(f.Name),
		SubcategoryID: entity.NewRef(f.SubcategoryID, f.subcategoryNumeric),
		Image:         strings.TrimSpace(f.Image),
	}, nil
}

func ChildCategoryFormFrom(c entity.ChildCategory) ChildCategoryForm {
	return ChildCategoryForm{
		Name:               c.Name,
		SubcategoryID:      c.SubcategoryID.String(),
		Image:              c.Image,
		subcategoryNumeric: c.SubcategoryID.Numeric,
	}
}

// ===================== Бренды =====================

type BrandForm struct {
	Name   string `json:"name" validate:"required,notblank,max=100"`
	Logo   string `json:"logo" validate:"omitempty,url"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type BrandPayload struct {
	Name   string `json:"name"`
	Logo   string `json:"logo,omitempty"`
	Status string `json:"status,omitempty"`
}

func (f BrandForm) Payload() (interface{}, error) {
	return BrandPayload{
		Name:   strings.TrimSpace(f.Name),
		Logo:   strings.TrimSpace(f.Logo),
		Status: f.Status,
	}, nil
}

func BrandFormFrom(b entity.Brand) BrandForm {
	return BrandForm{Name: b.Name, Logo: b.Logo, Status: b.Status}
}

// ===================== Товары =====================

// ProductForm - цены и количество вводятся текстом, на backend уходят числами
type ProductForm struct {
	Name        string `json:"name" validate:"required,notblank,max=200"`
	Price       string `json:"price" validate:"required,price"`
	SalePrice   string `json:"salePrice" validate:"omitempty,price"`
	Quantity    string `json:"quantity" validate:"required,digits"`
	Type        string `json:"type" validate:"max=50"`
	Status      string `json:"status" validate:"max=30"`
	Category    string `json:"category" validate:"required,notblank"`
	Subcategory string `json:"subcategory"`
	Brands      string `json:"brands"`
	Description string `json:"description" validate:"max=2000"`

	// Ссылки, пришедшие из записи числами, уходят обратно числами
	categoryNumeric    bool
	subcategoryNumeric bool
	brandsNumeric      bool
}

type ProductPayload struct {
	Name        string     `json:"name"`
	Price       float64    `json:"price"`
	SalePrice   *float64   `json:"salePrice,omitempty"`
	Quantity    int        `json:"quantity"`
	Type        string     `json:"type,omitempty"`
	Status      string     `json:"status,omitempty"`
	Category    entity.Ref `json:"category"`
	Subcategory entity.Ref `json:"subcategory,omitzero"`
	Brands      entity.Ref `json:"brands,omitzero"`
	Description string     `json:"description,omitempty"`
}

func (f ProductForm) Payload() (interface{}, error) {
	return f.payload()
}

func (f ProductForm) payload() (ProductPayload, error) {
	price, err := parseDecimal("price", f.Price)
	if err != nil {
		return ProductPayload{}, err
	}
	quantity, err := parseInt("quantity", f.Quantity)
	if err != nil {
		return ProductPayload{}, err
	}

	p := ProductPayload{
		Name:        strings.TrimSpace(f.Name),
		Price:       price,
		Quantity:    quantity,
		Type:        strings.TrimSpace(f.Type),
		Status:      f.Status,
		Category:    entity.NewRef(f.Category, f.categoryNumeric),
		Subcategory: entity.NewRef(f.Subcategory, f.subcategoryNumeric),
		Brands:      entity.NewRef(f.Brands, f.brandsNumeric),
		Description: strings.TrimSpace(f.Description),
	}

	if strings.TrimSpace(f.SalePrice) != "" {
		sale, err := parseDecimal("salePrice", f.SalePrice)
		if err != nil {
			return ProductPayload{}, err
		}
		p.SalePrice = &sale
	}

	return p, nil
}

// MultipartFields - те же нормализованные значения в виде полей формы
func (f ProductForm) MultipartFields() (map[string]string, error) {
	p, err := f.payload()
	if err != nil {
		return nil, err
	}

	fields := map[string]string{
		"name":     p.Name,
		"price":    formatDecimal(p.Price),
		"quantity": strconv.Itoa(p.Quantity),
		"category": p.Category.String(),
	}
	if p.SalePrice != nil {
		fields["salePrice"] = formatDecimal(*p.SalePrice)
	}
	optional := map[string]string{
		"type":        p.Type,
		"status":      p.Status,
		"subcategory": p.Subcategory.String(),
		"brands":      p.Brands.String(),
		"description": p.Description,
	}
	for name, value := range optional {
		if value != "" {
			fields[name] = value
		}
	}
	return fields, nil
}

// ProductFormFrom - salePrice переносится всегда, включая 0
func ProductFormFrom(p entity.Product) ProductForm {
	return ProductForm{
		Name:               p.Name,
		Price:              p.Price.Text(),
		SalePrice:          p.SalePrice.Text(),
		Quantity:           p.Quantity.Text(),
		Type:               p.Type,
		Status:             p.Status,
		Category:           p.Category.String(),
		Subcategory:        p.Subcategory.String(),
		Brands:             p.Brands.String(),
		Description:        p.Description,
		categoryNumeric:    p.Category.Numeric,
		subcategoryNumeric: p.Subcategory.Numeric,
		brandsNumeric:      p.Brands.Numeric,
	}
}

// ===================== Купоны =====================

// CouponForm - скидка в процентах ("10%"), минимальная сумма с разделителями ("5,000")
type CouponForm struct {
	Code          string `json:"code" validate:"required,alphanum,max=32"`
	Discount      string `json:"discount" validate:"required,percent"`
	MinimumAmount string `json:"minimumAmount" validate:"required,grouped_amount"`
	ExpiryDate    string `json:"expiryDate" validate:"omitempty,datetime=2006-01-02"`
	Status        string `json:"status" validate:"omitempty,oneof=active inactive expired"`
}

type CouponPayload struct {
	Code          string  `json:"code"`
	Discount      string  `json:"discount"`
	MinimumAmount float64 `json:"minimumAmount"`
	ExpiryDate    string  `json:"expiryDate,omitempty"`
	Status        string  `json:"status,omitempty"`
}

func (f CouponForm) Payload() (interface{}, error) {
	amount, err := parseDecimal("minimumAmount", f.MinimumAmount)
	if err != nil {
		return nil, err
	}
	return CouponPayload{
		Code:          strings.TrimSpace(f.Code),
		Discount:      strings.TrimSpace(f.Discount),
		MinimumAmount: amount,
		ExpiryDate:    f.ExpiryDate,
		Status:        f.Status,
	}, nil
}

func CouponFormFrom(c entity.Coupon) CouponForm {
	return CouponForm{
		Code:          c.Code,
		Discount:      c.Discount,
		MinimumAmount: c.MinimumAmount.Text(),
		ExpiryDate:    c.ExpiryDate,
		Status:        c.Status,
	}
}

// ===================== Студии и пользователи =====================

type StudioForm struct {
	Name    string `json:"name" validate:"required,notblank,max=100"`
	Owner   string `json:"owner" validate:"required,notblank,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,min=7,max=20"`
	Address string `json:"address" validate:"max=300"`
	Status  string `json:"status" validate:"omitempty,oneof=active pending suspended"`
}

type StudioPayload struct {
	Name    string `json:"name"`
	Owner   string `json:"owner"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Status  string `json:"status,omitempty"`
}

func (f StudioForm) Payload() (interface{}, error) {
	return StudioPayload{
		Name:    strings.TrimSpace(f.Name),
		Owner:   strings.TrimSpace(f.Owner),
		Email:   strings.TrimSpace(f.Email),
		Phone:   strings.TrimSpace(f.Phone),
		Address: strings.TrimSpace(f.Address),
		Status:  f.Status,
	}, nil
}

func StudioFormFrom(s entity.Studio) StudioForm {
	return StudioForm{
		Name:    s.Name,
		Owner:   s.Owner,
		Email:   s.Email,
		Phone:   s.Phone,
		Address: s.Address,
		Status:  s.Status,
	}
}

type UserForm struct {
	Name   string `json:"name" validate:"required,notblank,max=100"`
	Email  string `json:"email" validate:"required,email"`
	Phone  string `json:"phone" validate:"omitempty,min=7,max=20"`
	Role   string `json:"role" validate:"omitempty,oneof=admin customer vendor"`
	Status string `json:"status" validate:"omitempty,oneof=active blocked"`
}

type UserPayload struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
	Role   string `json:"role,omitempty"`
	Status string `json:"status,omitempty"`
}

func (f UserForm) Payload() (interface{}, error) {
	return UserPayload{
		Name:   strings.TrimSpace(f.Name),
		Email:  strings.TrimSpace(f.Email),
		Phone:  strings.TrimSpace(f.Phone),
		Role:   f.Role,
		Status: f.Status,
	}, nil
}

func UserFormFrom(u entity.User) UserForm {
	return UserForm{Name: u.Name, Email: u.Email, Phone: u.Phone, Role: u.Role, Status: u.Status}
}

// ===================== Числа =====================

// parseDecimal убирает разделители разрядов и разбирает число
func parseDecimal(field, value string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q: %w", field, value, err)
	}
	return v, nil
}

func parseInt(field, value string) (int, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	v, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q: %w", field, value, err)
	}
	return v, nil
}

func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
