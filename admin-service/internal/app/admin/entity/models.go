package entity

// UnknownLabel - подпись для висячих ссылок и неизвестных статусов
const UnknownLabel = "Unknown"

// Category - категория верхнего уровня (матрасы, подушки, ...)
type Category struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// SubCategory ссылается на Category через ParentCategoryID
type SubCategory struct {
	ID               ID     `json:"id"`
	Name             string `json:"name"`
	ParentCategoryID Ref    `json:"parentCategoryId"`
	Image            string `json:"image,omitempty"`
}

// ChildCategory ссылается на SubCategory через SubcategoryID
type ChildCategory struct {
	ID            ID     `json:"id"`
	Name          string `json:"name"`
	SubcategoryID Ref    `json:"subcategoryid"`
	Image         string `json:"image,omitempty"`
}

type Brand struct {
	ID     ID     `json:"id"`
	Name   string `json:"name"`
	Logo   string `json:"logo,omitempty"`
	Status string `json:"status,omitempty"`
}

// Product - товар; Category/Subcategory/Brands - внешние ключи без проверки целостности
type Product struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Price       Number `json:"price"`
	SalePrice   Number `json:"salePrice"`
	Quantity    Number `json:"quantity"`
	Type        string `json:"type,omitempty"`
	Status      string `json:"status,omitempty"`
	Image       string `json:"image,omitempty"`
	Category    Ref    `json:"category,omitzero"`
	Subcategory Ref    `json:"subcategory,omitzero"`
	Brands      Ref    `json:"brands,omitzero"`
	Description string `json:"description,omitempty"`
}

// Coupon - скидка хранится как "10%", минимальная сумма заказа числом
type Coupon struct {
	ID            ID     `json:"id"`
	Code          string `json:"code"`
	Discount      string `json:"discount"`
	MinimumAmount Number `json:"minimumAmount"`
	ExpiryDate    string `json:"expiryDate,omitempty"`
	Status        string `json:"status,omitempty"`
}

type Order struct {
	ID            ID         `json:"id"`
	OrderNumber   string     `json:"orderNumber,omitempty"`
	CustomerName  string     `json:"customerName,omitempty"`
	Email         string     `json:"email,omitempty"`
	Total         Number     `json:"total"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	Status        StatusCode `json:"status"`
	CreatedAt     string     `json:"createdAt,omitempty"`
}

type Transaction struct {
	ID            ID         `json:"id"`
	TransactionID string     `json:"transactionId,omitempty"`
	OrderID       ID         `json:"orderId,omitempty"`
	CustomerName  string     `json:"customerName,omitempty"`
	Amount        Number     `json:"amount"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	Status        StatusCode `json:"status"`
	CreatedAt     string     `json:"createdAt,omitempty"`
}

type Review struct {
	ID           ID     `json:"id"`
	ProductID    ID     `json:"productId,omitempty"`
	CustomerName string `json:"customerName,omitempty"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

type SupportTicket struct {
	ID           ID     `json:"id"`
	Subject      string `json:"subject"`
	CustomerName string `json:"customerName,omitempty"`
	Email        string `json:"email,omitempty"`
	Message      string `json:"message,omitempty"`
	Status       string `json:"status,omitempty"`
	Priority     string `json:"priority,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

type User struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role,omitempty"`
	Status    string `json:"status,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Studio - витрина продавца (vendor studio)
type Studio struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	Owner   string `json:"owner,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Status  string `json:"status,omitempty"`
}

func (c Category) RecordID() ID { return c.ID }
func (c SubCategory) RecordID() ID { return c.ID }
func (c ChildCategory) RecordID() ID { return c.ID }
func (b Brand) RecordID() ID { return b.ID }
func (p Product) RecordID() ID { return p.ID }
func (c Coupon) RecordID() ID { return c.ID }
func (o Order) RecordID() ID { return o.ID }
func (t Transaction) RecordID() ID { return t.ID }
func (r Review) RecordID() ID { return r.ID }
func (s SupportTicket) RecordID() ID { return s.ID }
func (u User) RecordID() ID { return u.ID }
func (s Studio) RecordID() ID { return s.ID }

func (o Order) StatusCode() int { return int(o.Status) }
func (t Transaction) StatusCode() int { return int(t.Status) }

// OptionLabel - подпись записи в выпадающем списке формы
func (c Category) OptionLabel() string { return c.Name }
func (c SubCategory) OptionLabel() string { return c.Name }
func (b Brand) OptionLabel() string { return b.Name }
