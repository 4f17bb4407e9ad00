package entity

// StaticProducts - демо-каталог, который сервис отдает сам по GET /api/products
// Это фикстура, а не настоящий API товаров: экран списка товаров читает именно ее
func StaticProducts() []Product {
	out := make([]Product, len(staticProducts))
	copy(out, staticProducts)
	return out
}

var staticProducts = []Product{
	{ID: "1", Name: "Cloud Comfort Memory Foam Mattress", Price: 45999, SalePrice: 39999, Quantity: 25, Type: "Mattress", Status: "Active", Image: "/images/products/cloud-comfort.jpg"},
	{ID: "2", Name: "Orthopedic Spring Mattress", Price: 32999, SalePrice: 28999, Quantity: 18, Type: "Mattress", Status: "Active", Image: "/images/products/ortho-spring.jpg"},
	{ID: "3", Name: "Latex Hybrid Mattress", Price: 58999, SalePrice: 52999, Quantity: 9, Type: "Mattress", Status: "Active", Image: "/images/products/latex-hybrid.jpg"},
	{ID: "4", Name: "Dual Comfort Reversible Mattress", Price: 27999, SalePrice: 24999, Quantity: 0, Type: "Mattress", Status: "Out of Stock", Image: "/images/products/dual-comfort.jpg"},
	{ID: "5", Name: "Memory Foam Contour Pillow", Price: 2499, SalePrice: 1999, Quantity: 120, Type: "Pillow", Status: "Active", Image: "/images/products/contour-pillow.jpg"},
	{ID: "6", Name: "Microfiber Hotel Pillow", Price: 1499, SalePrice: 1199, Quantity: 200, Type: "Pillow", Status: "Active", Image: "/images/products/hotel-pillow.jpg"},
	{ID: "7", Name: "Cooling Gel Pillow", Price: 3299, SalePrice: 2799, Quantity: 64, Type: "Pillow", Status: "Active", Image: "/images/products/cooling-gel.jpg"},
	{ID: "8", Name: "Bamboo Mattress Protector", Price: 3999, SalePrice: 3499, Quantity: 45, Type: "Protector", Status: "Active", Image: "/images/products/bamboo-protector.jpg"},
	{ID: "9", Name: "Baby Cot Mattress", Price: 7999, SalePrice: 6999, Quantity: 30, Type: "Mattress", Status: "Inactive", Image: "/images/products/baby-cot.jpg"},
	{ID: "10", Name: "Cervical Support Pillow", Price: 2999, SalePrice: 2499, Quantity: 0, Type: "Pillow", Status: "Out of Stock", Image: "/images/products/cervical.jpg"},
}
