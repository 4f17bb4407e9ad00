package resource

import (
	"bedadmin/admin-service/internal/app/admin/entity"
	"bedadmin/admin-service/internal/app/admin/schema"
)

// Ключи справочников для выпадающих списков форм
const (
	OptionsCategories    = "categories"
	OptionsSubcategories = "subcategories"
	OptionsBrands        = "brands"
)

// OptionEndpoints - откуда грузится каждый справочник
var OptionEndpoints = map[string]string{
	OptionsCategories:    "/categories",
	OptionsSubcategories: "/subcategories",
	OptionsBrands:        "/brands",
}

// OptionKeyFor - справочник, который устаревает после изменения ресурса
func OptionKeyFor(resource string) (string, bool) {
	for key, endpoint := range OptionEndpoints {
		if endpoint == "/"+resource {
			return key, true
		}
	}
	return "", false
}

func definitions() []*Definition {
	return []*Definition{
		{
			Name:             "orders",
			Label:            "Order",
			Endpoint:         "/neworders",
			MutationEndpoint: "/orders",
			PageSize:         10,
			Source:           SourceLive,
			StatusDomain:     entity.DomainOrder,
			Tabs:             statusTabs(entity.DomainOrder),
			newList:          statusListOf[entity.Order](),
		},
		{
			Name:         "transactions",
			Label:        "Transaction",
			Endpoint:     "/transactions",
			PageSize:     10,
			Source:       SourceLive,
			StatusDomain: entity.DomainTransaction,
			Tabs:         statusTabs(entity.DomainTransaction),
			newList:      statusListOf[entity.Transaction](),
		},
		{
			Name:     "categories",
			Label:    "Category",
			Endpoint: "/categories",
			PageSize: 8,
			Source:   SourceLive,
			newList:  listOf[entity.Category](),
			newForm: formOf(
				func() schema.CategoryForm { return schema.CategoryForm{} },
				schema.CategoryFormFrom, false),
		},
		{
			Name:     "subcategories",
			Label:    "Sub Category",
			Endpoint: "/subcategories",
			PageSize: 8,
			Source:   SourceLive,
			Options:  []string{OptionsCategories},
			References: map[string]string{
				"parentCategoryId": OptionsCategories,
			},
			newList: listOf[entity.SubCategory](),
			newForm: formOf(
				func() schema.SubCategoryForm { return schema.SubCategoryForm{} },
				schema.SubCategoryFormFrom, false),
		},
		{
			Name:     "childCategories",
			Label:    "Child Category",
			Endpoint: "/childCategories",
			PageSize: 8,
			Source:   SourceLive,
			Options:  []string{OptionsCategories, OptionsSubcategories},
			References: map[string]string{
				"subcategoryid": OptionsSubcategories,
			},
			newList: listOf[entity.ChildCategory](),
			newForm: formOf(
				func() schema.ChildCategoryForm { return schema.ChildCategoryForm{} },
				schema.ChildCategoryFormFrom, false),
		},
		{
			Name:     "brands",
			Label:    "Brand",
			Endpoint: "/brands",
			PageSize: 7,
			Source:   SourceLive,
			newList:  listOf[entity.Brand](),
			newForm: formOf(
				func() schema.BrandForm { return schema.BrandForm{Status: "active"} },
				schema.BrandFormFrom, false),
		},
		{
			Name:     "coupons",
			Label:    "Coupon",
			Endpoint: "/coupons",
			PageSize: 5,
			Source:   SourceLive,
			newList:  listOf[entity.Coupon](),
			newForm: formOf(
				func() schema.CouponForm { return schema.CouponForm{Status: "active"} },
				schema.CouponFormFrom, false),
		},
		{
			// Список читается из демо-фикстуры, изменения уходят в backend
			Name:             "products",
			Label:            "Product",
			Endpoint:         StaticEndpoint,
			MutationEndpoint: "/products",
			PageSize:         10,
			Source:           SourceStatic,
			Options:          []string{OptionsCategories, OptionsSubcategories, OptionsBrands},
			References: map[string]string{
				"category":    OptionsCategories,
				"subcategory": OptionsSubcategories,
				"brands":      OptionsBrands,
			},
			newList: listOf[entity.Product](),
			newForm: formOf(
				func() schema.ProductForm { return schema.ProductForm{Quantity: "0"} },
				schema.ProductFormFrom, true),
		},
		{
			Name:     "reviews",
			Label:    "Review",
			Endpoint: "/reviews",
			PageSize: 5,
			Source:   SourceLive,
			newList:  listOf[entity.Review](),
		},
		{
			Name:     "support",
			Label:    "Support Ticket",
			Endpoint: "/support",
			PageSize: 7,
			Source:   SourceLive,
			newList:  listOf[entity.SupportTicket](),
		},
		{
			Name:     "userslist",
			Label:    "User",
			Endpoint: "/userslist",
			PageSize: 10,
			Source:   SourceLive,
			newList:  listOf[entity.User](),
			newForm: formOf(
				func() schema.UserForm { return schema.UserForm{Role: "customer", Status: "active"} },
				schema.UserFormFrom, false),
		},
		{
			Name:     "studios",
			Label:    "Studio",
			Endpoint: "/studios",
			PageSize: 8,
			Source:   SourceLive,
			newList:  listOf[entity.Studio](),
			newForm: formOf(
				func() schema.StudioForm { return schema.StudioForm{Status: "pending"} },
				schema.StudioFormFrom, false),
		},
	}
}
