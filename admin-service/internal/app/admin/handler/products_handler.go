package handler

import (
	"net/http"

	"bedadmin/admin-service/internal/app/admin/entity"

	"github.com/gin-gonic/gin"
)

// GetStaticProducts обрабатывает GET /api/products
// Демо-каталог из 10 товаров; тот же набор читает экран списка товаров
func GetStaticProducts(c *gin.Context) {
	c.JSON(http.StatusOK, entity.StaticProducts())
}
