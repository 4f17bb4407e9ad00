package handler

import (
	"net/http"
	"time"

	"bedadmin/admin-service/internal/app/admin/resource"
	"bedadmin/pkg/logger"
	"bedadmin/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "admin-service"

// SetupRoutes настраивает все маршруты Admin Service с использованием Gin
func SetupRoutes(viewHandler *ViewHandler, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware(serviceName))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", logger.RequestIDHeader},
		ExposeHeaders:    []string{logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check и метрики
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Демо-каталог товаров
	router.GET(resource.StaticEndpoint, GetStaticProducts)

	admin := router.Group("/admin")
	{
		// Таблица ресурсов для меню и вкладок
		admin.GET("/resources", viewHandler.ListResources)
		admin.GET("/resources/:resource/statuses", viewHandler.GetStatuses)

		// Экраны списков
		lists := admin.Group("/views/lists")
		lists.POST("", viewHandler.MountList)                        // Смонтировать список (загрузка стартует сразу)
		lists.GET("/:id", viewHandler.GetList)                       // Состояние списка
		lists.POST("/:id/page", viewHandler.ChangePage)              // Перейти на страницу
		lists.POST("/:id/delete", viewHandler.RequestDelete)         // Запросить подтверждение удаления
		lists.POST("/:id/delete/confirm", viewHandler.ConfirmDelete) // Удалить запись
		lists.POST("/:id/delete/cancel", viewHandler.CancelDelete)   // Отменить удаление

		// Экраны форм
		forms := admin.Group("/views/forms")
		forms.POST("", viewHandler.MountForm)             // Смонтировать форму create/edit
		forms.GET("/:id", viewHandler.GetForm)            // Состояние формы
		forms.PATCH("/:id", viewHandler.UpdateForm)       // Изменить значения полей
		forms.POST("/:id/submit", viewHandler.SubmitForm) // Отправить форму

		// Общие для всех экранов
		admin.GET("/views/:id/notifications", viewHandler.GetNotifications) // Toast-уведомления
		admin.DELETE("/views/:id", viewHandler.Unmount)                     // Размонтировать экран
	}

	return router
}
