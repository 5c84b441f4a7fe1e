package routes

import (
	"github.com/easayliu/file-preview-service/internal/application/services"
	"github.com/easayliu/file-preview-service/internal/infrastructure/config"
	"github.com/easayliu/file-preview-service/internal/interfaces/http/handlers"
	"github.com/easayliu/file-preview-service/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes 装配全部路由与中间件
func SetupRoutes(cfg *config.Config, container *services.ServiceContainer) *gin.Engine {
	router := gin.New()

	// 全局中间件
	router.Use(middleware.RecoverMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RateLimitMiddleware(container.GetRateLimiter()))
	router.Use(middleware.ErrorHandlerMiddleware())

	// Swagger文档路由
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	fileHandler := handlers.NewFileHandler(container)
	previewHandler := handlers.NewPreviewHandler(container)
	convertHandler := handlers.NewConvertHandler(container)
	cacheHandler := handlers.NewCacheHandler(container)

	api := router.Group("/api/v1")
	{
		// 健康检查
		api.GET("/health", handlers.HealthCheck)

		// 文件访问
		files := api.Group("/files")
		{
			files.GET("/count", fileHandler.CountFiles)
			files.GET("/names", fileHandler.ListFileNames)
			files.GET("/list", fileHandler.ListFiles)
			files.GET("/subdirectories", fileHandler.ListSubdirectoryNames)
			files.GET("/content", fileHandler.ReadFile)
			files.GET("/stream", fileHandler.StreamFile)
			files.GET("/pdf/pages", fileHandler.CountPDFPages)
		}

		// PDF页面预览
		preview := api.Group("/preview")
		{
			preview.GET("/pdf", previewHandler.ConvertPDFPage)
		}

		// 格式转换
		convert := api.Group("/convert")
		{
			convert.POST("/xml", convertHandler.ConvertXMLToJSON)
		}

		// 缓存管理
		cache := api.Group("/cache")
		{
			cache.GET("/stats", cacheHandler.Stats)
			cache.POST("/flush", cacheHandler.Flush)
		}
	}

	return router
}
