package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/easayliu/file-preview-service/docs"
	"github.com/easayliu/file-preview-service/internal/application/services"
	"github.com/easayliu/file-preview-service/internal/infrastructure/config"
	"github.com/easayliu/file-preview-service/internal/interfaces/http/routes"
	"github.com/easayliu/file-preview-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

// @title File Preview Service API
// @version 1.0
// @description 沙箱根目录内的文件访问、PDF页面预览与XML转JSON服务

// @license.name MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
func main() {
	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// 初始化日志
	if err := logger.Init(logger.Options{
		Level:     cfg.Log.Level,
		Output:    cfg.Log.Output,
		Format:    cfg.Log.Format,
		FilePath:  cfg.Log.FilePath,
		Colorize:  cfg.Log.Colorize,
		AddSource: cfg.Log.AddSource,
	}); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化服务容器
	container, err := services.NewServiceContainer(cfg)
	if err != nil {
		log.Fatal("Failed to initialize service container:", err)
	}

	// 启动缓存清理调度(默认关闭)
	scheduler := container.GetEvictionScheduler()
	if err := scheduler.Start(); err != nil {
		log.Fatal("Failed to start eviction scheduler:", err)
	}

	// 初始化路由
	router := routes.SetupRoutes(cfg, container)

	// 设置信号处理
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 启动服务器
	go func() {
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		logger.Info("Starting server", "address", addr, "root", cfg.Storage.RootDir)
		if err := router.Run(addr); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// 等待退出信号
	<-quit
	logger.Info("Shutting down server...")

	scheduler.Stop()
	container.GetPreviewService().Flush()

	logger.Info("Server stopped")
}
