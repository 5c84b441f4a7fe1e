package services

import (
	"github.com/easayliu/file-preview-service/internal/application/contracts"
	"github.com/easayliu/file-preview-service/internal/infrastructure/config"
	"github.com/easayliu/file-preview-service/internal/infrastructure/filesystem"
	"github.com/easayliu/file-preview-service/internal/infrastructure/pdf"
	"github.com/easayliu/file-preview-service/internal/infrastructure/ratelimit"
)

// ServiceContainer 服务容器 - 统一装配所有应用服务
type ServiceContainer struct {
	config         *config.Config
	fileService    contracts.FileService
	previewService contracts.PreviewService
	convertService contracts.ConvertService
	rateLimiter    *ratelimit.RateLimiter
	scheduler      *EvictionScheduler
}

// NewServiceContainer 创建并装配服务容器
func NewServiceContainer(cfg *config.Config) (*ServiceContainer, error) {
	validator, err := filesystem.NewPathValidatorService(cfg.Storage.RootDir)
	if err != nil {
		return nil, err
	}

	engine := pdf.NewFitzEngine(pdf.Options{
		CMapDir:         cfg.Preview.CMapDir,
		StandardFontDir: cfg.Preview.StandardFontDir,
	})

	previewService := NewAppPreviewService(cfg, validator, engine)

	return &ServiceContainer{
		config:         cfg,
		fileService:    NewAppFileService(cfg, validator, engine),
		previewService: previewService,
		convertService: NewAppConvertService(),
		rateLimiter:    ratelimit.NewRateLimiter(cfg.RateLimit.QPS),
		scheduler:      NewEvictionScheduler(cfg, previewService),
	}, nil
}

// GetConfig 获取配置
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

// GetFileService 获取文件服务
func (c *ServiceContainer) GetFileService() contracts.FileService {
	return c.fileService
}

// GetPreviewService 获取预览服务
func (c *ServiceContainer) GetPreviewService() contracts.PreviewService {
	return c.previewService
}

// GetConvertService 获取转换服务
func (c *ServiceContainer) GetConvertService() contracts.ConvertService {
	return c.convertService
}

// GetRateLimiter 获取限流器
func (c *ServiceContainer) GetRateLimiter() *ratelimit.RateLimiter {
	return c.rateLimiter
}

// GetEvictionScheduler 获取缓存清理调度器
func (c *ServiceContainer) GetEvictionScheduler() *EvictionScheduler {
	return c.scheduler
}
