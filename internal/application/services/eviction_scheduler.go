package services

import (
	"fmt"

	"github.com/easayliu/file-preview-service/internal/application/contracts"
	"github.com/easayliu/file-preview-service/internal/infrastructure/config"
	"github.com/easayliu/file-preview-service/pkg/logger"
	"github.com/robfig/cron/v3"
)

// EvictionScheduler 缓存定时清理调度器
// 原始行为是缓存永不清理,这里保持默认关闭,仅在配置开启后按cron表达式
// 周期性清空预览缓存,作为可配置的兜底手段
type EvictionScheduler struct {
	config  *config.Config
	preview contracts.PreviewService
	cron    *cron.Cron
}

// NewEvictionScheduler 创建调度器
func NewEvictionScheduler(cfg *config.Config, preview contracts.PreviewService) *EvictionScheduler {
	return &EvictionScheduler{
		config:  cfg,
		preview: preview,
		cron:    cron.New(),
	}
}

// Start 按配置注册清理任务并启动调度
// 未开启eviction时直接返回,不启动任何后台任务
func (s *EvictionScheduler) Start() error {
	if !s.config.Preview.Eviction.Enabled {
		logger.Debug("Cache eviction disabled, caches grow for process lifetime")
		return nil
	}

	spec := s.config.Preview.Eviction.Cron
	if _, err := s.cron.AddFunc(spec, func() {
		stats := s.preview.Stats()
		logger.Info("Scheduled cache eviction", "documents", stats.Documents, "pages", stats.Pages)
		s.preview.Flush()
	}); err != nil {
		return fmt.Errorf("invalid eviction cron %q: %w", spec, err)
	}

	s.cron.Start()
	logger.Info("Cache eviction scheduled", "cron", spec)
	return nil
}

// Stop 停止调度,不等待在途任务
func (s *EvictionScheduler) Stop() {
	s.cron.Stop()
}
