package handlers

import (
	"github.com/easayliu/file-preview-service/internal/application/services"
	httputil "github.com/easayliu/file-preview-service/pkg/utils/http"
	"github.com/gin-gonic/gin"
)

// CacheHandler 预览缓存管理处理器
type CacheHandler struct {
	container *services.ServiceContainer
}

// NewCacheHandler 创建缓存处理器
func NewCacheHandler(container *services.ServiceContainer) *CacheHandler {
	return &CacheHandler{
		container: container,
	}
}

// Stats 查看缓存规模
// @Summary 缓存统计
// @Tags 缓存
// @Produce json
// @Success 200 {object} httputil.Response
// @Router /cache/stats [get]
func (h *CacheHandler) Stats(c *gin.Context) {
	httputil.Success(c, h.container.GetPreviewService().Stats())
}

// Flush 手动清空两级缓存
// @Summary 清空缓存
// @Tags 缓存
// @Produce json
// @Success 200 {object} httputil.Response
// @Router /cache/flush [post]
func (h *CacheHandler) Flush(c *gin.Context) {
	h.container.GetPreviewService().Flush()
	httputil.Success(c, gin.H{"flushed": true})
}
