package handlers

import (
	"net/http"
	"strconv"

	"github.com/easayliu/file-preview-service/internal/application/contracts"
	"github.com/easayliu/file-preview-service/internal/application/services"
	"github.com/gin-gonic/gin"
)

// PreviewHandler PDF页面预览处理器
type PreviewHandler struct {
	container *services.ServiceContainer
}

// NewPreviewHandler 创建预览处理器
func NewPreviewHandler(container *services.ServiceContainer) *PreviewHandler {
	return &PreviewHandler{
		container: container,
	}
}

// ConvertPDFPage 渲染PDF单页为PNG
// @Summary PDF页面转PNG
// @Description 渲染结果进程内缓存,源文件修改后不会失效
// @Tags 预览
// @Produce png
// @Param directory query string false "相对根目录的目录路径"
// @Param name query string true "PDF文件名"
// @Param page query int true "页码,从1开始"
// @Param scale query number false "渲染倍率,默认取配置值"
// @Success 200 {string} binary "PNG图像"
// @Failure 422 {object} map[string]interface{} "路径安全校验失败"
// @Failure 500 {object} map[string]interface{} "读取/解码/渲染失败"
// @Router /preview/pdf [get]
func (h *PreviewHandler) ConvertPDFPage(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.Error(contracts.NewServiceError(contracts.ErrorCodeInvalidRequest, "page must be an integer"))
		return
	}

	scale := 0.0
	if raw := c.Query("scale"); raw != "" {
		scale, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			c.Error(contracts.NewServiceError(contracts.ErrorCodeInvalidRequest, "scale must be a number"))
			return
		}
	}

	req := contracts.PDFPageRequest{
		Directory: c.Query("directory"),
		FileName:  c.Query("name"),
		Page:      page,
		Scale:     scale,
	}

	resp, err := h.container.GetPreviewService().ConvertPDFPage(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	if resp.FromCache {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	c.Data(http.StatusOK, "image/png", resp.Image)
}
