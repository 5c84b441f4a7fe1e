package handlers

import (
	"io"
	"net/http"

	"github.com/easayliu/file-preview-service/internal/application/contracts"
	"github.com/easayliu/file-preview-service/internal/application/services"
	"github.com/gin-gonic/gin"
)

// ConvertHandler 格式转换处理器
type ConvertHandler struct {
	container *services.ServiceContainer
}

// NewConvertHandler 创建转换处理器
func NewConvertHandler(container *services.ServiceContainer) *ConvertHandler {
	return &ConvertHandler{
		container: container,
	}
}

// ConvertXMLToJSON XML转JSON
// @Summary XML转JSON
// @Description 请求体为XML,属性合并进所在元素后输出JSON
// @Tags 转换
// @Accept xml
// @Produce json
// @Success 200 {object} map[string]interface{} "转换后的JSON"
// @Failure 500 {object} map[string]interface{} "解析失败"
// @Router /convert/xml [post]
func (h *ConvertHandler) ConvertXMLToJSON(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Error(contracts.NewServiceErrorWithCause(contracts.ErrorCodeInvalidRequest, "failed to read request body", err))
		return
	}

	out, err := h.container.GetConvertService().ConvertXMLToJSON(c.Request.Context(), body)
	if err != nil {
		c.Error(err)
		return
	}

	c.Data(http.StatusOK, "application/json", []byte(out))
}
