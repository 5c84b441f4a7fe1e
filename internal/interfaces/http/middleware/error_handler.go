package middleware

import (
	"net/http"

	"github.com/easayliu/file-preview-service/internal/application/contracts"
	"github.com/easayliu/file-preview-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

// ErrorHandlerMiddleware 统一错误处理中间件
// 捕获handler中设置的错误,按业务错误码转换为HTTP响应
// 内部原因(Cause)只进日志,不出现在响应体里
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		if serviceErr, ok := err.(*contracts.ServiceError); ok {
			if serviceErr.Cause != nil {
				logger.Error("Request failed", "path", c.Request.URL.Path, "code", serviceErr.Code, "cause", serviceErr.Cause)
			}
			c.JSON(mapErrorCodeToHTTPStatus(serviceErr.Code), gin.H{
				"error":   serviceErr.Message,
				"code":    serviceErr.Code,
				"details": serviceErr.Details,
			})
			return
		}

		logger.Error("Request failed with unexpected error", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "internal server error",
			"code":  contracts.ErrorCodeInternalError,
		})
	}
}

// mapErrorCodeToHTTPStatus 将业务错误码映射到HTTP状态码
func mapErrorCodeToHTTPStatus(code contracts.ErrorCode) int {
	switch code {
	case contracts.ErrorCodeInvalidRequest:
		return http.StatusBadRequest
	case contracts.ErrorCodeNotFound:
		return http.StatusNotFound
	case contracts.ErrorCodeUnprocessable:
		return http.StatusUnprocessableEntity
	case contracts.ErrorCodeRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// RecoverMiddleware 恢复中间件 - 捕获panic并转换为500错误
func RecoverMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic recovered", "path", c.Request.URL.Path, "panic", r)
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
					"code":  contracts.ErrorCodeInternalError,
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
