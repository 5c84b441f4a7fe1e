package services

import (
	"context"

	"github.com/easayliu/file-preview-service/internal/application/contracts"
	"github.com/easayliu/file-preview-service/internal/infrastructure/xmlconv"
	"github.com/easayliu/file-preview-service/pkg/logger"
)

// AppConvertService 格式转换服务 - XML到JSON的无状态透传
type AppConvertService struct {
	converter *xmlconv.Converter
}

// NewAppConvertService 创建转换服务
func NewAppConvertService() contracts.ConvertService {
	return &AppConvertService{
		converter: xmlconv.NewConverter(),
	}
}

// ConvertXMLToJSON 解析XML字节并输出JSON字符串
func (s *AppConvertService) ConvertXMLToJSON(ctx context.Context, data []byte) (string, error) {
	out, err := s.converter.ToJSON(data)
	if err != nil {
		logger.Error("Failed to convert XML to JSON", "error", err)
		return "", contracts.NewServiceErrorWithCause(contracts.ErrorCodeInternalError,
			"failed to convert xml to json", err)
	}

	return out, nil
}
