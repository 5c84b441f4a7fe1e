package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/easayliu/file-preview-service/internal/application/contracts"
	"github.com/easayliu/file-preview-service/internal/infrastructure/config"
	"github.com/easayliu/file-preview-service/internal/infrastructure/filesystem"
	"github.com/easayliu/file-preview-service/internal/infrastructure/pdf"
	"github.com/easayliu/file-preview-service/pkg/logger"
)

// AppFileService 应用层文件服务 - 沙箱根目录内的目录与文件访问
// 所有路径在任何I/O前都先经过PathValidatorService
type AppFileService struct {
	config    *config.Config
	validator *filesystem.PathValidatorService
	engine    pdf.Engine
}

// NewAppFileService 创建文件服务
func NewAppFileService(cfg *config.Config, validator *filesystem.PathValidatorService, engine pdf.Engine) contracts.FileService {
	return &AppFileService{
		config:    cfg,
		validator: validator,
		engine:    engine,
	}
}

// CountFiles 统计目录下常规文件数量
func (s *AppFileService) CountFiles(ctx context.Context, directory string) (int, error) {
	names, err := s.ListFileNames(ctx, directory)
	if err != nil {
		return 0, err
	}
	return len(names), nil
}

// ListFileNames 返回目录下常规文件名,按目录项顺序
func (s *AppFileService) ListFileNames(ctx context.Context, directory string) ([]string, error) {
	abs, err := s.resolve(directory)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, s.notFound(fmt.Sprintf("directory not found: %s", directory), err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}

	return names, nil
}

// ListFiles 读取目录下所有常规文件,文件名与内容按下标对齐
// 任一文件读取失败即整体失败
func (s *AppFileService) ListFiles(ctx context.Context, directory string) (*contracts.FileListResponse, error) {
	names, err := s.ListFileNames(ctx, directory)
	if err != nil {
		return nil, err
	}

	contents := make([][]byte, 0, len(names))
	for _, name := range names {
		data, err := s.ReadFile(ctx, directory, name)
		if err != nil {
			return nil, err
		}
		contents = append(contents, data)
	}

	logger.Debug("Listed files with contents", "directory", directory, "count", len(names))

	return &contracts.FileListResponse{
		Names:    names,
		Contents: contents,
	}, nil
}

// ListSubdirectoryNames 返回目录下子目录名
// 历史行为:相对进程工作目录解析(storage.subdirs_use_workdir=true,默认)
// 配置为false后改用沙箱根目录,与其他操作一致
func (s *AppFileService) ListSubdirectoryNames(ctx context.Context, directory string) ([]string, error) {
	var abs string
	var err error

	if s.config.Storage.SubdirsUseWorkdir {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return nil, s.notFound("working directory unavailable", wdErr)
		}
		abs, err = s.validator.ResolveUnder(wd, directory)
	} else {
		abs, err = s.validator.Resolve(directory)
	}
	if err != nil {
		return nil, unprocessable(err)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, s.notFound(fmt.Sprintf("directory not found: %s", directory), err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	return names, nil
}

// ReadFile 读取单个常规文件的完整内容
func (s *AppFileService) ReadFile(ctx context.Context, directory, fileName string) ([]byte, error) {
	abs, err := s.resolve(directory, fileName)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, s.notFound(fmt.Sprintf("file not found: %s", fileName), err)
	}
	if !info.Mode().IsRegular() {
		return nil, s.notFound(fmt.Sprintf("not a regular file: %s", fileName), nil)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, s.notFound(fmt.Sprintf("file not readable: %s", fileName), err)
	}

	return data, nil
}

// ReadFileAsStream 以流形式返回文件内容,供传输层直接拷贝
func (s *AppFileService) ReadFileAsStream(ctx context.Context, directory, fileName string) (io.Reader, error) {
	data, err := s.ReadFile(ctx, directory, fileName)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// CountPDFPages 解码PDF并返回页数,句柄即用即释放,不进缓存
func (s *AppFileService) CountPDFPages(ctx context.Context, directory, fileName string) (int, error) {
	data, err := s.ReadFile(ctx, directory, fileName)
	if err != nil {
		return 0, err
	}

	doc, err := s.engine.Decode(data)
	if err != nil {
		logger.Error("Failed to decode PDF", "file", fileName, "error", err)
		return 0, contracts.NewServiceErrorWithCause(contracts.ErrorCodeInternalError,
			fmt.Sprintf("failed to read pdf: %s", fileName), err)
	}
	defer doc.Close()

	return doc.PageCount(), nil
}

// resolve 拼接并校验沙箱内路径,校验失败映射为UNPROCESSABLE_ENTITY
func (s *AppFileService) resolve(parts ...string) (string, error) {
	abs, err := s.validator.Resolve(parts...)
	if err != nil {
		return "", unprocessable(err)
	}
	return abs, nil
}

// notFound I/O失败统一包装:原因进日志,调用方只看到目录/文件名
func (s *AppFileService) notFound(message string, cause error) error {
	if cause != nil {
		logger.Error("File access failed", "message", message, "error", cause)
	} else {
		logger.Error("File access failed", "message", message)
	}
	return contracts.NewServiceErrorWithCause(contracts.ErrorCodeNotFound, message, cause)
}

// unprocessable 路径安全校验失败的统一包装
func unprocessable(cause error) error {
	logger.Warn("Path safety check failed", "error", cause)
	return contracts.NewServiceErrorWithCause(contracts.ErrorCodeUnprocessable, "invalid path", cause)
}
