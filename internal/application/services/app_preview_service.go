package services

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/easayliu/file-preview-service/internal/application/contracts"
	"github.com/easayliu/file-preview-service/internal/infrastructure/config"
	"github.com/easayliu/file-preview-service/internal/infrastructure/filesystem"
	"github.com/easayliu/file-preview-service/internal/infrastructure/pdf"
	"github.com/easayliu/file-preview-service/pkg/logger"
	"golang.org/x/sync/singleflight"
)

// AppPreviewService PDF页面预览服务 - 两级缓存的页面渲染
//
// 一级缓存:已解码的文档句柄,键为绝对路径
// 二级缓存:渲染好的PNG字节,键为(绝对路径,页码,倍率)
// 两级缓存默认只增不减(见EvictionConfig);源文件修改后不失效,继续返回旧内容
// singleflight保证同一键并发未命中时解码/渲染至多执行一次
type AppPreviewService struct {
	config    *config.Config
	validator *filesystem.PathValidatorService
	engine    pdf.Engine

	mu    sync.RWMutex
	docs  map[string]*documentEntry
	pages map[string][]byte

	docGroup  singleflight.Group
	pageGroup singleflight.Group
}

// documentEntry 缓存的文档句柄及其在途借用计数
// Flush先把条目移出缓存(之后不会再有新借用),等计数归零才Close,
// 保证不会关闭仍在渲染中的句柄
type documentEntry struct {
	doc      pdf.Document
	inFlight sync.WaitGroup
}

// NewAppPreviewService 创建预览服务
func NewAppPreviewService(cfg *config.Config, validator *filesystem.PathValidatorService, engine pdf.Engine) contracts.PreviewService {
	return &AppPreviewService{
		config:    cfg,
		validator: validator,
		engine:    engine,
		docs:      make(map[string]*documentEntry),
		pages:     make(map[string][]byte),
	}
}

// ConvertPDFPage 将PDF的一页渲染为PNG
// 页面缓存命中时直接返回,不触发任何解码或渲染
func (s *AppPreviewService) ConvertPDFPage(ctx context.Context, req contracts.PDFPageRequest) (*contracts.PDFPageResponse, error) {
	scale := req.Scale
	if scale <= 0 {
		scale = s.config.Preview.DefaultScale
	}
	if req.Page < 1 {
		return nil, contracts.NewServiceError(contracts.ErrorCodeInvalidRequest,
			fmt.Sprintf("invalid page number: %d", req.Page))
	}

	abs, err := s.validator.Resolve(req.Directory, req.FileName)
	if err != nil {
		return nil, unprocessable(err)
	}

	key := pageCacheKey(abs, req.Page, scale)

	s.mu.RLock()
	cached, ok := s.pages[key]
	s.mu.RUnlock()
	if ok {
		logger.Debug("Page cache hit", "file", req.FileName, "page", req.Page, "scale", scale)
		return &contracts.PDFPageResponse{Image: cached, FromCache: true}, nil
	}

	img, err, _ := s.pageGroup.Do(key, func() (interface{}, error) {
		entry, err := s.borrowDocument(abs)
		if err != nil {
			return nil, err
		}
		defer entry.inFlight.Done()

		rendered, err := entry.doc.RenderPage(req.Page, scale)
		if err != nil {
			return nil, fmt.Errorf("render page: %w", err)
		}

		return s.storePage(key, rendered), nil
	})
	if err != nil {
		logger.Error("Failed to convert PDF page", "file", req.FileName, "page", req.Page, "error", err)
		return nil, contracts.NewServiceErrorWithCause(contracts.ErrorCodeInternalError,
			fmt.Sprintf("failed to convert pdf page: %s", req.FileName), err)
	}

	return &contracts.PDFPageResponse{Image: img.([]byte)}, nil
}

// borrowDocument 取缓存的文档句柄并登记一次在途借用,未命中时读文件并解码
// 借用计数必须在持有缓存锁、条目仍在缓存中时增加,与Flush的先移除再等待配对
// singleflight按绝对路径去重,同一文件并发首访只解码一次
func (s *AppPreviewService) borrowDocument(abs string) (*documentEntry, error) {
	for {
		s.mu.RLock()
		entry, ok := s.docs[abs]
		if ok {
			entry.inFlight.Add(1)
		}
		s.mu.RUnlock()
		if ok {
			return entry, nil
		}

		_, err, _ := s.docGroup.Do(abs, func() (interface{}, error) {
			data, err := os.ReadFile(abs)
			if err != nil {
				return nil, fmt.Errorf("read file: %w", err)
			}

			decoded, err := s.engine.Decode(data)
			if err != nil {
				return nil, fmt.Errorf("decode document: %w", err)
			}

			s.mu.Lock()
			defer s.mu.Unlock()
			// 不覆盖并发间隙里已入缓存的句柄
			if _, ok := s.docs[abs]; ok {
				decoded.Close()
				return nil, nil
			}
			s.docs[abs] = &documentEntry{doc: decoded}

			logger.Info("Document decoded and cached", "path", logger.TrimPath(abs, 3))
			return nil, nil
		})
		if err != nil {
			return nil, err
		}
		// 回到循环重新借用;解码到借用的间隙里条目被Flush清掉就再解码一次
	}
}

// storePage 页面入缓存;键已存在时保留旧值,返回实际生效的字节
func (s *AppPreviewService) storePage(key string, img []byte) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.pages[key]; ok {
		return existing
	}
	s.pages[key] = img
	return img
}

// Stats 返回两级缓存的条目数
func (s *AppPreviewService) Stats() contracts.CacheStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return contracts.CacheStats{
		Documents: len(s.docs),
		Pages:     len(s.pages),
	}
}

// Flush 清空两级缓存并释放文档句柄
// 句柄先移出缓存再关闭:移出后不会有新借用,关闭前等在途渲染全部结束
func (s *AppPreviewService) Flush() {
	s.mu.Lock()
	entries := s.docs
	flushed := len(s.docs) + len(s.pages)
	s.docs = make(map[string]*documentEntry)
	s.pages = make(map[string][]byte)
	s.mu.Unlock()

	for path, entry := range entries {
		entry.inFlight.Wait()
		if err := entry.doc.Close(); err != nil {
			logger.Warn("Failed to close cached document", "path", logger.TrimPath(path, 3), "error", err)
		}
	}

	logger.Info("Preview caches flushed", "entries", flushed)
}

// pageCacheKey 页面缓存键:绝对路径+页码+倍率
func pageCacheKey(abs string, page int, scale float64) string {
	return fmt.Sprintf("%s|%d|%g", abs, page, scale)
}
