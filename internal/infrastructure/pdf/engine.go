// Package pdf 封装PDF解码与页面栅格化引擎
// 上层只依赖Engine/Document接口,便于测试时替换为计数用的假实现
package pdf

import (
	"bytes"
	"fmt"
	"image/png"
	"sync"

	"github.com/gen2brain/go-fitz"

	"github.com/easayliu/file-preview-service/pkg/logger"
)

// Engine PDF解码引擎
type Engine interface {
	// Decode 将PDF字节解码为可渲染的文档句柄
	Decode(data []byte) (Document, error)
}

// Document 已解码的PDF文档句柄
// 句柄会被缓存长期持有,使用完毕(或缓存清空)时必须Close
type Document interface {
	// PageCount 文档页数
	PageCount() int
	// RenderPage 将指定页(从1开始)按倍率渲染为PNG字节
	RenderPage(page int, scale float64) ([]byte, error)
	// Close 释放底层资源
	Close() error
}

// Options 渲染引擎资源配置
// MuPDF自带CJK字符映射表和标准字体,go-fitz未开放替换内置资源的入口,
// 这两个目录当前不生效,仅为配置兼容保留;设置了会在启动时告警
type Options struct {
	CMapDir         string
	StandardFontDir string
}

// FitzEngine 基于go-fitz(MuPDF)的引擎实现
type FitzEngine struct {
	opts Options
}

// NewFitzEngine 创建MuPDF引擎
func NewFitzEngine(opts Options) *FitzEngine {
	if opts.CMapDir != "" || opts.StandardFontDir != "" {
		logger.Warn("外部字体资源目录不生效,渲染使用MuPDF内置资源",
			"cmap_dir", opts.CMapDir, "standard_font_dir", opts.StandardFontDir)
	}
	return &FitzEngine{opts: opts}
}

func (e *FitzEngine) Decode(data []byte) (Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("decode pdf: %w", err)
	}

	return &fitzDocument{doc: doc}, nil
}

// fitzDocument go-fitz的文档句柄非并发安全,渲染调用串行化
type fitzDocument struct {
	mu  sync.Mutex
	doc *fitz.Document
}

func (d *fitzDocument) PageCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.doc.NumPage()
}

func (d *fitzDocument) RenderPage(page int, scale float64) ([]byte, error) {
	if page < 1 {
		return nil, fmt.Errorf("invalid page number: %d", page)
	}
	if scale <= 0 {
		return nil, fmt.Errorf("invalid scale: %g", scale)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if page > d.doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range (document has %d pages)", page, d.doc.NumPage())
	}

	// go-fitz页码从0开始;scale按PDF基准72DPI换算
	img, err := d.doc.ImageDPI(page-1, ScaleToDPI(scale))
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", page, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	return buf.Bytes(), nil
}

func (d *fitzDocument) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.doc.Close()
}

// ScaleToDPI 渲染倍率换算为DPI,1.0对应PDF的72DPI基准
func ScaleToDPI(scale float64) float64 {
	return 72 * scale
}
