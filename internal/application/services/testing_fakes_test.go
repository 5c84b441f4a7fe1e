package services

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/easayliu/file-preview-service/internal/infrastructure/config"
	"github.com/easayliu/file-preview-service/internal/infrastructure/filesystem"
	"github.com/easayliu/file-preview-service/internal/infrastructure/pdf"
)

// fakeEngine 计数用的假渲染引擎
// 以%PDF开头的数据视为合法文档,渲染输出对(页码,倍率)确定
// renderStarted/renderGate非nil时渲染会先通知再阻塞,用于制造在途渲染
type fakeEngine struct {
	mu          sync.Mutex
	pageCount   int
	decodeCalls int
	renderCalls int
	closeCalls  int

	renderStarted chan struct{}
	renderGate    chan struct{}
}

func newFakeEngine(pageCount int) *fakeEngine {
	return &fakeEngine{pageCount: pageCount}
}

func (e *fakeEngine) Decode(data []byte) (pdf.Document, error) {
	e.mu.Lock()
	e.decodeCalls++
	e.mu.Unlock()

	if !bytes.HasPrefix(data, []byte("%PDF")) {
		return nil, errors.New("not a pdf")
	}
	return &fakeDocument{engine: e, pages: e.pageCount}, nil
}

func (e *fakeEngine) calls() (decode, render int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.decodeCalls, e.renderCalls
}

type fakeDocument struct {
	engine *fakeEngine
	pages  int
}

func (d *fakeDocument) PageCount() int {
	return d.pages
}

func (d *fakeDocument) RenderPage(page int, scale float64) ([]byte, error) {
	d.engine.mu.Lock()
	d.engine.renderCalls++
	started, gate := d.engine.renderStarted, d.engine.renderGate
	d.engine.mu.Unlock()

	if started != nil {
		started <- struct{}{}
		<-gate
	}

	if page < 1 || page > d.pages {
		return nil, fmt.Errorf("page %d out of range", page)
	}
	return []byte(fmt.Sprintf("png|page=%d|scale=%g", page, scale)), nil
}

func (d *fakeDocument) Close() error {
	d.engine.mu.Lock()
	d.engine.closeCalls++
	d.engine.mu.Unlock()
	return nil
}

// newTestConfig 以临时目录为沙箱根的测试配置
func newTestConfig(t *testing.T) (*config.Config, *filesystem.PathValidatorService) {
	t.Helper()

	root := t.TempDir()
	cfg := &config.Config{}
	cfg.Storage.RootDir = root
	cfg.Storage.SubdirsUseWorkdir = false
	cfg.Preview.DefaultScale = 4

	validator, err := filesystem.NewPathValidatorService(root)
	if err != nil {
		t.Fatalf("NewPathValidatorService failed: %v", err)
	}

	return cfg, validator
}
