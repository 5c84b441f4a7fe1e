package services

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/easayliu/file-preview-service/internal/application/contracts"
)

func newPreviewFixture(t *testing.T, pageCount int) (contracts.PreviewService, *fakeEngine) {
	t.Helper()

	cfg, validator := newTestConfig(t)
	engine := newFakeEngine(pageCount)
	svc := NewAppPreviewService(cfg, validator, engine)

	writeFixture(t, cfg.Storage.RootDir, "docs/sample.pdf", []byte("%PDF-1.7 fixture"))

	return svc, engine
}

func TestConvertPDFPage_CacheHitSkipsRendering(t *testing.T) {
	svc, engine := newPreviewFixture(t, 5)
	ctx := context.Background()

	req := contracts.PDFPageRequest{Directory: "docs", FileName: "sample.pdf", Page: 2, Scale: 4}

	first, err := svc.ConvertPDFPage(ctx, req)
	if err != nil {
		t.Fatalf("first ConvertPDFPage failed: %v", err)
	}
	if first.FromCache {
		t.Error("first call should not be a cache hit")
	}

	decodeAfterFirst, renderAfterFirst := engine.calls()
	if decodeAfterFirst != 1 || renderAfterFirst != 1 {
		t.Fatalf("after first call: decode=%d render=%d, want 1/1", decodeAfterFirst, renderAfterFirst)
	}

	second, err := svc.ConvertPDFPage(ctx, req)
	if err != nil {
		t.Fatalf("second ConvertPDFPage failed: %v", err)
	}

	// 第二次调用必须命中缓存:字节一致且不再触发解码/渲染
	if !bytes.Equal(first.Image, second.Image) {
		t.Error("cached image differs from first render")
	}
	if !second.FromCache {
		t.Error("second call should report a cache hit")
	}

	decode, render := engine.calls()
	if decode != decodeAfterFirst || render != renderAfterFirst {
		t.Errorf("cache hit triggered work: decode=%d render=%d", decode, render)
	}
}

func TestConvertPDFPage_ScaleProducesSeparateEntries(t *testing.T) {
	svc, engine := newPreviewFixture(t, 5)
	ctx := context.Background()

	a, err := svc.ConvertPDFPage(ctx, contracts.PDFPageRequest{Directory: "docs", FileName: "sample.pdf", Page: 1, Scale: 2})
	if err != nil {
		t.Fatalf("ConvertPDFPage scale=2 failed: %v", err)
	}
	b, err := svc.ConvertPDFPage(ctx, contracts.PDFPageRequest{Directory: "docs", FileName: "sample.pdf", Page: 1, Scale: 4})
	if err != nil {
		t.Fatalf("ConvertPDFPage scale=4 failed: %v", err)
	}

	if bytes.Equal(a.Image, b.Image) {
		t.Error("different scales must not collide in the page cache")
	}

	// 同一文档只解码一次,两种倍率各渲染一次
	decode, render := engine.calls()
	if decode != 1 {
		t.Errorf("decode calls = %d, want 1", decode)
	}
	if render != 2 {
		t.Errorf("render calls = %d, want 2", render)
	}

	stats := svc.Stats()
	if stats.Documents != 1 || stats.Pages != 2 {
		t.Errorf("stats = %+v, want 1 document / 2 pages", stats)
	}
}

func TestConvertPDFPage_DefaultScale(t *testing.T) {
	svc, _ := newPreviewFixture(t, 5)
	ctx := context.Background()

	// 未指定scale时使用配置默认值4
	a, err := svc.ConvertPDFPage(ctx, contracts.PDFPageRequest{Directory: "docs", FileName: "sample.pdf", Page: 1})
	if err != nil {
		t.Fatalf("ConvertPDFPage failed: %v", err)
	}
	b, err := svc.ConvertPDFPage(ctx, contracts.PDFPageRequest{Directory: "docs", FileName: "sample.pdf", Page: 1, Scale: 4})
	if err != nil {
		t.Fatalf("ConvertPDFPage failed: %v", err)
	}

	if !bytes.Equal(a.Image, b.Image) {
		t.Error("default scale should map to the same cache entry as scale=4")
	}
	if !b.FromCache {
		t.Error("explicit scale=4 after default should hit the cache")
	}
}

func TestConvertPDFPage_InvalidPage(t *testing.T) {
	svc, _ := newPreviewFixture(t, 5)

	_, err := svc.ConvertPDFPage(context.Background(), contracts.PDFPageRequest{Directory: "docs", FileName: "sample.pdf", Page: 0})
	if err == nil {
		t.Fatal("expected error for page 0")
	}
	if code := serviceCode(t, err); code != contracts.ErrorCodeInvalidRequest {
		t.Errorf("code = %s, want INVALID_REQUEST", code)
	}
}

func TestConvertPDFPage_MissingFile(t *testing.T) {
	svc, _ := newPreviewFixture(t, 5)

	_, err := svc.ConvertPDFPage(context.Background(), contracts.PDFPageRequest{Directory: "docs", FileName: "ghost.pdf", Page: 1})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if code := serviceCode(t, err); code != contracts.ErrorCodeInternalError {
		t.Errorf("code = %s, want INTERNAL_ERROR", code)
	}
}

func TestConvertPDFPage_Traversal(t *testing.T) {
	svc, engine := newPreviewFixture(t, 5)

	_, err := svc.ConvertPDFPage(context.Background(), contracts.PDFPageRequest{Directory: "../..", FileName: "passwd", Page: 1})
	if err == nil {
		t.Fatal("expected error for traversal")
	}
	if code := serviceCode(t, err); code != contracts.ErrorCodeUnprocessable {
		t.Errorf("code = %s, want UNPROCESSABLE_ENTITY", code)
	}

	// 安全校验失败不应触碰引擎
	if decode, render := engine.calls(); decode != 0 || render != 0 {
		t.Errorf("engine was invoked on rejected path: decode=%d render=%d", decode, render)
	}
}

func TestConvertPDFPage_ConcurrentDecodeOnce(t *testing.T) {
	svc, engine := newPreviewFixture(t, 5)
	ctx := context.Background()

	req := contracts.PDFPageRequest{Directory: "docs", FileName: "sample.pdf", Page: 3, Scale: 4}

	var wg sync.WaitGroup
	results := make([][]byte, 8)
	errs := make([]error, 8)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := svc.ConvertPDFPage(ctx, req)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = resp.Image
		}(i)
	}
	wg.Wait()

	for i := range errs {
		if errs[i] != nil {
			t.Fatalf("concurrent call %d failed: %v", i, errs[i])
		}
		if !bytes.Equal(results[i], results[0]) {
			t.Errorf("concurrent call %d returned different bytes", i)
		}
	}

	// 同一键并发未命中:解码与渲染都只执行一次
	decode, render := engine.calls()
	if decode != 1 {
		t.Errorf("decode calls = %d, want 1", decode)
	}
	if render != 1 {
		t.Errorf("render calls = %d, want 1", render)
	}
}

func TestFlush(t *testing.T) {
	svc, engine := newPreviewFixture(t, 5)
	ctx := context.Background()

	if _, err := svc.ConvertPDFPage(ctx, contracts.PDFPageRequest{Directory: "docs", FileName: "sample.pdf", Page: 1, Scale: 4}); err != nil {
		t.Fatalf("ConvertPDFPage failed: %v", err)
	}

	if stats := svc.Stats(); stats.Documents != 1 || stats.Pages != 1 {
		t.Fatalf("unexpected stats before flush: %+v", stats)
	}

	svc.Flush()

	if stats := svc.Stats(); stats.Documents != 0 || stats.Pages != 0 {
		t.Errorf("stats after flush: %+v, want zeros", stats)
	}

	// 清空时必须释放缓存的文档句柄
	engine.mu.Lock()
	closes := engine.closeCalls
	engine.mu.Unlock()
	if closes != 1 {
		t.Errorf("close calls after flush = %d, want 1", closes)
	}

	// 清空后再请求需要重新解码渲染
	if _, err := svc.ConvertPDFPage(ctx, contracts.PDFPageRequest{Directory: "docs", FileName: "sample.pdf", Page: 1, Scale: 4}); err != nil {
		t.Fatalf("ConvertPDFPage after flush failed: %v", err)
	}
	if decode, _ := engine.calls(); decode != 2 {
		t.Errorf("decode calls after flush = %d, want 2", decode)
	}
}

func TestFlushWaitsForInFlightRender(t *testing.T) {
	svc, engine := newPreviewFixture(t, 5)
	ctx := context.Background()

	engine.mu.Lock()
	engine.renderStarted = make(chan struct{})
	engine.renderGate = make(chan struct{})
	engine.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		_, err := svc.ConvertPDFPage(ctx, contracts.PDFPageRequest{Directory: "docs", FileName: "sample.pdf", Page: 1, Scale: 4})
		done <- err
	}()

	// 渲染已开始并停在闸门上
	<-engine.renderStarted

	flushed := make(chan struct{})
	go func() {
		svc.Flush()
		close(flushed)
	}()

	// Flush必须等待在途渲染,不能先关句柄
	select {
	case <-flushed:
		t.Fatal("Flush returned while a render was still in progress")
	case <-time.After(50 * time.Millisecond):
	}

	engine.mu.Lock()
	closes := engine.closeCalls
	engine.mu.Unlock()
	if closes != 0 {
		t.Fatalf("document closed during in-flight render: close calls = %d", closes)
	}

	close(engine.renderGate)

	if err := <-done; err != nil {
		t.Fatalf("ConvertPDFPage failed: %v", err)
	}
	<-flushed

	engine.mu.Lock()
	closes = engine.closeCalls
	engine.mu.Unlock()
	if closes != 1 {
		t.Errorf("close calls after flush = %d, want 1", closes)
	}
}
