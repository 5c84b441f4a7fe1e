package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Options 日志配置选项
type Options struct {
	Level     string // debug/info/warn/error
	Output    string // console/file/both
	Format    string // text/json
	FilePath  string // Output为file或both时的日志文件路径
	Colorize  bool   // 控制台文本输出时对级别着色
	AddSource bool   // 是否附加调用位置
}

// Logger 基于slog的日志器,级别可在运行时调整
type Logger struct {
	*slog.Logger
	level *slog.LevelVar
}

var (
	defaultLogger *Logger
	mu            sync.Mutex
)

// Init 初始化全局日志器
func Init(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	l, err := newLogger(opts)
	if err != nil {
		return err
	}

	defaultLogger = l
	return nil
}

// SetLevel 动态调整全局日志级别
func SetLevel(level string) error {
	mu.Lock()
	defer mu.Unlock()

	if defaultLogger == nil {
		return fmt.Errorf("logger not initialized")
	}

	lv, err := parseLevel(level)
	if err != nil {
		return err
	}

	defaultLogger.level.Set(lv)
	return nil
}

func newLogger(opts Options) (*Logger, error) {
	lv, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	levelVar := new(slog.LevelVar)
	levelVar.Set(lv)

	w, err := buildWriter(opts)
	if err != nil {
		return nil, err
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     levelVar,
		AddSource: opts.AddSource,
	}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		if opts.Colorize && opts.Output != "file" {
			handlerOpts.ReplaceAttr = colorizeLevel
		}
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return &Logger{
		Logger: slog.New(handler),
		level:  levelVar,
	}, nil
}

func buildWriter(opts Options) (io.Writer, error) {
	switch strings.ToLower(opts.Output) {
	case "", "console":
		return os.Stdout, nil
	case "file":
		return openLogFile(opts.FilePath)
	case "both":
		f, err := openLogFile(opts.FilePath)
		if err != nil {
			return nil, err
		}
		return io.MultiWriter(os.Stdout, f), nil
	default:
		return nil, fmt.Errorf("unknown log output: %s", opts.Output)
	}
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("log file path is empty")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}

	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", s)
	}
}

// colorizeLevel 给级别字段加ANSI颜色
func colorizeLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}

	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}

	var color string
	switch {
	case level >= slog.LevelError:
		color = "\033[31m" // 红
	case level >= slog.LevelWarn:
		color = "\033[33m" // 黄
	case level >= slog.LevelInfo:
		color = "\033[32m" // 绿
	default:
		color = "\033[36m" // 青
	}

	a.Value = slog.StringValue(color + level.String() + "\033[0m")
	return a
}

// ensureDefault 未显式Init时提供一个可用的默认日志器
func ensureDefault() *Logger {
	mu.Lock()
	defer mu.Unlock()

	if defaultLogger == nil {
		l, _ := newLogger(Options{Level: "info", Output: "console"})
		defaultLogger = l
	}

	return defaultLogger
}

// Debug 调试日志,字符串值超长时截断
func Debug(msg string, args ...any) {
	ensureDefault().Logger.Debug(msg, SanitizeArgs(args...)...)
}

// Info 信息日志,字符串值超长时截断
func Info(msg string, args ...any) {
	ensureDefault().Logger.Info(msg, SanitizeArgs(args...)...)
}

// Warn 警告日志,字符串值超长时截断
func Warn(msg string, args ...any) {
	ensureDefault().Logger.Warn(msg, SanitizeArgs(args...)...)
}

// Error 错误日志,字符串值超长时截断
func Error(msg string, args ...any) {
	ensureDefault().Logger.Error(msg, SanitizeArgs(args...)...)
}
