package logger

import (
	"strings"
)

// maxLoggedValueLen 单个日志字段值的最大长度,超出部分截断
const maxLoggedValueLen = 256

// TrimPath 缩短过长的路径,保留最后keep段
// 规则:
//   - 段数<=keep: 原样返回
//   - 否则返回 ".../最后keep段"
func TrimPath(path string, keep int) string {
	if keep <= 0 {
		keep = 2
	}

	parts := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) <= keep {
		return path
	}

	return ".../" + strings.Join(parts[len(parts)-keep:], "/")
}

// TruncateValue 截断过长的字符串值,避免日志膨胀
func TruncateValue(s string) string {
	if len(s) <= maxLoggedValueLen {
		return s
	}
	return s[:maxLoggedValueLen] + "...(truncated)"
}

// SanitizeArgs 对key-value日志参数做整体清理
// 只处理字符串值;非字符串值原样保留
func SanitizeArgs(args ...any) []any {
	sanitized := make([]any, len(args))
	for i, arg := range args {
		if s, ok := arg.(string); ok && i%2 == 1 {
			sanitized[i] = TruncateValue(s)
		} else {
			sanitized[i] = arg
		}
	}
	return sanitized
}
