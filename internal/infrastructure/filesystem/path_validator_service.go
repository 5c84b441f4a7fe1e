package filesystem

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PathValidatorService 路径验证服务 - 负责沙箱根目录的越界防护
// 所有使用调用方输入拼出的路径在任何文件系统调用前都必须经过这里
type PathValidatorService struct {
	root string
}

// PathValidationError 路径验证错误
type PathValidationError struct {
	Path   string
	Reason string
}

func (e *PathValidationError) Error() string {
	return fmt.Sprintf("路径验证失败: %s - %s", e.Path, e.Reason)
}

// NewPathValidatorService 创建路径验证服务
// root必须是清理过的绝对路径
func NewPathValidatorService(root string) (*PathValidatorService, error) {
	if !filepath.IsAbs(root) {
		return nil, fmt.Errorf("根目录必须是绝对路径: %s", root)
	}

	return &PathValidatorService{
		root: filepath.Clean(root),
	}, nil
}

// Root 返回沙箱根目录
func (s *PathValidatorService) Root() string {
	return s.root
}

// Resolve 将相对路径段拼接到根目录并验证结果仍在沙箱内
// 返回清理后的绝对路径
func (s *PathValidatorService) Resolve(parts ...string) (string, error) {
	abs := filepath.Join(append([]string{s.root}, parts...)...)
	if err := s.Validate(abs); err != nil {
		return "", err
	}
	return abs, nil
}

// ResolveUnder 同Resolve,但以指定基目录代替沙箱根目录
// 用于子目录列举的工作目录解析模式
func (s *PathValidatorService) ResolveUnder(base string, parts ...string) (string, error) {
	cleanBase := filepath.Clean(base)
	abs := filepath.Join(append([]string{cleanBase}, parts...)...)

	if err := validateNoNUL(abs); err != nil {
		return "", err
	}
	if err := validateContained(cleanBase, abs); err != nil {
		return "", err
	}
	return abs, nil
}

// Validate 验证绝对路径的安全性
// 1. 不允许NUL字符(防御底层系统调用的截断攻击)
// 2. 清理后必须仍位于根目录之下(防御 .. 式目录遍历)
func (s *PathValidatorService) Validate(path string) error {
	if err := validateNoNUL(path); err != nil {
		return err
	}
	return validateContained(s.root, path)
}

func validateNoNUL(path string) error {
	if strings.ContainsRune(path, '\x00') {
		return &PathValidationError{Path: path, Reason: "路径包含NUL字符"}
	}
	return nil
}

// validateContained 前缀比较前先Clean,避免裸字符串前缀匹配被构造路径绕过
func validateContained(base, path string) error {
	clean := filepath.Clean(path)
	if clean == base {
		return nil
	}
	if !strings.HasPrefix(clean, base+string(filepath.Separator)) {
		return &PathValidationError{Path: path, Reason: "路径越出根目录"}
	}
	return nil
}
