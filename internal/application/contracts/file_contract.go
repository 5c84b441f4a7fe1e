package contracts

import (
	"context"
	"io"
)

// FileListResponse 文件列表响应
// Names与Contents按下标一一对应
type FileListResponse struct {
	Names    []string `json:"names"`
	Contents [][]byte `json:"contents"`
}

// PDFPageRequest PDF页面渲染请求
type PDFPageRequest struct {
	Directory string  `json:"directory"`
	FileName  string  `json:"file_name" validate:"required"`
	Page      int     `json:"page" validate:"min=1"`
	Scale     float64 `json:"scale,omitempty"`
}

// PDFPageResponse PDF页面渲染响应
type PDFPageResponse struct {
	Image     []byte `json:"image"`
	FromCache bool   `json:"from_cache"`
}

// CacheStats 两级缓存的当前规模
type CacheStats struct {
	Documents int `json:"documents"`
	Pages     int `json:"pages"`
}

// FileService 文件访问服务接口
// 所有目录/文件参数均为相对配置根目录的相对路径
type FileService interface {
	// CountFiles 统计目录下常规文件数量(不含子目录)
	CountFiles(ctx context.Context, directory string) (int, error)

	// ListFiles 返回目录下所有常规文件的文件名及内容,任一文件读取失败即整体失败
	ListFiles(ctx context.Context, directory string) (*FileListResponse, error)

	// ListFileNames 返回目录下常规文件名,按目录项顺序
	ListFileNames(ctx context.Context, directory string) ([]string, error)

	// ListSubdirectoryNames 返回目录下子目录名
	// 注意:默认相对进程工作目录解析而非配置根目录,见storage.subdirs_use_workdir
	ListSubdirectoryNames(ctx context.Context, directory string) ([]string, error)

	// ReadFile 读取单个常规文件的完整内容
	ReadFile(ctx context.Context, directory, fileName string) ([]byte, error)

	// ReadFileAsStream 以流形式返回文件内容
	ReadFileAsStream(ctx context.Context, directory, fileName string) (io.Reader, error)

	// CountPDFPages 解码PDF并返回页数
	CountPDFPages(ctx context.Context, directory, fileName string) (int, error)
}

// PreviewService PDF页面预览服务接口
type PreviewService interface {
	// ConvertPDFPage 将PDF的一页渲染为PNG,命中缓存时不触发解码与渲染
	ConvertPDFPage(ctx context.Context, req PDFPageRequest) (*PDFPageResponse, error)

	// Stats 返回文档缓存与页面缓存的条目数
	Stats() CacheStats

	// Flush 清空两级缓存,释放已解码的文档句柄
	Flush()
}

// ConvertService 格式转换服务接口
type ConvertService interface {
	// ConvertXMLToJSON 解析XML并输出JSON字符串,属性合并进所在元素
	ConvertXMLToJSON(ctx context.Context, data []byte) (string, error)
}
