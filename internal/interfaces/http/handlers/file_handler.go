package handlers

import (
	"io"
	"net/http"

	"github.com/easayliu/file-preview-service/internal/application/services"
	"github.com/easayliu/file-preview-service/pkg/logger"
	httputil "github.com/easayliu/file-preview-service/pkg/utils/http"
	"github.com/gin-gonic/gin"
)

// FileHandler 文件访问处理器
type FileHandler struct {
	container *services.ServiceContainer
}

// NewFileHandler 创建文件处理器
func NewFileHandler(container *services.ServiceContainer) *FileHandler {
	return &FileHandler{
		container: container,
	}
}

// CountFiles 统计目录下文件数
// @Summary 统计文件数
// @Description 统计目录下常规文件数量,不含子目录
// @Tags 文件访问
// @Produce json
// @Param directory query string false "相对根目录的目录路径"
// @Success 200 {object} httputil.Response
// @Failure 404 {object} map[string]interface{} "目录不存在"
// @Failure 422 {object} map[string]interface{} "路径安全校验失败"
// @Router /files/count [get]
func (h *FileHandler) CountFiles(c *gin.Context) {
	directory := c.Query("directory")

	count, err := h.container.GetFileService().CountFiles(c.Request.Context(), directory)
	if err != nil {
		c.Error(err)
		return
	}

	httputil.Success(c, gin.H{
		"directory": directory,
		"count":     count,
	})
}

// ListFileNames 列举目录下文件名
// @Summary 列举文件名
// @Tags 文件访问
// @Produce json
// @Param directory query string false "相对根目录的目录路径"
// @Success 200 {object} httputil.Response
// @Router /files/names [get]
func (h *FileHandler) ListFileNames(c *gin.Context) {
	directory := c.Query("directory")

	names, err := h.container.GetFileService().ListFileNames(c.Request.Context(), directory)
	if err != nil {
		c.Error(err)
		return
	}

	httputil.Success(c, gin.H{
		"directory": directory,
		"names":     names,
	})
}

// ListFiles 列举目录下文件名及内容
// @Summary 列举文件及内容
// @Description 文件内容以base64编码返回,names与contents按下标对齐
// @Tags 文件访问
// @Produce json
// @Param directory query string false "相对根目录的目录路径"
// @Success 200 {object} httputil.Response
// @Router /files/list [get]
func (h *FileHandler) ListFiles(c *gin.Context) {
	directory := c.Query("directory")

	resp, err := h.container.GetFileService().ListFiles(c.Request.Context(), directory)
	if err != nil {
		c.Error(err)
		return
	}

	httputil.Success(c, gin.H{
		"directory": directory,
		"names":     resp.Names,
		"contents":  resp.Contents,
	})
}

// ListSubdirectoryNames 列举子目录名
// @Summary 列举子目录
// @Description 默认相对进程工作目录解析,见storage.subdirs_use_workdir配置
// @Tags 文件访问
// @Produce json
// @Param directory query string false "目录路径"
// @Success 200 {object} httputil.Response
// @Router /files/subdirectories [get]
func (h *FileHandler) ListSubdirectoryNames(c *gin.Context) {
	directory := c.Query("directory")

	names, err := h.container.GetFileService().ListSubdirectoryNames(c.Request.Context(), directory)
	if err != nil {
		c.Error(err)
		return
	}

	httputil.Success(c, gin.H{
		"directory": directory,
		"names":     names,
	})
}

// ReadFile 读取单个文件内容
// @Summary 读取文件
// @Description 以application/octet-stream返回原始文件字节
// @Tags 文件访问
// @Produce octet-stream
// @Param directory query string false "相对根目录的目录路径"
// @Param name query string true "文件名"
// @Success 200 {string} binary "文件内容"
// @Failure 404 {object} map[string]interface{} "文件不存在或不是常规文件"
// @Router /files/content [get]
func (h *FileHandler) ReadFile(c *gin.Context) {
	directory := c.Query("directory")
	name := c.Query("name")

	data, err := h.container.GetFileService().ReadFile(c.Request.Context(), directory, name)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// StreamFile 流式读取文件内容
// @Summary 流式读取文件
// @Tags 文件访问
// @Produce octet-stream
// @Param directory query string false "相对根目录的目录路径"
// @Param name query string true "文件名"
// @Success 200 {string} binary "文件内容"
// @Router /files/stream [get]
func (h *FileHandler) StreamFile(c *gin.Context) {
	directory := c.Query("directory")
	name := c.Query("name")

	stream, err := h.container.GetFileService().ReadFileAsStream(c.Request.Context(), directory, name)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)

	// 响应头已发出,拷贝失败只能记录日志
	if _, err := io.Copy(c.Writer, stream); err != nil {
		logger.Error("Failed to stream file", "file", name, "error", err)
	}
}

// CountPDFPages 返回PDF页数
// @Summary PDF页数
// @Tags 文件访问
// @Produce json
// @Param directory query string false "相对根目录的目录路径"
// @Param name query string true "文件名"
// @Success 200 {object} httputil.Response
// @Failure 500 {object} map[string]interface{} "PDF解码失败"
// @Router /files/pdf/pages [get]
func (h *FileHandler) CountPDFPages(c *gin.Context) {
	directory := c.Query("directory")
	name := c.Query("name")

	pages, err := h.container.GetFileService().CountPDFPages(c.Request.Context(), directory, name)
	if err != nil {
		c.Error(err)
		return
	}

	httputil.Success(c, gin.H{
		"file":  name,
		"pages": pages,
	})
}
