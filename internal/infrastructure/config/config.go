package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Preview   PreviewConfig   `mapstructure:"preview"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type StorageConfig struct {
	// RootDir 所有文件操作的沙箱根目录,加载时转为绝对路径
	RootDir string `mapstructure:"root_dir"`
	// SubdirsUseWorkdir 子目录列举是否相对进程工作目录解析(历史行为)
	// 置为false后改用root_dir,与其他操作保持一致
	SubdirsUseWorkdir bool `mapstructure:"subdirs_use_workdir"`
}

type PreviewConfig struct {
	// DefaultScale 未指定scale时的渲染倍率
	DefaultScale float64 `mapstructure:"default_scale"`
	// CMapDir 外部字符映射表目录,当前渲染引擎不支持替换内置资源,设置后仅告警
	CMapDir string `mapstructure:"cmap_dir"`
	// StandardFontDir 外部标准字体目录,同CMapDir,当前不生效
	StandardFontDir string         `mapstructure:"standard_font_dir"`
	Eviction        EvictionConfig `mapstructure:"eviction"`
}

// EvictionConfig 缓存清理配置
// 默认关闭:两级缓存与原始行为一致,进程生命周期内只增不减
// 源文件在首次转换后被修改时,缓存内容不会失效,会继续返回旧数据
type EvictionConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Cron    string `mapstructure:"cron"` // cron表达式,如 "0 4 * * *" 每天凌晨4点清空
}

type RateLimitConfig struct {
	QPS int `mapstructure:"qps"` // 每秒请求数限制,0表示不限制
}

type LogConfig struct {
	Level     string `mapstructure:"level"`
	Output    string `mapstructure:"output"`
	Format    string `mapstructure:"format"`
	FilePath  string `mapstructure:"file_path"`
	Colorize  bool   `mapstructure:"colorize"`
	AddSource bool   `mapstructure:"add_source"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// 设置默认值
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")

	viper.SetDefault("storage.root_dir", "./data")
	viper.SetDefault("storage.subdirs_use_workdir", true)

	viper.SetDefault("preview.default_scale", 4.0)
	viper.SetDefault("preview.eviction.enabled", false)
	viper.SetDefault("preview.eviction.cron", "0 4 * * *")

	viper.SetDefault("ratelimit.qps", 0)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "console")
	viper.SetDefault("log.format", "text")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// 根目录统一转为绝对路径,安全校验依赖这一点
	rootDir, err := filepath.Abs(config.Storage.RootDir)
	if err != nil {
		return nil, err
	}
	config.Storage.RootDir = filepath.Clean(rootDir)

	return &config, nil
}
