package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/viper"
)

var (
	config *viper.Viper
	once   sync.Once
)

// Init 初始化配置。配置文件缺失时使用默认值，命令行工具允许无配置运行
func Init(configFiles ...string) error {
	var err error
	once.Do(func() {
		config = viper.New()
		configFile := "config.yaml"
		if len(configFiles) > 0 && configFiles[0] != "" {
			configFile = configFiles[0]
		}
		config.SetConfigFile(configFile)

		// 设置默认值
		setDefaults()

		// 读取配置文件
		if readErr := config.ReadInConfig(); readErr != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(readErr, &notFound) {
				return
			}
			// SetConfigFile 模式下文件缺失表现为打开失败，同样视为可选
			if _, statErr := os.Stat(configFile); statErr != nil {
				return
			}
			err = fmt.Errorf("read config file failed: %v", readErr)
		}
	})
	return err
}

// setDefaults 设置默认值
func setDefaults() {
	config.SetDefault("mooc.base_url", "https://www.icourse163.org")
	config.SetDefault("mooc.timeout", 30)
	config.SetDefault("mooc.page_size", 20)
	config.SetDefault("mooc.token", "")
	config.SetDefault("mooc.user_agent", "Mozilla/5.0 (Linux; Android 10; SM-G975F) AppleWebKit/537.36")

	config.SetDefault("image.cache_dir", "output/images")
	config.SetDefault("image.timeout", 15)

	config.SetDefault("pdf.font", "")
	config.SetDefault("pdf.font_bold", "")

	config.SetDefault("log.filename", "logs/moocscript.log")
	config.SetDefault("log.max_size", 100)
	config.SetDefault("log.max_backups", 3)
	config.SetDefault("log.max_age", 28)
	config.SetDefault("log.compress", true)

	config.SetDefault("app.node_id", 1)
}

// Get 获取配置值
func Get(key string) interface{} {
	return config.Get(key)
}

// GetString 获取字符串配置值
func GetString(key string) string {
	return config.GetString(key)
}

// GetInt 获取整数配置值
func GetInt(key string) int {
	return config.GetInt(key)
}

// GetInt64 获取64位整数配置值
func GetInt64(key string) int64 {
	return config.GetInt64(key)
}

// GetUint64 获取64位无符号整数配置值
func GetUint64(key string) uint64 {
	return config.GetUint64(key)
}

// GetBool 获取布尔配置值
func GetBool(key string) bool {
	return config.GetBool(key)
}

// GetStringSlice 获取字符串切片配置值
func GetStringSlice(key string) []string {
	return config.GetStringSlice(key)
}

// Set 设置配置值
func Set(key string, value interface{}) {
	config.Set(key, value)
}

// IsSet 检查配置值是否已设置
func IsSet(key string) bool {
	return config.IsSet(key)
}
