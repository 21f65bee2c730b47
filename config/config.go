package config

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Email    EmailConfig    `mapstructure:"email"`
	Alert    AlertConfig    `mapstructure:"alert"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port               string   `mapstructure:"port"`
	Mode               string   `mapstructure:"mode"`
	BaseURL            string   `mapstructure:"base_url"`
	CORSOrigins        []string `mapstructure:"cors_origins"`
	WriteLimit         int      `mapstructure:"write_limit"`
	WriteWindowSeconds int      `mapstructure:"write_window_seconds"`
}

// WriteWindow 写接口限流窗口
func (s ServerConfig) WriteWindow() time.Duration {
	if s.WriteWindowSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(s.WriteWindowSeconds) * time.Second
}

// DatabaseConfig 数据库配置
// Driver 可选 postgres / mysql / sqlite，sqlite 只使用 Path
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"dbname"`
	SSLMode      string `mapstructure:"sslmode"`
	Charset      string `mapstructure:"charset"`
	Path         string `mapstructure:"path"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// EmailConfig 邮件配置
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// AlertConfig 预算提醒配置
type AlertConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	ThresholdPercent float64  `mapstructure:"threshold_percent"`
	Recipients       []string `mapstructure:"recipients"`
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig *Config
)

// pgEnvAliases 兼容 libpq 风格的环境变量
var pgEnvAliases = map[string]string{
	"database.host":     "PGHOST",
	"database.port":     "PGPORT",
	"database.username": "PGUSER",
	"database.password": "PGPASSWORD",
	"database.dbname":   "PGDATABASE",
	"database.sslmode":  "PGSSLMODE",
}

// LoadConfig 加载配置
// 优先级: 环境变量 > 外部配置文件 > 嵌入的默认配置
// configPath: 可选的外部配置文件路径
func LoadConfig(configPath string) (*Config, error) {
	// 0. 可选的 .env 文件，只补充尚未设置的环境变量
	if err := godotenv.Load(); err == nil {
		log.Println("已加载 .env 文件")
	}

	v := viper.New()
	v.SetConfigType("yaml")

	// 1. 首先加载嵌入的默认配置
	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("读取内置配置失败: %w", err)
	}
	log.Println("已加载内置默认配置")

	// 2. 尝试加载外部配置文件（可选，用于覆盖默认配置）
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			log.Printf("警告: 无法读取指定配置文件 %s: %v", configPath, err)
		} else {
			log.Printf("已合并外部配置文件: %s", configPath)
		}
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/budget")
		externalViper.AddConfigPath("$HOME/.budget")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				log.Printf("警告: 合并外部配置失败: %v", err)
			} else {
				log.Printf("已合并外部配置文件: %s", externalViper.ConfigFileUsed())
			}
		}
	}

	// 3. 环境变量覆盖，如 BUDGET_DATABASE_HOST
	v.SetEnvPrefix("BUDGET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, alias := range pgEnvAliases {
		envKey := "BUDGET_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envKey, alias); err != nil {
			return nil, fmt.Errorf("绑定环境变量 %s 失败: %w", alias, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	cfg.normalize()

	GlobalConfig = &cfg

	return &cfg, nil
}

// normalize 补齐缺省值
func (c *Config) normalize() {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Server.Port != "" && !strings.HasPrefix(c.Server.Port, ":") {
		c.Server.Port = ":" + c.Server.Port
	}
	if c.Alert.ThresholdPercent <= 0 {
		c.Alert.ThresholdPercent = 100
	}
}

// PrintConfig 打印当前配置（隐藏敏感信息）
func PrintConfig() {
	if GlobalConfig == nil {
		return
	}
	log.Printf("当前配置:")
	log.Printf("  服务器: %s (模式: %s)", GlobalConfig.Server.Port, GlobalConfig.Server.Mode)
	if GlobalConfig.Database.Driver == "sqlite" {
		log.Printf("  数据库: sqlite %s", GlobalConfig.Database.Path)
	} else {
		log.Printf("  数据库: %s %s@%s:%s/%s",
			GlobalConfig.Database.Driver,
			GlobalConfig.Database.Username,
			GlobalConfig.Database.Host,
			GlobalConfig.Database.Port,
			GlobalConfig.Database.DBName)
	}
	log.Printf("  邮件服务: %v, 预算提醒: %v", GlobalConfig.Email.Enabled, GlobalConfig.Alert.Enabled)
}
