package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Bootstrap BootstrapConfig `mapstructure:"bootstrap"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Email     EmailConfig     `mapstructure:"email"`
	Storage   StorageConfig   `mapstructure:"storage"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig 数据库配置
// Driver 取值 mysql / postgres / sqlite；DSN 非空时优先使用
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"dbname"`
	Charset      string `mapstructure:"charset"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	LogLevel     string `mapstructure:"log_level"`
}

// AuthConfig 认证与授权配置
type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	TokenTTLHours int           `mapstructure:"token_ttl_hours"`
	TokenTTL      time.Duration `mapstructure:"-"`
	BcryptCost    int           `mapstructure:"bcrypt_cost"`
	AdminID       uint          `mapstructure:"admin_id"`
	AdminUsername string        `mapstructure:"admin_username"`
	// Deprecated: 仅为旧前端保留，直接信任请求头中的 X-User-Id / X-Username
	TrustRequestIdentity bool `mapstructure:"trust_request_identity"`
}

// BootstrapConfig 首次启动时写入的默认管理员
type BootstrapConfig struct {
	AdminUsername string `mapstructure:"admin_username"`
	AdminPassword string `mapstructure:"admin_password"`
}

// LedgerConfig 收支记录配置
type LedgerConfig struct {
	OfferingTypes  []string `mapstructure:"offering_types"`
	ExtraExitTypes []string `mapstructure:"extra_exit_types"`
	// Deprecated: 旧版本对支出类型只告警不拒绝，默认关闭
	LenientExitTypes bool `mapstructure:"lenient_exit_types"`
}

// EmailConfig 邮件配置
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	NotifyTo string `mapstructure:"notify_to"`
}

// StorageConfig 备份对象存储配置（S3 兼容）
type StorageConfig struct {
	Bucket    string `mapstructure:"bucket"`
	KeyPrefix string `mapstructure:"key_prefix"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	Profile   string `mapstructure:"profile"`
}

// RateLimitConfig 登录限流配置
type RateLimitConfig struct {
	LoginAttempts int `mapstructure:"login_attempts"`
	WindowSeconds int `mapstructure:"window_seconds"`
}

// Window 限流窗口
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

var (
	// GlobalConfig 全局配置实例，仅用于错误信息脱敏等展示层逻辑
	GlobalConfig *Config
)

// LoadConfig 加载配置
// 优先级: 环境变量 > 外部配置文件 > 嵌入的默认配置
// configPath: 可选的外部配置文件路径
func LoadConfig(configPath string) (*Config, error) {
	// .env 不存在时忽略
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.Warnf("读取 .env 失败: %v", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	// 1. 首先加载嵌入的默认配置
	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("读取内置配置失败: %w", err)
	}

	// 2. 尝试加载外部配置文件（可选，用于覆盖默认配置）
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件 %s 失败: %w", configPath, err)
		}
		logrus.Infof("已合并外部配置文件: %s", configPath)
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/caisse")
		externalViper.AddConfigPath("$HOME/.caisse")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				logrus.Warnf("合并外部配置失败: %v", err)
			} else {
				logrus.Infof("已合并外部配置文件: %s", externalViper.ConfigFileUsed())
			}
		}
	}

	// 3. 环境变量覆盖，如 CAISSE_DATABASE_DRIVER
	v.SetEnvPrefix("CAISSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	cfg.applyDefaults()

	GlobalConfig = &cfg
	return &cfg, nil
}

// MustLoadConfig 加载配置，失败则 panic
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Auth.TokenTTLHours <= 0 {
		c.Auth.TokenTTLHours = 24
	}
	c.Auth.TokenTTL = time.Duration(c.Auth.TokenTTLHours) * time.Hour
	if c.Auth.AdminID == 0 {
		c.Auth.AdminID = 1
	}
	if c.Auth.AdminUsername == "" {
		c.Auth.AdminUsername = "admin"
	}
	if c.Bootstrap.AdminUsername == "" {
		c.Bootstrap.AdminUsername = c.Auth.AdminUsername
	}
	if c.RateLimit.LoginAttempts <= 0 {
		c.RateLimit.LoginAttempts = 10
	}
	if c.RateLimit.WindowSeconds <= 0 {
		c.RateLimit.WindowSeconds = 60
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "mysql"
	}
}

// DefaultJWTSecret 内置配置中的占位密钥，生产环境必须替换
const DefaultJWTSecret = "change-me-in-production"

// Validate 启动前校验；release 模式下拒绝空密钥或占位密钥
func (c *Config) Validate() error {
	if c.Server.Mode != "release" {
		return nil
	}
	secret := strings.TrimSpace(c.Auth.JWTSecret)
	if secret == "" || secret == DefaultJWTSecret {
		return errors.New("release 模式下必须通过 auth.jwt_secret 或 CAISSE_AUTH_JWT_SECRET 设置 JWT 密钥")
	}
	return nil
}

// PrintConfig 打印当前配置（隐藏敏感信息）
func PrintConfig(log logrus.FieldLogger, cfg *Config) {
	if cfg == nil {
		return
	}
	log.WithFields(logrus.Fields{
		"port":   cfg.Server.Port,
		"mode":   cfg.Server.Mode,
		"driver": cfg.Database.Driver,
		"db":     fmt.Sprintf("%s@%s:%s/%s", cfg.Database.Username, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName),
		"email":  cfg.Email.Enabled,
		"backup": cfg.Storage.Bucket != "",
	}).Info("当前配置")
	if cfg.Auth.JWTSecret == DefaultJWTSecret {
		log.Warn("auth.jwt_secret 仍为内置占位值，仅可用于开发环境")
	}
	if cfg.Auth.TrustRequestIdentity {
		log.Warn("auth.trust_request_identity 已启用：管理员校验将信任请求头中的身份（已废弃）")
	}
	if cfg.Ledger.LenientExitTypes {
		log.Warn("ledger.lenient_exit_types 已启用：非法支出类型仅告警（已废弃）")
	}
}
