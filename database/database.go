package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"caisse/config"
	"caisse/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "github.com/lib/pq"  // postgres 驱动
	_ "modernc.org/sqlite" // 纯 Go sqlite 驱动，注册名 "sqlite"
)

// 支持的数据库方言
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// PasswordHasher 生成密码摘要，由凭证管理器实现
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// AdminSeed 默认管理员
type AdminSeed struct {
	Username string
	Password string
}

// Open 根据配置打开数据库连接并设置连接池
func Open(cfg config.DatabaseConfig, log logrus.FieldLogger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(log, cfg.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	return db, nil
}

// Init 打开数据库并完成建表与默认管理员初始化，任何失败都应终止进程
func Init(ctx context.Context, cfg *config.Config, hasher PasswordHasher, log logrus.FieldLogger) (*gorm.DB, error) {
	db, err := Open(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
		return nil, fmt.Errorf("数据库不可达: %w", err)
	}

	seed := AdminSeed{Username: cfg.Bootstrap.AdminUsername, Password: cfg.Bootstrap.AdminPassword}
	if err := Bootstrap(ctx, db, hasher, seed, log); err != nil {
		return nil, err
	}
	log.Info("数据库初始化成功")
	return db, nil
}

// Bootstrap 幂等建表；用户表为空时写入且仅写入一个默认管理员
func Bootstrap(ctx context.Context, db *gorm.DB, hasher PasswordHasher, seed AdminSeed, log logrus.FieldLogger) error {
	if strings.TrimSpace(seed.Username) == "" || seed.Password == "" {
		return errors.New("默认管理员用户名和密码不能为空")
	}

	db = db.WithContext(ctx)
	if err := db.AutoMigrate(&models.User{}, &models.Entry{}, &models.Exit{}); err != nil {
		return fmt.Errorf("建表失败: %w", err)
	}
	log.Info("数据表 users / entries / exits 已检查")

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("统计用户失败: %w", err)
	}
	if count > 0 {
		return nil
	}

	digest, err := hasher.Hash(seed.Password)
	if err != nil {
		return fmt.Errorf("默认管理员密码加密失败: %w", err)
	}
	admin := models.User{Username: strings.TrimSpace(seed.Username), Password: digest}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("创建默认管理员失败: %w", err)
	}
	log.WithField("username", admin.Username).Warn("已创建默认管理员，请尽快修改初始密码")
	return nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	dsn := cfg.DSN
	switch cfg.Driver {
	case DriverMySQL, "":
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=UTC",
				cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.Charset)
		}
		return mysql.Open(dsn), nil
	case DriverPostgres:
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
				cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.DBName, cfg.SSLMode)
		}
		// 使用 lib/pq 注册的 "postgres" 驱动
		return postgres.New(postgres.Config{DriverName: "postgres", DSN: dsn}), nil
	case DriverSQLite:
		if dsn == "" {
			dsn = "file:" + cfg.DBName + ".db"
		}
		return &sqlite.Dialector{DriverName: "sqlite", DSN: sqliteDSN(dsn)}, nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}
}

// sqliteDSN 为每个新连接开启外键约束
// modernc 驱动在建立连接时执行 _pragma 参数，连接池中的所有连接都会生效
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

func newGormLogger(log logrus.FieldLogger, level string) logger.Interface {
	lvl := logger.Warn
	switch strings.ToLower(level) {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}
	return logger.New(log, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
	})
}
