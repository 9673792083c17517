package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"poco-backend/config"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// 支持的数据库驱动
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// InitDB 初始化数据库连接并保存为全局实例
func InitDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	DB = db
	return db, nil
}

// Open 按配置打开数据库连接池，不修改全局实例
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn, err := BuildDSN(cfg)
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	}

	logLevel := logger.Silent
	if cfg.LogSQL {
		logLevel = logger.Info
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),

		// 每个操作只有一条语句，不需要默认事务
		SkipDefaultTransaction: true,

		// 将各驱动的唯一约束/外键错误统一为 gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated
		TranslateError: true,

		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取数据库实例失败: %w", err)
	}

	// 配置连接池
	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// sqlite 内存库：每个连接都是独立的库，只能保留一个永不过期的连接
	if cfg.Driver == DriverSQLite && isMemory(cfg.Database) {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	return db, nil
}

// BuildDSN 根据驱动构建连接字符串
func BuildDSN(cfg config.DatabaseConfig) (string, error) {
	switch cfg.Driver {
	case DriverMySQL:
		mc := mysqldriver.NewConfig()
		mc.User = cfg.Username
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
		mc.DBName = cfg.Database
		mc.ParseTime = true
		mc.Loc = time.UTC
		if cfg.Charset != "" {
			mc.Params = map[string]string{"charset": cfg.Charset}
		}
		return mc.FormatDSN(), nil
	case DriverPostgres:
		sslMode := cfg.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database, sslMode), nil
	case DriverSQLite:
		if cfg.Database == "" {
			return "", fmt.Errorf("sqlite 需要指定数据库文件")
		}
		// sqlite 默认不校验外键，必须按连接打开
		sep := "?"
		if strings.Contains(cfg.Database, "?") {
			sep = "&"
		}
		return cfg.Database + sep + "_foreign_keys=on", nil
	default:
		return "", fmt.Errorf("不支持的数据库驱动: %q", cfg.Driver)
	}
}

func isMemory(database string) bool {
	return database == ":memory:" || strings.Contains(database, "mode=memory")
}

// WithConn 为一次操作独占一个连接，fn 返回后（无论成功失败）归还连接池
func WithConn(ctx context.Context, orm *gorm.DB, fn func(conn *gorm.DB) error) error {
	return orm.WithContext(ctx).Connection(fn)
}

// GetDB 获取数据库实例
func GetDB() *gorm.DB {
	return DB
}

// CloseDB 关闭数据库连接
func CloseDB() error {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			return fmt.Errorf("获取数据库实例失败: %w", err)
		}
		return sqlDB.Close()
	}
	return nil
}

// HealthCheck 数据库健康检查
func HealthCheck(ctx context.Context) error {
	orm := GetDB()
	if orm == nil {
		return fmt.Errorf("数据库未初始化")
	}

	sqlDB, err := orm.DB()
	if err != nil {
		return fmt.Errorf("获取数据库实例失败: %w", err)
	}

	return sqlDB.PingContext(ctx)
}
