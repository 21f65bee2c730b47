package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	"budget/config"
	"budget/models"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接并迁移表结构
func Init(cfg *config.Config) error {
	db, err := Open(cfg)
	if err != nil {
		return err
	}
	if err := Migrate(db); err != nil {
		return fmt.Errorf("迁移数据库失败: %w", err)
	}
	DB = db
	log.Println("数据库初始化成功")
	return nil
}

// Open 按配置的驱动打开数据库，不做迁移
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Info
	if cfg.Server.Mode == "release" {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		closeDialector(dialector)
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := db.DB()
	if err != nil {
		closeDialector(dialector)
		return nil, err
	}
	if cfg.Database.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	if cfg.Database.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.Driver == "sqlite" {
		// sqlite 单写者
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Dialector 根据驱动名构建 gorm 方言
func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "postgres":
		// 通过 lib/pq 建立连接，再交给 gorm 的 postgres 方言
		conn, err := sql.Open("postgres", PostgresDSN(cfg))
		if err != nil {
			return nil, fmt.Errorf("打开 postgres 连接失败: %w", err)
		}
		return postgres.New(postgres.Config{Conn: conn}), nil
	case "mysql":
		return mysql.Open(MySQLDSN(cfg)), nil
	case "sqlite":
		return sqlite.Open(SQLiteDSN(cfg)), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}
}

// closeDialector 关闭预先建立的连接（目前只有 postgres 方言持有）
func closeDialector(d gorm.Dialector) {
	pd, ok := d.(*postgres.Dialector)
	if !ok || pd.Config == nil {
		return
	}
	if conn, ok := pd.Conn.(*sql.DB); ok {
		conn.Close()
	}
}

// pgValueEscaper 按 libpq 规则转义单引号内的值
var pgValueEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// PostgresDSN 构建 libpq 键值形式的连接串
func PostgresDSN(cfg config.DatabaseConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Username, cfg.DBName, sslMode)
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password='%s'", pgValueEscaper.Replace(cfg.Password))
	}
	return dsn
}

// MySQLDSN 构建 MySQL DSN 连接字符串
func MySQLDSN(cfg config.DatabaseConfig) string {
	charset := cfg.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Username,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		charset,
	)
}

// SQLiteDSN 返回开启外键约束的 sqlite 连接串
func SQLiteDSN(cfg config.DatabaseConfig) string {
	path := cfg.Path
	if path == "" {
		path = "budget.db"
	}
	return path + "?_pragma=foreign_keys(1)"
}

// Migrate 自动迁移数据库表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.Expense{},
	)
}

// Close 关闭底层连接
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
