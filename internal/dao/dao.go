// Package dao 实现数据访问层
package dao

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/markdown-note-service/pkg/fileurl"
	"github.com/haierkeys/markdown-note-service/pkg/util"
	"github.com/haierkeys/markdown-note-service/pkg/writequeue"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型 sqlite / mysql / postgres
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/notes.sqlite3"`
	// UserName 用户名
	UserName string `yaml:"username"`
	// Password 密码
	Password string `yaml:"password"`
	// Host 主机，可带端口
	Host string `yaml:"host"`
	// Name 数据库名
	Name string `yaml:"name"`
	// TablePrefix 表前缀
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset 字符集
	Charset string `yaml:"charset" default:"utf8mb4"`
	// ParseTime 是否解析时间
	ParseTime bool `yaml:"parse-time" default:"true"`
	// MaxIdleConns 最大闲置连接数
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接最大生命周期
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
}

type Dao struct {
	Db  *gorm.DB
	ctx context.Context

	logger      *zap.Logger
	writeQueue  *writequeue.Manager
	autoMigrate bool
	onces       sync.Map // map[string]*sync.Once
}

// DaoOption Dao 构造选项
type DaoOption func(*Dao)

// WithLogger 设置日志器
func WithLogger(lg *zap.Logger) DaoOption {
	return func(d *Dao) { d.logger = lg }
}

// WithWriteQueue 设置按用户串行化写操作的写队列
func WithWriteQueue(m *writequeue.Manager) DaoOption {
	return func(d *Dao) { d.writeQueue = m }
}

// WithAutoMigrate 首次访问表时自动迁移
func WithAutoMigrate(enabled bool) DaoOption {
	return func(d *Dao) { d.autoMigrate = enabled }
}

func New(db *gorm.DB, ctx context.Context, opts ...DaoOption) *Dao {
	d := &Dao{Db: db, ctx: ctx, logger: zap.NewNop(), autoMigrate: true}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// UseWithOnceFunc returns the db after running fn once for key
// UseWithOnceFunc 对同一个 key 只执行一次 fn 后返回 db，用于懒迁移
func (d *Dao) UseWithOnceFunc(fn func(g *gorm.DB) error, key string) *gorm.DB {
	if d.autoMigrate {
		v, _ := d.onces.LoadOrStore(key, &sync.Once{})
		v.(*sync.Once).Do(func() {
			if err := fn(d.Db); err != nil {
				d.logger.Error("dao once func failed", zap.String("key", key), zap.Error(err))
			}
		})
	}
	return d.Db
}

// ExecuteWrite runs fn through the user's write lane when a write queue is set
// ExecuteWrite 设置了写队列时通过用户写通道串行执行 fn
func (d *Dao) ExecuteWrite(ctx context.Context, uid int64, fn func(db *gorm.DB) error) error {
	if d.writeQueue == nil {
		return fn(d.Db.WithContext(ctx))
	}
	return d.writeQueue.Execute(ctx, uid, func() error {
		return fn(d.Db.WithContext(ctx))
	})
}

// Ping 检查数据库连接
func (d *Dao) Ping(ctx context.Context) error {
	sqlDB, err := d.Db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// NewDBEngineWithConfig 根据配置创建 gorm 连接
// debug 模式下输出 SQL 日志
func NewDBEngineWithConfig(c DatabaseConfig, lg *zap.Logger, debug bool) (*gorm.DB, error) {
	dialector, err := useDialector(c)
	if err != nil {
		return nil, err
	}

	logMode := logger.Silent
	if debug {
		logMode = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix, // 表名前缀，`User` 的表名应该是 `t_users`
			SingularTable: true,          // 使用单数表名，启用该选项，此时，`User` 的表名应该是 `t_user`
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "open database failed")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB failed")
	}

	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	if d, err := util.ParseDuration(c.ConnMaxLifetime); err == nil {
		sqlDB.SetConnMaxLifetime(d)
	} else {
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	if d, err := util.ParseDuration(c.ConnMaxIdleTime); err == nil {
		sqlDB.SetConnMaxIdleTime(d)
	}

	if lg != nil {
		lg.Info("database connected", zap.String("type", c.Type))
	}
	return db, nil
}

func useDialector(c DatabaseConfig) (gorm.Dialector, error) {
	switch c.Type {
	case "mysql":
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			c.Charset,
			c.ParseTime,
		)), nil
	case "postgres":
		host, port, err := net.SplitHostPort(c.Host)
		if err != nil {
			host, port = c.Host, "5432"
		}
		return postgres.Open(fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			host, port, c.UserName, c.Password, c.Name,
		)), nil
	case "sqlite", "":
		if err := fileurl.CreatePath(filepath.Dir(c.Path), os.ModePerm); err != nil {
			return nil, errors.Wrap(err, "create sqlite dir failed")
		}
		return sqlite.Open(c.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"), nil
	default:
		return nil, errors.Errorf("unsupported database type %q", c.Type)
	}
}
