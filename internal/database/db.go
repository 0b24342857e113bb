package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql" // 注册MySQL驱动
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"

	"github.com/Ambition09/meeshodashboard/internal/config"
)

var (
	instance *sqlx.DB
	mu       sync.RWMutex
)

// GetDB 返回数据库连接单例，未初始化时返回nil
func GetDB() *sqlx.DB {
	mu.RLock()
	defer mu.RUnlock()
	return instance
}

// InitDB 初始化数据库连接
func InitDB(cfg *config.MySQLConfig) error {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return nil
	}

	driver := cfg.Driver
	if driver == "" {
		driver = "mysql"
	}

	log.Info("初始化数据库连接...")
	db, err := sqlx.Open(driver, cfg.URL)
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	if cfg.MaxOpenConnections > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConnections)
	}
	if cfg.MaxIdleConnections > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConnections)
	}
	if cfg.MaxLifeTime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.MaxLifeTime) * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Info("数据库连接状态:", db.Stats())
	instance = db
	return nil
}

// CloseDB 关闭数据库连接
func CloseDB() error {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		log.Info("关闭数据库连接...")
		err := instance.Close()
		instance = nil
		return err
	}
	log.Debug("数据库连接未初始化，无需关闭")
	return nil
}
