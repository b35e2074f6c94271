package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tradex-hertz/biz/model"
)

// DB 持有进程内唯一的数据库句柄，进程启动时打开，退出时关闭
type DB struct {
	Gorm *gorm.DB
	Pool *pgxpool.Pool
}

// Init 打开 Postgres 连接池与 GORM，并迁移表结构
func Init(dsn string) (*DB, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to init gorm: %w", err)
	}
	db := &DB{Gorm: gdb, Pool: pool}
	if err := AutoMigrate(gdb); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}
	return db, nil
}

// AutoMigrate 自动迁移表结构
func AutoMigrate(gdb *gorm.DB) error {
	if gdb == nil {
		return gorm.ErrInvalidDB
	}
	return gdb.AutoMigrate(
		&model.User{},
		&model.Asset{},
		&model.UserAssetBalance{},
		&model.Trade{},
		&model.Deposit{},
		&model.Withdrawal{},
		&model.PostedTrade{},
		&model.CopiedTrade{},
		&model.UserStake{},
		&model.SubscriptionPlan{},
		&model.UserSubscription{},
		&model.AdminAuditLog{},
		&model.Kline{},
	)
}

// Ping 健康检查
func (d *DB) Ping(ctx context.Context) error {
	if d.Pool == nil {
		return fmt.Errorf("postgres pool not initialized")
	}
	return d.Pool.Ping(ctx)
}

// Close 关闭连接
func (d *DB) Close() {
	if d.Pool != nil {
		d.Pool.Close()
	}
	if d.Gorm != nil {
		if sqlDB, err := d.Gorm.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
