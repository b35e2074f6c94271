package dal

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"tradex-hertz/biz/dal/kafka"
	"tradex-hertz/biz/dal/pg"
	"tradex-hertz/biz/dal/redis"
	"tradex-hertz/conf"
)

// Resources 进程级外部资源句柄，在 main 中构造并负责关闭
type Resources struct {
	DB     *pg.DB
	Redis  *goredis.Client
	Events *kafka.Publisher
}

// Init 按配置打开全部外部资源，Redis/Kafka 缺省配置时跳过
func Init(cfg *conf.Config) (*Resources, error) {
	db, err := pg.Init(cfg.Postgres.DSN)
	if err != nil {
		return nil, err
	}

	res := &Resources{DB: db}

	if cfg.Redis.Address != "" {
		rdb, err := redis.Init(cfg.Redis)
		if err != nil {
			db.Close()
			return nil, err
		}
		res.Redis = rdb
	}

	res.Events = kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topics)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := res.Events.TestConnection(ctx); err != nil {
		res.Close()
		return nil, err
	}
	return res, nil
}

// Close 释放全部资源
func (r *Resources) Close() {
	r.Events.Close()
	if r.Redis != nil {
		_ = r.Redis.Close()
	}
	if r.DB != nil {
		r.DB.Close()
	}
}
