package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"tradex-hertz/conf"
)

// Init 创建 Redis 客户端并探活
func Init(cfg conf.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// QuoteKey 行情报价缓存 key
func QuoteKey(symbol string) string {
	return "quote:" + symbol
}
