package database

import (
	"context"
	"fmt"
	"time"

	"book-review/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to redis and verifies the connection with a ping.
func InitRedis(config utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s failed: %w", config.Addr, err)
	}

	return client, nil
}
