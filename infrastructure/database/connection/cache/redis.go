package cache

import (
	"os"
	"sync"

	"github.com/redis/go-redis/v9"
	"votegate.io/infrastructure/logger"
)

type RedisConnection struct {
	Client *redis.Client
}

var (
	instance *RedisConnection
	once     sync.Once
)

func ConnectToCache() {
	GetInstance()
}

func GetInstance() *RedisConnection {
	once.Do(func() {
		opt := &redis.Options{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
			PoolSize: 10,
		}
		instance = &RedisConnection{Client: redis.NewClient(opt)}
		logger.Info("connected to redis successfully")
	})
	return instance
}
