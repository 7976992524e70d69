package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	redisClient "votegate.io/infrastructure/database/connection/cache"
	"votegate.io/infrastructure/logger"
)

var Cache RedisRepository

type RedisRepository struct {
	Client *redis.Client
}

func (redisRepo *RedisRepository) preRequest() {
	if redisRepo.Client == nil {
		client := redisClient.GetInstance()
		redisRepo.Client = client.Client
		logger.Info("redis repository initialisation complete")
	}
}

func (redisRepo *RedisRepository) CreateEntry(key string, payload interface{}, ttl time.Duration) bool {
	redisRepo.preRequest()
	ctx := context.Background()
	_, err := redisRepo.Client.Set(ctx, key, payload, ttl).Result()
	if err != nil {
		logger.Error("redis error occured while running CreateEntry", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return false
	}
	return true
}

func (redisRepo *RedisRepository) FindOne(key string) *string {
	redisRepo.preRequest()
	ctx := context.Background()

	result, err := redisRepo.Client.Get(ctx, key).Result()

	if err != nil {
		if err == redis.Nil {
			return nil
		}
		logger.Error("redis error occured while running FindOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return nil
	}
	return &result
}

func (redisRepo *RedisRepository) DeleteOne(key string) bool {
	redisRepo.preRequest()
	ctx := context.Background()

	result, err := redisRepo.Client.Del(ctx, key).Result()

	if err != nil {
		logger.Error("redis error occured while running DeleteOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return false
	}
	return int(result) == 1
}

// IncrementField bumps a counter and, when this is the first increment,
// starts its expiry window. The TTL is only set on creation so a burst of
// attempts shares one cooldown window instead of constantly extending it.
func (redisRepo *RedisRepository) IncrementField(key string, window time.Duration) int64 {
	redisRepo.preRequest()
	ctx := context.Background()

	result := redisRepo.Client.Incr(ctx, key)
	if err := result.Err(); err != nil {
		logger.Error("redis error occured while running IncrementField", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return 0
	}
	if result.Val() == 1 && window > 0 {
		redisRepo.Client.Expire(ctx, key, window)
	}
	return result.Val()
}

// TimeToLive reports how long a key has left before expiry. Returns zero
// when the key does not exist.
func (redisRepo *RedisRepository) TimeToLive(key string) time.Duration {
	redisRepo.preRequest()
	ctx := context.Background()

	result, err := redisRepo.Client.TTL(ctx, key).Result()
	if err != nil {
		logger.Error("redis error occured while running TimeToLive", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return 0
	}
	if result < 0 {
		return 0
	}
	return result
}
