package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"protetor/internal/config"
	"protetor/internal/pkg/id"
)

// ErrLockNotAcquired 等待锁超时
var ErrLockNotAcquired = errors.New("lock not acquired")

// 只删除自己持有的锁
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisCache Redis 封装，用于跨实例的按 key 互斥
type RedisCache struct {
	client  *redis.Client
	lockTTL time.Duration
}

// NewRedisCache 创建 Redis 缓存客户端
func NewRedisCache(cfg *config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	lockTTL := cfg.LockTTL
	if lockTTL <= 0 {
		lockTTL = 2 * time.Minute
	}

	return &RedisCache{client: client, lockTTL: lockTTL}, nil
}

// Lock 获取 key 对应的锁，阻塞直到获得或 ctx 结束
// 返回的 unlock 只释放本次获得的锁
func (c *RedisCache) Lock(ctx context.Context, key string) (func(), error) {
	lockKey := LockKeyPrefix + key
	token := id.New()

	ticker := time.NewTicker(lockRetryInterval)
	defer ticker.Stop()

	for {
		ok, err := c.client.SetNX(ctx, lockKey, token, c.lockTTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				// 请求 ctx 可能已取消，释放锁使用独立的 ctx
				releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = unlockScript.Run(releaseCtx, c.client, []string{lockKey}, token).Err()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrLockNotAcquired, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Close 关闭连接
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// 常用 key 模式
const (
	LockKeyPrefix     = "protetor:lock:"
	lockRetryInterval = 200 * time.Millisecond
)

// AudioLockKey 生成个性化音频的锁 key
func AudioLockKey(cacheKey string) string {
	return "audio:" + cacheKey
}
