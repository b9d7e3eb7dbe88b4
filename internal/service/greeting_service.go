package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"protetor/internal/pkg/cache"
	"protetor/internal/pkg/storage"
	"protetor/internal/pkg/worldtools"
)

// KeyLocker 跨实例的按 key 互斥（Redis 实现）
type KeyLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// GreetingService 个性化问候音频服务接口
type GreetingService interface {
	// GetGreetingAudio 返回名字对应的问候音频
	// 缓存中不存在时先合成并保存，之后的请求直接返回已保存的文件
	GetGreetingAudio(ctx context.Context, name string) (*MediaFile, error)
}

// greetingService 个性化问候音频服务实现
type greetingService struct {
	storage storage.Storage
	speech  worldtools.SpeechProvider
	locker  KeyLocker // 可为 nil
	group   singleflight.Group
}

// NewGreetingService 创建个性化问候音频服务
// locker 为 nil 时只在进程内去重
func NewGreetingService(st storage.Storage, speech worldtools.SpeechProvider, locker KeyLocker) GreetingService {
	return &greetingService{
		storage: st,
		speech:  speech,
		locker:  locker,
	}
}

// GetGreetingAudio 获取（必要时生成）问候音频
func (s *greetingService) GetGreetingAudio(ctx context.Context, name string) (*MediaFile, error) {
	cacheKey := worldtools.SanitizeName(name)
	key := AudioDir + "/" + worldtools.AudioFilename(name)

	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("check audio cache: %w", err)
	}

	if exists {
		log.Debug().Str("cache_key", cacheKey).Msg("问候音频命中缓存")
	} else {
		// 同一个 key 的并发请求只触发一次合成
		_, err, shared := s.group.Do(key, func() (interface{}, error) {
			return nil, s.synthesize(ctx, name, cacheKey, key)
		})
		if err != nil {
			return nil, err
		}
		if shared {
			log.Debug().Str("cache_key", cacheKey).Msg("问候音频与并发请求共享合成结果")
		}
	}

	return openMedia(ctx, s.storage, key)
}

// synthesize 合成并保存问候音频
func (s *greetingService) synthesize(ctx context.Context, name, cacheKey, key string) error {
	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, cache.AudioLockKey(cacheKey))
		if err != nil {
			return fmt.Errorf("acquire audio lock: %w", err)
		}
		defer unlock()
	}

	// 等待期间其他请求或实例可能已经生成
	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check audio cache: %w", err)
	}
	if exists {
		return nil
	}

	text := worldtools.GreetingText(name)
	audio, err := s.speech.Synthesize(ctx, text)
	if err != nil {
		log.Error().Err(err).Str("cache_key", cacheKey).Str("kind", string(worldtools.KindOf(err))).Msg("问候音频合成失败")
		return err
	}

	if err := s.storage.Upload(ctx, key, bytes.NewReader(audio), "audio/mpeg"); err != nil {
		return fmt.Errorf("save audio: %w", err)
	}

	log.Info().
		Str("cache_key", cacheKey).
		Str("key", key).
		Str("size", humanize.Bytes(uint64(len(audio)))).
		Msg("问候音频已生成")

	return nil
}
