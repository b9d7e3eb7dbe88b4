package providers

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"protetor/internal/config"
	"protetor/internal/pkg/worldtools"
)

// Breaker 包装外部调用的熔断器
// 连续失败达到阈值后直接返回 unavailable，不再请求外部服务
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// NewBreaker 创建熔断器，MaxFailures 为 0 时返回 nil（不熔断）
func NewBreaker(name string, cfg config.BreakerConfig) *Breaker {
	if cfg.MaxFailures == 0 {
		return nil
	}

	timeout := cfg.OpenTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		// 内容审核、返回内容异常和调用方取消不代表服务故障
		IsSuccessful: func(err error) bool {
			if errors.Is(err, context.Canceled) {
				return true
			}
			switch worldtools.KindOf(err) {
			case worldtools.KindContentPolicy, worldtools.KindInvalidResponse, worldtools.KindCanceled:
				return true
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	}

	return &Breaker{cb: gobreaker.NewCircuitBreaker(settings)}
}

func (b *Breaker) execute(op string, fn func() (interface{}, error)) (interface{}, error) {
	if b == nil {
		return fn()
	}
	result, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, worldtools.NewProviderError(op, worldtools.KindUnavailable, err)
	}
	return result, err
}

type guardedLLM struct {
	next    worldtools.LLMProvider
	breaker *Breaker
}

// GuardLLM 为 LLMProvider 加上熔断
func GuardLLM(next worldtools.LLMProvider, b *Breaker) worldtools.LLMProvider {
	if b == nil {
		return next
	}
	return &guardedLLM{next: next, breaker: b}
}

func (g *guardedLLM) Generate(ctx context.Context, system, prompt string) (string, error) {
	result, err := g.breaker.execute("chat", func() (interface{}, error) {
		return g.next.Generate(ctx, system, prompt)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

type guardedImage struct {
	next    worldtools.ImageProvider
	breaker *Breaker
}

// GuardImage 为 ImageProvider 加上熔断
func GuardImage(next worldtools.ImageProvider, b *Breaker) worldtools.ImageProvider {
	if b == nil {
		return next
	}
	return &guardedImage{next: next, breaker: b}
}

func (g *guardedImage) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	result, err := g.breaker.execute("image", func() (interface{}, error) {
		return g.next.GenerateImage(ctx, prompt)
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

type guardedSpeech struct {
	next    worldtools.SpeechProvider
	breaker *Breaker
}

// GuardSpeech 为 SpeechProvider 加上熔断
func GuardSpeech(next worldtools.SpeechProvider, b *Breaker) worldtools.SpeechProvider {
	if b == nil {
		return next
	}
	return &guardedSpeech{next: next, breaker: b}
}

func (g *guardedSpeech) Synthesize(ctx context.Context, text string) ([]byte, error) {
	result, err := g.breaker.execute("speech", func() (interface{}, error) {
		return g.next.Synthesize(ctx, text)
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}
