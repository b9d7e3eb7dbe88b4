package providers

import (
	"context"
	"errors"
	"net/http"

	"protetor/internal/pkg/tts"
	"protetor/internal/pkg/worldtools"
)

// volcengine 业务错误码
const (
	volcCodeRateLimit = 3003 // 并发/频率超限
	volcCodeTextLimit = 3010 // 文本长度超限
	volcCodeInvalid   = 3011 // 文本无效
	volcCodeBackend   = 3030 // 后端处理超时
	volcCodeInternal  = 3050 // 服务内部错误
)

type volcSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// VolcSpeechProvider 火山引擎 TTS 语音合成
type VolcSpeechProvider struct {
	client volcSynthesizer
}

// NewVolcSpeechProvider 创建火山引擎语音合成提供者
func NewVolcSpeechProvider(client *tts.Client) *VolcSpeechProvider {
	return &VolcSpeechProvider{client: client}
}

// Synthesize 合成 mp3 语音
func (p *VolcSpeechProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	audio, err := p.client.Synthesize(ctx, text)
	if err != nil {
		return nil, classifyVolcError(err)
	}
	return audio, nil
}

func classifyVolcError(err error) *worldtools.ProviderError {
	if errors.Is(err, tts.ErrNoAudioData) {
		return worldtools.NewProviderError("speech", worldtools.KindInvalidResponse, err)
	}

	var apiErr *tts.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case volcCodeRateLimit:
			return worldtools.NewProviderError("speech", worldtools.KindRateLimit, err)
		case volcCodeTextLimit, volcCodeInvalid:
			return worldtools.NewProviderError("speech", worldtools.KindInvalidResponse, err)
		case volcCodeBackend:
			return worldtools.NewProviderError("speech", worldtools.KindTimeout, err)
		case volcCodeInternal:
			return worldtools.NewProviderError("speech", worldtools.KindUnavailable, err)
		}
		if apiErr.StatusCode != http.StatusOK {
			return worldtools.NewProviderError("speech", worldtools.KindFromStatus(apiErr.StatusCode), err)
		}
		return worldtools.NewProviderError("speech", worldtools.KindUnknown, err)
	}

	return worldtools.Classify("speech", err)
}
