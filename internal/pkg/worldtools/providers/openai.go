package providers

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	goopenai "github.com/sashabaranov/go-openai"

	"protetor/internal/config"
	"protetor/internal/pkg/worldtools"
)

// NewOpenAIClient 根据配置创建 go-openai 客户端（带组织ID）
func NewOpenAIClient(cfg *config.OpenAIConfig) (*goopenai.Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	clientConfig := goopenai.DefaultConfig(cfg.APIKey)
	clientConfig.OrgID = cfg.Organization
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.RequestTimeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.RequestTimeout}
	}

	return goopenai.NewClientWithConfig(clientConfig), nil
}

type speechClient interface {
	CreateSpeech(ctx context.Context, request goopenai.CreateSpeechRequest) (goopenai.RawResponse, error)
}

type imageClient interface {
	CreateImage(ctx context.Context, request goopenai.ImageRequest) (goopenai.ImageResponse, error)
}

// OpenAISpeechProvider OpenAI TTS 语音合成
type OpenAISpeechProvider struct {
	client speechClient
	model  string
	voice  string
}

// NewOpenAISpeechProvider 创建 OpenAI 语音合成提供者
func NewOpenAISpeechProvider(client speechClient, cfg *config.OpenAIConfig) *OpenAISpeechProvider {
	model := cfg.TTSModel
	if model == "" {
		model = string(goopenai.TTSModel1)
	}
	voice := cfg.TTSVoice
	if voice == "" {
		voice = string(goopenai.VoiceAlloy)
	}
	return &OpenAISpeechProvider{client: client, model: model, voice: voice}
}

// Synthesize 合成 mp3 语音
func (p *OpenAISpeechProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := p.client.CreateSpeech(ctx, goopenai.CreateSpeechRequest{
		Model:          goopenai.SpeechModel(p.model),
		Input:          text,
		Voice:          goopenai.SpeechVoice(p.voice),
		ResponseFormat: goopenai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, classifyOpenAIError("speech", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, worldtools.Classify("speech", fmt.Errorf("read speech response: %w", err))
	}
	if len(audio) == 0 {
		return nil, worldtools.NewProviderError("speech", worldtools.KindInvalidResponse, errors.New("no audio data received from OpenAI"))
	}

	log.Debug().Str("model", p.model).Str("voice", p.voice).Int("size", len(audio)).Msg("OpenAI 语音合成成功")
	return audio, nil
}

// OpenAIImageProvider OpenAI 图片生成（b64_json 内嵌返回）
type OpenAIImageProvider struct {
	client imageClient
	model  string
	size   string
}

// NewOpenAIImageProvider 创建 OpenAI 图片生成提供者
func NewOpenAIImageProvider(client imageClient, cfg *config.OpenAIConfig) *OpenAIImageProvider {
	model := cfg.ImageModel
	if model == "" {
		model = goopenai.CreateImageModelDallE3
	}
	size := cfg.ImageSize
	if size == "" {
		size = goopenai.CreateImageSize1024x1024
	}
	return &OpenAIImageProvider{client: client, model: model, size: size}
}

// GenerateImage 生成一张图片并解码 base64
func (p *OpenAIImageProvider) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := p.client.CreateImage(ctx, goopenai.ImageRequest{
		Prompt:         prompt,
		Model:          p.model,
		N:              1,
		Size:           p.size,
		ResponseFormat: goopenai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, classifyOpenAIError("image", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, worldtools.NewProviderError("image", worldtools.KindInvalidResponse, errors.New("OpenAI returned no image data"))
	}

	imageData, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, worldtools.NewProviderError("image", worldtools.KindInvalidResponse, fmt.Errorf("decode b64_json: %w", err))
	}

	if revised := resp.Data[0].RevisedPrompt; revised != "" {
		log.Debug().Str("revised_prompt", revised).Msg("OpenAI revised image prompt")
	}

	return imageData, nil
}

// classifyOpenAIError 把 go-openai 的错误归类
func classifyOpenAIError(op string, err error) *worldtools.ProviderError {
	if errors.Is(err, context.Canceled) {
		return worldtools.NewProviderError(op, worldtools.KindCanceled, err)
	}

	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		if isContentPolicy(apiErr) {
			return worldtools.NewProviderError(op, worldtools.KindContentPolicy, err)
		}
		return worldtools.NewProviderError(op, worldtools.KindFromStatus(apiErr.HTTPStatusCode), err)
	}

	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return worldtools.NewProviderError(op, worldtools.KindFromStatus(reqErr.HTTPStatusCode), err)
	}

	return worldtools.Classify(op, err)
}

func isContentPolicy(apiErr *goopenai.APIError) bool {
	if code, ok := apiErr.Code.(string); ok && code == "content_policy_violation" {
		return true
	}
	return apiErr.HTTPStatusCode == http.StatusBadRequest && strings.Contains(strings.ToLower(apiErr.Message), "safety system")
}
