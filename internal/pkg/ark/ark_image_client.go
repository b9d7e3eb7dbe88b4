package ark

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/volcengine/volcengine-go-sdk/service/arkruntime"
	"github.com/volcengine/volcengine-go-sdk/service/arkruntime/model"

	"protetor/internal/config"
)

const (
	defaultBaseURL = "https://ark.cn-beijing.volces.com/api/v3"
	defaultModel   = "doubao-seedream-3-0-t2i-250415"
	defaultSize    = "1024x1024"
)

// ErrNoImageData 响应中没有可用的图片数据
var ErrNoImageData = errors.New("no image data in response")

// ArkImageClient Ark 图片生成客户端
// 用于调用火山引擎的 Ark API 生成图片
type ArkImageClient struct {
	client *arkruntime.Client
	model  string
	size   string
}

// NewArkImageClient 创建 Ark 图片生成客户端
func NewArkImageClient(cfg *config.ArkConfig) (*ArkImageClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ark api key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultModel
	}
	size := cfg.Size
	if size == "" {
		size = defaultSize
	}

	arkClient := arkruntime.NewClientWithApiKey(cfg.APIKey, arkruntime.WithBaseUrl(baseURL))

	return &ArkImageClient{
		client: arkClient,
		model:  modelName,
		size:   size,
	}, nil
}

// GenerateImage 生成图片，返回解码后的图片字节
func (c *ArkImageClient) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	size := c.size
	responseFormat := "b64_json"
	watermark := false

	input := model.GenerateImagesRequest{
		Model:          c.model,
		Prompt:         prompt,
		Size:           &size,
		ResponseFormat: &responseFormat,
		Watermark:      &watermark,
	}

	output, err := c.client.GenerateImages(ctx, input)
	if err != nil {
		log.Error().Err(err).Str("model", c.model).Msg("failed to call Ark GenerateImages API")
		return nil, fmt.Errorf("Ark GenerateImages API call failed: %w", err)
	}

	if len(output.Data) == 0 {
		return nil, ErrNoImageData
	}

	firstImage := output.Data[0]
	if firstImage.B64Json == nil {
		return nil, fmt.Errorf("%w: missing b64_json", ErrNoImageData)
	}

	imageData, err := base64.StdEncoding.DecodeString(*firstImage.B64Json)
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %v", ErrNoImageData, err)
	}

	return imageData, nil
}
