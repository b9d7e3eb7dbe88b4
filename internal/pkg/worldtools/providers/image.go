package providers

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"protetor/internal/pkg/ark"
	"protetor/internal/pkg/worldtools"
)

// ArkImageProvider Ark 图片生成提供者
// 适配层，调用 ark.ArkImageClient（使用官方 Go SDK）
type ArkImageProvider struct {
	client *ark.ArkImageClient
}

// NewArkImageProvider 创建 Ark 图片生成提供者
func NewArkImageProvider(client *ark.ArkImageClient) *ArkImageProvider {
	return &ArkImageProvider{
		client: client,
	}
}

// GenerateImage 生成图片
func (p *ArkImageProvider) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	imageData, err := p.client.GenerateImage(ctx, prompt)
	if err != nil {
		if errors.Is(err, ark.ErrNoImageData) {
			return nil, worldtools.NewProviderError("image", worldtools.KindInvalidResponse, err)
		}
		return nil, worldtools.Classify("image", err)
	}

	log.Info().
		Int("size", len(imageData)).
		Msg("Ark 图片生成成功")

	return imageData, nil
}
