package worldtools

import (
	"context"
)

// LLMProvider 定义了调用大模型的接口
// 具体的「如何调用大模型」由调用方通过实现此接口注入，方便单测和替换实现
type LLMProvider interface {
	// Generate 根据系统指令和用户提示词生成一段文本
	//
	// Args:
	//   - ctx: 上下文
	//   - system: 系统指令
	//   - prompt: 用户提示词
	//
	// Returns:
	//   - text: 生成的文本
	//   - err: 失败时为 *ProviderError
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// ImageProvider 图片生成提供者接口
// 统一抽象 OpenAI 和 Ark 两种图片生成方式，返回解码后的图片字节
type ImageProvider interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// SpeechProvider 语音合成提供者接口
type SpeechProvider interface {
	// Synthesize 合成语音，返回 mp3 字节
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
