package providers

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"protetor/internal/pkg/worldtools"
)

// EinoProvider Eino 封装的 LLM 提供者
// 使用 ai/component 创建的 ChatModel（openai / azure / ark）
// 实现了 worldtools.LLMProvider 接口
type EinoProvider struct {
	chatModel model.BaseChatModel
}

// NewEinoProvider 创建基于 Eino 的 LLM 提供者
func NewEinoProvider(chatModel model.BaseChatModel) *EinoProvider {
	return &EinoProvider{
		chatModel: chatModel,
	}
}

// Generate 发送系统指令和用户消息，返回模型的唯一回复
func (p *EinoProvider) Generate(ctx context.Context, system, prompt string) (string, error) {
	if p.chatModel == nil {
		return "", worldtools.NewProviderError("chat", worldtools.KindUnknown, errors.New("chatModel is required"))
	}

	messages := []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(prompt),
	}

	response, err := p.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", worldtools.Classify("chat", err)
	}

	var content string
	if response != nil {
		content = strings.TrimSpace(response.Content)
	}
	if content == "" {
		return "", worldtools.NewProviderError("chat", worldtools.KindInvalidResponse, errors.New("empty response from chat model"))
	}

	return content, nil
}
