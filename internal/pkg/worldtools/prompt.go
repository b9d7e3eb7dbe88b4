package worldtools

import (
	"fmt"
	"strings"
)

// EnrichmentSystemPrompt 提示词增强的系统指令
const EnrichmentSystemPrompt = "Você é um especialista em prompts para geração de imagens. " +
	"Crie prompts concisos e diretos (máximo 20 palavras) para imagens realistas. " +
	"Responda APENAS com o prompt melhorado, sem explicações."

// GreetingText 个性化问候语
func GreetingText(name string) string {
	return fmt.Sprintf("Olá, %s, como você imagina o mundo perfeito?", name)
}

// EnrichmentPrompt 把用户描述嵌入增强请求
func EnrichmentPrompt(world string) string {
	return fmt.Sprintf("Enriqueça este prompt de forma concisa para imagem realista: 'mundo perfeito com %s'. "+
		"Adicione apenas detalhes essenciais de iluminação e realismo. Máximo 20 palavras. "+
		"e não gere coisas que não poderam existir, que fuja da realidade, quando isso acontecer retire da imagem.", world)
}

// ImagePrompt 图片生成使用的写实风格包装
func ImagePrompt(enriched string) string {
	return fmt.Sprintf("Photorealistic: %s. High quality, realistic lighting, detailed.", strings.TrimSpace(enriched))
}
