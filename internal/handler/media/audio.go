package media

import (
	"net/url"

	"github.com/gin-gonic/gin"

	"protetor/internal/service"
)

// QuestionAudio 固定的"qual o seu nome?"提问音频
// @Summary      提问音频
// @Tags         音频
// @Produce      audio/mpeg
// @Success      200  {file}    binary  "音频"
// @Failure      404  {string}  string  "Erro ao carregar áudio: ..."
// @Router       /audio_pergunta [get]
func (h *Handler) QuestionAudio(c *gin.Context) {
	file, err := h.mediaService.Open(c.Request.Context(), service.AudioDir, h.questionAudio)
	if err != nil {
		loadFailed(c, labelAudio, err)
		return
	}
	serveFile(c, file)
}

// GreetingAudio 个性化问候音频，不存在时自动生成
// @Summary      个性化问候音频
// @Description  返回 "Olá, {nome}, como você imagina o mundo perfeito?" 的语音，首次请求时合成并缓存
// @Tags         音频
// @Produce      audio/mpeg
// @Param        nome  path      string  true  "访客名字"
// @Success      200   {file}    binary  "音频"
// @Failure      404   {string}  string  "Erro ao carregar áudio: ..."
// @Router       /audio_personalizado/{nome} [get]
func (h *Handler) GreetingAudio(c *gin.Context) {
	// 页面可能对名字做了二次编码
	name := c.Param("nome")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	file, err := h.greetingService.GetGreetingAudio(c.Request.Context(), name)
	if err != nil {
		loadFailed(c, labelAudio, err)
		return
	}
	serveFile(c, file)
}
