package world

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	httputil "protetor/internal/pkg/http"
	"protetor/internal/pkg/worldtools"
	"protetor/internal/service"
)

// Generate 根据访客描述生成图片
// @Summary      生成"mundo perfeito"图片
// @Description  先用大模型增强描述，再生成写实风格图片并保存，返回图片链接
// @Tags         mundo perfeito
// @Accept       json
// @Produce      json
// @Param        request  body      GenerateRequest   true  "访客名字和描述"
// @Success      200      {object}  GenerateResponse  "生成结果"
// @Failure      400      {object}  ErrorResponse     "缺少参数"
// @Failure      422      {object}  ErrorResponse     "内容审核拒绝"
// @Failure      429      {object}  ErrorResponse     "外部服务限流"
// @Failure      499      {object}  ErrorResponse     "访客已断开"
// @Failure      500      {object}  ErrorResponse     "生成失败"
// @Failure      503      {object}  ErrorResponse     "外部服务不可用"
// @Failure      504      {object}  ErrorResponse     "外部服务超时"
// @Router       /gerar [post]
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 无法解析的请求体按缺少参数处理
		log.Debug().Err(err).Msg("invalid /gerar body")
		req = GenerateRequest{}
	}

	result, err := h.worldService.Generate(c.Request.Context(), &service.GenerateWorldRequest{
		Nome:          req.Nome,
		MundoPerfeito: req.MundoPerfeito,
	})
	if err != nil {
		if errors.Is(err, service.ErrMissingName) || errors.Is(err, service.ErrMissingWorld) {
			c.JSON(http.StatusBadRequest, httputil.NewErrorResponse(err.Error()))
			return
		}

		kind := worldtools.KindOf(err)
		log.Error().
			Err(err).
			Str("kind", string(kind)).
			Str("request_id", c.GetString("request_id")).
			Msg("生成图片失败")

		c.JSON(statusForKind(kind), httputil.NewErrorResponse("Erro ao gerar conteúdo", err.Error()))
		return
	}

	c.JSON(http.StatusOK, result)
}
