package world

import (
	"net/http"

	"protetor/internal/model/generation"
	httputil "protetor/internal/pkg/http"
	"protetor/internal/pkg/worldtools"
	"protetor/internal/service"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// GenerateRequest 生成图片请求
type GenerateRequest struct {
	Nome          string `json:"nome" example:"Ana"`                   // 访客名字
	MundoPerfeito string `json:"mundo_perfeito" example:"mais árvores"` // 访客描述
}

// GenerateResponse 生成图片响应
type GenerateResponse = service.GenerateWorldResult

// ListImagesResponse 图片列表响应
type ListImagesResponse struct {
	Imagens []service.ImageEntry `json:"imagens"`
}

// ListGenerationsResponse 生成记录列表响应
type ListGenerationsResponse struct {
	Geracoes []*generation.Generation `json:"geracoes"`
}

// StatusClientClosedRequest 客户端已断开，沿用 nginx 的 499
const StatusClientClosedRequest = 499

// statusForKind 外部调用失败类型对应的 HTTP 状态码
func statusForKind(kind worldtools.ErrorKind) int {
	switch kind {
	case worldtools.KindRateLimit:
		return http.StatusTooManyRequests
	case worldtools.KindContentPolicy:
		return http.StatusUnprocessableEntity
	case worldtools.KindUnavailable:
		return http.StatusServiceUnavailable
	case worldtools.KindTimeout:
		return http.StatusGatewayTimeout
	case worldtools.KindCanceled:
		return StatusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}
