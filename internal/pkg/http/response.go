package http

// ErrorResponse 错误响应（前端页面读取 erro 字段）
type ErrorResponse struct {
	Erro string `json:"erro"` // 错误消息
}

// NewErrorResponse 创建错误响应
// detail 非空时拼接为 "message: detail"
func NewErrorResponse(message string, detail ...string) *ErrorResponse {
	if len(detail) > 0 && detail[0] != "" {
		return &ErrorResponse{Erro: message + ": " + detail[0]}
	}
	return &ErrorResponse{Erro: message}
}
