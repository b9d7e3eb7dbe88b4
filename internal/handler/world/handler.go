package world

import (
	"protetor/internal/service"
)

// Handler "mundo perfeito" 模块处理器
type Handler struct {
	worldService service.WorldService
}

// NewHandler 创建"mundo perfeito"模块处理器
func NewHandler(worldService service.WorldService) *Handler {
	return &Handler{
		worldService: worldService,
	}
}
