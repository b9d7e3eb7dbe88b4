package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"protetor/internal/pkg/storage"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	storage storage.Storage
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(st storage.Storage) *HealthHandler {
	return &HealthHandler{storage: st}
}

// Health 健康检查
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready 就绪检查，媒体存储可访问时就绪
func (h *HealthHandler) Ready(c *gin.Context) {
	if _, err := h.storage.List(c.Request.Context(), "imagens/"); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unavailable",
			"storage": h.storage.GetStorageType(),
			"erro":    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"storage": h.storage.GetStorageType(),
	})
}
