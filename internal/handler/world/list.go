package world

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	httputil "protetor/internal/pkg/http"
	"protetor/internal/service"
)

// ListImages 列出已生成的图片
// @Summary      图片列表
// @Tags         mundo perfeito
// @Produce      json
// @Success      200  {object}  ListImagesResponse  "图片列表"
// @Failure      500  {object}  ErrorResponse       "读取失败"
// @Router       /imagens [get]
func (h *Handler) ListImages(c *gin.Context) {
	images, err := h.worldService.ListImages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, httputil.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, ListImagesResponse{Imagens: images})
}

// ListGenerations 最近的生成记录
// @Summary      生成记录
// @Tags         mundo perfeito
// @Produce      json
// @Param        limit  query     int                      false  "返回条数（默认20，最大100）"
// @Success      200    {object}  ListGenerationsResponse  "生成记录"
// @Failure      404    {object}  ErrorResponse            "未启用生成记录"
// @Failure      500    {object}  ErrorResponse            "查询失败"
// @Router       /geracoes [get]
func (h *Handler) ListGenerations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	generations, err := h.worldService.ListGenerations(c.Request.Context(), limit)
	if err != nil {
		if errors.Is(err, service.ErrHistoryDisabled) {
			c.JSON(http.StatusNotFound, httputil.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, httputil.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, ListGenerationsResponse{Geracoes: generations})
}
