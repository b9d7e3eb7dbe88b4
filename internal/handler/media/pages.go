package media

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// 固定页面
const (
	pageIndex         = "index.html"
	pagePerguntaNome  = "pergunta_nome.html"
	pageMundoPerfeito = "mundo_perfeito.html"
	pageResultado     = "resultado.html"
)

// Index 首页
// @Summary      首页
// @Tags         页面
// @Produce      html
// @Success      200  {string}  string  "HTML 页面"
// @Router       / [get]
func (h *Handler) Index(c *gin.Context) {
	c.File(filepath.Join(h.pagesDir, pageIndex))
}

// PerguntaNome 询问名字的页面
// @Summary      询问名字页面
// @Tags         页面
// @Produce      html
// @Success      200  {string}  string  "HTML 页面"
// @Router       /pergunta_nome.html [get]
func (h *Handler) PerguntaNome(c *gin.Context) {
	c.File(filepath.Join(h.pagesDir, pagePerguntaNome))
}

// MundoPerfeito 描述"mundo perfeito"的页面
// 页面自己从地址栏读取 nome，后端不使用
// @Summary      描述页面
// @Tags         页面
// @Produce      html
// @Param        nome  query     string  false  "访客名字（页面脚本使用）"
// @Success      200   {string}  string  "HTML 页面"
// @Router       /mundo_perfeito.html [get]
func (h *Handler) MundoPerfeito(c *gin.Context) {
	_ = c.Query("nome")
	c.File(filepath.Join(h.pagesDir, pageMundoPerfeito))
}

// Resultado 结果页面
// @Summary      结果页面
// @Tags         页面
// @Produce      html
// @Param        nome            query     string  false  "访客名字（页面脚本使用）"
// @Param        mundo_perfeito  query     string  false  "访客描述（页面脚本使用）"
// @Success      200             {string}  string  "HTML 页面"
// @Router       /resultado.html [get]
func (h *Handler) Resultado(c *gin.Context) {
	_ = c.Query("nome")
	_ = c.Query("mundo_perfeito")
	c.File(filepath.Join(h.pagesDir, pageResultado))
}
