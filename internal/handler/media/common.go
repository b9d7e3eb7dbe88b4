package media

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"protetor/internal/service"
)

// 错误文案中的媒体名称
const (
	labelImage = "imagem"
	labelAudio = "áudio"
	labelVideo = "vídeo"
)

// serveFile 将媒体文件写回响应，并关闭文件
func serveFile(c *gin.Context, file *service.MediaFile) {
	defer file.Body.Close()
	c.DataFromReader(http.StatusOK, file.Size, file.ContentType, file.Body, nil)
}

// loadFailed 媒体加载失败统一返回 404 纯文本
func loadFailed(c *gin.Context, label string, err error) {
	log.Warn().
		Err(err).
		Str("path", c.Request.URL.Path).
		Str("request_id", c.GetString("request_id")).
		Msgf("加载%s失败", label)

	c.String(http.StatusNotFound, "Erro ao carregar %s: %v", label, err)
}
