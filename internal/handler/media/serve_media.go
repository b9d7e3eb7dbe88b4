package media

import (
	"github.com/gin-gonic/gin"

	"protetor/internal/service"
)

// ServeImage 返回已生成的图片
// @Summary      获取图片
// @Tags         媒体
// @Produce      image/png
// @Param        filename  path      string  true  "图片文件名"
// @Success      200       {file}    binary  "图片"
// @Failure      404       {string}  string  "Erro ao carregar imagem: ..."
// @Router       /imagem/{filename} [get]
func (h *Handler) ServeImage(c *gin.Context) {
	h.serve(c, service.ImageDir, labelImage)
}

// ServeAudio 返回 audios 目录下的音频
// @Summary      获取音频
// @Tags         媒体
// @Produce      audio/mpeg
// @Param        filename  path      string  true  "音频文件名"
// @Success      200       {file}    binary  "音频"
// @Failure      404       {string}  string  "Erro ao carregar áudio: ..."
// @Router       /audio/{filename} [get]
func (h *Handler) ServeAudio(c *gin.Context) {
	h.serve(c, service.AudioDir, labelAudio)
}

// ServeVideo 返回 videos 目录下的视频
// @Summary      获取视频
// @Tags         媒体
// @Produce      video/mp4
// @Param        filename  path      string  true  "视频文件名"
// @Success      200       {file}    binary  "视频"
// @Failure      404       {string}  string  "Erro ao carregar vídeo: ..."
// @Router       /video/{filename} [get]
func (h *Handler) ServeVideo(c *gin.Context) {
	h.serve(c, service.VideoDir, labelVideo)
}

func (h *Handler) serve(c *gin.Context, dir, label string) {
	file, err := h.mediaService.Open(c.Request.Context(), dir, c.Param("filename"))
	if err != nil {
		loadFailed(c, label, err)
		return
	}
	serveFile(c, file)
}
