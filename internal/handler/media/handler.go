package media

import (
	"protetor/internal/service"
)

// Handler 页面与媒体模块处理器
type Handler struct {
	mediaService    service.MediaService
	greetingService service.GreetingService
	pagesDir        string
	questionAudio   string
}

// NewHandler 创建页面与媒体模块处理器
//
// Args:
//   - pagesDir: 静态页面所在目录
//   - questionAudio: audios 目录下固定提问音频的文件名
func NewHandler(mediaService service.MediaService, greetingService service.GreetingService, pagesDir, questionAudio string) *Handler {
	return &Handler{
		mediaService:    mediaService,
		greetingService: greetingService,
		pagesDir:        pagesDir,
		questionAudio:   questionAudio,
	}
}
