package service

import (
	"context"
	"fmt"
	"io"

	"protetor/internal/pkg/storage"
)

// 存储中的媒体目录
const (
	ImageDir = "imagens"
	AudioDir = "audios"
	VideoDir = "videos"
)

// MediaFile 可直接返回给浏览器的媒体文件
// 调用方负责关闭 Body
type MediaFile struct {
	Name        string
	Size        int64
	ContentType string
	Body        io.ReadCloser
}

// MediaService 静态媒体服务接口
type MediaService interface {
	// Open 打开 dir 目录下的文件，filename 来自请求路径，不可信
	Open(ctx context.Context, dir, filename string) (*MediaFile, error)
}

// mediaService 静态媒体服务实现
type mediaService struct {
	storage storage.Storage
}

// NewMediaService 创建静态媒体服务
func NewMediaService(st storage.Storage) MediaService {
	return &mediaService{storage: st}
}

// Open 打开媒体文件
func (s *mediaService) Open(ctx context.Context, dir, filename string) (*MediaFile, error) {
	key, err := storage.Join(dir, filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, filename)
	}
	return openMedia(ctx, s.storage, key)
}

// openMedia 按 key 打开存储中的文件
func openMedia(ctx context.Context, st storage.Storage, key string) (*MediaFile, error) {
	info, err := st.GetFileInfo(ctx, key)
	if err != nil {
		return nil, err
	}

	body, err := st.Download(ctx, key)
	if err != nil {
		return nil, err
	}

	return &MediaFile{
		Name:        info.Name(),
		Size:        info.Size,
		ContentType: info.ContentType,
		Body:        body,
	}, nil
}
