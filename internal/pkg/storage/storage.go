package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrNotFound 文件不存在
	ErrNotFound = errors.New("file not found")
	// ErrInvalidKey key 不合法（越出存储根目录等）
	ErrInvalidKey = errors.New("invalid storage key")
)

// Storage 媒体存储接口
// key 使用正斜杠分隔，如 "imagens/<uuid>.png"、"audios/audio_ana.mp3"
type Storage interface {
	// Upload 写入文件；同一 key 的并发写入以最后完成者为准，读者不会看到写了一半的文件
	Upload(ctx context.Context, key string, data io.Reader, contentType string) error

	// Download 读取文件
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists 检查文件是否存在
	Exists(ctx context.Context, key string) (bool, error)

	// GetFileInfo 获取文件信息
	GetFileInfo(ctx context.Context, key string) (*FileInfo, error)

	// List 列出 prefix 目录下的文件（不递归）
	List(ctx context.Context, prefix string) ([]*FileInfo, error)

	// GetStorageType 获取存储类型
	GetStorageType() string
}

// FileInfo 文件信息
type FileInfo struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
}

// Name 返回 key 的最后一段
func (f *FileInfo) Name() string {
	return f.Key[strings.LastIndex(f.Key, "/")+1:]
}

// StorageType 存储类型
type StorageType string

const (
	StorageTypeLocal StorageType = "local" // 本地文件系统
	StorageTypeOSS   StorageType = "oss"   // 阿里云OSS
)

// Join 将目录与不可信的文件名拼成 key
// 文件名必须是单独的一段，含分隔符或为 "."/".." 时返回 ErrInvalidKey
func Join(dir, name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", ErrInvalidKey
	}
	return strings.TrimSuffix(dir, "/") + "/" + name, nil
}

// ContentTypeByExt 根据文件扩展名获取Content-Type
func ContentTypeByExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	contentTypes := map[string]string{
		".html": "text/html; charset=utf-8",
		".json": "application/json",
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".gif":  "image/gif",
		".webp": "image/webp",
		".mp4":  "video/mp4",
		".webm": "video/webm",
		".mov":  "video/quicktime",
		".mp3":  "audio/mpeg",
		".wav":  "audio/wav",
		".ogg":  "audio/ogg",
	}

	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
