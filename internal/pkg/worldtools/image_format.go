package worldtools

import (
	"bytes"
	"strings"
)

var imageSignatures = []struct {
	format string
	magic  []byte
}{
	{"png", []byte("\x89PNG\r\n\x1a\n")},
	{"jpeg", []byte{0xFF, 0xD8, 0xFF}},
	{"gif", []byte("GIF8")},
}

// DetectImageFormat 根据文件头识别图片格式，无法识别时返回空字符串
func DetectImageFormat(data []byte) string {
	for _, sig := range imageSignatures {
		if bytes.HasPrefix(data, sig.magic) {
			return sig.format
		}
	}
	if len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")) {
		return "webp"
	}
	return ""
}

// ImageExt 图片格式对应的文件扩展名，jpeg 使用 .jpg
func ImageExt(format string) string {
	switch format {
	case "":
		return ""
	case "jpeg":
		return ".jpg"
	default:
		return "." + format
	}
}

// IsImageExt 是否为可识别的图片扩展名
func IsImageExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return true
	}
	return false
}
