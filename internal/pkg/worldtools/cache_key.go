package worldtools

import "strings"

var nameReplacer = strings.NewReplacer(" ", "_", "/", "_", `\`, "_")

// SanitizeName 计算音频缓存 key：小写，空格和斜杠替换为下划线
// 结果再次调用不变
func SanitizeName(name string) string {
	return nameReplacer.Replace(strings.ToLower(name))
}

// AudioFilename 个性化音频文件名
func AudioFilename(name string) string {
	return "audio_" + SanitizeName(name) + ".mp3"
}
