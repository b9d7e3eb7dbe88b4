package config

import (
	"errors"
	"fmt"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
	AI      AIConfig      `mapstructure:"ai"`
	Image   ImageConfig   `mapstructure:"image"`
	Speech  SpeechConfig  `mapstructure:"speech"`
	Media   MediaConfig   `mapstructure:"media"`
	Log     LogConfig     `mapstructure:"log"`
	Mongo   MongoConfig   `mapstructure:"mongo"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Storage StorageConfig `mapstructure:"storage"`
	Breaker BreakerConfig `mapstructure:"breaker"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host          string        `mapstructure:"host"`
	Port          int           `mapstructure:"port"`
	Mode          string        `mapstructure:"mode"`
	ReadTimeout   time.Duration `mapstructure:"read_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
	PublicBaseURL string        `mapstructure:"public_base_url"` // 生成链接使用的对外地址，如 http://127.0.0.1:5000
}

// OpenAIConfig OpenAI 凭证与媒体模型配置
type OpenAIConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	Organization   string        `mapstructure:"organization"`
	BaseURL        string        `mapstructure:"base_url"`
	ImageModel     string        `mapstructure:"image_model"`
	ImageSize      string        `mapstructure:"image_size"`
	TTSModel       string        `mapstructure:"tts_model"`
	TTSVoice       string        `mapstructure:"tts_voice"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"` // 0 表示不限制
}

// AIConfig 提示词增强使用的对话模型配置
// api_key 为空时沿用 openai.api_key
type AIConfig struct {
	Provider string          `mapstructure:"provider"` // openai, azure, ark
	APIKey   string          `mapstructure:"api_key"`
	Model    string          `mapstructure:"model"`
	BaseURL  string          `mapstructure:"base_url"`
	Options  AIOptionsConfig `mapstructure:"options"`
}

// AIOptionsConfig AI 模型参数
type AIOptionsConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	TopP        float64 `mapstructure:"top_p"`
}

// ImageConfig 图片生成提供者配置
type ImageConfig struct {
	Provider string    `mapstructure:"provider"` // openai, ark
	Ark      ArkConfig `mapstructure:"ark"`
}

// ArkConfig 火山引擎 Ark 图片生成配置
type ArkConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	Size    string `mapstructure:"size"`
}

// SpeechConfig 语音合成提供者配置
type SpeechConfig struct {
	Provider   string        `mapstructure:"provider"` // openai, volcengine
	Volcengine VolcTTSConfig `mapstructure:"volcengine"`
}

// VolcTTSConfig 火山引擎 TTS 配置
type VolcTTSConfig struct {
	APIURL      string        `mapstructure:"api_url"`
	AccessToken string        `mapstructure:"access_token"`
	AppID       string        `mapstructure:"app_id"`
	Cluster     string        `mapstructure:"cluster"`
	VoiceType   string        `mapstructure:"voice_type"`
	Language    string        `mapstructure:"language"`
	SampleRate  int           `mapstructure:"sample_rate"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// MediaConfig 页面与固定媒体配置
type MediaConfig struct {
	PagesDir      string `mapstructure:"pages_dir"`      // index.html 等页面所在目录
	QuestionAudio string `mapstructure:"question_audio"` // 固定提问音频文件名（位于音频目录）
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// MongoConfig MongoDB 配置（为空时不记录生成历史）
type MongoConfig struct {
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`
	MinPoolSize uint64 `mapstructure:"min_pool_size"`
}

// RedisConfig Redis 配置（为空时只做进程内去重）
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	LockTTL  time.Duration `mapstructure:"lock_ttl"`
}

// StorageConfig 存储配置
type StorageConfig struct {
	Type  string       `mapstructure:"type"` // local, oss
	Local *LocalConfig `mapstructure:"local,omitempty"`
	OSS   *OSSConfig   `mapstructure:"oss,omitempty"`
}

// LocalConfig 本地文件系统配置
type LocalConfig struct {
	BasePath string `mapstructure:"base_path"` // 基础路径，imagens/ audios/ videos/ 位于其下
}

// OSSConfig 阿里云OSS配置
type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	Prefix          string `mapstructure:"prefix"` // 对象 key 前缀
}

// BreakerConfig 外部调用熔断配置
type BreakerConfig struct {
	MaxFailures uint32        `mapstructure:"max_failures"` // 连续失败次数达到后熔断，0 表示关闭熔断
	OpenTimeout time.Duration `mapstructure:"open_timeout"` // 熔断后多久进入半开
}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	switch c.Storage.Type {
	case "local", "oss":
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}

	switch c.Image.Provider {
	case "", "openai", "ark":
	default:
		return fmt.Errorf("unsupported image provider: %s", c.Image.Provider)
	}

	switch c.Speech.Provider {
	case "", "openai", "volcengine":
	default:
		return fmt.Errorf("unsupported speech provider: %s", c.Speech.Provider)
	}

	return nil
}

// BaseURL 返回对外地址，未配置时由监听地址推导
func (c *ServerConfig) BaseURL() string {
	if c.PublicBaseURL != "" {
		return c.PublicBaseURL
	}
	host := c.Host
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s:%d", host, c.Port)
}
