package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"protetor/internal/config"
	"protetor/internal/pkg/id"
)

const (
	defaultAPIURL     = "https://openspeech.bytedance.com/api/v1/tts"
	defaultCluster    = "volcano_tts"
	defaultVoiceType  = "BV115_streaming"
	defaultSampleRate = 24000

	codeSuccess = 3000
)

// ErrNoAudioData 响应中没有音频数据
var ErrNoAudioData = errors.New("audio data not found in response")

// APIError 火山引擎 TTS 接口返回的错误
type APIError struct {
	StatusCode int    // HTTP 状态码
	Code       int    // 业务错误码，成功为 3000
	Message    string // 错误信息
}

func (e *APIError) Error() string {
	return fmt.Sprintf("volcengine tts error, status code: %d, code: %d, message: %s", e.StatusCode, e.Code, e.Message)
}

// Client 火山引擎 TTS 客户端
// 参考: https://openspeech.bytedance.com/api/v1/tts
type Client struct {
	apiURL      string
	accessToken string
	appID       string
	cluster     string
	voiceType   string
	language    string
	sampleRate  int
	httpClient  *http.Client
}

// NewClient 创建 TTS 客户端
func NewClient(cfg *config.VolcTTSConfig) (*Client, error) {
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("TTS access token is required")
	}

	c := &Client{
		apiURL:      cfg.APIURL,
		accessToken: cfg.AccessToken,
		appID:       cfg.AppID,
		cluster:     cfg.Cluster,
		voiceType:   cfg.VoiceType,
		language:    cfg.Language,
		sampleRate:  cfg.SampleRate,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
	}
	if c.apiURL == "" {
		c.apiURL = defaultAPIURL
	}
	if c.cluster == "" {
		c.cluster = defaultCluster
	}
	if c.voiceType == "" {
		c.voiceType = defaultVoiceType
	}
	if c.sampleRate == 0 {
		c.sampleRate = defaultSampleRate
	}
	if c.httpClient.Timeout == 0 {
		c.httpClient.Timeout = 30 * time.Second
	}

	return c, nil
}

type appParams struct {
	AppID   string `json:"appid,omitempty"`
	Token   string `json:"token"`
	Cluster string `json:"cluster"`
}

type userParams struct {
	UID string `json:"uid"`
}

type audioParams struct {
	VoiceType   string  `json:"voice_type"`
	Encoding    string  `json:"encoding"`
	Rate        int     `json:"rate"`
	SpeedRatio  float64 `json:"speed_ratio"`
	VolumeRatio float64 `json:"volume_ratio"`
	PitchRatio  float64 `json:"pitch_ratio"`
	Language    string  `json:"language,omitempty"`
}

type requestParams struct {
	ReqID     string `json:"reqid"`
	Text      string `json:"text"`
	TextType  string `json:"text_type"`
	Operation string `json:"operation"`
}

type synthesizeRequest struct {
	App     appParams     `json:"app"`
	User    userParams    `json:"user"`
	Audio   audioParams   `json:"audio"`
	Request requestParams `json:"request"`
}

type synthesizeResponse struct {
	ReqID   string `json:"reqid"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data"` // base64 音频
}

// Synthesize 合成语音，返回 mp3 字节
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	requestID := id.New()
	body, err := json.Marshal(c.buildRequest(text, requestID))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer; "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	log.Debug().
		Str("request_id", requestID).
		Str("voice_type", c.voiceType).
		Msg("sending TTS request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var apiResp synthesizeResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
		}
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || apiResp.Code != codeSuccess {
		return nil, &APIError{StatusCode: resp.StatusCode, Code: apiResp.Code, Message: apiResp.Message}
	}

	if apiResp.Data == "" {
		return nil, ErrNoAudioData
	}

	audio, err := base64.StdEncoding.DecodeString(apiResp.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio data: %w", err)
	}

	return audio, nil
}

// buildRequest 构建请求
func (c *Client) buildRequest(text, requestID string) *synthesizeRequest {
	return &synthesizeRequest{
		App: appParams{
			AppID:   c.appID,
			Token:   c.accessToken,
			Cluster: c.cluster,
		},
		User: userParams{UID: requestID},
		Audio: audioParams{
			VoiceType:   c.voiceType,
			Encoding:    "mp3",
			Rate:        c.sampleRate,
			SpeedRatio:  1.0,
			VolumeRatio: 1.0,
			PitchRatio:  1.0,
			Language:    c.language,
		},
		Request: requestParams{
			ReqID:     requestID,
			Text:      text,
			TextType:  "plain",
			Operation: "query",
		},
	}
}
