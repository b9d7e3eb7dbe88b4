package worldtools

import (
	"context"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strconv"
)

// ErrorKind 外部调用失败类型
type ErrorKind string

const (
	KindNetwork         ErrorKind = "network"          // 网络错误
	KindTimeout         ErrorKind = "timeout"          // 超时
	KindRateLimit       ErrorKind = "rate_limit"       // 限流
	KindContentPolicy   ErrorKind = "content_policy"   // 内容审核拒绝
	KindAuth            ErrorKind = "auth"             // 凭证无效
	KindInvalidResponse ErrorKind = "invalid_response" // 返回内容无法使用
	KindUnavailable     ErrorKind = "unavailable"      // 服务不可用（5xx 或熔断）
	KindCanceled        ErrorKind = "canceled"         // 调用方取消（访客离开页面），不是外部服务故障
	KindUnknown         ErrorKind = "unknown"
)

// ProviderError 外部调用的失败结果
type ProviderError struct {
	Kind ErrorKind
	Op   string // 如 "chat", "image", "speech"
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError 创建 ProviderError
func NewProviderError(op string, kind ErrorKind, err error) *ProviderError {
	return &ProviderError{Kind: kind, Op: op, Err: err}
}

// KindOf 返回错误链中 ProviderError 的类型，不是 ProviderError 时返回 KindUnknown
func KindOf(err error) ErrorKind {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnknown
}

var statusCodePattern = regexp.MustCompile(`status code: (\d{3})`)

// Classify 把任意错误归类为 ProviderError
// 已经是 ProviderError 的错误原样返回
func Classify(op string, err error) *ProviderError {
	if err == nil {
		return nil
	}

	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe
	}

	// url.Error 同时实现 net.Error，需先于网络错误判断
	if errors.Is(err, context.Canceled) {
		return NewProviderError(op, KindCanceled, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewProviderError(op, KindTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return NewProviderError(op, KindTimeout, err)
		}
		return NewProviderError(op, KindNetwork, err)
	}

	// SDK 的错误信息里通常带有 "status code: NNN"
	if m := statusCodePattern.FindStringSubmatch(err.Error()); m != nil {
		code, _ := strconv.Atoi(m[1])
		return NewProviderError(op, KindFromStatus(code), err)
	}

	return NewProviderError(op, KindUnknown, err)
}

// KindFromStatus 根据 HTTP 状态码推断失败类型
func KindFromStatus(code int) ErrorKind {
	switch {
	case code == 429:
		return KindRateLimit
	case code == 401 || code == 403:
		return KindAuth
	case code == 408 || code == 504:
		return KindTimeout
	case code >= 500:
		return KindUnavailable
	default:
		return KindUnknown
	}
}
