package llm

import (
	"errors"
	"fmt"
)

// ErrMalformedReply 模型回复中没有可解析的 JSON 对象
var ErrMalformedReply = errors.New("malformed model reply")

// ConfigError 缺少 API Key 等配置问题，在发起网络请求之前返回
type ConfigError struct {
	Provider Provider
	Hint     string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing API key for %s: %s", e.Provider, e.Hint)
}

// TransportError LLM 端点返回非 2xx，保留原始状态码和响应体，
// 让上游服务商的报错（限流、模型名错误等）原样到达使用者
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("LLM request failed (%d): %s", e.StatusCode, e.Body)
}
