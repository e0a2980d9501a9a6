package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cobrayao-blip/mediation/internal/model"
)

// fakeStore 测试用内存配置存储
type fakeStore struct {
	configs  map[string]*model.LLMConfig
	settings map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		configs:  map[string]*model.LLMConfig{},
		settings: map[string]string{},
	}
}

func (f *fakeStore) GetLLMConfig(provider string) (*model.LLMConfig, error) {
	cfg, ok := f.configs[provider]
	if !ok {
		return nil, nil
	}
	clone := *cfg
	return &clone, nil
}

func (f *fakeStore) UpsertLLMConfig(cfg *model.LLMConfig) error {
	clone := *cfg
	f.configs[cfg.Provider] = &clone
	return nil
}

func (f *fakeStore) GetSetting(key string) (string, error) {
	return f.settings[key], nil
}

func (f *fakeStore) SetSetting(key, value string) error {
	f.settings[key] = value
	return nil
}

// completionReply 构造 chat/completions 的成功响应体
func completionReply(content string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "test-model",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	}
}

// newTestService 启动一个伪造的服务商接口，并返回指向它的 Service
func newTestService(t *testing.T, handlerFn http.HandlerFunc) *Service {
	t.Helper()
	server := httptest.NewServer(handlerFn)
	t.Cleanup(server.Close)

	store := newFakeStore()
	store.configs[string(ProviderQwen)] = &model.LLMConfig{
		Provider: string(ProviderQwen),
		APIKey:   "sk-test-1234",
		BaseURL:  server.URL,
	}
	return NewService(store)
}

// replyWith 固定返回给定文本作为模型回复
func replyWith(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionReply(content))
	}
}
