package llm

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cobrayao-blip/mediation/internal/model"
	"github.com/cobrayao-blip/mediation/internal/utils"
)

// Provider 支持的大模型服务商，只有千问和 DeepSeek 两个成员
type Provider string

const (
	ProviderQwen     Provider = "qwen"
	ProviderDeepSeek Provider = "deepseek"
)

// ParseProvider 系统边界上的唯一校验入口
func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderQwen, ProviderDeepSeek:
		return Provider(s), nil
	default:
		return "", fmt.Errorf("provider 必须为 qwen 或 deepseek，收到 %q", s)
	}
}

// Providers 两个服务商的固定顺序，用于配置视图遍历
var Providers = []Provider{ProviderQwen, ProviderDeepSeek}

var baseURLs = map[Provider]string{
	ProviderQwen:     "https://dashscope.aliyuncs.com/compatible-mode/v1",
	ProviderDeepSeek: "https://api.deepseek.com/v1",
}

var envKeyNames = map[Provider]string{
	ProviderQwen:     "QWEN_API_KEY",
	ProviderDeepSeek: "DEEPSEEK_API_KEY",
}

var envBaseNames = map[Provider]string{
	ProviderQwen:     "QWEN_API_BASE",
	ProviderDeepSeek: "DEEPSEEK_API_BASE",
}

// DefaultModels 与前端提示保持一致，千问推荐 qwen3-max-preview
var DefaultModels = map[Provider]string{
	ProviderQwen:     "qwen3-max-preview",
	ProviderDeepSeek: "deepseek-chat",
}

// ConfigStore 核心对持久层的全部依赖。
// GetLLMConfig 在没有记录时返回 (nil, nil)；UpsertLLMConfig 按 provider 覆盖写。
type ConfigStore interface {
	GetLLMConfig(provider string) (*model.LLMConfig, error)
	UpsertLLMConfig(cfg *model.LLMConfig) error
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

// Service 大模型编排层：配置解析、对话代理、模拟/评估/文书生成
type Service struct {
	store  ConfigStore
	client *http.Client
}

func NewService(store ConfigStore) *Service {
	return &Service{
		store:  store,
		client: utils.NewHTTPClient(120 * time.Second),
	}
}

// Overrides 单次调用的连接参数覆盖（连接测试用），不会写回存储
type Overrides struct {
	APIKey  string
	BaseURL string
}

// Endpoint 解析完成的连接信息
type Endpoint struct {
	BaseURL string
	APIKey  string
}

// firstNonEmpty 统一的逐层取值：取第一个非空字符串
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// resolve 按 覆盖参数 > 存储配置 > 环境变量 > 内置默认 的顺序逐字段解析。
// apiKey 没有内置默认，解析不到即失败，不发起任何网络请求。
func (s *Service) resolve(p Provider, o *Overrides) (Endpoint, error) {
	stored, err := s.store.GetLLMConfig(string(p))
	if err != nil {
		return Endpoint{}, fmt.Errorf("读取 %s 配置失败: %w", p, err)
	}

	var overrideKey, overrideBase string
	if o != nil {
		overrideKey = o.APIKey
		overrideBase = o.BaseURL
	}
	var storedKey, storedBase string
	if stored != nil {
		storedKey = stored.APIKey
		storedBase = stored.BaseURL
	}

	apiKey := firstNonEmpty(overrideKey, storedKey, os.Getenv(envKeyNames[p]))
	if apiKey == "" {
		hint := fmt.Sprintf("请在网页「大模型配置」中填写，或在后端环境变量 %s 中配置。", envKeyNames[p])
		if o != nil {
			hint = "请填写 API Key 后再测试"
		}
		return Endpoint{}, &ConfigError{Provider: p, Hint: hint}
	}

	baseURL := firstNonEmpty(overrideBase, storedBase, os.Getenv(envBaseNames[p]), baseURLs[p])
	return Endpoint{BaseURL: baseURL, APIKey: apiKey}, nil
}

// SaveConfig 按 provider upsert。空字符串字段视为"不修改"，不会清空已有值。
func (s *Service) SaveConfig(p Provider, in model.LLMConfig) error {
	cfg := model.LLMConfig{Provider: string(p)}
	if existing, err := s.store.GetLLMConfig(string(p)); err != nil {
		return fmt.Errorf("读取 %s 配置失败: %w", p, err)
	} else if existing != nil {
		cfg = *existing
	}

	if in.APIKey != "" {
		cfg.APIKey = in.APIKey
	}
	if in.BaseURL != "" {
		cfg.BaseURL = in.BaseURL
	}
	if in.ModelName != "" {
		cfg.ModelName = in.ModelName
	}
	return s.store.UpsertLLMConfig(&cfg)
}

const (
	settingDefaultProvider = "default_llm_provider"
	settingDefaultModel    = "default_llm_model"
)

// DefaultLLM 读取当前设置的默认大模型；未设置或值非法时 ok 为 false
func (s *Service) DefaultLLM() (p Provider, modelName string, ok bool, err error) {
	rawProvider, err := s.store.GetSetting(settingDefaultProvider)
	if err != nil {
		return "", "", false, err
	}
	rawModel, err := s.store.GetSetting(settingDefaultModel)
	if err != nil {
		return "", "", false, err
	}
	p, perr := ParseProvider(rawProvider)
	if perr != nil || rawModel == "" {
		return "", "", false, nil
	}
	return p, rawModel, true, nil
}

// SetDefaultLLM 将指定 provider+model 设为默认大模型
func (s *Service) SetDefaultLLM(p Provider, modelName string) error {
	if err := s.store.SetSetting(settingDefaultProvider, string(p)); err != nil {
		return err
	}
	return s.store.SetSetting(settingDefaultModel, modelName)
}

// PublicConfig 提供给前端的脱敏配置视图
func (s *Service) PublicConfig() (map[string]model.LLMProviderView, error) {
	result := make(map[string]model.LLMProviderView, len(Providers))
	for _, p := range Providers {
		stored, err := s.store.GetLLMConfig(string(p))
		if err != nil {
			return nil, fmt.Errorf("读取 %s 配置失败: %w", p, err)
		}
		var storedKey, storedBase, storedModel string
		if stored != nil {
			storedKey = stored.APIKey
			storedBase = stored.BaseURL
			storedModel = stored.ModelName
		}
		key := firstNonEmpty(storedKey, os.Getenv(envKeyNames[p]))
		view := model.LLMProviderView{
			BaseURL:   firstNonEmpty(storedBase, os.Getenv(envBaseNames[p]), baseURLs[p]),
			HasAPIKey: key != "",
			Model:     firstNonEmpty(storedModel, DefaultModels[p]),
		}
		if key != "" {
			masked := maskKey(key)
			view.KeyMasked = &masked
		}
		result[string(p)] = view
	}
	return result, nil
}

// ResolveModel 解析实际使用的模型名：调用方指定 > 存储配置 > 内置默认
func (s *Service) ResolveModel(p Provider, requested string) (string, error) {
	stored, err := s.store.GetLLMConfig(string(p))
	if err != nil {
		return "", fmt.Errorf("读取 %s 配置失败: %w", p, err)
	}
	var storedModel string
	if stored != nil {
		storedModel = stored.ModelName
	}
	return firstNonEmpty(requested, storedModel, DefaultModels[p]), nil
}

func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return "****" + key[len(key)-4:]
}
