package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/cobrayao-blip/mediation/internal/model"

	openai "github.com/sashabaranov/go-openai"
)

// chatCompletion 发送一次非流式 chat/completions 请求，返回首个 choice 的文本。
// 单次往返，不重试、不流式。override 非 nil 时跳过常规配置解析（连接测试用）。
func (s *Service) chatCompletion(
	ctx context.Context,
	p Provider,
	modelName string,
	messages []model.ChatMessage,
	override *Endpoint,
) (string, error) {
	var ep Endpoint
	if override != nil {
		ep = *override
	} else {
		resolved, err := s.resolve(p, nil)
		if err != nil {
			return "", err
		}
		ep = resolved
	}

	clientConfig := openai.DefaultConfig(ep.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(ep.BaseURL, "/")
	clientConfig.HTTPClient = s.client
	client := openai.NewClientWithConfig(clientConfig)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    modelName,
		Messages: toOpenAIMessages(messages),
	})
	if err != nil {
		return "", wrapTransportError(err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// toOpenAIMessages 角色映射：model -> assistant，其余原样透传
func toOpenAIMessages(messages []model.ChatMessage) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := m.Role
		if role == model.RoleModel {
			role = openai.ChatMessageRoleAssistant
		}
		result = append(result, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}
	return result
}

// wrapTransportError 把 go-openai 的错误还原为带状态码和原始响应体的传输错误
func wrapTransportError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &TransportError{StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &TransportError{StatusCode: reqErr.HTTPStatusCode, Body: string(reqErr.Body)}
	}
	return err
}

// TestConnection 用当前或传入的 apiKey/baseUrl/model 发一条最小请求，不写回配置
func (s *Service) TestConnection(ctx context.Context, p Provider, o Overrides, modelName string) error {
	ep, err := s.resolve(p, &o)
	if err != nil {
		return err
	}
	resolvedModel, err := s.ResolveModel(p, modelName)
	if err != nil {
		return err
	}
	_, err = s.chatCompletion(ctx, p, resolvedModel, []model.ChatMessage{
		{Role: model.RoleUser, Content: "hi"},
	}, &ep)
	return err
}
