package llm

import (
	"context"
	"fmt"

	"github.com/cobrayao-blip/mediation/internal/model"
)

const documentPromptFormat = `根据以下调解对话，生成一份《调解协议书》草稿。场景：%s。

当事人：
- 甲方：%s
- 乙方：%s

对话记录：
%s

请生成一份规范的调解协议书，包含：
1. 标题：调解协议书
2. 当事人基本信息
3. 争议事项
4. 调解结果（根据对话内容推断双方达成的协议）
5. 双方权利义务
6. 履行期限和方式
7. 其他约定
8. 签字栏

如果对话中未明确达成协议，请根据对话内容合理推断可能的协议条款，并在协议中标注"（待双方确认）"。`

// GenerateDocument 生成调解协议书草稿。返回原文，不做结构化解析，
// 传输失败原样报错，没有兜底。
func (s *Service) GenerateDocument(
	ctx context.Context,
	p Provider,
	modelName string,
	scenarioTitle string,
	partyA, partyB model.Persona,
	chatHistory []model.ChatMessage,
) (string, error) {
	userContent := fmt.Sprintf(documentPromptFormat,
		scenarioTitle,
		partyA.Name,
		partyB.Name,
		renderHistory(chatHistory),
	)
	return s.chatCompletion(ctx, p, modelName, []model.ChatMessage{
		{Role: model.RoleUser, Content: userContent},
	}, nil)
}
