package llm

import (
	"context"
	"fmt"

	"github.com/cobrayao-blip/mediation/internal/model"
)

const scenarioPromptFormat = `根据以下一句话描述，生成一个完整的司法调解案例。描述：%s

请生成一个详细的调解案例，包含：
1. 标题：简洁的案例标题
2. 分类：民事纠纷、商事调解、社区治理、劳动争议等
3. 难度：入门级、进阶级、专业级
4. 描述：详细的背景描述
5. 争议焦点：双方的核心争议点
6. 当事人A：姓名、性格特征、背景信息
7. 当事人B：姓名、性格特征、背景信息

请严格只输出一个 JSON 对象，格式：
{
  "title": "案例标题",
  "category": "民事纠纷",
  "difficulty": "入门级",
  "description": "详细的背景描述...",
  "disputePoint": "争议焦点描述...",
  "partyA": {
    "name": "当事人A姓名",
    "trait": "性格特征，如：守旧、固执、爱面子",
    "background": "背景信息，如：退休教师，独居..."
  },
  "partyB": {
    "name": "当事人B姓名",
    "trait": "性格特征，如：焦躁、务实、防御性强",
    "background": "背景信息，如：私企中层，工作压力大..."
  }
}`

// GenerateScenario 根据一句话描述生成案例草稿。管理端工具，
// 解析失败直接报错，让问题暴露出来而不是静默兜底。
func (s *Service) GenerateScenario(
	ctx context.Context,
	p Provider,
	modelName string,
	description string,
) (model.ScenarioDraft, error) {
	content, err := s.chatCompletion(ctx, p, modelName, []model.ChatMessage{
		{Role: model.RoleUser, Content: fmt.Sprintf(scenarioPromptFormat, description)},
	}, nil)
	if err != nil {
		return model.ScenarioDraft{}, err
	}

	parsed, err := extractJSON(content)
	if err != nil {
		return model.ScenarioDraft{}, fmt.Errorf("案例生成结果解析失败: %w", err)
	}

	return model.ScenarioDraft{
		Title:        stringField(parsed, "title", ""),
		Category:     nonEmptyField(parsed, "category", "民事纠纷"),
		Difficulty:   nonEmptyField(parsed, "difficulty", "入门级"),
		Description:  stringField(parsed, "description", ""),
		DisputePoint: stringField(parsed, "disputePoint", ""),
		PartyA:       personaField(parsed, "partyA", "当事人A"),
		PartyB:       personaField(parsed, "partyB", "当事人B"),
	}, nil
}

func personaField(m map[string]any, key, defaultName string) model.Persona {
	entry, _ := m[key].(map[string]any)
	if entry == nil {
		return model.Persona{Name: defaultName}
	}
	return model.Persona{
		Name:       nonEmptyField(entry, "name", defaultName),
		Trait:      stringField(entry, "trait", ""),
		Background: stringField(entry, "background", ""),
	}
}
