package llm

import (
	"context"
	"fmt"

	"github.com/cobrayao-blip/mediation/internal/model"
)

const openingPromptFormat = `请根据以下案例信息，生成一个真实、个性化的调解开场对话。

案例标题：%s
案例描述：%s
争议焦点：%s

当事人A：
- 姓名：%s
- 性格特征：%s
- 背景信息：%s

当事人B：
- 姓名：%s
- 性格特征：%s
- 背景信息：%s

要求：
1. 开场对话应该反映双方的真实情绪状态和性格特征
2. 对话内容要与争议焦点相关，体现双方的核心诉求
3. 语气和措辞要符合当事人的背景和性格（如：退休教师可能更文雅，私企中层可能更直接）
4. 可以包含动作描述，如"（双方已进入调解室，...）"
5. 对话要自然、真实，不要过于模板化

请严格只输出一个 JSON 对象，格式：
{
  "openingDialogue": "（动作描述）\n当事人A：...\n当事人B：...",
  "coachTip": "针对这个开场情况的带教建议",
  "recommendedSkillName": "推荐的调解技巧名称（如：积极倾听、背对背调解等）",
  "initialMoodA": 35,
  "initialMoodB": 40
}`

// GenerateOpening 根据案例信息生成个性化的开场对话。
// 解析失败时直接报错：开场失败比对话中途失格更该被调用方看见，
// 由调用方决定是否退回硬编码开场白。
func (s *Service) GenerateOpening(
	ctx context.Context,
	p Provider,
	modelName string,
	scenario model.ScenarioInput,
) (model.OpeningDialogue, error) {
	userContent := fmt.Sprintf(openingPromptFormat,
		scenario.Title,
		scenario.Description,
		scenario.DisputePoint,
		scenario.PartyA.Name, scenario.PartyA.Trait, scenario.PartyA.Background,
		scenario.PartyB.Name, scenario.PartyB.Trait, scenario.PartyB.Background,
	)

	content, err := s.chatCompletion(ctx, p, modelName, []model.ChatMessage{
		{Role: model.RoleUser, Content: userContent},
	}, nil)
	if err != nil {
		return model.OpeningDialogue{}, err
	}

	parsed, err := extractJSON(content)
	if err != nil {
		return model.OpeningDialogue{}, fmt.Errorf("开场对话生成失败: %w", err)
	}

	defaultDialogue := fmt.Sprintf(
		"（双方已进入调解室，情绪低落）\n%s：调解员，我今天来就是要个公道，没得商量！\n%s：我也不是好欺负的，你要这么说干脆别调了！",
		scenario.PartyA.Name, scenario.PartyB.Name,
	)
	return model.OpeningDialogue{
		OpeningDialogue:      nonEmptyField(parsed, "openingDialogue", defaultDialogue),
		CoachTip:             nonEmptyField(parsed, "coachTip", "双方对立情绪严重，尝试使用'背对背'调解法，或先安抚一方情绪。"),
		RecommendedSkillName: nonEmptyField(parsed, "recommendedSkillName", "背对背调解 (Caucus)"),
		InitialMoodA:         initialMoodField(parsed, "initialMoodA"),
		InitialMoodB:         initialMoodField(parsed, "initialMoodB"),
	}, nil
}

// nonEmptyField 同 stringField，但空字符串也回落到默认值
func nonEmptyField(m map[string]any, key, fallback string) string {
	if s := stringField(m, key, ""); s != "" {
		return s
	}
	return fallback
}

// initialMoodField 初始情绪值缺省为 40
func initialMoodField(m map[string]any, key string) int {
	v, ok := m[key]
	if !ok || v == nil {
		return 40
	}
	n, ok := numberValue(v)
	if !ok {
		return 40
	}
	return int(n)
}
