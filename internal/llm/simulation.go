package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cobrayao-blip/mediation/internal/model"
)

// renderHistory 把历史对话渲染为"调解员/当事人"对白，system 消息不进入提示词
func renderHistory(history []model.ChatMessage) string {
	var lines []string
	for _, m := range history {
		if m.Role == model.RoleSystem {
			continue
		}
		speaker := "当事人"
		if m.Role == model.RoleUser {
			speaker = "调解员"
		}
		lines = append(lines, speaker+": "+m.Content)
	}
	return strings.Join(lines, "\n")
}

const turnPromptFormat = `
场景：%s。
背景：%s。
当事人A：%s（%s，背景：%s）
当事人B：%s（%s，背景：%s）

历史对话：
%s

当前调解员（用户）输入：%s

请严格只输出一个 JSON 对象，不要其他文字。格式：
{"reply":"当事人的直接回应（可含动作描述）","coachTip":"针对用户这一步的点评与下一步建议","recommendedSkillName":"技巧名称或留空","moodA":50,"moodB":50}
`

// fallbackTurn 解析失败时的固定兜底结果：对话不能因为模型一次失格而中断
func fallbackTurn() model.SimulationTurn {
	skill := "积极倾听 (Active Listening)"
	return model.SimulationTurn{
		Reply:                "（对方陷入了沉默...）",
		CoachTip:             "对方似乎没有听清，尝试换个更柔和的方式提问。",
		RecommendedSkillName: &skill,
		MoodA:                50,
		MoodB:                50,
	}
}

// GenerateTurn 模拟一轮对话：返回当事人回复 + 带教建议 + 情绪值。
// 配置和传输错误照常返回；模型回复解析失败时返回兜底结果而不报错。
func (s *Service) GenerateTurn(
	ctx context.Context,
	p Provider,
	modelName string,
	systemInstruction string,
	scenario model.ScenarioInput,
	history []model.ChatMessage,
	userInput string,
) (model.SimulationTurn, error) {
	userContent := fmt.Sprintf(turnPromptFormat,
		scenario.Title,
		scenario.Description,
		scenario.PartyA.Name, scenario.PartyA.Trait, scenario.PartyA.Background,
		scenario.PartyB.Name, scenario.PartyB.Trait, scenario.PartyB.Background,
		renderHistory(history),
		userInput,
	)

	content, err := s.chatCompletion(ctx, p, modelName, []model.ChatMessage{
		{Role: model.RoleSystem, Content: systemInstruction},
		{Role: model.RoleUser, Content: userContent},
	}, nil)
	if err != nil {
		return model.SimulationTurn{}, err
	}

	parsed, err := extractJSON(content)
	if err != nil {
		return fallbackTurn(), nil
	}

	turn := model.SimulationTurn{
		Reply:    stringField(parsed, "reply", "（对方陷入了沉默...）"),
		CoachTip: stringField(parsed, "coachTip", "请换一种方式继续沟通。"),
		MoodA:    moodField(parsed, "moodA"),
		MoodB:    moodField(parsed, "moodB"),
	}
	if v, ok := parsed["recommendedSkillName"]; ok && v != nil {
		skill := fmt.Sprint(v)
		turn.RecommendedSkillName = &skill
	}
	return turn, nil
}
