package llm

import (
	"strings"

	"github.com/cobrayao-blip/mediation/internal/model"
)

// 关键词规则按固定优先级排列：后期阶段先判，
// 长对话里早期阶段的词必然还在，但出现后期关键词说明流程已经走到了那一步。
var stageRules = []struct {
	stage    model.Stage
	keywords []string
}{
	{model.StageAgreement, []string{"协议", "达成", "同意", "签字"}},
	{model.StageArchive, []string{"归档", "结案", "完成"}},
	{model.StageEmotion, []string{"情绪", "安抚", "理解", "共情"}},
	{model.StageVerify, []string{"事实", "证据", "核实", "确认"}},
	{model.StageExplain, []string{"释明", "权利", "义务", "告知"}},
}

// DetectStage 根据完整对话判断当前处于哪个调解阶段。
// 每次从头重算，无内部状态，同一份记录总是得到同一个结果。
func DetectStage(messages []model.ChatMessage) model.Stage {
	var parts []string
	for _, m := range messages {
		if m.Role == model.RoleSystem {
			continue
		}
		parts = append(parts, m.Content)
	}
	text := strings.ToLower(strings.Join(parts, " "))

	for _, rule := range stageRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.stage
			}
		}
	}
	// 默认从接案开始
	return model.StageIntake
}
