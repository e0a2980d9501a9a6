package llm

import (
	"context"
	"fmt"

	"github.com/cobrayao-blip/mediation/internal/model"
)

const assessmentPromptFormat = `分析以下调解对话，按司法调解的六个阶段给出评分和评估建议。场景：%s。

对话记录：
%s

请严格只输出一个 JSON 对象，不要其他文字。格式：
{
  "score": 85,
  "legalAccuracy": "法律适用方面的评价...",
  "emotionalIntelligence": "沟通策略方面的评价...",
  "procedureCompliance": "程序规范方面的评价...",
  "keyAdvice": ["建议1", "建议2", "建议3"],
  "stages": [
    {"stage": "接案", "completed": true, "score": 80, "feedback": "开场较好，但..."},
    {"stage": "释明", "completed": true, "score": 75, "feedback": "权利义务说明清晰..."},
    {"stage": "核实事实", "completed": true, "score": 85, "feedback": "事实核实充分..."},
    {"stage": "情绪疏导", "completed": true, "score": 90, "feedback": "情绪管理到位..."},
    {"stage": "协议拟定", "completed": true, "score": 88, "feedback": "协议条款合理..."},
    {"stage": "归档", "completed": false, "score": null, "feedback": "尚未完成归档阶段"}
  ]
}

说明：
- score: 1-100 的综合评分
- stages: 六个阶段的评估，completed 表示是否完成该阶段，score 为 1-100 的阶段得分（未完成可为 null），feedback 为该阶段的评价
- 当前对话已进行到 "%s" 阶段，请根据实际对话内容判断各阶段的完成情况`

// parseFailedMarker 评估解析失败时三个维度统一填的标记文案
const parseFailedMarker = "评估解析失败"

// Evaluate 结案评估（支持分阶段评估）。先用关键词规则识别当前阶段，
// 仅作为提示词上下文告诉模型对话进行到了哪一步，不裁剪历史。
// 解析失败时返回 0 分兜底结果，保证评估页面始终能渲染。
func (s *Service) Evaluate(
	ctx context.Context,
	p Provider,
	modelName string,
	scenarioTitle string,
	chatHistory []model.ChatMessage,
) (model.AssessmentResult, error) {
	currentStage := DetectStage(chatHistory)
	userContent := fmt.Sprintf(assessmentPromptFormat,
		scenarioTitle,
		renderHistory(chatHistory),
		currentStage,
	)

	content, err := s.chatCompletion(ctx, p, modelName, []model.ChatMessage{
		{Role: model.RoleUser, Content: userContent},
	}, nil)
	if err != nil {
		return model.AssessmentResult{}, err
	}

	parsed, err := extractJSON(content)
	if err != nil {
		return model.AssessmentResult{
			Score:                 0,
			LegalAccuracy:         parseFailedMarker,
			EmotionalIntelligence: parseFailedMarker,
			ProcedureCompliance:   parseFailedMarker,
			KeyAdvice:             []string{},
		}, nil
	}

	result := model.AssessmentResult{
		Score:                 scoreField(parsed, "score"),
		LegalAccuracy:         stringField(parsed, "legalAccuracy", ""),
		EmotionalIntelligence: stringField(parsed, "emotionalIntelligence", ""),
		ProcedureCompliance:   stringField(parsed, "procedureCompliance", ""),
		KeyAdvice:             adviceList(parsed["keyAdvice"]),
	}
	if stages := stageList(parsed["stages"]); len(stages) > 0 {
		result.Stages = stages
	}
	return result, nil
}

// scoreField 综合评分：缺失或非数值记 0
func scoreField(m map[string]any, key string) int {
	v, ok := m[key]
	if !ok || v == nil {
		return 0
	}
	n, ok := numberValue(v)
	if !ok {
		return 0
	}
	return int(n)
}

func adviceList(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return []string{}
	}
	advice := make([]string, 0, len(raw))
	for _, item := range raw {
		advice = append(advice, fmt.Sprint(item))
	}
	return advice
}

// stageList 逐条防御性收敛模型给出的阶段评估：
// 缺失阶段名记为接案；completed 只认字面 true；score 为 null 时不带分数。
// 模型给出的条目顺序与数量原样保留，不向规范六阶段对齐。
func stageList(v any) []model.StageProgress {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	stages := make([]model.StageProgress, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		progress := model.StageProgress{
			Stage:     model.Stage(nonEmptyField(entry, "stage", string(model.StageIntake))),
			Completed: entry["completed"] == true,
			Feedback:  stringField(entry, "feedback", ""),
		}
		if sv, present := entry["score"]; present && sv != nil {
			if n, numOK := numberValue(sv); numOK {
				score := int(n)
				progress.Score = &score
			}
		}
		stages = append(stages, progress)
	}
	return stages
}
