package model

// Stage 调解阶段，固定六个，按流程先后排序
type Stage string

const (
	StageIntake    Stage = "接案"
	StageExplain   Stage = "释明"
	StageVerify    Stage = "核实事实"
	StageEmotion   Stage = "情绪疏导"
	StageAgreement Stage = "协议拟定"
	StageArchive   Stage = "归档"
)

// AllStages 六个阶段的规范顺序
var AllStages = []Stage{
	StageIntake,
	StageExplain,
	StageVerify,
	StageEmotion,
	StageAgreement,
	StageArchive,
}

// StageDescriptions 各阶段的工作要点，用于评估提示词
var StageDescriptions = map[Stage]string{
	StageIntake:    "开场介绍、建立信任、了解基本情况",
	StageExplain:   "告知双方权利义务、调解程序、法律依据",
	StageVerify:    "收集证据、确认争议焦点、澄清事实",
	StageEmotion:   "安抚情绪、化解对立、建立沟通桥梁",
	StageAgreement: "提出方案、协商一致、形成协议",
	StageArchive:   "整理材料、签字确认、归档结案",
}

// StageProgress 单个阶段的评估结果
type StageProgress struct {
	Stage     Stage  `json:"stage"`
	Completed bool   `json:"completed"`
	Score     *int   `json:"score,omitempty"`
	Feedback  string `json:"feedback,omitempty"`
}

// AssessmentResult 结案评估
type AssessmentResult struct {
	Score                 int             `json:"score"`
	LegalAccuracy         string          `json:"legalAccuracy"`
	EmotionalIntelligence string          `json:"emotionalIntelligence"`
	ProcedureCompliance   string          `json:"procedureCompliance"`
	KeyAdvice             []string        `json:"keyAdvice"`
	Stages                []StageProgress `json:"stages,omitempty"`
}
