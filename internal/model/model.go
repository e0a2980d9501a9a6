package model

import "time"

// Persona 当事人画像：姓名、性格特征、背景信息
type Persona struct {
	Name       string `json:"name"`
	Trait      string `json:"trait"`
	Background string `json:"background"`
}

// Scenario 调解案例
type Scenario struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Difficulty   string    `json:"difficulty"`
	DisputePoint string    `json:"disputePoint"`
	PartyA       Persona   `json:"partyA"`
	PartyB       Persona   `json:"partyB"`
	SortOrder    int       `json:"sortOrder"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ScenarioInput 案例在提示词里用到的那部分（标题、背景、争议焦点、双方画像）
type ScenarioInput struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	DisputePoint string  `json:"disputePoint"`
	PartyA       Persona `json:"partyA"`
	PartyB       Persona `json:"partyB"`
}

// Skill 调解技巧手册条目
type Skill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	HowToUse    string   `json:"howToUse"`
	Phrasings   []string `json:"phrasings"`
	Pitfalls    []string `json:"pitfalls"`
	Enabled     bool     `json:"enabled"`
}

// 用户角色与状态
const (
	RoleAdmin    = "admin"
	RoleMentor   = "mentor"
	RoleEmployee = "employee"

	StatusActive   = "active"
	StatusDisabled = "disabled"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Department   string    `json:"department,omitempty"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ChatMessage 一条对话消息。role 取 user / model / system，
// 其中 model 表示模拟当事人，发送给 LLM 时映射为 assistant。
// recommendedSkillName 由前端在收到一轮结果后回填，仅用于练习分析。
type ChatMessage struct {
	Role                 string `json:"role"`
	Content              string `json:"content"`
	RecommendedSkillName string `json:"recommendedSkillName,omitempty"`
}

const (
	RoleUser   = "user"
	RoleModel  = "model"
	RoleSystem = "system"
)

// SimulationTurn 一轮模拟的结构化结果
type SimulationTurn struct {
	Reply                string  `json:"reply"`
	CoachTip             string  `json:"coachTip"`
	RecommendedSkillName *string `json:"recommendedSkillName,omitempty"`
	MoodA                int     `json:"moodA"`
	MoodB                int     `json:"moodB"`
}

// OpeningDialogue 个性化开场对话
type OpeningDialogue struct {
	OpeningDialogue      string `json:"openingDialogue"`
	CoachTip             string `json:"coachTip"`
	RecommendedSkillName string `json:"recommendedSkillName"`
	InitialMoodA         int    `json:"initialMoodA"`
	InitialMoodB         int    `json:"initialMoodB"`
}

// ScenarioDraft AI 生成的案例草稿（管理端工具）
type ScenarioDraft struct {
	Title        string  `json:"title"`
	Category     string  `json:"category"`
	Difficulty   string  `json:"difficulty"`
	Description  string  `json:"description"`
	DisputePoint string  `json:"disputePoint"`
	PartyA       Persona `json:"partyA"`
	PartyB       Persona `json:"partyB"`
}

// LLMConfig 持久化的大模型连接配置，每个 provider 至多一条
type LLMConfig struct {
	Provider  string `json:"provider"`
	APIKey    string `json:"apiKey,omitempty"`
	BaseURL   string `json:"baseUrl,omitempty"`
	ModelName string `json:"modelName,omitempty"`
}

// PracticeSession 一次练习记录（完整对话 + 评估结果）
type PracticeSession struct {
	ID            string            `json:"id"`
	UserID        string            `json:"userId"`
	ScenarioID    string            `json:"scenarioId"`
	Messages      []ChatMessage     `json:"messages"`
	Assessment    *AssessmentResult `json:"assessment,omitempty"`
	MentorComment string            `json:"mentorComment,omitempty"`
	Observers     []string          `json:"observers,omitempty"`
	IsObserved    bool              `json:"isObserved"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// MentorComment 导师评语
type MentorComment struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	MentorID  string    `json:"mentorId"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}
