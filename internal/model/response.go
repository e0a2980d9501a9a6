package model

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

// UserView 返回给前端的用户信息（不含密码散列）
type UserView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role"`
	Status     string `json:"status"`
}

func (u *User) View() UserView {
	return UserView{
		ID:         u.ID,
		Name:       u.Name,
		Department: u.Department,
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       u.Role,
		Status:     u.Status,
	}
}

type UserListResponse struct {
	List  []UserView `json:"list"`
	Total int        `json:"total"`
}

// LLMProviderView 脱敏后的单个 provider 配置
type LLMProviderView struct {
	BaseURL   string  `json:"baseUrl,omitempty"`
	HasAPIKey bool    `json:"hasApiKey"`
	KeyMasked *string `json:"keyMasked"`
	Model     string  `json:"model,omitempty"`
}

// LLMSettingsView 全量脱敏配置视图，附带默认模型选择
type LLMSettingsView struct {
	Providers       map[string]LLMProviderView `json:"providers"`
	DefaultProvider string                     `json:"defaultProvider,omitempty"`
	DefaultModel    string                     `json:"defaultModel,omitempty"`
}

// AnalyticsReport 学员数据报表
type AnalyticsReport struct {
	TotalSessions  int              `json:"totalSessions"`
	AvgScore       float64          `json:"avgScore"`
	GrowthCurve    []GrowthPoint    `json:"growthCurve"`
	SkillUsage     map[string]int   `json:"skillUsage"`
	CommonMistakes []MistakeCount   `json:"commonMistakes"`
	RecentSessions []SessionSummary `json:"recentSessions"`
}

type GrowthPoint struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

type MistakeCount struct {
	Mistake string `json:"mistake"`
	Count   int    `json:"count"`
}

type SessionSummary struct {
	ID       string `json:"id"`
	Scenario string `json:"scenario"`
	Score    int    `json:"score"`
	Date     string `json:"date"`
}
