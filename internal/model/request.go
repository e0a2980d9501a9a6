package model

type LoginRequest struct {
	EmailOrPhone string `json:"emailOrPhone" binding:"required"`
	Password     string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name       *string `json:"name"`
	Department *string `json:"department"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

type CreateUserRequest struct {
	Name       string `json:"name" binding:"required"`
	Department string `json:"department"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
	Password   string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	Name       *string `json:"name"`
	Department *string `json:"department"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Role       *string `json:"role"`
	Status     *string `json:"status"`
	Password   *string `json:"password"`
}

type ScenarioRequest struct {
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	Difficulty   string   `json:"difficulty"`
	DisputePoint string   `json:"disputePoint"`
	PartyA       *Persona `json:"partyA"`
	PartyB       *Persona `json:"partyB"`
	SortOrder    *int     `json:"sortOrder"`
	Enabled      *bool    `json:"enabled"`
}

type SkillRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	HowToUse    string   `json:"howToUse"`
	Phrasings   []string `json:"phrasings"`
	Pitfalls    []string `json:"pitfalls"`
	Enabled     *bool    `json:"enabled"`
}

// ChatTurnRequest 模拟对话一轮
type ChatTurnRequest struct {
	Provider          string        `json:"provider" binding:"required"`
	Model             string        `json:"model" binding:"required"`
	SystemInstruction string        `json:"systemInstruction"`
	Scenario          ScenarioInput `json:"scenario" binding:"required"`
	History           []ChatMessage `json:"history"`
	UserInput         string        `json:"userInput" binding:"required"`
}

type GenerateOpeningRequest struct {
	Provider string        `json:"provider" binding:"required"`
	Model    string        `json:"model" binding:"required"`
	Scenario ScenarioInput `json:"scenario" binding:"required"`
}

type EvaluateRequest struct {
	Provider      string        `json:"provider" binding:"required"`
	Model         string        `json:"model" binding:"required"`
	ScenarioTitle string        `json:"scenarioTitle" binding:"required"`
	ScenarioID    string        `json:"scenarioId"`
	ChatHistory   []ChatMessage `json:"chatHistory" binding:"required"`
}

type GenerateDocumentRequest struct {
	Provider      string        `json:"provider" binding:"required"`
	Model         string        `json:"model" binding:"required"`
	ScenarioTitle string        `json:"scenarioTitle" binding:"required"`
	PartyA        Persona       `json:"partyA" binding:"required"`
	PartyB        Persona       `json:"partyB" binding:"required"`
	ChatHistory   []ChatMessage `json:"chatHistory" binding:"required"`
}

type GenerateScenarioRequest struct {
	Provider    string `json:"provider" binding:"required"`
	Model       string `json:"model"`
	Description string `json:"description" binding:"required"`
}

// LLMSettingsRequest 保存大模型配置，空字段表示不修改
type LLMSettingsRequest struct {
	Provider string `json:"provider" binding:"required"`
	APIKey   string `json:"apiKey"`
	BaseURL  string `json:"baseUrl"`
	Model    string `json:"model"`
}

type LLMTestRequest struct {
	Provider string `json:"provider" binding:"required"`
	APIKey   string `json:"apiKey"`
	BaseURL  string `json:"baseUrl"`
	Model    string `json:"model"`
}

type DefaultLLMRequest struct {
	Provider string `json:"provider" binding:"required"`
	Model    string `json:"model" binding:"required"`
}

type MentorCommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}
