package dto

// ChatProfile 提问者画像
type ChatProfile struct {
	Role     string `json:"role" binding:"required"`
	AgeGroup string `json:"age_group" binding:"required"`
	Language string `json:"language"`
}

// ChatRequest 单轮问答请求
type ChatRequest struct {
	Question string       `json:"question" binding:"required"`
	Profile  *ChatProfile `json:"profile" binding:"required"`
}

// ChatResponse 单轮问答响应
type ChatResponse struct {
	Answer string `json:"answer"`
	// Clarified 为 true 表示检索为空，返回的是澄清话术
	Clarified bool `json:"clarified,omitempty"`
}
