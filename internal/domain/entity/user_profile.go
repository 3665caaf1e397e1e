package entity

// UserProfile 提问者画像，由客户端随每轮请求提交
type UserProfile struct {
	Role     CoachRole `json:"role"`
	AgeGroup AgeGroup  `json:"age_group"`
	// Language 声明的回复语言，空则回落到服务默认语言
	Language string `json:"language,omitempty"`
}
