package dto

// IntroRequest 欢迎语请求
type IntroRequest struct {
	AgeGroup string `json:"age_group" binding:"required"`
	Language string `json:"language"`
}

// IntroResponse 欢迎语响应
type IntroResponse struct {
	Greeting    string   `json:"greeting"`
	Suggestions []string `json:"suggestions"`
}
