// Package assistant 实现问答管线：分类 -> 过滤 -> 检索 -> 生成
package assistant

import (
	"educa-tennis-api/internal/domain/entity"
)

// AnswerInput 单轮问答输入
type AnswerInput struct {
	Question string
	Profile  entity.UserProfile
}

// AnswerOutput 单轮问答输出
type AnswerOutput struct {
	Answer string
	// Intent 解析出的检索意图（调试用）
	Intent *entity.SearchIntent
	// Clarified 为 true 表示检索为空，回复是固定的澄清话术
	Clarified bool
}

// IntroInput 欢迎语请求输入
type IntroInput struct {
	AgeGroup entity.AgeGroup
	Language string
}

// IntroOutput 欢迎语输出
type IntroOutput struct {
	Greeting    string   `json:"greeting"`
	Suggestions []string `json:"suggestions"`
}
