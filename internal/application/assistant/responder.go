package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"

	apperrors "educa-tennis-api/pkg/errors"
	"educa-tennis-api/pkg/metrics"
)

// Responder 回答生成器：基于检索到的教材上下文生成回复，
// 必要时做第二次模型调用翻译到目标语言。
type Responder struct {
	factory  ChatModelFactory
	provider string
}

// NewResponder 创建回答生成器
func NewResponder(factory ChatModelFactory, provider string) *Responder {
	return &Responder{factory: factory, provider: provider}
}

// Answer 生成回答。上下文拼入 system 消息，问题作为 user 消息。
func (r *Responder) Answer(ctx context.Context, question, contextBlock string) (string, error) {
	content, err := r.generate(ctx,
		answerSystemPrompt+"\n\nContexto:\n"+contextBlock,
		question,
	)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeGenerationFailed, "answer generation failed")
	}
	return content, nil
}

// Translate 把文本翻译到目标语言。
// 目标语言为西班牙语或文本为空时原样返回，不发起调用。
func (r *Responder) Translate(ctx context.Context, text, language string) (string, error) {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" || language == "es" || strings.TrimSpace(text) == "" {
		return text, nil
	}

	content, err := r.generate(ctx,
		fmt.Sprintf(translationSystemPrompt, language),
		text,
	)
	if err != nil {
		metrics.TranslationTotal.WithLabelValues(language, "error").Inc()
		return "", apperrors.Wrap(err, apperrors.CodeTranslationFailed, "translation failed")
	}
	metrics.TranslationTotal.WithLabelValues(language, "success").Inc()
	return content, nil
}

func (r *Responder) generate(ctx context.Context, system, user string) (string, error) {
	if r == nil || r.factory == nil {
		return "", fmt.Errorf("responder not configured")
	}

	chatModel, err := r.factory.Get(ctx, r.provider)
	if err != nil {
		return "", err
	}

	start := time.Now()
	msg, err := chatModel.Generate(ctx, []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(user),
	})
	metrics.LLMCallDuration.WithLabelValues(r.provider, "").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(r.provider, "", "error").Inc()
		return "", err
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		metrics.LLMCallTotal.WithLabelValues(r.provider, "", "error").Inc()
		return "", fmt.Errorf("empty llm response")
	}

	metrics.LLMCallTotal.WithLabelValues(r.provider, "", "success").Inc()
	if msg.ResponseMeta != nil && msg.ResponseMeta.Usage != nil {
		metrics.LLMTokensUsed.WithLabelValues(r.provider, "", "prompt").
			Add(float64(msg.ResponseMeta.Usage.PromptTokens))
		metrics.LLMTokensUsed.WithLabelValues(r.provider, "", "completion").
			Add(float64(msg.ResponseMeta.Usage.CompletionTokens))
	}
	return strings.TrimSpace(msg.Content), nil
}
