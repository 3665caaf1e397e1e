package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"educa-tennis-api/internal/domain/entity"
	apperrors "educa-tennis-api/pkg/errors"
	"educa-tennis-api/pkg/logger"
	"educa-tennis-api/pkg/metrics"
)

// IntroCache 欢迎语缓存的最小依赖（port），由 Redis Cache 实现。
type IntroCache interface {
	GetOrLoadSafe(ctx context.Context, key string, ttl time.Duration, loader func() (interface{}, error)) ([]byte, error)
}

// Engine 问答引擎：串联分类、过滤、检索、生成四个阶段。
// 一轮问答是严格顺序的管线，不修改任何共享状态。
type Engine struct {
	classifier *Classifier
	retriever  *Retriever
	responder  *Responder

	introCache IntroCache
	introTTL   time.Duration
}

// NewEngine 创建问答引擎。introCache 可为 nil，此时欢迎语不缓存。
func NewEngine(classifier *Classifier, retriever *Retriever, responder *Responder, introCache IntroCache, introTTL time.Duration) *Engine {
	if introTTL <= 0 {
		introTTL = 24 * time.Hour
	}
	return &Engine{
		classifier: classifier,
		retriever:  retriever,
		responder:  responder,
		introCache: introCache,
		introTTL:   introTTL,
	}
}

// Answer 处理一轮问答。
// 分类失败在检索之前拒绝；检索为空不是错误，返回固定澄清话术。
func (e *Engine) Answer(ctx context.Context, in AnswerInput) (*AnswerOutput, error) {
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "question is required")
	}

	start := time.Now()

	intent, err := e.classifier.Classify(ctx, question, in.Profile)
	if err != nil {
		metrics.ChatTurnTotal.WithLabelValues("", "classification_error").Inc()
		return nil, err
	}

	groupLabel := string(intent.AgeGroup)
	defer func() {
		metrics.ChatTurnDuration.WithLabelValues(groupLabel).Observe(time.Since(start).Seconds())
	}()

	f := BuildFilter(*intent)
	logger.Debug(ctx, "filter built", "filter", f.String())

	pages, err := e.retriever.Retrieve(ctx, intent, f)
	if err != nil {
		metrics.ChatTurnTotal.WithLabelValues(groupLabel, "retrieval_error").Inc()
		return nil, err
	}

	// 空结果不触发生成，直接返回澄清话术，杜绝无依据的编造
	if len(pages) == 0 {
		metrics.ChatEmptyRetrievalTotal.WithLabelValues(groupLabel).Inc()
		metrics.ChatTurnTotal.WithLabelValues(groupLabel, "clarified").Inc()
		return &AnswerOutput{
			Answer:    clarificationMessage(intent.Language),
			Intent:    intent,
			Clarified: true,
		}, nil
	}

	answer, err := e.responder.Answer(ctx, question, BuildContext(pages))
	if err != nil {
		metrics.ChatTurnTotal.WithLabelValues(groupLabel, "generation_error").Inc()
		return nil, err
	}

	if intent.Language != "es" {
		answer, err = e.responder.Translate(ctx, answer, intent.Language)
		if err != nil {
			metrics.ChatTurnTotal.WithLabelValues(groupLabel, "translation_error").Inc()
			return nil, err
		}
	}

	metrics.ChatTurnTotal.WithLabelValues(groupLabel, "success").Inc()
	return &AnswerOutput{Answer: answer, Intent: intent}, nil
}

// Introduction 返回组别欢迎语与建议问题。
// 检索结果对同一组别确定不变，按组别+语言缓存。
func (e *Engine) Introduction(ctx context.Context, in IntroInput) (*IntroOutput, error) {
	if !in.AgeGroup.Valid() {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "invalid age group").
			WithDetail(string(in.AgeGroup))
	}
	lang := strings.ToLower(strings.TrimSpace(in.Language))
	if lang == "" {
		lang = "es"
	}

	if e.introCache == nil {
		return e.loadIntro(ctx, in.AgeGroup, lang)
	}

	key := fmt.Sprintf("intro:%s:%s", in.AgeGroup, lang)
	hit := true
	data, err := e.introCache.GetOrLoadSafe(ctx, key, e.introTTL, func() (interface{}, error) {
		hit = false
		return e.loadIntro(ctx, in.AgeGroup, lang)
	})
	if err != nil {
		metrics.IntroCacheTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	if hit {
		metrics.IntroCacheTotal.WithLabelValues("hit").Inc()
	} else {
		metrics.IntroCacheTotal.WithLabelValues("miss").Inc()
	}

	var out IntroOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "corrupt intro cache entry")
	}
	return &out, nil
}

func (e *Engine) loadIntro(ctx context.Context, group entity.AgeGroup, lang string) (*IntroOutput, error) {
	page, err := e.retriever.RetrieveIntro(ctx, group)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "intro page not found").
			WithDetail(string(group))
	}

	greeting, suggestions := splitFencedSuggestions(page.Content)

	if lang != "es" {
		greeting, err = e.responder.Translate(ctx, greeting, lang)
		if err != nil {
			return nil, err
		}
		suggestions, err = e.translateSuggestions(ctx, suggestions, lang)
		if err != nil {
			return nil, err
		}
	}

	return &IntroOutput{Greeting: greeting, Suggestions: suggestions}, nil
}

// translateSuggestions 逐行合并翻译建议问题，保持条数与顺序
func (e *Engine) translateSuggestions(ctx context.Context, suggestions []string, lang string) ([]string, error) {
	if len(suggestions) == 0 {
		return suggestions, nil
	}
	joined, err := e.responder.Translate(ctx, strings.Join(suggestions, "\n"), lang)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(joined, "\n")
	out := make([]string, 0, len(suggestions))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	// 行数对不上时保留原文，避免错位
	if len(out) != len(suggestions) {
		return suggestions, nil
	}
	return out, nil
}
