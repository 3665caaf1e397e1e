package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"educa-tennis-api/internal/domain/entity"
	apperrors "educa-tennis-api/pkg/errors"
	"educa-tennis-api/pkg/logger"
	"educa-tennis-api/pkg/metrics"
)

// ChatModelFactory 定义问答管线对 LLM ChatModel 的最小依赖（port）。
type ChatModelFactory interface {
	Get(ctx context.Context, name string) (model.BaseChatModel, error)
}

// Classifier 查询分类器：每轮一次模型调用，产出结构化检索意图。
// 分类失败直接拒绝本轮，不重试、不使用默认值兜底。
type Classifier struct {
	factory         ChatModelFactory
	provider        string
	defaultLanguage string
}

// NewClassifier 创建查询分类器
func NewClassifier(factory ChatModelFactory, provider, defaultLanguage string) *Classifier {
	if defaultLanguage == "" {
		defaultLanguage = "es"
	}
	return &Classifier{
		factory:         factory,
		provider:        provider,
		defaultLanguage: defaultLanguage,
	}
}

// rawIntent 模型输出的 JSON 结构
type rawIntent struct {
	Query        string `json:"query"`
	AgeGroup     string `json:"age_group"`
	Coach        string `json:"coach"`
	QuestionType string `json:"question_type"`
	Language     string `json:"language"`
	Dates        struct {
		Trimester int64 `json:"trimester"`
		Week      int64 `json:"week"`
		Session   int64 `json:"session"`
		Limit     int64 `json:"limit"`
	} `json:"dates"`
}

// Classify 解析用户问题为检索意图。
// 画像中的组别和视角作为后缀拼入问题文本，模型可据此消歧。
func (c *Classifier) Classify(ctx context.Context, question string, profile entity.UserProfile) (*entity.SearchIntent, error) {
	if c == nil || c.factory == nil {
		return nil, apperrors.New(apperrors.CodeClassificationFailed, "classifier not configured")
	}

	declaredLang := strings.TrimSpace(profile.Language)
	if declaredLang == "" {
		declaredLang = c.defaultLanguage
	}

	chatModel, err := c.factory.Get(ctx, c.provider)
	if err != nil {
		metrics.ClassificationTotal.WithLabelValues("", "error").Inc()
		return nil, apperrors.Wrap(err, apperrors.CodeClassificationFailed, "failed to get chat model")
	}

	user := fmt.Sprintf("%s. GRUPO: %s, COACH: %s, IDIOMA: %s",
		strings.TrimSpace(question), profile.AgeGroup, profile.Role, declaredLang)

	msg, err := chatModel.Generate(ctx, []*schema.Message{
		schema.SystemMessage(classifierSystemPrompt),
		schema.UserMessage(user),
	})
	if err != nil {
		metrics.ClassificationTotal.WithLabelValues("", "error").Inc()
		return nil, apperrors.Wrap(err, apperrors.CodeClassificationFailed, "classification call failed")
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		metrics.ClassificationTotal.WithLabelValues("", "error").Inc()
		return nil, apperrors.New(apperrors.CodeClassificationFailed, "empty classification response")
	}

	var raw rawIntent
	if err := json.Unmarshal([]byte(extractJSONObject(msg.Content)), &raw); err != nil {
		metrics.ClassificationTotal.WithLabelValues("", "error").Inc()
		return nil, apperrors.Wrap(err, apperrors.CodeClassificationFailed, "invalid classification JSON")
	}

	intent, err := c.validate(&raw, question, declaredLang)
	if err != nil {
		metrics.ClassificationTotal.WithLabelValues(raw.QuestionType, "invalid").Inc()
		return nil, err
	}

	metrics.ClassificationTotal.WithLabelValues(string(intent.QuestionType), "success").Inc()
	logger.Debug(ctx, "query classified",
		"age_group", intent.AgeGroup,
		"coach", intent.Coach,
		"question_type", intent.QuestionType,
		"trimester", intent.Dates.Trimester,
		"week", intent.Dates.Week,
	)
	return intent, nil
}

// validate 枚举校验：任何越界值拒绝本轮，绝不替换为默认组别
func (c *Classifier) validate(raw *rawIntent, question, declaredLang string) (*entity.SearchIntent, error) {
	group := entity.AgeGroup(strings.TrimSpace(raw.AgeGroup))
	if !group.Valid() {
		return nil, apperrors.New(apperrors.CodeClassificationFailed, "invalid age group").
			WithDetail(raw.AgeGroup)
	}

	coach := entity.CoachRole(strings.TrimSpace(raw.Coach))
	if !coach.Valid() {
		return nil, apperrors.New(apperrors.CodeClassificationFailed, "invalid coach role").
			WithDetail(raw.Coach)
	}

	qt := entity.SectionType(strings.TrimSpace(raw.QuestionType))
	if qt == "" {
		qt = entity.SectionConceptual
	}
	if !qt.Valid() {
		return nil, apperrors.New(apperrors.CodeClassificationFailed, "invalid question type").
			WithDetail(raw.QuestionType)
	}

	query := strings.TrimSpace(raw.Query)
	if query == "" {
		query = strings.TrimSpace(question)
	}

	lang := strings.ToLower(strings.TrimSpace(raw.Language))
	if lang == "" {
		lang = declaredLang
	}

	dates := entity.SearchDates{
		Trimester: clampNonNegative(raw.Dates.Trimester),
		Week:      clampNonNegative(raw.Dates.Week),
		Session:   clampNonNegative(raw.Dates.Session),
		Limit:     clampNonNegative(raw.Dates.Limit),
	}

	return &entity.SearchIntent{
		Query:        query,
		AgeGroup:     group,
		Coach:        coach,
		QuestionType: qt,
		Language:     lang,
		Dates:        dates,
	}, nil
}

func clampNonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
