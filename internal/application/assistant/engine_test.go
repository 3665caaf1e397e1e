package assistant

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"educa-tennis-api/internal/domain/entity"
	apperrors "educa-tennis-api/pkg/errors"
)

func newTestEngine(cm *fakeChatModel, pages *fakePages, cache IntroCache) *Engine {
	factory := &fakeFactory{chatModel: cm}
	classifier := NewClassifier(factory, "openai", "es")
	retriever := NewRetriever(&fakeEmbedder{}, pages, 8)
	responder := NewResponder(factory, "openai")
	return NewEngine(classifier, retriever, responder, cache, 0)
}

func sessionPage(week, session int64) *entity.ProgramPage {
	return &entity.ProgramPage{
		ID:          "p1",
		Content:     "Parte inicial: peloteo 10 min",
		AgeGroup:    entity.AgeGroup10,
		Coach:       entity.CoachRolePlayer,
		SectionType: entity.SectionSession,
		Trimester:   1,
		Week:        week,
		Session:     session,
	}
}

func TestEngineAnswerHappyPath(t *testing.T) {
	cm := &fakeChatModel{replies: []string{
		classifierJSON(sessionIntent()),
		"- **Número de Sesión**: 3",
	}}
	pages := &fakePages{pages: []*entity.ProgramPage{sessionPage(1, 3)}}
	e := newTestEngine(cm, pages, nil)

	out, err := e.Answer(context.Background(), AnswerInput{
		Question: "Dame la sesión 3 de la semana 1",
		Profile:  playerProfile(),
	})
	require.NoError(t, err)

	assert.Equal(t, "- **Número de Sesión**: 3", out.Answer)
	assert.False(t, out.Clarified)
	require.NotNil(t, out.Intent)
	assert.Equal(t, entity.AgeGroup10, out.Intent.AgeGroup)

	// 检索使用构建出的过滤器
	require.Len(t, pages.params, 1)
	assert.Equal(t, BuildFilter(sessionIntent()).String(), pages.params[0].Filter.String())

	// 第二次调用是生成：system 含上下文，user 是原始问题
	require.Len(t, cm.calls, 2)
	assert.Contains(t, cm.calls[1][0].Content, "Contexto:")
	assert.Contains(t, cm.calls[1][0].Content, "[TRIMESTRE 1 · SEMANA 1 · SESIÓN 3]")
	assert.Equal(t, "Dame la sesión 3 de la semana 1", cm.calls[1][1].Content)
}

func TestEngineAnswerEmptyRetrievalClarifies(t *testing.T) {
	cm := &fakeChatModel{replies: []string{classifierJSON(sessionIntent())}}
	pages := &fakePages{}
	e := newTestEngine(cm, pages, nil)

	out, err := e.Answer(context.Background(), AnswerInput{
		Question: "Dame la sesión 9 de la semana 40",
		Profile:  playerProfile(),
	})
	require.NoError(t, err)

	assert.True(t, out.Clarified)
	assert.Equal(t, clarificationMessage("es"), out.Answer)
	// 只有分类一次模型调用，空结果不触发生成
	assert.Len(t, cm.calls, 1)
}

func TestEngineAnswerClarificationLanguage(t *testing.T) {
	intent := sessionIntent()
	intent.Language = "en"
	cm := &fakeChatModel{replies: []string{classifierJSON(intent)}}
	e := newTestEngine(cm, &fakePages{}, nil)

	out, err := e.Answer(context.Background(), AnswerInput{
		Question: "Give me session 9 of week 40",
		Profile:  playerProfile(),
	})
	require.NoError(t, err)
	assert.Equal(t, clarificationMessage("en"), out.Answer)
}

func TestEngineAnswerClassificationFailureSkipsRetrieval(t *testing.T) {
	cm := &fakeChatModel{replies: []string{
		`{"query":"q","age_group":"99 AÑOS","coach":"player","question_type":"session","language":"es"}`,
	}}
	pages := &fakePages{}
	e := newTestEngine(cm, pages, nil)

	_, err := e.Answer(context.Background(), AnswerInput{
		Question: "pregunta",
		Profile:  playerProfile(),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeClassificationFailed, apperrors.AsAppError(err).Code)
	assert.Empty(t, pages.params, "retrieval must not run after classification failure")
}

func TestEngineAnswerTranslatesNonSpanish(t *testing.T) {
	intent := sessionIntent()
	intent.Language = "en"
	cm := &fakeChatModel{replies: []string{
		classifierJSON(intent),
		"respuesta en español",
		"answer in english",
	}}
	pages := &fakePages{pages: []*entity.ProgramPage{sessionPage(1, 3)}}
	e := newTestEngine(cm, pages, nil)

	out, err := e.Answer(context.Background(), AnswerInput{
		Question: "Give me session 3 of week 1",
		Profile:  playerProfile(),
	})
	require.NoError(t, err)

	assert.Equal(t, "answer in english", out.Answer)
	require.Len(t, cm.calls, 3)
	// 翻译调用的输入是西语回答
	assert.Equal(t, "respuesta en español", cm.calls[2][1].Content)
	assert.True(t, strings.Contains(cm.calls[2][0].Content, `"en"`))
}

func TestEngineAnswerEmptyQuestion(t *testing.T) {
	e := newTestEngine(&fakeChatModel{}, &fakePages{}, nil)

	_, err := e.Answer(context.Background(), AnswerInput{Question: "   ", Profile: playerProfile()})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidParam, apperrors.AsAppError(err).Code)
}

func TestEngineIntroductionSplitsSuggestions(t *testing.T) {
	page := &entity.ProgramPage{
		ID:      "p0",
		Page:    0,
		Content: "¡Bienvenido al programa de 6 AÑOS!\n\n```json\n[\"¿Qué trabajamos hoy?\", \"Dame la sesión 1\"]\n```",
	}
	pages := &fakePages{pages: []*entity.ProgramPage{page}}
	e := newTestEngine(&fakeChatModel{}, pages, nil)

	out, err := e.Introduction(context.Background(), IntroInput{AgeGroup: entity.AgeGroup6})
	require.NoError(t, err)

	assert.Equal(t, "¡Bienvenido al programa de 6 AÑOS!", out.Greeting)
	require.Len(t, out.Suggestions, 2)
	assert.Equal(t, "¿Qué trabajamos hoy?", out.Suggestions[0])

	// 欢迎语检索固定 topK=1 且过滤第 0 页
	require.Len(t, pages.params, 1)
	assert.Equal(t, 1, pages.params[0].TopK)
	assert.Equal(t, IntroFilter(entity.AgeGroup6).String(), pages.params[0].Filter.String())
}

func TestEngineIntroductionUsesCache(t *testing.T) {
	page := &entity.ProgramPage{ID: "p0", Page: 0, Content: "¡Bienvenido!"}
	pages := &fakePages{pages: []*entity.ProgramPage{page}}
	cache := newFakeIntroCache()
	e := newTestEngine(&fakeChatModel{}, pages, cache)

	first, err := e.Introduction(context.Background(), IntroInput{AgeGroup: entity.AgeGroup6})
	require.NoError(t, err)

	second, err := e.Introduction(context.Background(), IntroInput{AgeGroup: entity.AgeGroup6})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.loads, "second call must come from the cache")
	assert.Len(t, pages.params, 1)
	assert.Contains(t, cache.entries, "intro:6 AÑOS:es")
}

func TestEngineIntroductionTranslates(t *testing.T) {
	page := &entity.ProgramPage{
		ID:      "p0",
		Page:    0,
		Content: "¡Bienvenido!\n\n```json\n[\"¿Qué trabajamos hoy?\"]\n```",
	}
	pages := &fakePages{pages: []*entity.ProgramPage{page}}
	cm := &fakeChatModel{replies: []string{"Welcome!", "What do we work on today?"}}
	e := newTestEngine(cm, pages, nil)

	out, err := e.Introduction(context.Background(), IntroInput{AgeGroup: entity.AgeGroup6, Language: "en"})
	require.NoError(t, err)

	assert.Equal(t, "Welcome!", out.Greeting)
	require.Len(t, out.Suggestions, 1)
	assert.Equal(t, "What do we work on today?", out.Suggestions[0])
}

func TestEngineIntroductionInvalidGroup(t *testing.T) {
	e := newTestEngine(&fakeChatModel{}, &fakePages{}, nil)

	_, err := e.Introduction(context.Background(), IntroInput{AgeGroup: "5 AÑOS"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidParam, apperrors.AsAppError(err).Code)
}

func TestEngineIntroductionPageMissing(t *testing.T) {
	e := newTestEngine(&fakeChatModel{}, &fakePages{}, nil)

	_, err := e.Introduction(context.Background(), IntroInput{AgeGroup: entity.AgeGroup6})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.AsAppError(err).Code)
}
