package assistant

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"educa-tennis-api/internal/domain/entity"
	apperrors "educa-tennis-api/pkg/errors"
)

func playerProfile() entity.UserProfile {
	return entity.UserProfile{
		Role:     entity.CoachRolePlayer,
		AgeGroup: entity.AgeGroup10,
		Language: "es",
	}
}

func TestClassifyParsesIntent(t *testing.T) {
	cm := &fakeChatModel{replies: []string{
		`{"query":"sesión 2 semana 1","age_group":"10 AÑOS","coach":"player","question_type":"session","language":"es","dates":{"trimester":1,"week":1,"session":2,"limit":0}}`,
	}}
	c := NewClassifier(&fakeFactory{chatModel: cm}, "openai", "es")

	intent, err := c.Classify(context.Background(), "Dame la sesión 2 de la semana 1", playerProfile())
	require.NoError(t, err)

	assert.Equal(t, "sesión 2 semana 1", intent.Query)
	assert.Equal(t, entity.AgeGroup10, intent.AgeGroup)
	assert.Equal(t, entity.CoachRolePlayer, intent.Coach)
	assert.Equal(t, entity.SectionSession, intent.QuestionType)
	assert.Equal(t, "es", intent.Language)
	assert.Equal(t, int64(1), intent.Dates.Trimester)
	assert.Equal(t, int64(1), intent.Dates.Week)
	assert.Equal(t, int64(2), intent.Dates.Session)
}

func TestClassifyAppendsProfileSuffix(t *testing.T) {
	cm := &fakeChatModel{replies: []string{
		`{"query":"q","age_group":"10 AÑOS","coach":"player","question_type":"conceptual","language":"es"}`,
	}}
	c := NewClassifier(&fakeFactory{chatModel: cm}, "openai", "es")

	_, err := c.Classify(context.Background(), "¿Qué es el resto?", playerProfile())
	require.NoError(t, err)

	require.Len(t, cm.calls, 1)
	require.Len(t, cm.calls[0], 2)
	userMsg := cm.calls[0][1].Content
	assert.Equal(t, "¿Qué es el resto?. GRUPO: 10 AÑOS, COACH: player, IDIOMA: es", userMsg)
}

func TestClassifyToleratesSurroundingText(t *testing.T) {
	cm := &fakeChatModel{replies: []string{
		"Claro, aquí está el JSON:\n```json\n" +
			`{"query":"q","age_group":"6 AÑOS","coach":"coach","question_type":"conceptual","language":"es"}` +
			"\n```\nEspero que ayude.",
	}}
	c := NewClassifier(&fakeFactory{chatModel: cm}, "openai", "es")

	intent, err := c.Classify(context.Background(), "pregunta", playerProfile())
	require.NoError(t, err)
	assert.Equal(t, entity.AgeGroup6, intent.AgeGroup)
}

func TestClassifyRejectsInvalidAgeGroup(t *testing.T) {
	cm := &fakeChatModel{replies: []string{
		`{"query":"q","age_group":"14 AÑOS","coach":"player","question_type":"session","language":"es"}`,
	}}
	c := NewClassifier(&fakeFactory{chatModel: cm}, "openai", "es")

	_, err := c.Classify(context.Background(), "pregunta", playerProfile())
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeClassificationFailed, appErr.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPStatus)
	assert.Equal(t, "14 AÑOS", appErr.Detail)
}

func TestClassifyRejectsInvalidCoach(t *testing.T) {
	cm := &fakeChatModel{replies: []string{
		`{"query":"q","age_group":"10 AÑOS","coach":"referee","question_type":"session","language":"es"}`,
	}}
	c := NewClassifier(&fakeFactory{chatModel: cm}, "openai", "es")

	_, err := c.Classify(context.Background(), "pregunta", playerProfile())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeClassificationFailed, apperrors.AsAppError(err).Code)
}

func TestClassifyRejectsInvalidQuestionType(t *testing.T) {
	cm := &fakeChatModel{replies: []string{
		`{"query":"q","age_group":"10 AÑOS","coach":"player","question_type":"quiz","language":"es"}`,
	}}
	c := NewClassifier(&fakeFactory{chatModel: cm}, "openai", "es")

	_, err := c.Classify(context.Background(), "pregunta", playerProfile())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeClassificationFailed, apperrors.AsAppError(err).Code)
}

func TestClassifyDefaults(t *testing.T) {
	cm := &fakeChatModel{replies: []string{
		`{"query":"","age_group":"10 AÑOS","coach":"player","question_type":"","language":"","dates":{"trimester":-3,"week":-1}}`,
	}}
	c := NewClassifier(&fakeFactory{chatModel: cm}, "openai", "es")

	intent, err := c.Classify(context.Background(), "  pregunta original  ", playerProfile())
	require.NoError(t, err)

	// query 回退为原始问题，question_type 默认 conceptual
	assert.Equal(t, "pregunta original", intent.Query)
	assert.Equal(t, entity.SectionConceptual, intent.QuestionType)
	assert.Equal(t, "es", intent.Language)
	// 负值坐标归零
	assert.Equal(t, int64(0), intent.Dates.Trimester)
	assert.Equal(t, int64(0), intent.Dates.Week)
}

func TestClassifyInvalidJSON(t *testing.T) {
	cm := &fakeChatModel{replies: []string{"no soy JSON"}}
	c := NewClassifier(&fakeFactory{chatModel: cm}, "openai", "es")

	_, err := c.Classify(context.Background(), "pregunta", playerProfile())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeClassificationFailed, apperrors.AsAppError(err).Code)
}

func TestClassifySingleModelCall(t *testing.T) {
	cm := &fakeChatModel{replies: []string{
		`{"query":"q","age_group":"10 AÑOS","coach":"player","question_type":"conceptual","language":"es"}`,
	}}
	c := NewClassifier(&fakeFactory{chatModel: cm}, "openai", "es")

	_, err := c.Classify(context.Background(), "pregunta", playerProfile())
	require.NoError(t, err)
	assert.Len(t, cm.calls, 1)
	assert.True(t, strings.Contains(cm.calls[0][0].Content, "JSON"))
}
