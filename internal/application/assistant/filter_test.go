package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"educa-tennis-api/internal/domain/entity"
)

func sessionIntent() entity.SearchIntent {
	return entity.SearchIntent{
		Query:        "sesión de la semana 1",
		AgeGroup:     entity.AgeGroup10,
		Coach:        entity.CoachRolePlayer,
		QuestionType: entity.SectionSession,
		Language:     "es",
		Dates:        entity.SearchDates{Trimester: 2, Week: 1, Session: 3, Limit: 1},
	}
}

func TestBuildFilterSessionQuestion(t *testing.T) {
	f := BuildFilter(sessionIntent())

	require.Len(t, f, 5)

	assert.Equal(t, FieldAgeGroup, f[0].Field)
	assert.Equal(t, []string{"10 AÑOS", "10-11 AÑOS"}, f[0].Strings)

	assert.Equal(t, FieldCoach, f[1].Field)
	assert.Equal(t, []string{"player"}, f[1].Strings)

	assert.Equal(t, FieldSectionType, f[2].Field)
	assert.Equal(t, []string{"session"}, f[2].Strings)

	assert.Equal(t, FieldTrimester, f[3].Field)
	require.NotNil(t, f[3].Int)
	assert.Equal(t, int64(2), *f[3].Int)

	assert.Equal(t, FieldWeek, f[4].Field)
	require.NotNil(t, f[4].Int)
	assert.Equal(t, int64(1), *f[4].Int)
}

func TestBuildFilterSessionAndLimitNeverPushedDown(t *testing.T) {
	f := BuildFilter(sessionIntent())
	for _, p := range f {
		assert.NotEqual(t, "session", p.Field)
		assert.NotEqual(t, "limit", p.Field)
	}
}

func TestBuildFilterCoachOverride(t *testing.T) {
	intent := sessionIntent()
	intent.AgeGroup = entity.AgeGroup16
	intent.Coach = entity.CoachRoleParent

	f := BuildFilter(intent)

	// 16 AÑOS 不做组别扩展，但强制教练视角
	assert.Equal(t, []string{"16 AÑOS"}, f[0].Strings)
	assert.Equal(t, []string{"coach"}, f[1].Strings)
}

func TestBuildFilterCoachOverrideHighPerformance(t *testing.T) {
	intent := sessionIntent()
	intent.AgeGroup = entity.AgeGroupHighPerformanceJunior
	intent.Coach = entity.CoachRolePlayer

	f := BuildFilter(intent)
	assert.Equal(t, []string{"coach"}, f[1].Strings)
}

func TestBuildFilterConceptualClearsTrimester(t *testing.T) {
	intent := sessionIntent()
	intent.QuestionType = entity.SectionConceptual
	intent.Dates.Week = 0

	f := BuildFilter(intent)

	// 概念性问题：无 trimester 谓词，section_type = conceptual
	require.Len(t, f, 3)
	assert.Equal(t, FieldSectionType, f[2].Field)
	assert.Equal(t, []string{"conceptual"}, f[2].Strings)
}

func TestBuildFilterConceptualKeepsWeek(t *testing.T) {
	intent := sessionIntent()
	intent.QuestionType = entity.SectionConceptual

	f := BuildFilter(intent)

	// trimester 被清除，week 仍下推
	require.Len(t, f, 4)
	assert.Equal(t, FieldWeek, f[3].Field)
	require.NotNil(t, f[3].Int)
	assert.Equal(t, int64(1), *f[3].Int)
}

func TestBuildFilterDoesNotMutateCaller(t *testing.T) {
	intent := sessionIntent()
	intent.AgeGroup = entity.AgeGroup16
	intent.Coach = entity.CoachRolePlayer
	intent.QuestionType = entity.SectionConceptual

	_ = BuildFilter(intent)

	// 覆盖和清除只作用于工作副本
	assert.Equal(t, entity.CoachRolePlayer, intent.Coach)
	assert.Equal(t, int64(2), intent.Dates.Trimester)
}

func TestBuildFilterDeterministic(t *testing.T) {
	intent := sessionIntent()

	first := BuildFilter(intent).String()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildFilter(intent).String())
	}
}

func TestIntroFilter(t *testing.T) {
	f := IntroFilter(entity.AgeGroup8)

	require.Len(t, f, 2)
	assert.Equal(t, FieldAgeGroup, f[0].Field)
	assert.Equal(t, []string{"8 AÑOS"}, f[0].Strings)
	assert.Equal(t, FieldPage, f[1].Field)
	require.NotNil(t, f[1].Int)
	assert.Equal(t, int64(0), *f[1].Int)
}

func TestFilterString(t *testing.T) {
	f := BuildFilter(sessionIntent())
	assert.Equal(t,
		`age_group IN ["10 AÑOS", "10-11 AÑOS"] AND coach = "player" AND section_type = "session" AND trimester = 2 AND week = 1`,
		f.String(),
	)
}
