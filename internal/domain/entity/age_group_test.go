package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeGroupValid(t *testing.T) {
	for _, g := range ClassifierAgeGroups() {
		assert.True(t, g.Valid(), "expected %q to be valid", g)
	}

	invalid := []AgeGroup{
		"",
		"5 AÑOS",
		"14 AÑOS",
		"6-7 AÑOS", // 合并年龄段不是分类器输出
		"adultos iniciacion",
		"ATP_WTA",
	}
	for _, g := range invalid {
		assert.False(t, g.Valid(), "expected %q to be invalid", g)
	}
}

func TestAgeGroupExpand(t *testing.T) {
	tests := []struct {
		group AgeGroup
		want  []AgeGroup
	}{
		{AgeGroup6, []AgeGroup{AgeGroup6, AgeBand6to7}},
		{AgeGroup7, []AgeGroup{AgeGroup7, AgeBand6to7}},
		{AgeGroup8, []AgeGroup{AgeGroup8, AgeBand8to9}},
		{AgeGroup9, []AgeGroup{AgeGroup9, AgeBand8to9}},
		{AgeGroup10, []AgeGroup{AgeGroup10, AgeBand10to11}},
		{AgeGroup11, []AgeGroup{AgeGroup11, AgeBand10to11}},
		{AgeGroup12, []AgeGroup{AgeGroup12, AgeBand12to13}},
		{AgeGroup13, []AgeGroup{AgeGroup13, AgeBand12to13}},
		{AgeGroup16, []AgeGroup{AgeGroup16}},
		{AgeGroupHighPerformanceJunior, []AgeGroup{AgeGroupHighPerformanceJunior}},
		{AgeGroupAdultBeginner, []AgeGroup{AgeGroupAdultBeginner}},
		{AgeGroupProClay, []AgeGroup{AgeGroupProClay}},
	}

	for _, tt := range tests {
		got := tt.group.Expand()
		require.Equal(t, tt.want, got, "Expand(%q)", tt.group)
	}
}

func TestAgeGroupValidForStorage(t *testing.T) {
	// 分类器组别和合并年龄段都可入库
	assert.True(t, AgeGroup6.ValidForStorage())
	assert.True(t, AgeBand6to7.ValidForStorage())
	assert.True(t, AgeBand12to13.ValidForStorage())

	assert.False(t, AgeGroup("99 AÑOS").ValidForStorage())
	assert.False(t, AgeGroup("").ValidForStorage())
}

func TestAgeGroupForcesCoachPerspective(t *testing.T) {
	assert.True(t, AgeGroup16.ForcesCoachPerspective())
	assert.True(t, AgeGroupHighPerformanceJunior.ForcesCoachPerspective())

	assert.False(t, AgeGroup6.ForcesCoachPerspective())
	assert.False(t, AgeGroup13.ForcesCoachPerspective())
	assert.False(t, AgeGroupAdultCompetition.ForcesCoachPerspective())
	assert.False(t, AgeGroupProIndoor.ForcesCoachPerspective())
}

func TestSearchIntentHasTemporalConstraint(t *testing.T) {
	assert.False(t, (&SearchIntent{}).HasTemporalConstraint())
	assert.True(t, (&SearchIntent{Dates: SearchDates{Trimester: 1}}).HasTemporalConstraint())
	assert.True(t, (&SearchIntent{Dates: SearchDates{Week: 3}}).HasTemporalConstraint())
	// session 和 limit 不构成时间约束
	assert.False(t, (&SearchIntent{Dates: SearchDates{Session: 2, Limit: 5}}).HasTemporalConstraint())
}
