package entity

// SearchDates 查询中的时间约束，0 表示未指定
type SearchDates struct {
	Trimester int64 `json:"trimester"`
	Week      int64 `json:"week"`
	Session   int64 `json:"session"`
	Limit     int64 `json:"limit"`
}

// SearchIntent 分类器产出的结构化检索意图
type SearchIntent struct {
	Query        string      `json:"query"`
	AgeGroup     AgeGroup    `json:"age_group"`
	Coach        CoachRole   `json:"coach"`
	QuestionType SectionType `json:"question_type"`
	Language     string      `json:"language"`
	Dates        SearchDates `json:"dates"`
}

// HasTemporalConstraint 判断是否带有按周或按学期的时间约束
func (i *SearchIntent) HasTemporalConstraint() bool {
	return i.Dates.Trimester > 0 || i.Dates.Week > 0
}
