package assistant

import (
	"fmt"
	"strings"

	"educa-tennis-api/internal/domain/entity"
)

// 元数据字段名，与 Milvus schema 保持一致
const (
	FieldAgeGroup    = "age_group"
	FieldCoach       = "coach"
	FieldSectionType = "section_type"
	FieldTrimester   = "trimester"
	FieldWeek        = "week"
	FieldPage        = "page"
)

// Predicate 单字段谓词：字符串等值/IN 集合，或整数等值。
// 不支持 OR、取反和嵌套。
type Predicate struct {
	Field   string
	Strings []string
	Int     *int64
}

// Filter 谓词的有序合取
type Filter []Predicate

// filterRule 过滤规则：读取意图的工作副本，向过滤器追加谓词。
// 规则可以修改工作副本，后续规则会看到修改后的值。
type filterRule func(intent *entity.SearchIntent, f Filter) Filter

// filterRules 规则按固定顺序应用：
// 组别扩展 -> 教练视角覆盖 -> 分片类型 -> 时间约束
var filterRules = []filterRule{
	expandAgeGroup,
	overrideCoachPerspective,
	gateSectionType,
	gateTemporal,
}

// BuildFilter 由检索意图构建存储过滤器。
// 意图按值传入作为工作副本，调用方持有的意图不被修改；
// 相同意图永远产出相同的谓词序列。
func BuildFilter(intent entity.SearchIntent) Filter {
	f := make(Filter, 0, 5)
	for _, rule := range filterRules {
		f = rule(&intent, f)
	}
	return f
}

// IntroFilter 欢迎语检索的固定过滤器：指定组别的第 0 页
func IntroFilter(group entity.AgeGroup) Filter {
	page := int64(0)
	return Filter{
		{Field: FieldAgeGroup, Strings: []string{string(group)}},
		{Field: FieldPage, Int: &page},
	}
}

// expandAgeGroup 组别扩展：单年龄组别附加其合并年龄段
func expandAgeGroup(intent *entity.SearchIntent, f Filter) Filter {
	groups := intent.AgeGroup.Expand()
	vals := make([]string, 0, len(groups))
	for _, g := range groups {
		vals = append(vals, string(g))
	}
	return append(f, Predicate{Field: FieldAgeGroup, Strings: vals})
}

// overrideCoachPerspective 教练视角覆盖：
// 16 AÑOS 与 ALTO RENDIMIENTO JUVENIL 的教材只有教练视角，
// 无论提问者是谁都强制 coach 视角检索。
func overrideCoachPerspective(intent *entity.SearchIntent, f Filter) Filter {
	if intent.AgeGroup.ForcesCoachPerspective() {
		intent.Coach = entity.CoachRoleCoach
	}
	return append(f, Predicate{Field: FieldCoach, Strings: []string{string(intent.Coach)}})
}

// gateSectionType 分片类型约束，始终存在
func gateSectionType(intent *entity.SearchIntent, f Filter) Filter {
	return append(f, Predicate{Field: FieldSectionType, Strings: []string{string(intent.QuestionType)}})
}

// gateTemporal 时间约束：
// 概念性问题不受学期约束（先清除 trimester），
// 正值的 trimester/week 才会成为等值谓词。
// session 与 limit 永远不下推到存储层。
func gateTemporal(intent *entity.SearchIntent, f Filter) Filter {
	if intent.QuestionType == entity.SectionConceptual {
		intent.Dates.Trimester = 0
	}
	if intent.Dates.Trimester > 0 {
		v := intent.Dates.Trimester
		f = append(f, Predicate{Field: FieldTrimester, Int: &v})
	}
	if intent.Dates.Week > 0 {
		v := intent.Dates.Week
		f = append(f, Predicate{Field: FieldWeek, Int: &v})
	}
	return f
}

// String 渲染为规范文本形式，便于日志和断言
func (f Filter) String() string {
	parts := make([]string, 0, len(f))
	for _, p := range f {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, " AND ")
}

// String 渲染单个谓词
func (p Predicate) String() string {
	if p.Int != nil {
		return fmt.Sprintf("%s = %d", p.Field, *p.Int)
	}
	if len(p.Strings) == 1 {
		return fmt.Sprintf("%s = %q", p.Field, p.Strings[0])
	}
	quoted := make([]string, 0, len(p.Strings))
	for _, s := range p.Strings {
		quoted = append(quoted, fmt.Sprintf("%q", s))
	}
	return fmt.Sprintf("%s IN [%s]", p.Field, strings.Join(quoted, ", "))
}
