package entity

// SectionType 教材分片类型枚举
type SectionType string

const (
	// SectionSession 具体训练课内容
	SectionSession SectionType = "session"
	// SectionConceptual 方法论/概念性内容
	SectionConceptual SectionType = "conceptual"
)

// Valid 判断是否为合法分片类型
func (t SectionType) Valid() bool {
	return t == SectionSession || t == SectionConceptual
}
