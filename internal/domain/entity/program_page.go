package entity

// ProgramPage 训练教材的一页（向量库中的一个分片）
// 检索路径上只读，仅入库命令会写入。
type ProgramPage struct {
	ID          string      `json:"id"`
	Content     string      `json:"content"`
	Page        int64       `json:"page"`
	AgeGroup    AgeGroup    `json:"age_group"`
	Coach       CoachRole   `json:"coach"`
	SectionType SectionType `json:"section_type"`
	Trimester   int64       `json:"trimester,omitempty"`
	Week        int64       `json:"week,omitempty"`
	Session     int64       `json:"session,omitempty"`
	ImageRef    string      `json:"image_ref,omitempty"`
	Score       float32     `json:"score,omitempty"`
}
