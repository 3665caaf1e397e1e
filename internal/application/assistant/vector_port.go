package assistant

import (
	"context"

	"educa-tennis-api/internal/domain/entity"
)

// PageRepository 定义应用层对"向量存储/检索"的最小依赖（port）。
// 由基础设施层提供具体实现（例如 Milvus）。
type PageRepository interface {
	EnsureProgramPagesCollection(ctx context.Context) error
	SearchPages(ctx context.Context, params *PageSearchParams) ([]*entity.ProgramPage, error)
	InsertPages(ctx context.Context, docs []*PageDocument) error
	FlushPages(ctx context.Context) error
}

// PageSearchParams 向量检索参数
type PageSearchParams struct {
	QueryVector []float32
	Filter      Filter
	TopK        int
}

// PageDocument 待入库的教材页（内容 + 元数据 + 向量）
type PageDocument struct {
	ID          string
	Content     string
	Page        int64
	AgeGroup    string
	Coach       string
	SectionType string
	Trimester   int64
	Week        int64
	Session     int64
	ImageRef    string
	Vector      []float32
}
