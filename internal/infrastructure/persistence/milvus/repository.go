// Package milvus 提供 Milvus 向量数据库访问层实现
package milvus

import (
	"context"
	"fmt"
	"time"

	"github.com/milvus-io/milvus-sdk-go/v2/entity"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"educa-tennis-api/pkg/metrics"
)

// Repository 向量检索仓储
type Repository struct {
	client *Client
}

// NewRepository 创建向量检索仓储
func NewRepository(client *Client) *Repository {
	return &Repository{client: client}
}

// SearchParams 检索参数，Expr 为已构建好的过滤表达式
type SearchParams struct {
	QueryVector []float32
	Expr        string
	TopK        int
}

// pageOutputFields 检索回读的字段
var pageOutputFields = []string{
	"id", "content", "page", "age_group", "coach", "section_type",
	"trimester", "week", "session", "image_ref",
}

// CreateCollection 创建集合
func (r *Repository) CreateCollection(ctx context.Context, schema *entity.Schema) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.CreateCollection",
		trace.WithAttributes(attribute.String("collection", schema.CollectionName)))
	defer span.End()

	collName := r.client.CollectionName(schema.CollectionName)
	schema.CollectionName = collName

	err := r.client.milvus.CreateCollection(ctx, schema, entity.DefaultShardNumber)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

// CreateIndex 创建 HNSW 索引
func (r *Repository) CreateIndex(ctx context.Context, collection string) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.CreateIndex",
		trace.WithAttributes(attribute.String("collection", collection)))
	defer span.End()

	collName := r.client.CollectionName(collection)

	idx, err := entity.NewIndexHNSW(
		entity.COSINE,
		r.client.config.HNSWM,
		r.client.config.HNSWEfConstruction,
	)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create index: %w", err)
	}

	err = r.client.milvus.CreateIndex(ctx, collName, "vector", idx, false)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create index: %w", err)
	}

	return nil
}

// SearchPages 在过滤表达式约束下检索教材页
func (r *Repository) SearchPages(ctx context.Context, params *SearchParams) ([]*ProgramPageRow, error) {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return nil, fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.SearchPages",
		trace.WithAttributes(
			attribute.String("expr", params.Expr),
			attribute.Int("top_k", params.TopK),
		))
	defer span.End()

	collName := r.client.CollectionName(CollectionProgramPages)

	sp, err := entity.NewIndexHNSWSearchParam(128)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create search param: %w", err)
	}

	start := time.Now()
	results, err := r.client.milvus.Search(ctx,
		collName,
		nil,
		params.Expr,
		pageOutputFields,
		[]entity.Vector{entity.FloatVector(params.QueryVector)},
		"vector",
		entity.COSINE,
		params.TopK,
		sp,
	)
	metrics.MilvusSearchDuration.WithLabelValues(CollectionProgramPages).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MilvusSearchTotal.WithLabelValues(CollectionProgramPages, "error").Inc()
		span.RecordError(err)
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	metrics.MilvusSearchTotal.WithLabelValues(CollectionProgramPages, "success").Inc()

	var rows []*ProgramPageRow
	for _, result := range results {
		for i := 0; i < result.ResultCount; i++ {
			row := &ProgramPageRow{}

			if col, ok := result.Fields.GetColumn("id").(*entity.ColumnVarChar); ok {
				row.ID = col.Data()[i]
			}
			if col, ok := result.Fields.GetColumn("content").(*entity.ColumnVarChar); ok {
				row.Content = col.Data()[i]
			}
			if col, ok := result.Fields.GetColumn("age_group").(*entity.ColumnVarChar); ok {
				row.AgeGroup = col.Data()[i]
			}
			if col, ok := result.Fields.GetColumn("coach").(*entity.ColumnVarChar); ok {
				row.Coach = col.Data()[i]
			}
			if col, ok := result.Fields.GetColumn("section_type").(*entity.ColumnVarChar); ok {
				row.SectionType = col.Data()[i]
			}
			if col, ok := result.Fields.GetColumn("image_ref").(*entity.ColumnVarChar); ok {
				row.ImageRef = col.Data()[i]
			}
			if col, ok := result.Fields.GetColumn("page").(*entity.ColumnInt64); ok {
				row.Page = col.Data()[i]
			}
			if col, ok := result.Fields.GetColumn("trimester").(*entity.ColumnInt64); ok {
				row.Trimester = col.Data()[i]
			}
			if col, ok := result.Fields.GetColumn("week").(*entity.ColumnInt64); ok {
				row.Week = col.Data()[i]
			}
			if col, ok := result.Fields.GetColumn("session").(*entity.ColumnInt64); ok {
				row.Session = col.Data()[i]
			}

			rows = append(rows, row)
		}
	}

	span.SetAttributes(attribute.Int("result_count", len(rows)))
	return rows, nil
}

// InsertPages 批量写入教材页
func (r *Repository) InsertPages(ctx context.Context, rows []*ProgramPageRow) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.InsertPages",
		trace.WithAttributes(attribute.Int("count", len(rows))))
	defer span.End()

	if len(rows) == 0 {
		return nil
	}

	collName := r.client.CollectionName(CollectionProgramPages)

	ids := make([]string, len(rows))
	vectors := make([][]float32, len(rows))
	pages := make([]int64, len(rows))
	ageGroups := make([]string, len(rows))
	coaches := make([]string, len(rows))
	sectionTypes := make([]string, len(rows))
	trimesters := make([]int64, len(rows))
	weeks := make([]int64, len(rows))
	sessions := make([]int64, len(rows))
	imageRefs := make([]string, len(rows))
	contents := make([]string, len(rows))

	for i, row := range rows {
		ids[i] = row.ID
		vectors[i] = row.Vector
		pages[i] = row.Page
		ageGroups[i] = row.AgeGroup
		coaches[i] = row.Coach
		sectionTypes[i] = row.SectionType
		trimesters[i] = row.Trimester
		weeks[i] = row.Week
		sessions[i] = row.Session
		imageRefs[i] = row.ImageRef
		contents[i] = row.Content
	}

	_, err := r.client.milvus.Insert(ctx, collName, "",
		entity.NewColumnVarChar("id", ids),
		entity.NewColumnFloatVector("vector", VectorDimension, vectors),
		entity.NewColumnInt64("page", pages),
		entity.NewColumnVarChar("age_group", ageGroups),
		entity.NewColumnVarChar("coach", coaches),
		entity.NewColumnVarChar("section_type", sectionTypes),
		entity.NewColumnInt64("trimester", trimesters),
		entity.NewColumnInt64("week", weeks),
		entity.NewColumnInt64("session", sessions),
		entity.NewColumnVarChar("image_ref", imageRefs),
		entity.NewColumnVarChar("content", contents),
	)
	if err != nil {
		metrics.MilvusInsertTotal.WithLabelValues(CollectionProgramPages, "error").Inc()
		span.RecordError(err)
		return fmt.Errorf("failed to insert pages: %w", err)
	}

	metrics.MilvusInsertTotal.WithLabelValues(CollectionProgramPages, "success").Inc()
	return nil
}

// Flush 刷新集合，保证入库数据可见（仅批量入库命令使用）
func (r *Repository) Flush(ctx context.Context) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	collName := r.client.CollectionName(CollectionProgramPages)
	return r.client.milvus.Flush(ctx, collName, false)
}

// EnsureProgramPagesCollection 确保 program_pages 集合与索引可用（不存在则创建）。
// 约束：不会做 drop/rebuild 等破坏性操作。
func (r *Repository) EnsureProgramPagesCollection(ctx context.Context) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}

	exists, err := r.client.HasCollection(ctx, CollectionProgramPages)
	if err != nil {
		return err
	}
	if !exists {
		if err := r.CreateCollection(ctx, ProgramPagesSchema()); err != nil {
			return err
		}
		// 新建集合时创建索引；若失败，允许后续由运维介入。
		_ = r.CreateIndex(ctx, CollectionProgramPages)
	}

	// 尝试确保集合已加载（若已加载，Milvus 会返回成功）
	return r.client.LoadCollection(ctx, CollectionProgramPages)
}
