// Package milvus 提供 Milvus 向量数据库访问层实现
package milvus

import (
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
)

const (
	// CollectionProgramPages 训练教材页集合
	CollectionProgramPages = "program_pages"

	// VectorDimension 向量维度 (text-embedding-3-large)
	VectorDimension = 3072
)

// ProgramPagesSchema 教材页 Collection Schema
func ProgramPagesSchema() *entity.Schema {
	return &entity.Schema{
		CollectionName: CollectionProgramPages,
		Description:    "Tennis training program pages for filtered semantic search",
		Fields: []*entity.Field{
			{
				Name:       "id",
				DataType:   entity.FieldTypeVarChar,
				PrimaryKey: true,
				AutoID:     false,
				TypeParams: map[string]string{
					"max_length": "64",
				},
			},
			{
				Name:     "vector",
				DataType: entity.FieldTypeFloatVector,
				TypeParams: map[string]string{
					"dim": "3072",
				},
			},
			{
				Name:     "page",
				DataType: entity.FieldTypeInt64,
			},
			{
				Name:     "age_group",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "64",
				},
			},
			{
				Name:     "coach",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "16",
				},
			},
			{
				Name:     "section_type",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "16",
				},
			},
			{
				Name:     "trimester",
				DataType: entity.FieldTypeInt64,
			},
			{
				Name:     "week",
				DataType: entity.FieldTypeInt64,
			},
			{
				Name:     "session",
				DataType: entity.FieldTypeInt64,
			},
			{
				Name:     "image_ref",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "256",
				},
			},
			{
				Name:     "content",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "65535",
				},
			},
		},
	}
}

// ProgramPageRow 教材页行数据结构
type ProgramPageRow struct {
	ID          string    `json:"id"`
	Vector      []float32 `json:"vector"`
	Page        int64     `json:"page"`
	AgeGroup    string    `json:"age_group"`
	Coach       string    `json:"coach"`
	SectionType string    `json:"section_type"`
	Trimester   int64     `json:"trimester"`
	Week        int64     `json:"week"`
	Session     int64     `json:"session"`
	ImageRef    string    `json:"image_ref"`
	Content     string    `json:"content"`
}
