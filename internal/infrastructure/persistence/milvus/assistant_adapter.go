package milvus

import (
	"context"
	"fmt"
	"strings"

	"educa-tennis-api/internal/application/assistant"
	"educa-tennis-api/internal/domain/entity"
)

// PageRepository 实现应用层的向量检索 port
type PageRepository struct {
	repo *Repository
}

// NewPageRepository 创建 port 适配器
func NewPageRepository(repo *Repository) *PageRepository {
	return &PageRepository{repo: repo}
}

var _ assistant.PageRepository = (*PageRepository)(nil)

func (r *PageRepository) EnsureProgramPagesCollection(ctx context.Context) error {
	if r == nil || r.repo == nil {
		return assistant.ErrVectorDisabled
	}
	return r.repo.EnsureProgramPagesCollection(ctx)
}

func (r *PageRepository) SearchPages(ctx context.Context, params *assistant.PageSearchParams) ([]*entity.ProgramPage, error) {
	if r == nil || r.repo == nil {
		return nil, assistant.ErrVectorDisabled
	}
	if params == nil {
		return nil, nil
	}

	rows, err := r.repo.SearchPages(ctx, &SearchParams{
		QueryVector: params.QueryVector,
		Expr:        BuildExpr(params.Filter),
		TopK:        params.TopK,
	})
	if err != nil {
		return nil, err
	}

	pages := make([]*entity.ProgramPage, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		pages = append(pages, &entity.ProgramPage{
			ID:          row.ID,
			Content:     row.Content,
			Page:        row.Page,
			AgeGroup:    entity.AgeGroup(row.AgeGroup),
			Coach:       entity.CoachRole(row.Coach),
			SectionType: entity.SectionType(row.SectionType),
			Trimester:   row.Trimester,
			Week:        row.Week,
			Session:     row.Session,
			ImageRef:    row.ImageRef,
		})
	}
	return pages, nil
}

func (r *PageRepository) InsertPages(ctx context.Context, docs []*assistant.PageDocument) error {
	if r == nil || r.repo == nil {
		return assistant.ErrVectorDisabled
	}
	if len(docs) == 0 {
		return nil
	}

	rows := make([]*ProgramPageRow, 0, len(docs))
	for _, d := range docs {
		if d == nil {
			continue
		}
		rows = append(rows, &ProgramPageRow{
			ID:          d.ID,
			Vector:      d.Vector,
			Page:        d.Page,
			AgeGroup:    d.AgeGroup,
			Coach:       d.Coach,
			SectionType: d.SectionType,
			Trimester:   d.Trimester,
			Week:        d.Week,
			Session:     d.Session,
			ImageRef:    d.ImageRef,
			Content:     d.Content,
		})
	}
	return r.repo.InsertPages(ctx, rows)
}

func (r *PageRepository) FlushPages(ctx context.Context) error {
	if r == nil || r.repo == nil {
		return assistant.ErrVectorDisabled
	}
	return r.repo.Flush(ctx)
}

// BuildExpr 把应用层过滤器翻译为 Milvus 过滤表达式。
// 谓词之间用 && 合取；多值字符串谓词展开为括号内的 == 并用 || 连接，
// 避免依赖 IN 语法差异。
func BuildExpr(f assistant.Filter) string {
	parts := make([]string, 0, len(f))
	for _, p := range f {
		if p.Int != nil {
			parts = append(parts, fmt.Sprintf(`%s == %d`, p.Field, *p.Int))
			continue
		}
		if len(p.Strings) == 1 {
			parts = append(parts, fmt.Sprintf(`%s == "%s"`, p.Field, escapeExprString(p.Strings[0])))
			continue
		}
		eqs := make([]string, 0, len(p.Strings))
		for _, v := range p.Strings {
			eqs = append(eqs, fmt.Sprintf(`%s == "%s"`, p.Field, escapeExprString(v)))
		}
		if len(eqs) > 0 {
			parts = append(parts, "("+strings.Join(eqs, " || ")+")")
		}
	}
	return strings.Join(parts, " && ")
}

func escapeExprString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
