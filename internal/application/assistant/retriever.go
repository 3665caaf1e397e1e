package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cloudwego/eino/components/embedding"

	"educa-tennis-api/internal/domain/entity"
	apperrors "educa-tennis-api/pkg/errors"
)

const (
	defaultTopK = 8
	maxTopK     = 16
)

// Retriever 向量检索器：嵌入查询文本，在过滤器约束下做相似度检索，
// 然后做时间排序与条数截断。
type Retriever struct {
	embedder embedding.Embedder
	pages    PageRepository
	topK     int
}

// NewRetriever 创建检索器
func NewRetriever(embedder embedding.Embedder, pages PageRepository, topK int) *Retriever {
	if topK <= 0 {
		topK = defaultTopK
	}
	if topK > maxTopK {
		topK = maxTopK
	}
	return &Retriever{
		embedder: embedder,
		pages:    pages,
		topK:     topK,
	}
}

// Retrieve 执行一次检索。
// 存储错误作为检索错误返回；空结果不是错误，由上层转为澄清话术。
func (r *Retriever) Retrieve(ctx context.Context, intent *entity.SearchIntent, f Filter) ([]*entity.ProgramPage, error) {
	if r == nil || r.embedder == nil || r.pages == nil {
		return nil, apperrors.Wrap(ErrVectorDisabled, apperrors.CodeRetrievalFailed, "retriever not configured")
	}

	vec, err := r.embedQuery(ctx, intent.Query)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeEmbeddingFailed, "failed to embed query")
	}

	results, err := r.pages.SearchPages(ctx, &PageSearchParams{
		QueryVector: vec,
		Filter:      f,
		TopK:        r.topK,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeRetrievalFailed, "vector search failed")
	}

	return postProcess(intent, results), nil
}

// RetrieveIntro 欢迎语检索：固定查询，topK=1，指定组别的第 0 页。
func (r *Retriever) RetrieveIntro(ctx context.Context, group entity.AgeGroup) (*entity.ProgramPage, error) {
	if r == nil || r.embedder == nil || r.pages == nil {
		return nil, apperrors.Wrap(ErrVectorDisabled, apperrors.CodeRetrievalFailed, "retriever not configured")
	}

	vec, err := r.embedQuery(ctx, introQuery)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeEmbeddingFailed, "failed to embed intro query")
	}

	results, err := r.pages.SearchPages(ctx, &PageSearchParams{
		QueryVector: vec,
		Filter:      IntroFilter(group),
		TopK:        1,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeRetrievalFailed, "intro search failed")
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// postProcess 检索后处理：
// 带时间约束时按周号稳定升序重排（覆盖相似度排序），
// limit > 0 时在排序后截断。
func postProcess(intent *entity.SearchIntent, pages []*entity.ProgramPage) []*entity.ProgramPage {
	out := make([]*entity.ProgramPage, 0, len(pages))
	for _, p := range pages {
		if p == nil {
			continue
		}
		out = append(out, p)
	}

	if intent.HasTemporalConstraint() {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Week < out[j].Week
		})
	}

	if limit := intent.Dates.Limit; limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out
}

func (r *Retriever) embedQuery(ctx context.Context, query string) ([]float32, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("query is empty")
	}
	v64, err := r.embedder.EmbedStrings(ctx, []string{q})
	if err != nil {
		return nil, err
	}
	if len(v64) == 0 {
		return nil, apperrors.New(apperrors.CodeEmbeddingFailed, "empty embedding result")
	}
	vec := v64[0]
	out := make([]float32, 0, len(vec))
	for _, x := range vec {
		out = append(out, float32(x))
	}
	return out, nil
}
