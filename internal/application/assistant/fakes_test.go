package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"educa-tennis-api/internal/domain/entity"
)

// fakeEmbedder 返回固定向量，记录收到的文本
type fakeEmbedder struct {
	texts []string
	err   error
}

func (f *fakeEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.texts = append(f.texts, texts...)
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = []float64{0.1, 0.2, 0.3}
	}
	return out, nil
}

// fakePages 返回脚本化的检索结果，记录检索参数
type fakePages struct {
	pages  []*entity.ProgramPage
	err    error
	params []*PageSearchParams

	inserted []*PageDocument
	flushed  bool
}

func (f *fakePages) EnsureProgramPagesCollection(ctx context.Context) error { return nil }

func (f *fakePages) SearchPages(ctx context.Context, params *PageSearchParams) ([]*entity.ProgramPage, error) {
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	return f.pages, nil
}

func (f *fakePages) InsertPages(ctx context.Context, docs []*PageDocument) error {
	f.inserted = append(f.inserted, docs...)
	return nil
}

func (f *fakePages) FlushPages(ctx context.Context) error {
	f.flushed = true
	return nil
}

// fakeChatModel 按调用顺序返回脚本化回复
type fakeChatModel struct {
	replies []string
	errs    []error
	calls   [][]*schema.Message
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	idx := len(f.calls)
	f.calls = append(f.calls, input)
	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	if idx >= len(f.replies) {
		return nil, fmt.Errorf("unexpected call %d", idx)
	}
	return schema.AssistantMessage(f.replies[idx], nil), nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, fmt.Errorf("streaming not supported")
}

type fakeFactory struct {
	chatModel model.BaseChatModel
	err       error
}

func (f *fakeFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.chatModel, nil
}

// fakeIntroCache 内存实现，行为与 Redis Cache 的 read-through 一致
type fakeIntroCache struct {
	entries map[string][]byte
	loads   int
}

func newFakeIntroCache() *fakeIntroCache {
	return &fakeIntroCache{entries: map[string][]byte{}}
}

func (c *fakeIntroCache) GetOrLoadSafe(ctx context.Context, key string, ttl time.Duration, loader func() (interface{}, error)) ([]byte, error) {
	if data, ok := c.entries[key]; ok {
		return data, nil
	}
	c.loads++
	val, err := loader()
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(val)
	if err != nil {
		return nil, err
	}
	c.entries[key] = data
	return data, nil
}

func classifierJSON(intent entity.SearchIntent) string {
	data, _ := json.Marshal(map[string]interface{}{
		"query":         intent.Query,
		"age_group":     string(intent.AgeGroup),
		"coach":         string(intent.Coach),
		"question_type": string(intent.QuestionType),
		"language":      intent.Language,
		"dates": map[string]int64{
			"trimester": intent.Dates.Trimester,
			"week":      intent.Dates.Week,
			"session":   intent.Dates.Session,
			"limit":     intent.Dates.Limit,
		},
	})
	return string(data)
}
