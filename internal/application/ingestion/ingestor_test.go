package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"educa-tennis-api/internal/application/assistant"
	"educa-tennis-api/internal/config"
	"educa-tennis-api/internal/domain/entity"
)

type stubEmbedder struct {
	mu       sync.Mutex
	calls    int
	failures int // 前 N 次调用返回限流错误
}

func (s *stubEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= s.failures {
		return nil, fmt.Errorf("429 too many requests")
	}
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = []float64{1, 2, 3}
	}
	return out, nil
}

type stubPages struct {
	mu       sync.Mutex
	inserted []*assistant.PageDocument
	flushed  bool
}

func (s *stubPages) EnsureProgramPagesCollection(ctx context.Context) error { return nil }

func (s *stubPages) SearchPages(ctx context.Context, params *assistant.PageSearchParams) ([]*entity.ProgramPage, error) {
	return nil, nil
}

func (s *stubPages) InsertPages(ctx context.Context, docs []*assistant.PageDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserted = append(s.inserted, docs...)
	return nil
}

func (s *stubPages) FlushPages(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushed = true
	return nil
}

type stubInvalidator struct {
	invalidated bool
}

func (s *stubInvalidator) InvalidateIntros(ctx context.Context) error {
	s.invalidated = true
	return nil
}

func fastConfig() *config.IngestionConfig {
	return &config.IngestionConfig{
		Concurrency:    2,
		MaxRetries:     3,
		RetryBaseDelay: time.Millisecond,
		RetryMaxDelay:  4 * time.Millisecond,
	}
}

func writePageFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

const validPage = `{
  "content": "Parte inicial: calentamiento",
  "page": 3,
  "age_group": "6 AÑOS",
  "coach": "coach",
  "section_type": "session",
  "trimester": 1,
  "week": 2,
  "session": 1
}`

func TestIngestDir(t *testing.T) {
	dir := t.TempDir()
	writePageFile(t, dir, "page1.json", validPage)
	writePageFile(t, dir, "pages.json", `[`+validPage+`,`+validPage+`]`)

	pages := &stubPages{}
	cache := &stubInvalidator{}
	ing := NewIngestor(&stubEmbedder{}, pages, cache, fastConfig(), 64)

	report, err := ing.IngestDir(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Files)
	assert.Equal(t, 3, report.Pages)
	assert.Zero(t, report.Failed)

	require.Len(t, pages.inserted, 3)
	for _, doc := range pages.inserted {
		assert.NotEmpty(t, doc.ID)
		assert.Equal(t, "6 AÑOS", doc.AgeGroup)
		assert.Equal(t, []float32{1, 2, 3}, doc.Vector)
	}
	assert.True(t, pages.flushed)
	assert.True(t, cache.invalidated)
}

func TestIngestDirInvalidPageDoesNotAbortOthers(t *testing.T) {
	dir := t.TempDir()
	writePageFile(t, dir, "bad.json", `{"content":"x","age_group":"99 AÑOS","coach":"coach","section_type":"session"}`)
	writePageFile(t, dir, "good.json", validPage)

	pages := &stubPages{}
	ing := NewIngestor(&stubEmbedder{}, pages, nil, fastConfig(), 64)

	report, err := ing.IngestDir(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Pages)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "bad.json")
}

func TestIngestDirRetriesRateLimit(t *testing.T) {
	dir := t.TempDir()
	writePageFile(t, dir, "page.json", validPage)

	emb := &stubEmbedder{failures: 2}
	pages := &stubPages{}
	ing := NewIngestor(emb, pages, nil, fastConfig(), 64)

	report, err := ing.IngestDir(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Pages)
	assert.Equal(t, 3, emb.calls)
}

func TestIngestDirRetriesExhausted(t *testing.T) {
	dir := t.TempDir()
	writePageFile(t, dir, "page.json", validPage)

	emb := &stubEmbedder{failures: 10}
	pages := &stubPages{}
	ing := NewIngestor(emb, pages, nil, fastConfig(), 64)

	report, err := ing.IngestDir(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed)
	assert.Zero(t, report.Pages)
	assert.False(t, pages.flushed)
}

func TestIngestDirEmpty(t *testing.T) {
	ing := NewIngestor(&stubEmbedder{}, &stubPages{}, nil, fastConfig(), 64)

	_, err := ing.IngestDir(context.Background(), t.TempDir())
	require.Error(t, err)
}

func TestValidatePage(t *testing.T) {
	ok := PageInput{Content: "x", AgeGroup: "6 AÑOS", Coach: "coach", SectionType: "session"}
	assert.NoError(t, validatePage(ok))

	bad := ok
	bad.Content = " "
	assert.Error(t, validatePage(bad))

	// 合并年龄段是合法的入库标签
	band := ok
	band.AgeGroup = "6-7 AÑOS"
	assert.NoError(t, validatePage(band))

	bad = ok
	bad.AgeGroup = "99 AÑOS"
	assert.Error(t, validatePage(bad))

	bad = ok
	bad.Coach = "referee"
	assert.Error(t, validatePage(bad))

	bad = ok
	bad.SectionType = "quiz"
	assert.Error(t, validatePage(bad))

	bad = ok
	bad.Week = -1
	assert.Error(t, validatePage(bad))
}
