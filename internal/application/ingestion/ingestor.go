// Package ingestion 提供教材页批量入库流水线
package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"educa-tennis-api/internal/application/assistant"
	"educa-tennis-api/internal/config"
	"educa-tennis-api/internal/domain/entity"
	apperrors "educa-tennis-api/pkg/errors"
	"educa-tennis-api/pkg/logger"
)

// PageInput 单个教材页的入库格式
type PageInput struct {
	Content     string `json:"content"`
	Page        int64  `json:"page"`
	AgeGroup    string `json:"age_group"`
	Coach       string `json:"coach"`
	SectionType string `json:"section_type"`
	Trimester   int64  `json:"trimester"`
	Week        int64  `json:"week"`
	Session     int64  `json:"session"`
	ImageRef    string `json:"image_ref"`
}

// IntroInvalidator 入库完成后失效欢迎语缓存
type IntroInvalidator interface {
	InvalidateIntros(ctx context.Context) error
}

// Report 入库结果汇总
type Report struct {
	Files    int
	Pages    int
	Failed   int
	Errors   []string
	Duration time.Duration
}

// Ingestor 批量入库流水线：读取页面文件、嵌入、写入向量库
type Ingestor struct {
	embedder embedding.Embedder
	pages    assistant.PageRepository
	cache    IntroInvalidator

	concurrency int
	batchSize   int
	maxRetries  int
	baseDelay   time.Duration
	maxDelay    time.Duration
}

// NewIngestor 创建入库流水线
func NewIngestor(embedder embedding.Embedder, pages assistant.PageRepository, cache IntroInvalidator, cfg *config.IngestionConfig, batchSize int) *Ingestor {
	concurrency := 4
	maxRetries := 5
	baseDelay := 200 * time.Millisecond
	maxDelay := 1600 * time.Millisecond
	if cfg != nil {
		if cfg.Concurrency > 0 {
			concurrency = cfg.Concurrency
		}
		if cfg.MaxRetries > 0 {
			maxRetries = cfg.MaxRetries
		}
		if cfg.RetryBaseDelay > 0 {
			baseDelay = cfg.RetryBaseDelay
		}
		if cfg.RetryMaxDelay > 0 {
			maxDelay = cfg.RetryMaxDelay
		}
	}
	if batchSize <= 0 {
		batchSize = 64
	}
	return &Ingestor{
		embedder:    embedder,
		pages:       pages,
		cache:       cache,
		concurrency: concurrency,
		batchSize:   batchSize,
		maxRetries:  maxRetries,
		baseDelay:   baseDelay,
		maxDelay:    maxDelay,
	}
}

// IngestDir 入库目录下的全部 .json 页面文件。
// 每个文件包含一个页面对象或页面数组；文件之间并发处理，
// 单个文件失败不会中断其余文件。
func (i *Ingestor) IngestDir(ctx context.Context, dir string) (*Report, error) {
	if i == nil || i.embedder == nil || i.pages == nil {
		return nil, apperrors.New(apperrors.CodeIngestionFailed, "ingestor not configured")
	}

	files, err := listPageFiles(dir)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeIngestionFailed, "list page files")
	}
	if len(files) == 0 {
		return nil, apperrors.New(apperrors.CodeIngestionFailed, "no page files found").WithDetail(dir)
	}

	start := time.Now()
	report := &Report{Files: len(files)}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.concurrency)

	for _, file := range files {
		file := file
		g.Go(func() error {
			n, err := i.ingestFile(gctx, file)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed++
				report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", filepath.Base(file), err))
				logger.Warn(gctx, "page file failed", "file", file, "error", err)
				return nil
			}
			report.Pages += n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, apperrors.Wrap(err, apperrors.CodeIngestionFailed, "ingest pages")
	}

	if report.Pages > 0 {
		if err := i.pages.FlushPages(ctx); err != nil {
			return report, apperrors.Wrap(err, apperrors.CodeIngestionFailed, "flush collection")
		}
		if i.cache != nil {
			if err := i.cache.InvalidateIntros(ctx); err != nil {
				logger.Warn(ctx, "failed to invalidate intro cache", "error", err)
			}
		}
	}

	report.Duration = time.Since(start)
	return report, nil
}

// ingestFile 解析、校验、嵌入并写入单个页面文件，返回入库页数
func (i *Ingestor) ingestFile(ctx context.Context, path string) (int, error) {
	inputs, err := parsePageFile(path)
	if err != nil {
		return 0, err
	}

	for idx, in := range inputs {
		if err := validatePage(in); err != nil {
			return 0, fmt.Errorf("page %d: %w", idx, err)
		}
	}

	total := 0
	for offset := 0; offset < len(inputs); offset += i.batchSize {
		end := offset + i.batchSize
		if end > len(inputs) {
			end = len(inputs)
		}
		batch := inputs[offset:end]

		texts := make([]string, len(batch))
		for j, in := range batch {
			texts[j] = in.Content
		}

		vectors, err := i.embedWithRetry(ctx, texts)
		if err != nil {
			return total, fmt.Errorf("embed batch at %d: %w", offset, err)
		}
		if len(vectors) != len(batch) {
			return total, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(batch))
		}

		docs := make([]*assistant.PageDocument, len(batch))
		for j, in := range batch {
			vec := make([]float32, len(vectors[j]))
			for k, v := range vectors[j] {
				vec[k] = float32(v)
			}
			docs[j] = &assistant.PageDocument{
				ID:          uuid.NewString(),
				Content:     in.Content,
				Page:        in.Page,
				AgeGroup:    in.AgeGroup,
				Coach:       in.Coach,
				SectionType: in.SectionType,
				Trimester:   in.Trimester,
				Week:        in.Week,
				Session:     in.Session,
				ImageRef:    in.ImageRef,
				Vector:      vec,
			}
		}

		if err := i.pages.InsertPages(ctx, docs); err != nil {
			return total, fmt.Errorf("insert batch at %d: %w", offset, err)
		}
		total += len(batch)
	}

	return total, nil
}

// embedWithRetry 对可重试错误（限流/超时）做指数退避加抖动的重试
func (i *Ingestor) embedWithRetry(ctx context.Context, texts []string) ([][]float64, error) {
	delay := i.baseDelay
	for attempt := 0; ; attempt++ {
		vectors, err := i.embedder.EmbedStrings(ctx, texts)
		if err == nil {
			return vectors, nil
		}
		if attempt >= i.maxRetries || !isRetryable(err) {
			return nil, err
		}

		jitter := time.Duration(rand.Int63n(int64(delay)/2 + 1))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay + jitter):
		}

		delay *= 2
		if delay > i.maxDelay {
			delay = i.maxDelay
		}
	}
}

func isRetryable(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "429") ||
		strings.Contains(s, "rate limit") ||
		strings.Contains(s, "too many requests") ||
		strings.Contains(s, "timeout") ||
		strings.Contains(s, "temporar")
}

// listPageFiles 返回目录下排序后的 .json 文件列表
func listPageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// parsePageFile 解析页面文件，兼容单对象和数组两种格式
func parsePageFile(path string) ([]PageInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var many []PageInput
	if err := json.Unmarshal(data, &many); err == nil {
		return many, nil
	}

	var one PageInput
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("invalid page file format: %w", err)
	}
	return []PageInput{one}, nil
}

func validatePage(in PageInput) error {
	if strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("content is empty")
	}
	if !entity.AgeGroup(in.AgeGroup).ValidForStorage() {
		return fmt.Errorf("invalid age_group: %q", in.AgeGroup)
	}
	if !entity.CoachRole(in.Coach).Valid() {
		return fmt.Errorf("invalid coach: %q", in.Coach)
	}
	if !entity.SectionType(in.SectionType).Valid() {
		return fmt.Errorf("invalid section_type: %q", in.SectionType)
	}
	if in.Page < 0 || in.Trimester < 0 || in.Week < 0 || in.Session < 0 {
		return fmt.Errorf("negative page coordinates")
	}
	return nil
}
