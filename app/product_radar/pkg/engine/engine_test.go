package engine

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/product_radar/app/product_radar/pkg/config"
	"github.com/iWorld-y/product_radar/app/product_radar/pkg/model"
)

// fakeFetcher 预置页面内容的抓取客户端
type fakeFetcher struct {
	online bool
	html   string
	err    error
}

func (f *fakeFetcher) TestConnectivity(ctx context.Context) bool { return f.online }

func (f *fakeFetcher) FetchDaily(ctx context.Context, date time.Time) (*goquery.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(f.html))
}

func (f *fakeFetcher) SiteDescription(ctx context.Context, siteURL string) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeFetcher) Origin() *url.URL {
	return &url.URL{Scheme: "https", Host: "decohack.com"}
}

// fakeStore 记录落库调用
type fakeStore struct {
	saved *model.Report
	runID int
	err   error
}

func (s *fakeStore) SaveRun(report *model.Report) (int, error) {
	s.saved = report
	return s.runID, s.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Report.OutputDir = t.TempDir()
	return cfg
}

func leaderboardHTML(n int) string {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, `<div class="product-item">
			<h3>%d. Product%02d</h3>
			<p>ai assistant number %d with enough description text</p>
			<span>%d votes</span>
		</div>`, i, i, i, 600-i*10)
	}
	sb.WriteString("</body></html>")
	return sb.String()
}

func TestRunFullPipeline(t *testing.T) {
	cfg := testConfig(t)
	eng, err := NewEngine(cfg, &fakeFetcher{online: true, html: leaderboardHTML(10)}, nil)
	require.NoError(t, err)

	result, err := eng.Run(context.Background(), RunOptions{
		Date: time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Len(t, result.Report.Products, 10)
	assert.Equal(t, "2025-11-03", result.Report.Date)
	assert.Zero(t, result.Dropped)

	// 并发增强后必须恢复榜单顺序
	for i, p := range result.Report.Products {
		assert.Equal(t, i+1, p.Rank)
		assert.NotEmpty(t, p.Category)
		assert.NotEmpty(t, p.Opinion)
	}

	require.Len(t, result.Report.Top, cfg.Analysis.TopN)
	for i := 1; i < len(result.Report.Top); i++ {
		assert.GreaterOrEqual(t,
			result.Report.Top[i-1].MarketPotential,
			result.Report.Top[i].MarketPotential)
	}

	// 报告文件按日期命名写入
	assert.Contains(t, result.ReportPath, "product_hunt_analysis_2025-11-03.md")
	content, err := os.ReadFile(result.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Product Hunt日报 2025-11-03")
	assert.Contains(t, string(content), "Product01")
}

func TestRunFallbackWhenOffline(t *testing.T) {
	cfg := testConfig(t)
	eng, err := NewEngine(cfg, &fakeFetcher{online: false}, nil)
	require.NoError(t, err)

	result, err := eng.Run(context.Background(), RunOptions{})
	require.NoError(t, err)

	// 离线时替换为配置中的示例数据
	require.Len(t, result.Report.Products, 3)
	assert.Equal(t, "Claude 3.5 Sonnet", result.Report.Products[0].Name)
	assert.Equal(t, 523, result.Report.Products[0].Votes)
}

func TestRunFallbackWhenFetchFails(t *testing.T) {
	cfg := testConfig(t)
	eng, err := NewEngine(cfg, &fakeFetcher{online: true, err: errors.New("boom")}, nil)
	require.NoError(t, err)

	result, err := eng.Run(context.Background(), RunOptions{})
	require.NoError(t, err)
	assert.Len(t, result.Report.Products, 3)
}

func TestRunFallbackWhenExtractionEmpty(t *testing.T) {
	cfg := testConfig(t)
	eng, err := NewEngine(cfg, &fakeFetcher{online: true, html: "<html><body><span>空页面</span></body></html>"}, nil)
	require.NoError(t, err)

	result, err := eng.Run(context.Background(), RunOptions{})
	require.NoError(t, err)
	assert.Len(t, result.Report.Products, 3)
}

func TestRunNoProductsAnalyzed(t *testing.T) {
	cfg := testConfig(t)
	eng, err := NewEngine(cfg, &fakeFetcher{online: false}, nil)
	require.NoError(t, err)

	// 父上下文已取消，所有增强任务都会超时丢弃
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = eng.Run(ctx, RunOptions{})
	assert.ErrorIs(t, err, ErrNoProductsAnalyzed)
}

func TestRunPersistsWhenStoreConfigured(t *testing.T) {
	cfg := testConfig(t)
	store := &fakeStore{runID: 7}
	eng, err := NewEngine(cfg, &fakeFetcher{online: false}, store)
	require.NoError(t, err)

	result, err := eng.Run(context.Background(), RunOptions{})
	require.NoError(t, err)

	require.NotNil(t, store.saved)
	assert.Equal(t, 7, result.RunID)
	assert.Equal(t, result.Report.Date, store.saved.Date)
}

func TestRunStoreFailureDoesNotFailRun(t *testing.T) {
	cfg := testConfig(t)
	store := &fakeStore{err: errors.New("db down")}
	eng, err := NewEngine(cfg, &fakeFetcher{online: false}, store)
	require.NoError(t, err)

	result, err := eng.Run(context.Background(), RunOptions{})
	require.NoError(t, err)
	assert.Zero(t, result.RunID)
}

func TestRunProgressCallback(t *testing.T) {
	cfg := testConfig(t)
	eng, err := NewEngine(cfg, &fakeFetcher{online: false}, nil)
	require.NoError(t, err)

	var statuses []string
	_, err = eng.Run(context.Background(), RunOptions{
		ProgressCallback: func(status string, progress int) {
			statuses = append(statuses, status)
			assert.GreaterOrEqual(t, progress, 0)
			assert.LessOrEqual(t, progress, 100)
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "starting", statuses[0])
	assert.Equal(t, "completed", statuses[len(statuses)-1])
}
