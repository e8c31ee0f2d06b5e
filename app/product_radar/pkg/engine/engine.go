package engine

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/iWorld-y/product_radar/app/product_radar/pkg/analyze"
	"github.com/iWorld-y/product_radar/app/product_radar/pkg/config"
	"github.com/iWorld-y/product_radar/app/product_radar/pkg/extract"
	"github.com/iWorld-y/product_radar/app/product_radar/pkg/logger"
	"github.com/iWorld-y/product_radar/app/product_radar/pkg/model"
	"github.com/iWorld-y/product_radar/app/product_radar/pkg/report"
)

// ErrNoProductsAnalyzed 所有产品增强均失败时返回，空报告对调用方没有意义
var ErrNoProductsAnalyzed = errors.New("no products analyzed")

// PageFetcher 榜单抓取协作方，核心流程自身不做网络请求
type PageFetcher interface {
	TestConnectivity(ctx context.Context) bool
	FetchDaily(ctx context.Context, date time.Time) (*goquery.Document, error)
	SiteDescription(ctx context.Context, siteURL string) (string, error)
	Origin() *url.URL
}

// RunStore 分析运行持久化协作方
type RunStore interface {
	SaveRun(report *model.Report) (int, error)
}

// Engine 核心处理引擎
type Engine struct {
	cfg       *config.Config
	fetcher   PageFetcher
	store     RunStore
	extractor *extract.Extractor
	analyzer  *analyze.Analyzer
}

// NewEngine 创建引擎实例，store 传 nil 时跳过持久化
func NewEngine(cfg *config.Config, fetcher PageFetcher, store RunStore) (*Engine, error) {
	extractor, err := extract.NewExtractor(cfg.Extract)
	if err != nil {
		return nil, fmt.Errorf("抽取器初始化失败: %w", err)
	}

	return &Engine{
		cfg:       cfg,
		fetcher:   fetcher,
		store:     store,
		extractor: extractor,
		analyzer:  analyze.NewAnalyzer(cfg.Analysis),
	}, nil
}

// RunOptions 运行选项
type RunOptions struct {
	Date             time.Time
	ProgressCallback func(status string, progress int)
}

// Result 单次运行的产出
type Result struct {
	Report     *model.Report
	ReportPath string
	RunID      int
	Dropped    int // 增强阶段被丢弃的产品数
}

// Run 执行一次完整的分析流程：抓取、抽取、并发增强、排名、渲染与落库
func (e *Engine) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	progress := opts.ProgressCallback
	if progress == nil {
		progress = func(string, int) {}
	}

	date := opts.Date
	if date.IsZero() {
		date = time.Now()
	}

	progress("starting", 0)
	logger.Log.Info("🚀 开始 Product Hunt 产品分析...")

	// 1. 抓取并抽取基础数据，失败时整体退回示例数据
	products := e.fetchProducts(ctx, date)
	logger.Log.Infof("✅ 获取 %d 个产品数据", len(products))
	progress("fetched", 10)

	// 2. 并发增强
	analyzed, dropped := e.enrichAll(ctx, products, progress)
	if len(analyzed) == 0 {
		return nil, ErrNoProductsAnalyzed
	}
	if dropped > 0 {
		logger.Log.Warnf("增强阶段丢弃 %d 个产品", dropped)
	}

	// 汇聚顺序是完成顺序，排名相关操作前必须恢复榜单顺序
	sort.Slice(analyzed, func(i, j int) bool {
		return analyzed[i].Rank < analyzed[j].Rank
	})

	// 3. 评估产品前景
	progress("ranking", 85)
	top := e.analyzer.RankTop(analyzed, e.cfg.Analysis.TopN)
	for i, p := range top {
		logger.Log.Infof("  %d. %s (市场潜力: %d/100)", i+1, p.Name, p.MarketPotential)
	}

	result := &Result{
		Report: &model.Report{
			Date:     date.Format(time.DateOnly),
			Products: analyzed,
			Top:      top,
		},
		Dropped: dropped,
	}

	// 4. 渲染并保存报告
	text, err := report.Render(result.Report)
	if err != nil {
		return nil, err
	}
	path, err := e.writeReport(result.Report.Date, text)
	if err != nil {
		return nil, err
	}
	result.ReportPath = path
	logger.Log.Infof("🎉 分析完成，报告已保存至: %s", path)

	// 5. 落库
	if e.store != nil {
		runID, err := e.store.SaveRun(result.Report)
		if err != nil {
			logger.Log.Errorf("保存分析运行失败: %v", err)
		} else {
			result.RunID = runID
		}
	}

	progress("completed", 100)
	return result, nil
}

// fetchProducts 抓取榜单并运行抽取级联。
// 网络不可用、抓取失败或级联全部落空时替换为配置的示例数据，保证结果非空。
func (e *Engine) fetchProducts(ctx context.Context, date time.Time) []*model.Product {
	if !e.fetcher.TestConnectivity(ctx) {
		logger.Log.Warn("网络连接不可用，使用示例数据")
		return e.fallbackProducts()
	}

	doc, err := e.fetcher.FetchDaily(ctx, date)
	if err != nil {
		logger.Log.Errorf("爬取 Product Hunt 榜单失败: %v", err)
		return e.fallbackProducts()
	}

	products := e.extractor.ExtractProducts(doc, e.fetcher.Origin())
	if len(products) == 0 {
		logger.Log.Warn("无法提取产品信息，使用示例数据")
		return e.fallbackProducts()
	}
	return products
}

// enrichAll 固定大小的工作池并发增强产品。
// 单条超时或异常仅丢弃该条记录，整批继续。
func (e *Engine) enrichAll(ctx context.Context, products []*model.Product, progress func(string, int)) ([]*model.AnalyzedProduct, int) {
	workers := e.cfg.Concurrency.Workers
	if workers <= 0 {
		workers = 3
	}
	taskTimeout := time.Duration(e.cfg.Concurrency.TaskTimeout) * time.Second
	if taskTimeout <= 0 {
		taskTimeout = 20 * time.Second
	}

	jobs := make(chan *model.Product)
	var (
		mu       sync.Mutex
		analyzed []*model.AnalyzedProduct
		dropped  int
		done     int
	)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				ap, err := e.enrichOne(ctx, p, taskTimeout)

				mu.Lock()
				done++
				if err != nil {
					dropped++
					logger.Log.Errorf("产品增强失败 [%s]: %v", p.Name, err)
				} else {
					analyzed = append(analyzed, ap)
					logger.Log.Infof("✅ 完成产品增强 %d/%d: %s", done, len(products), p.Name)
				}
				progress(fmt.Sprintf("analyzed: %s", p.Name), 10+done*70/len(products))
				mu.Unlock()
			}
		}()
	}

	for _, p := range products {
		jobs <- p
	}
	close(jobs)
	wg.Wait()

	return analyzed, dropped
}

// enrichOne 增强单个产品，受单任务超时约束
func (e *Engine) enrichOne(ctx context.Context, p *model.Product, timeout time.Duration) (ap *model.AnalyzedProduct, err error) {
	taskCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			ap, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	// 描述缺失时可选地抓取产品官网正文补全，失败不影响增强
	if e.cfg.Source.EnrichFromSite && p.Description == "" && p.WebsiteURL != "" {
		if text, ferr := e.fetcher.SiteDescription(taskCtx, p.WebsiteURL); ferr == nil {
			clone := *p
			clone.Description = text
			p = &clone
		} else {
			logger.Log.Debugf("官网正文补全失败 [%s]: %v", p.Name, ferr)
		}
	}

	insight := e.analyzer.Enrich(p)

	if taskCtx.Err() != nil {
		return nil, taskCtx.Err()
	}
	return &model.AnalyzedProduct{Product: *p, Insight: insight}, nil
}

// fallbackProducts 配置中的示例数据转换为产品记录
func (e *Engine) fallbackProducts() []*model.Product {
	products := make([]*model.Product, 0, len(e.cfg.Analysis.Fallback))
	for _, f := range e.cfg.Analysis.Fallback {
		products = append(products, &model.Product{
			Rank:        f.Rank,
			Name:        f.Name,
			Tagline:     f.Tagline,
			Description: f.Description,
			Votes:       f.Votes,
			ImageURL:    f.ImageURL,
			WebsiteURL:  f.WebsiteURL,
		})
	}
	return products
}

// writeReport 将渲染结果写入日期命名的报告文件
func (e *Engine) writeReport(date, text string) (string, error) {
	dir := e.cfg.Report.OutputDir
	if dir == "" {
		dir = "reports"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("创建报告目录失败: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("product_hunt_analysis_%s.md", date))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("写入报告失败: %w", err)
	}
	return path, nil
}
