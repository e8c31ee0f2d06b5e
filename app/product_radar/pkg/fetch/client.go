package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/product_radar/app/product_radar/pkg/config"
	"github.com/iWorld-y/product_radar/app/product_radar/pkg/logger"
)

// Client 榜单页面抓取客户端
type Client struct {
	cfg     config.SourceConfig
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient 创建一个新的抓取客户端
func NewClient(cfg config.SourceConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	// 限流器按 RPM 折算速率，QPS 作为突发量
	limit := rate.Limit(float64(cfg.RPM) / 60.0)
	if cfg.RPM <= 0 {
		limit = rate.Inf
	}
	burst := cfg.QPS
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		cfg:     cfg,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, burst),
	}
}

// DailyURL 拼接指定日期的榜单地址，榜单发布的是前一天的数据
func (c *Client) DailyURL(date time.Time) string {
	yesterday := date.AddDate(0, 0, -1)
	return fmt.Sprintf("%s-%s", c.cfg.BaseURL, yesterday.Format(time.DateOnly))
}

// Origin 返回榜单站点的源地址，用于补全相对链接
func (c *Client) Origin() *url.URL {
	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return &url.URL{Scheme: "https", Host: "decohack.com"}
	}
	return &url.URL{Scheme: u.Scheme, Host: u.Host}
}

// TestConnectivity 测试榜单站点是否可达
func (c *Client) TestConnectivity(ctx context.Context) bool {
	probe := c.cfg.ProbeURL
	if probe == "" {
		probe = c.cfg.BaseURL
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probe, nil)
	if err != nil {
		return false
	}
	setBrowserHeaders(req)

	res, err := c.client.Do(req)
	if err != nil {
		logger.Log.Warnf("网络连接测试失败: %v", err)
		return false
	}
	defer res.Body.Close()

	return res.StatusCode == http.StatusOK
}

// FetchDaily 抓取指定日期的榜单页面并完成解析
func (c *Client) FetchDaily(ctx context.Context, date time.Time) (*goquery.Document, error) {
	pageURL := c.DailyURL(date)
	logger.Log.Infof("正在爬取 Product Hunt 榜单: %s", pageURL)

	res, err := c.fetchWithRetry(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("解析榜单页面失败: %w", err)
	}
	return doc, nil
}

// SiteDescription 抓取产品官网并提取正文，用于补全缺失的描述
func (c *Client) SiteDescription(ctx context.Context, siteURL string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	article, err := readability.FromURL(siteURL, c.client.Timeout)
	if err != nil {
		return "", fmt.Errorf("抓取产品官网失败: %w", err)
	}

	// 截断过长正文，描述只需要首段信息量
	return truncateRunes(article.TextContent, 500), nil
}

// truncateRunes 按字符截断文本，避免切断多字节字符
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// fetchWithRetry 带指数退避的页面抓取
func (c *Client) fetchWithRetry(ctx context.Context, pageURL string) (*http.Response, error) {
	maxRetries := c.cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, fmt.Errorf("构造请求失败: %w", err)
		}
		setBrowserHeaders(req)

		res, err := c.client.Do(req)
		if err == nil && res.StatusCode == http.StatusOK {
			return res, nil
		}

		if err != nil {
			lastErr = err
			logger.Log.Warnf("尝试 %d/%d 失败: %v", attempt+1, maxRetries, err)
		} else {
			res.Body.Close()
			lastErr = fmt.Errorf("unexpected status: %d", res.StatusCode)
			logger.Log.Warnf("尝试 %d/%d: HTTP %d", attempt+1, maxRetries, res.StatusCode)
		}

		if attempt < maxRetries-1 {
			backoff := time.Duration(1<<attempt) * time.Second
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("所有重试尝试失败 %s: %w", pageURL, lastErr)
}

// setBrowserHeaders 设置浏览器请求头，避免被简单的反爬虫策略拦截
func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")
	req.Header.Set("Connection", "keep-alive")
}
