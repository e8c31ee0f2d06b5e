package extract

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/iWorld-y/product_radar/app/product_radar/pkg/config"
	"github.com/iWorld-y/product_radar/app/product_radar/pkg/logger"
	"github.com/iWorld-y/product_radar/app/product_radar/pkg/model"
)

// 序号前缀，如 "3. " 或 "#3 "
var (
	ordinalPrefixRe = regexp.MustCompile(`^\d+\.\s*`)
	hashPrefixRe    = regexp.MustCompile(`^#\d+\s*`)
)

// 标记策略中可以作为产品容器的元素
const containerSelector = "div, li, article, section"

// Strategy 候选区域查找策略
type Strategy struct {
	Name string
	Find func(doc *goquery.Document) []*goquery.Selection
}

// Extractor 抽取级联，将榜单页面转换为产品记录序列
type Extractor struct {
	cfg          config.ExtractConfig
	votePatterns []*regexp.Regexp
}

// NewExtractor 创建抽取器，票数正则在此统一编译
func NewExtractor(cfg config.ExtractConfig) (*Extractor, error) {
	patterns := make([]*regexp.Regexp, 0, len(cfg.VotePatterns))
	for _, p := range cfg.VotePatterns {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, re)
	}
	return &Extractor{cfg: cfg, votePatterns: patterns}, nil
}

// strategies 返回固定优先级的策略序列
func (e *Extractor) strategies() []Strategy {
	return []Strategy{
		{Name: "selector", Find: e.findBySelectors},
		{Name: "link", Find: e.findByProductLinks},
		{Name: "marker", Find: e.findByMarkerToken},
	}
}

// FindRegions 按优先级尝试各策略，返回首个达到命中阈值的候选区域序列。
// 所有策略都落空时返回空序列，由调用方决定是否替换为示例数据，本函数不报错。
func (e *Extractor) FindRegions(doc *goquery.Document) []*goquery.Selection {
	minRegions := e.cfg.MinRegions
	if minRegions <= 0 {
		minRegions = 1
	}

	var firstNonEmpty []*goquery.Selection
	for _, st := range e.strategies() {
		regions := e.runStrategy(st, doc)
		if len(regions) >= minRegions {
			logger.Log.Infof("策略 [%s] 找到 %d 个产品区域", st.Name, len(regions))
			return e.capRegions(regions)
		}
		if len(regions) > 0 && firstNonEmpty == nil {
			firstNonEmpty = regions
		}
	}

	// 没有策略达到阈值时退回首个非空结果，仅全部落空才返回空
	if firstNonEmpty != nil {
		logger.Log.Infof("无策略达到阈值，退回首个非空结果: %d 个区域", len(firstNonEmpty))
		return e.capRegions(firstNonEmpty)
	}
	return nil
}

// runStrategy 执行单个策略，策略内部异常只使该策略落空，不中断级联
func (e *Extractor) runStrategy(st Strategy, doc *goquery.Document) (regions []*goquery.Selection) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Warnf("策略 [%s] 执行异常: %v", st.Name, r)
			regions = nil
		}
	}()
	return st.Find(doc)
}

func (e *Extractor) capRegions(regions []*goquery.Selection) []*goquery.Selection {
	if e.cfg.MaxProducts > 0 && len(regions) > e.cfg.MaxProducts {
		return regions[:e.cfg.MaxProducts]
	}
	return regions
}

// findBySelectors 结构选择器策略：首个有命中的选择器胜出
func (e *Extractor) findBySelectors(doc *goquery.Document) []*goquery.Selection {
	for _, selector := range e.cfg.RegionSelectors {
		sel := doc.Find(selector)
		if sel.Length() == 0 {
			continue
		}

		var regions []*goquery.Selection
		sel.Each(func(_ int, s *goquery.Selection) {
			regions = append(regions, s)
		})
		logger.Log.Debugf("选择器 [%s] 命中 %d 个元素", selector, len(regions))
		return regions
	}
	return nil
}

// findByProductLinks 外链锚点策略：沿 Product Hunt 链接向上找容器并去重
func (e *Extractor) findByProductLinks(doc *goquery.Document) []*goquery.Selection {
	var regions []*goquery.Selection
	seen := make(map[*html.Node]bool)

	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href := link.AttrOr("href", "")
		text := strings.TrimSpace(link.Text())

		if !e.matchLinkPattern(href) || len([]rune(text)) <= 2 {
			return
		}

		parent := link.Closest(containerSelector)
		if parent.Length() == 0 {
			return
		}
		node := parent.Get(0)
		if seen[node] {
			return
		}
		seen[node] = true
		regions = append(regions, parent)
	})

	return regions
}

func (e *Extractor) matchLinkPattern(href string) bool {
	for _, p := range e.cfg.LinkPatterns {
		if strings.Contains(href, p) {
			return true
		}
	}
	return false
}

// findByMarkerToken 标记策略：按票数符号或编号前缀定位最内层有效容器
func (e *Extractor) findByMarkerToken(doc *goquery.Document) []*goquery.Selection {
	var candidates []*goquery.Selection
	nodes := make(map[*html.Node]bool)

	doc.Find(containerSelector).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if len(text) < e.cfg.MinRegionTextLen {
			return
		}
		if !e.hasMarker(text) {
			return
		}
		candidates = append(candidates, s)
		nodes[s.Get(0)] = true
	})

	// 祖先和后代同时命中时只保留最内层容器
	var regions []*goquery.Selection
	for _, s := range candidates {
		inner := false
		s.Find(containerSelector).Each(func(_ int, child *goquery.Selection) {
			if nodes[child.Get(0)] {
				inner = true
			}
		})
		if !inner {
			regions = append(regions, s)
		}
	}
	return regions
}

func (e *Extractor) hasMarker(text string) bool {
	if e.cfg.MarkerToken != "" && strings.Contains(text, e.cfg.MarkerToken) {
		return true
	}
	return ordinalPrefixRe.MatchString(text)
}

// ExtractProducts 对候选区域逐个抽取产品记录，单个区域失败不影响整批
func (e *Extractor) ExtractProducts(doc *goquery.Document, origin *url.URL) []*model.Product {
	regions := e.FindRegions(doc)

	products := make([]*model.Product, 0, len(regions))
	for _, region := range regions {
		p, ok := e.extractProduct(region, len(products)+1, origin)
		if !ok {
			continue
		}
		products = append(products, p)
	}

	logger.Log.Infof("成功提取 %d 个产品信息", len(products))
	return products
}

// extractProduct 从单个区域提取产品基础信息，产品名缺失或过短时放弃该区域
func (e *Extractor) extractProduct(region *goquery.Selection, rank int, origin *url.URL) (p *model.Product, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Errorf("提取产品基本信息失败: %v", r)
			p, ok = nil, false
		}
	}()

	lines := textLines(region)

	// 产品名：按优先级尝试标题类选择器，全部落空时取首个非空文本行
	name := e.firstSelectorText(region, e.cfg.NameSelectors)
	if name == "" && len(lines) > 0 {
		name = lines[0]
	}
	name = stripOrdinal(name)
	if len([]rune(name)) < 2 {
		return nil, false
	}

	// 描述：选择器落空时取前两行中较长的一行，避免误选短标签
	desc := e.firstSelectorText(region, e.cfg.DescSelectors)
	if desc == "" {
		desc = longestOfFirstTwo(lines)
		if stripOrdinal(desc) == name {
			desc = ""
		}
	}

	votes := e.extractVotes(region.Text())
	imageURL := resolveURL(region.Find("img").First().AttrOr("src", ""), origin)
	websiteURL := resolveURL(region.Find("a").First().AttrOr("href", ""), origin)

	return &model.Product{
		Rank:        rank,
		Name:        name,
		Tagline:     makeTagline(desc),
		Description: desc,
		Votes:       votes,
		ImageURL:    imageURL,
		WebsiteURL:  websiteURL,
	}, true
}

// firstSelectorText 返回首个命中且文本非空的选择器结果
func (e *Extractor) firstSelectorText(region *goquery.Selection, selectors []string) string {
	for _, selector := range selectors {
		text := strings.TrimSpace(region.Find(selector).First().Text())
		if text != "" {
			return text
		}
	}
	return ""
}

// extractVotes 按正则序列解析票数，首个匹配生效，无法解析返回 0
func (e *Extractor) extractVotes(text string) int {
	for _, re := range e.votePatterns {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		votes, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return votes
	}
	return 0
}

// stripOrdinal 去除名称前的序号标记
func stripOrdinal(s string) string {
	s = ordinalPrefixRe.ReplaceAllString(s, "")
	s = hashPrefixRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// textLines 区域文本按行拆分后的非空行
func textLines(region *goquery.Selection) []string {
	var lines []string
	for _, line := range strings.Split(region.Text(), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// longestOfFirstTwo 取前两个非空行中较长的一个
func longestOfFirstTwo(lines []string) string {
	switch len(lines) {
	case 0:
		return ""
	case 1:
		return lines[0]
	}
	if utf8.RuneCountInString(lines[1]) > utf8.RuneCountInString(lines[0]) {
		return lines[1]
	}
	return lines[0]
}

// resolveURL 将相对链接补全为绝对地址，无法解析时返回空串
func resolveURL(raw string, origin *url.URL) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if u.IsAbs() {
		return raw
	}
	if origin == nil {
		return raw
	}
	return origin.ResolveReference(u).String()
}

// makeTagline 取描述前 50 个字符作为标语
func makeTagline(desc string) string {
	runes := []rune(desc)
	if len(runes) > 50 {
		return string(runes[:50]) + "..."
	}
	return desc
}
