package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config 项目配置结构体
type Config struct {
	Source      SourceConfig      `yaml:"source"`
	Log         LogConfig         `yaml:"log"`
	DB          DBConfig          `yaml:"db"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Extract     ExtractConfig     `yaml:"extract"`
	Analysis    AnalysisConfig    `yaml:"analysis"`
	Report      ReportConfig      `yaml:"report"`
}

// SourceConfig 榜单数据源相关配置
type SourceConfig struct {
	BaseURL        string `yaml:"base_url"`         // 榜单页面前缀，按日期拼接
	ProbeURL       string `yaml:"probe_url"`        // 连通性探测地址
	Timeout        int    `yaml:"timeout"`          // 单次请求超时（秒）
	MaxRetries     int    `yaml:"max_retries"`      // 失败重试次数
	QPS            int    `yaml:"qps"`              // 限流突发量
	RPM            int    `yaml:"rpm"`              // 每分钟请求数上限
	EnrichFromSite bool   `yaml:"enrich_from_site"` // 描述缺失时是否抓取产品官网正文补全
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DBConfig 数据库相关配置，Host 为空时跳过持久化
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// ConcurrencyConfig 增强阶段的并发控制配置
type ConcurrencyConfig struct {
	Workers     int `yaml:"workers"`      // 固定工作协程数
	TaskTimeout int `yaml:"task_timeout"` // 单条产品增强超时（秒）
}

// ExtractConfig 抽取级联相关配置
// 三份历史实现的选择器与阈值存在分歧，这里统一收敛为配置项
type ExtractConfig struct {
	RegionSelectors  []string `yaml:"region_selectors"`    // 产品卡片结构选择器，按优先级排列
	NameSelectors    []string `yaml:"name_selectors"`      // 产品名选择器，按优先级排列
	DescSelectors    []string `yaml:"desc_selectors"`      // 描述选择器，按优先级排列
	VotePatterns     []string `yaml:"vote_patterns"`       // 票数正则，支持多语言单位词
	MarkerToken      string   `yaml:"marker_token"`        // 票数标记符号（🔺）
	LinkPatterns     []string `yaml:"link_patterns"`       // 产品外链特征子串
	MinRegions       int      `yaml:"min_regions"`         // 策略命中的最低区域数
	MaxProducts      int      `yaml:"max_products"`        // 单次抽取的产品数上限 K
	MinRegionTextLen int      `yaml:"min_region_text_len"` // 标记策略的容器最短文本长度
}

// VoteTier 票数加分档位，各档互斥，仅最高满足档生效
type VoteTier struct {
	MinVotes int `yaml:"min_votes"`
	Bonus    int `yaml:"bonus"`
}

// CategoryRule 单个分类及其触发关键词，声明顺序即匹配优先级
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// AnalysisConfig 评分与分类相关配置
type AnalysisConfig struct {
	BaseScore               int               `yaml:"base_score"`
	VoteTiers               []VoteTier        `yaml:"vote_tiers"`
	CategoryBonus           int               `yaml:"category_bonus"`
	HighPotentialCategories []string          `yaml:"high_potential_categories"`
	CompetitorBonus         int               `yaml:"competitor_bonus"`
	CompetitorMin           int               `yaml:"competitor_min"`
	CompetitorMax           int               `yaml:"competitor_max"`
	RichnessBonus           int               `yaml:"richness_bonus"`
	RichnessThreshold       int               `yaml:"richness_threshold"`
	TopN                    int               `yaml:"top_n"`
	DefaultCategory         string            `yaml:"default_category"`
	Categories              []CategoryRule    `yaml:"categories"`
	Fallback                []FallbackProduct `yaml:"fallback"`
}

// FallbackProduct 抽取完全失败时使用的示例产品
type FallbackProduct struct {
	Rank        int    `yaml:"rank"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Votes       int    `yaml:"votes"`
	ImageURL    string `yaml:"image_url"`
	WebsiteURL  string `yaml:"website_url"`
	Tagline     string `yaml:"tagline"`
}

// ReportConfig 报告输出相关配置
type ReportConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// DefaultConfig 返回内置默认配置，空配置文件亦可直接运行
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			BaseURL:    "https://decohack.com/producthunt-daily",
			ProbeURL:   "https://decohack.com",
			Timeout:    30,
			MaxRetries: 3,
			QPS:        2,
			RPM:        60,
		},
		Log: LogConfig{
			Level: "info",
		},
		Concurrency: ConcurrencyConfig{
			Workers:     3,
			TaskTimeout: 20,
		},
		Extract: ExtractConfig{
			RegionSelectors: []string{
				".product-item",
				".hot-product",
				".product-card",
				".daily-product",
				"[data-product]",
				".entry-content .product",
				".ph-daily-product",
				".product-grid .product",
				".featured-product",
				"article",
			},
			NameSelectors:    []string{"h1", "h2", "h3", "h4", ".product-name", ".title", ".product-title", "strong"},
			DescSelectors:    []string{"p", ".description", ".summary", ".product-description", ".excerpt"},
			VotePatterns:     []string{`(\d+)\s*票`, `(\d+)\s*votes?`},
			MarkerToken:      "🔺",
			LinkPatterns:     []string{"producthunt.com", "/ph/"},
			MinRegions:       1,
			MaxProducts:      30,
			MinRegionTextLen: 20,
		},
		Analysis: AnalysisConfig{
			BaseScore: 50,
			VoteTiers: []VoteTier{
				{MinVotes: 400, Bonus: 20},
				{MinVotes: 200, Bonus: 15},
				{MinVotes: 100, Bonus: 10},
			},
			CategoryBonus:           15,
			HighPotentialCategories: []string{"AI驱动工具", "开发编程工具", "项目管理工具"},
			CompetitorBonus:         10,
			CompetitorMin:           1,
			CompetitorMax:           3,
			RichnessBonus:           5,
			RichnessThreshold:       100,
			TopN:                    3,
			DefaultCategory:         "其他工具",
			Categories: []CategoryRule{
				{Name: "AI驱动工具", Keywords: []string{"ai", "ml", "artificial intelligence", "chatgpt", "claude"}},
				{Name: "生产力增强器", Keywords: []string{"productivity", "workflow", "automation", "efficiency"}},
				{Name: "开发编程工具", Keywords: []string{"dev", "code", "programming", "developer", "git"}},
				{Name: "设计创意工具", Keywords: []string{"design", "figma", "creative", "ui", "ux"}},
				{Name: "项目管理工具", Keywords: []string{"project", "management", "agile", "scrum", "task"}},
				{Name: "营销推广工具", Keywords: []string{"marketing", "seo", "social", "content"}},
				{Name: "教育学习工具", Keywords: []string{"education", "learning", "training", "course"}},
				{Name: "健康生活工具", Keywords: []string{"health", "fitness", "wellness", "lifestyle"}},
				{Name: "金融商务工具", Keywords: []string{"finance", "business", "payment", "banking"}},
				{Name: "娱乐休闲工具", Keywords: []string{"entertainment", "game", "fun", "music", "video"}},
			},
			Fallback: []FallbackProduct{
				{
					Rank:        1,
					Name:        "Claude 3.5 Sonnet",
					Description: "Anthropic发布的最新AI助手，在代码理解和生成方面表现卓越",
					Votes:       523,
					ImageURL:    "https://cdn.producthunt.com/r/100x100/1010.jpg",
					WebsiteURL:  "https://claude.ai",
					Tagline:     "下一代AI助手，重新定义编程效率",
				},
				{
					Rank:        2,
					Name:        "Linear",
					Description: "现代化的项目管理工具，专为开发团队设计",
					Votes:       412,
					ImageURL:    "https://cdn.producthunt.com/r/100x100/1001.jpg",
					WebsiteURL:  "https://linear.app",
					Tagline:     "优雅高效的团队协作平台",
				},
				{
					Rank:        3,
					Name:        "Notion AI",
					Description: "Notion集成的AI写作助手，提升文档创作效率",
					Votes:       389,
					ImageURL:    "https://cdn.producthunt.com/r/100x100/1002.jpg",
					WebsiteURL:  "https://notion.so",
					Tagline:     "智能文档协作，让想法流畅表达",
				},
			},
		},
		Report: ReportConfig{
			OutputDir: "reports",
		},
	}
}

// LoadConfig 从指定路径加载配置，未设置的字段保留默认值
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
