package model

// Product 榜单产品基础信息，抽取完成后不再修改
type Product struct {
	Rank        int    // 榜单排名，1 起始
	Name        string // 产品名，已去除序号前缀
	Tagline     string // 标语，取自描述前 50 字
	Description string // 产品描述，可能为空
	Votes       int    // 票数，无法解析时为 0
	ImageURL    string // 产品图，绝对地址
	WebsiteURL  string // 产品链接，绝对地址
}

// Insight 增强阶段派生的分析字段，全部字段保证非空
type Insight struct {
	Category        string   // 产品分类
	CoreFeature     string   // 核心功能
	PainPoint       string   // 解决的痛点
	TargetAudience  string   // 目标受众
	Competitors     []string // 主要竞品，最多 4 个
	BusinessModel   string   // 商业模式
	Pricing         string   // 定价策略
	Strengths       string   // 产品优势
	Weaknesses      string   // 潜在不足
	Opinion         string   // 点评
	MarketPotential int      // 市场潜力评分 0-100
	Rating          string   // 星级评级
}

// AnalyzedProduct 基础信息与分析结果的组合
type AnalyzedProduct struct {
	Product
	Insight
}

// Report 单次分析运行的完整产出
type Report struct {
	Date     string             // 报告日期 YYYY-MM-DD
	Products []*AnalyzedProduct // 全量产品，按榜单排名升序
	Top      []*AnalyzedProduct // 最具前景产品，按评分降序
}

// TotalVotes 全量产品票数之和
func (r *Report) TotalVotes() int {
	total := 0
	for _, p := range r.Products {
		total += p.Votes
	}
	return total
}

// AvgVotes 产品平均票数
func (r *Report) AvgVotes() int {
	if len(r.Products) == 0 {
		return 0
	}
	return r.TotalVotes() / len(r.Products)
}

// CategoryCount 按产品数量降序的分类分布
func (r *Report) CategoryCount() []CategoryStat {
	counts := make(map[string]int)
	var order []string
	for _, p := range r.Products {
		if _, ok := counts[p.Category]; !ok {
			order = append(order, p.Category)
		}
		counts[p.Category]++
	}

	stats := make([]CategoryStat, 0, len(order))
	for _, name := range order {
		stats = append(stats, CategoryStat{Name: name, Count: counts[name]})
	}
	// 数量相同保持首次出现顺序
	for i := 1; i < len(stats); i++ {
		for j := i; j > 0 && stats[j].Count > stats[j-1].Count; j-- {
			stats[j], stats[j-1] = stats[j-1], stats[j]
		}
	}
	return stats
}

// CategoryStat 分类分布统计项
type CategoryStat struct {
	Name  string
	Count int
}
