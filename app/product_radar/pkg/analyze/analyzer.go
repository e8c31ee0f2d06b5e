package analyze

import (
	"strings"

	"github.com/iWorld-y/product_radar/app/product_radar/pkg/config"
	"github.com/iWorld-y/product_radar/app/product_radar/pkg/model"
)

// Analyzer 产品评分与分类引擎。
// 所有派生字段均由关键词匹配与模板查表得出，同一输入必然产生同一输出。
type Analyzer struct {
	cfg           config.AnalysisConfig
	highPotential map[string]bool
}

// NewAnalyzer 创建分析器实例
func NewAnalyzer(cfg config.AnalysisConfig) *Analyzer {
	highPotential := make(map[string]bool, len(cfg.HighPotentialCategories))
	for _, c := range cfg.HighPotentialCategories {
		highPotential[c] = true
	}
	return &Analyzer{cfg: cfg, highPotential: highPotential}
}

// Classify 按声明顺序匹配分类关键词，首个命中的分类胜出。
// 全部落空时归入默认分类，分类永远非空。
func (a *Analyzer) Classify(name, description string) string {
	text := strings.ToLower(name + " " + description)

	for _, rule := range a.cfg.Categories {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, keyword) {
				return rule.Name
			}
		}
	}
	return a.cfg.DefaultCategory
}

// Enrich 为单个产品生成完整的分析结果
func (a *Analyzer) Enrich(p *model.Product) model.Insight {
	category := a.Classify(p.Name, p.Description)

	ins := model.Insight{
		Category:       category,
		CoreFeature:    a.coreFeature(p),
		PainPoint:      a.painPoint(p, category),
		TargetAudience: a.targetAudience(category),
		Competitors:    a.competitors(category),
		BusinessModel:  a.businessModel(category),
		Pricing:        a.pricing(p.Votes),
		Weaknesses:     a.weaknesses(category),
	}
	ins.Strengths = a.strengths(p, ins)
	ins.MarketPotential = a.Score(p, &ins)
	ins.Rating = a.rating(ins.MarketPotential)
	ins.Opinion = a.opinion(p, &ins)

	return ins
}
