package analyze

import (
	"sort"
	"unicode/utf8"

	"github.com/iWorld-y/product_radar/app/product_radar/pkg/model"
)

// Score 计算市场潜力评分。
// 基础分之上叠加各独立加分项，票数档位互斥仅取最高满足档，总分收敛到 [0,100]。
func (a *Analyzer) Score(p *model.Product, ins *model.Insight) int {
	score := a.cfg.BaseScore

	for _, tier := range a.cfg.VoteTiers {
		if p.Votes > tier.MinVotes {
			score += tier.Bonus
			break
		}
	}

	if a.highPotential[ins.Category] {
		score += a.cfg.CategoryBonus
	}

	// 适度竞争说明市场已被验证，无竞品或竞品过多都不加分
	n := len(ins.Competitors)
	if n >= a.cfg.CompetitorMin && n <= a.cfg.CompetitorMax {
		score += a.cfg.CompetitorBonus
	}

	// 按字符计数，中文描述的字节长度是字符数的三倍
	if utf8.RuneCountInString(p.Description) > a.cfg.RichnessThreshold {
		score += a.cfg.RichnessBonus
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// RankTop 按评分降序稳定排序后取前 n 名。
// 同分产品保持原榜单排名的先后次序。
func (a *Analyzer) RankTop(products []*model.AnalyzedProduct, n int) []*model.AnalyzedProduct {
	ranked := make([]*model.AnalyzedProduct, len(products))
	copy(ranked, products)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MarketPotential > ranked[j].MarketPotential
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// rating 按评分生成星级评级
func (a *Analyzer) rating(score int) string {
	switch {
	case score >= 90:
		return "⭐⭐⭐⭐⭐"
	case score >= 80:
		return "⭐⭐⭐⭐"
	case score >= 70:
		return "⭐⭐⭐"
	case score >= 60:
		return "⭐⭐"
	default:
		return "⭐"
	}
}
