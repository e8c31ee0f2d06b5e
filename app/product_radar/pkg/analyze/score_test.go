package analyze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/product_radar/app/product_radar/pkg/config"
	"github.com/iWorld-y/product_radar/app/product_radar/pkg/model"
)

func TestScoreVoteTiers(t *testing.T) {
	a := newTestAnalyzer()
	ins := &model.Insight{Category: "其他工具"}

	cases := []struct {
		votes int
		want  int
	}{
		{450, 70}, // 50 + 20
		{401, 70},
		{400, 65}, // 边界不含等值，落入 >200 档
		{250, 65}, // 50 + 15
		{150, 60}, // 50 + 10
		{100, 50}, // 三档均不满足
		{0, 50},
	}
	for _, c := range cases {
		p := &model.Product{Votes: c.votes}
		assert.Equal(t, c.want, a.Score(p, ins), "votes=%d", c.votes)
	}
}

func TestScoreVoteTiersExclusive(t *testing.T) {
	a := newTestAnalyzer()
	ins := &model.Insight{Category: "其他工具"}

	// 523 票同时满足三个档位，只有最高档生效
	p := &model.Product{Votes: 523}
	assert.Equal(t, 70, a.Score(p, ins))
}

func TestScoreCategoryBonus(t *testing.T) {
	a := newTestAnalyzer()

	p := &model.Product{Votes: 0}
	assert.Equal(t, 65, a.Score(p, &model.Insight{Category: "AI驱动工具"}))
	assert.Equal(t, 65, a.Score(p, &model.Insight{Category: "开发编程工具"}))
	assert.Equal(t, 65, a.Score(p, &model.Insight{Category: "项目管理工具"}))
	assert.Equal(t, 50, a.Score(p, &model.Insight{Category: "娱乐休闲工具"}))
}

func TestScoreCompetitorBonus(t *testing.T) {
	a := newTestAnalyzer()
	p := &model.Product{Votes: 0}

	// 适度竞争 [1,3] 加分，无竞品或竞品过多不加
	assert.Equal(t, 50, a.Score(p, &model.Insight{Category: "其他工具"}))
	assert.Equal(t, 60, a.Score(p, &model.Insight{Category: "其他工具", Competitors: []string{"A"}}))
	assert.Equal(t, 60, a.Score(p, &model.Insight{Category: "其他工具", Competitors: []string{"A", "B", "C"}}))
	assert.Equal(t, 50, a.Score(p, &model.Insight{Category: "其他工具", Competitors: []string{"A", "B", "C", "D"}}))
}

func TestScoreRichnessBonus(t *testing.T) {
	a := newTestAnalyzer()
	ins := &model.Insight{Category: "其他工具"}

	long := &model.Product{Description: strings.Repeat("x", 101)}
	short := &model.Product{Description: strings.Repeat("x", 100)}
	assert.Equal(t, 55, a.Score(long, ins))
	assert.Equal(t, 50, a.Score(short, ins))
}

func TestScoreRichnessCountsRunes(t *testing.T) {
	a := newTestAnalyzer()
	ins := &model.Insight{Category: "其他工具"}

	// 中文按字符计数，40 字（120 字节）不达标，101 字达标
	short := &model.Product{Description: strings.Repeat("协", 40)}
	long := &model.Product{Description: strings.Repeat("协", 101)}
	assert.Equal(t, 50, a.Score(short, ins))
	assert.Equal(t, 55, a.Score(long, ins))
}

func TestScoreAllBonusesStacked(t *testing.T) {
	a := newTestAnalyzer()

	// 50 基础 + 20 票数 + 15 类别 + 10 竞品 + 5 描述 = 100
	p := &model.Product{Votes: 450, Description: strings.Repeat("协", 150)}
	ins := &model.Insight{Category: "AI驱动工具", Competitors: []string{"ChatGPT", "Claude"}}
	assert.Equal(t, 100, a.Score(p, ins))
}

func TestScoreClamped(t *testing.T) {
	cfg := config.DefaultConfig().Analysis
	cfg.BaseScore = 95
	a := NewAnalyzer(cfg)

	p := &model.Product{Votes: 523, Description: strings.Repeat("x", 200)}
	ins := &model.Insight{Category: "AI驱动工具", Competitors: []string{"A", "B"}}
	assert.Equal(t, 100, a.Score(p, ins))

	cfg.BaseScore = -60
	a = NewAnalyzer(cfg)
	assert.Equal(t, 0, a.Score(&model.Product{}, &model.Insight{Category: "其他工具"}))
}

func TestRankTopByScore(t *testing.T) {
	a := newTestAnalyzer()

	products := []*model.AnalyzedProduct{
		{Product: model.Product{Rank: 1, Name: "low"}, Insight: model.Insight{MarketPotential: 60}},
		{Product: model.Product{Rank: 2, Name: "high"}, Insight: model.Insight{MarketPotential: 90}},
		{Product: model.Product{Rank: 3, Name: "mid"}, Insight: model.Insight{MarketPotential: 75}},
	}

	top := a.RankTop(products, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "high", top[0].Name)
	assert.Equal(t, "mid", top[1].Name)
}

func TestRankTopStableOnTies(t *testing.T) {
	a := newTestAnalyzer()

	// 同分产品保持榜单排名先后
	products := []*model.AnalyzedProduct{
		{Product: model.Product{Rank: 1, Name: "first"}, Insight: model.Insight{MarketPotential: 80}},
		{Product: model.Product{Rank: 2, Name: "second"}, Insight: model.Insight{MarketPotential: 80}},
		{Product: model.Product{Rank: 3, Name: "third"}, Insight: model.Insight{MarketPotential: 80}},
	}

	top := a.RankTop(products, 3)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{top[0].Name, top[1].Name, top[2].Name})
}

func TestRankTopMixedScoresAndTies(t *testing.T) {
	a := newTestAnalyzer()

	// 同分的 80 分产品按榜单排名先后取舍，80(rank2) 先于 80(rank3)
	products := []*model.AnalyzedProduct{
		{Product: model.Product{Rank: 1}, Insight: model.Insight{MarketPotential: 70}},
		{Product: model.Product{Rank: 2}, Insight: model.Insight{MarketPotential: 80}},
		{Product: model.Product{Rank: 3}, Insight: model.Insight{MarketPotential: 80}},
		{Product: model.Product{Rank: 4}, Insight: model.Insight{MarketPotential: 60}},
		{Product: model.Product{Rank: 5}, Insight: model.Insight{MarketPotential: 90}},
	}

	top := a.RankTop(products, 3)
	require.Len(t, top, 3)
	assert.Equal(t, []int{5, 2, 3}, []int{top[0].Rank, top[1].Rank, top[2].Rank})
}

func TestRankTopDoesNotMutateInput(t *testing.T) {
	a := newTestAnalyzer()

	products := []*model.AnalyzedProduct{
		{Product: model.Product{Rank: 1, Name: "low"}, Insight: model.Insight{MarketPotential: 10}},
		{Product: model.Product{Rank: 2, Name: "high"}, Insight: model.Insight{MarketPotential: 99}},
	}

	_ = a.RankTop(products, 1)
	assert.Equal(t, "low", products[0].Name)
	assert.Equal(t, "high", products[1].Name)
}

func TestRankTopShortInput(t *testing.T) {
	a := newTestAnalyzer()

	products := []*model.AnalyzedProduct{
		{Product: model.Product{Rank: 1, Name: "only"}, Insight: model.Insight{MarketPotential: 70}},
	}
	top := a.RankTop(products, 3)
	assert.Len(t, top, 1)
}

func TestRating(t *testing.T) {
	a := newTestAnalyzer()

	assert.Equal(t, "⭐⭐⭐⭐⭐", a.rating(90))
	assert.Equal(t, "⭐⭐⭐⭐", a.rating(85))
	assert.Equal(t, "⭐⭐⭐", a.rating(72))
	assert.Equal(t, "⭐⭐", a.rating(60))
	assert.Equal(t, "⭐", a.rating(12))
}
