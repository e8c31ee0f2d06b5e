package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func reportWithCategories(categories ...string) *Report {
	r := &Report{}
	for i, c := range categories {
		r.Products = append(r.Products, &AnalyzedProduct{
			Product: Product{Rank: i + 1, Votes: (i + 1) * 100},
			Insight: Insight{Category: c},
		})
	}
	return r
}

func TestReportVotes(t *testing.T) {
	r := reportWithCategories("AI驱动工具", "其他工具", "其他工具")

	assert.Equal(t, 600, r.TotalVotes())
	assert.Equal(t, 200, r.AvgVotes())
}

func TestReportVotesEmpty(t *testing.T) {
	r := &Report{}
	assert.Zero(t, r.TotalVotes())
	assert.Zero(t, r.AvgVotes())
}

func TestCategoryCountOrder(t *testing.T) {
	r := reportWithCategories("其他工具", "AI驱动工具", "AI驱动工具", "AI驱动工具", "设计创意工具", "设计创意工具")

	stats := r.CategoryCount()
	assert.Equal(t, []CategoryStat{
		{Name: "AI驱动工具", Count: 3},
		{Name: "设计创意工具", Count: 2},
		{Name: "其他工具", Count: 1},
	}, stats)
}

func TestCategoryCountStableOnTies(t *testing.T) {
	// 数量相同的分类保持首次出现顺序
	r := reportWithCategories("其他工具", "AI驱动工具", "设计创意工具")

	stats := r.CategoryCount()
	assert.Equal(t, "其他工具", stats[0].Name)
	assert.Equal(t, "AI驱动工具", stats[1].Name)
	assert.Equal(t, "设计创意工具", stats[2].Name)
}
