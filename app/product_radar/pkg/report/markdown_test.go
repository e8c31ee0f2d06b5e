package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/product_radar/app/product_radar/pkg/model"
)

func sampleReport() *model.Report {
	products := []*model.AnalyzedProduct{
		{
			Product: model.Product{Rank: 1, Name: "Claude 3.5 Sonnet", Tagline: "下一代AI助手", Votes: 523, WebsiteURL: "https://claude.ai"},
			Insight: model.Insight{
				Category: "AI驱动工具", CoreFeature: "AI驱动的智能化功能", PainPoint: "解决效率低下的问题",
				TargetAudience: "AI技术人员", Competitors: []string{"ChatGPT", "Bard"},
				BusinessModel: "订阅制SaaS模式", Pricing: "分层定价", Strengths: "技术先进性",
				Weaknesses: "计算资源消耗大", Opinion: "建议重点关注", MarketPotential: 90, Rating: "⭐⭐⭐⭐⭐",
			},
		},
		{
			Product: model.Product{Rank: 2, Name: "Linear", Tagline: "优雅高效的协作平台", Votes: 412, WebsiteURL: "https://linear.app"},
			Insight: model.Insight{
				Category: "项目管理工具", CoreFeature: "任务管理", PainPoint: "项目管理分散",
				TargetAudience: "项目经理", Competitors: []string{"Notion"},
				BusinessModel: "freemium模式", Pricing: "标准定价", Strengths: "用户认可度高",
				Weaknesses: "市场教育仍有空间", Opinion: "持续观察", MarketPotential: 85, Rating: "⭐⭐⭐⭐",
			},
		},
	}

	return &model.Report{
		Date:     "2025-11-03",
		Products: products,
		Top:      []*model.AnalyzedProduct{products[0], products[1]},
	}
}

func TestRenderSections(t *testing.T) {
	text, err := Render(sampleReport())
	require.NoError(t, err)

	assert.Contains(t, text, "# 📊 Product Hunt日报 2025-11-03")
	assert.Contains(t, text, "## 📋 报告概览")
	assert.Contains(t, text, "## 🏆 今日榜单前三名")
	assert.Contains(t, text, "## 📋 完整产品清单")
	assert.Contains(t, text, "## 🌟 最具前景产品TOP2")
	assert.Contains(t, text, "### 🎯 产品类别分布")
	assert.Contains(t, text, "免责声明")
}

func TestRenderProductDetails(t *testing.T) {
	text, err := Render(sampleReport())
	require.NoError(t, err)

	assert.Contains(t, text, "🥇 第1名: Claude 3.5 Sonnet")
	assert.Contains(t, text, "🥈 第2名: Linear")
	assert.Contains(t, text, "| **投票数** | 523票 |")
	assert.Contains(t, text, "**主要竞争对手**: ChatGPT, Bard")
	// 描述缺失时渲染占位文案
	assert.Contains(t, text, "暂无详细描述")
	assert.Contains(t, text, "| #1 | Claude 3.5 Sonnet | 523票 | AI驱动工具 | ⭐⭐⭐⭐⭐ | 90/100 |")
	assert.Contains(t, text, "- **AI驱动工具**: 1个产品")
	// 总票数与平均票数
	assert.Contains(t, text, "935票")
	assert.Contains(t, text, "467票/产品")
}

func TestRenderDeterministic(t *testing.T) {
	first, err := Render(sampleReport())
	require.NoError(t, err)
	second, err := Render(sampleReport())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderVotePercent(t *testing.T) {
	text, err := Render(sampleReport())
	require.NoError(t, err)

	// 最高票产品的市场认可度为 100%
	assert.Contains(t, text, "市场认可度100.0%")
	assert.Contains(t, text, "市场认可度78.8%")
}

func TestMedal(t *testing.T) {
	assert.Equal(t, "🥇", medal(0))
	assert.Equal(t, "🥉", medal(2))
	assert.Equal(t, "第4名", medal(3))
}
