package report

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/iWorld-y/product_radar/app/product_radar/pkg/model"
)

// Render 将一次分析运行渲染为 Markdown 日报。
// 对同一 Report 输出完全一致，渲染层不引入时间以外的任何状态。
func Render(r *model.Report) (string, error) {
	funcs := template.FuncMap{
		"join":  strings.Join,
		"medal": medal,
		"add":   func(a, b int) int { return a + b },
		"pct":   votePercent,
	}

	t, err := template.New("daily").Funcs(funcs).Parse(markdownTpl)
	if err != nil {
		return "", fmt.Errorf("解析报告模板失败: %w", err)
	}

	data := struct {
		*model.Report
		MaxVotes int
	}{Report: r, MaxVotes: maxVotes(r)}

	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("渲染报告失败: %w", err)
	}
	return sb.String(), nil
}

func medal(i int) string {
	medals := []string{"🥇", "🥈", "🥉"}
	if i < len(medals) {
		return medals[i]
	}
	return fmt.Sprintf("第%d名", i+1)
}

func maxVotes(r *model.Report) int {
	max := 1
	for _, p := range r.Products {
		if p.Votes > max {
			max = p.Votes
		}
	}
	return max
}

func votePercent(votes, max int) string {
	if max <= 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(votes)/float64(max)*100)
}

const markdownTpl = `# 📊 Product Hunt日报 {{.Date}}

---

## 📋 报告概览

- **📅 分析日期**: {{.Date}}
- **🔢 产品数量**: {{len .Products}}个创新产品
- **👍 总投票数**: {{.TotalVotes}}票
- **📊 平均投票**: {{.AvgVotes}}票/产品
- **🏷️ 产品类别**: {{len .CategoryCount}}个主要类别
- **🌐 数据来源**: decohack.com Product Hunt每日榜单
- **🧠 分析方法**: 关键词规则分析

> **💡 报告说明**: 本报告基于Product Hunt每日热门榜单进行分析，为每个产品提供市场洞察和前景评估。

---

## 🏆 今日榜单前三名
{{range $i, $p := .Products}}{{if lt $i 3}}
### {{medal $i}} 第{{add $i 1}}名: {{$p.Name}}

| 项目 | 详情 |
|------|------|
| **投票数** | {{$p.Votes}}票 |
| **产品类别** | {{$p.Category}} |
| **标语** | {{$p.Tagline}} |
| **官网** | [访问网站]({{$p.WebsiteURL}}) |
| **专家评级** | {{$p.Rating}} ({{$p.MarketPotential}}/100) |

#### 💡 产品描述
{{if $p.Description}}{{$p.Description}}{{else}}暂无详细描述{{end}}

#### 🎯 核心功能
{{$p.CoreFeature}}

#### ⚡ 解决痛点
{{$p.PainPoint}}

#### 👥 目标受众
{{$p.TargetAudience}}

#### 🏢 商业模式
{{$p.BusinessModel}}

#### 💰 定价策略
{{$p.Pricing}}

#### ⭐ 产品优势
{{$p.Strengths}}

#### ⚠️ 潜在挑战
{{$p.Weaknesses}}

#### ⚔️ 竞争分析
**主要竞争对手**: {{join $p.Competitors ", "}}

---
{{end}}{{end}}

## 📋 完整产品清单

| 排名 | 产品名称 | 投票数 | 类别 | 专家评级 | 市场潜力 |
|------|----------|--------|------|----------|----------|
{{range .Products}}| #{{.Rank}} | {{.Name}} | {{.Votes}}票 | {{.Category}} | {{.Rating}} | {{.MarketPotential}}/100 |
{{end}}
---

## 🌟 最具前景产品TOP{{len .Top}}

基于**市场潜力综合评分**，以下{{len .Top}}个产品最具投资价值：
{{$max := .MaxVotes}}{{range $i, $p := .Top}}
### {{add $i 1}}. {{$p.Name}}

**🏆 投资推荐等级** {{$p.Rating}}

#### 📈 投资亮点
- **市场潜力评分**: {{$p.MarketPotential}}/100
- **投票表现**: {{$p.Votes}}票，市场认可度{{pct $p.Votes $max}}%
- **类别优势**: {{$p.Category}}赛道前景广阔

#### 🎯 核心价值主张
{{$p.CoreFeature}}

#### 💼 商业模式评估
{{$p.BusinessModel}}

#### 📝 点评
{{$p.Opinion}}

---
{{end}}

## 📈 市场趋势洞察

### 🎯 产品类别分布
{{range .CategoryCount}}
- **{{.Name}}**: {{.Count}}个产品
{{- end}}

### 📊 评分体系说明

- **市场潜力评分** (0-100分): 基于投票表现、类别优势、竞争格局、描述质量的综合评估
- **专家评级** (⭐): 按市场潜力评分换算的星级
- **类别分析**: 根据产品名称与描述的关键词匹配分类

> **📋 免责声明**: 本报告仅基于公开信息进行规则化分析，不构成投资建议。
`
