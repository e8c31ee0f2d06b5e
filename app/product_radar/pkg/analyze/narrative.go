package analyze

import (
	"fmt"
	"strings"

	"github.com/iWorld-y/product_radar/app/product_radar/pkg/model"
)

// keywordRule 关键词与模板文案的有序配对，自上而下首个命中生效
type keywordRule struct {
	keywords []string
	text     string
}

// matchRule 在 name+description 的小写拼接上做子串匹配
func matchRule(p *model.Product, rules []keywordRule, fallback string) string {
	text := strings.ToLower(p.Name + " " + p.Description)
	for _, rule := range rules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.text
			}
		}
	}
	return fallback
}

var coreFeatureRules = []keywordRule{
	{[]string{"ai", "ml", "artificial intelligence"}, "AI驱动的智能化功能，能够自动处理复杂任务"},
	{[]string{"collaboration", "team", "sharing"}, "团队协作和实时共享功能"},
	{[]string{"automation", "workflow"}, "自动化工作流程和任务管理"},
	{[]string{"design", "creative"}, "创意设计和视觉表达功能"},
}

func (a *Analyzer) coreFeature(p *model.Product) string {
	return matchRule(p, coreFeatureRules, "核心功能聚焦于提升用户工作效率和体验")
}

var painPointRules = []keywordRule{
	{[]string{"ai", "artificial intelligence", "ml", "gpt", "claude"}, "解决传统方法效率低下、人工成本高的问题"},
	{[]string{"design", "figma", "sketch"}, "解决设计团队协作困难、版本管理复杂的痛点"},
	{[]string{"dev", "code", "git"}, "提升开发团队协作效率，简化代码管理流程"},
	{[]string{"project", "task", "management"}, "解决项目管理分散、团队沟通困难、进度跟踪不清晰的问题"},
	{[]string{"marketing", "seo", "content"}, "提升营销效果，简化内容创作流程，提高用户获取和留存率"},
}

func (a *Analyzer) painPoint(p *model.Product, category string) string {
	return matchRule(p, painPointRules, fmt.Sprintf("针对%s领域的特定需求痛点提供解决方案", category))
}

var audienceByCategory = map[string]string{
	"AI驱动工具":  "AI技术人员、产品经理、创新型企业家",
	"生产力增强器": "办公室职员、创业团队、远程工作者",
	"开发编程工具": "软件开发工程师、技术团队负责人、DevOps工程师",
	"设计创意工具": "UI/UX设计师、产品设计师、创意团队",
	"项目管理工具": "项目经理、敏捷教练、团队协调员",
	"营销推广工具": "市场营销人员、内容创作者、数字营销团队",
}

func (a *Analyzer) targetAudience(category string) string {
	if audience, ok := audienceByCategory[category]; ok {
		return audience
	}
	return "科技行业从业者、创新产品早期采用者"
}

var competitorsByCategory = map[string][]string{
	"AI驱动工具":  {"ChatGPT", "Claude", "GPT-4", "Bard"},
	"开发编程工具": {"GitHub", "GitLab", "Bitbucket", "SourceTree"},
	"设计创意工具": {"Figma", "Sketch", "Adobe XD", "Canva"},
	"项目管理工具": {"Notion", "Trello", "Asana", "Monday.com"},
	"生产力增强器": {"Slack", "Microsoft Teams", "Discord", "Zoom"},
}

// competitors 返回分类对应的主要竞品，副本返回避免调用方修改共享表
func (a *Analyzer) competitors(category string) []string {
	if names, ok := competitorsByCategory[category]; ok {
		return append([]string(nil), names...)
	}
	return []string{"竞品A", "竞品B", "竞品C"}
}

func (a *Analyzer) businessModel(category string) string {
	switch {
	case strings.Contains(category, "AI"):
		return "订阅制SaaS模式，提供不同功能层级"
	case category == "开发编程工具" || category == "项目管理工具":
		return "freemium模式，基础功能免费，高级功能付费"
	default:
		return "多元化商业模式，结合订阅制和一次性购买"
	}
}

// pricing 基于投票数和市场定位推断定价策略
func (a *Analyzer) pricing(votes int) string {
	switch {
	case votes > 400:
		return "市场接受度高，采用分层定价策略"
	case votes > 200:
		return "中等市场认可，采用标准定价"
	default:
		return "早期产品阶段，采用价值定价策略"
	}
}

func (a *Analyzer) strengths(p *model.Product, ins model.Insight) string {
	var strengths []string

	if strings.Contains(ins.Category, "AI") {
		strengths = append(strengths, "技术先进性和AI能力")
	}
	if p.Votes > 300 {
		strengths = append(strengths, "用户认可度高")
	}
	if len(ins.Competitors) > 0 {
		strengths = append(strengths, "竞争差异化明显")
	}

	if len(strengths) == 0 {
		strengths = []string{"产品定位清晰", "用户体验优良"}
	}
	return strings.Join(strengths, "、")
}

var weaknessByCategory = map[string]string{
	"AI驱动工具":  "计算资源消耗大，对数据质量要求高",
	"开发编程工具": "学习曲线较陡峭，需要团队适应时间",
	"设计创意工具": "功能复杂度高，新手用户门槛较高",
}

func (a *Analyzer) weaknesses(category string) string {
	const base = "作为新兴产品，在市场教育和生态系统建设方面仍有提升空间"

	if specific, ok := weaknessByCategory[category]; ok {
		return specific + "。" + base
	}
	return base
}

// opinion 生成点评文案，按评分档位选择结论
func (a *Analyzer) opinion(p *model.Product, ins *model.Insight) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s定位于%s赛道，面向%s。", p.Name, ins.Category, ins.TargetAudience)

	switch {
	case ins.MarketPotential >= 85:
		sb.WriteString("产品价值主张明确，市场验证充分，具备较强的付费转化潜力，建议重点关注其用户增长曲线和技术壁垒构建情况。")
	case ins.MarketPotential >= 70:
		sb.WriteString("产品具有明确的差异化优势，建议持续观察市场接受度和竞争格局变化。")
	default:
		sb.WriteString("产品尚处早期阶段，需要在市场验证中进一步明确商业变现路径，关注用户获取成本和生命周期价值。")
	}

	return sb.String()
}
