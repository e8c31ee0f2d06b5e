package domain

// ProductView 产品详情领域对象
type ProductView struct {
	ID              int      `json:"id"`
	Rank            int      `json:"rank"`
	Name            string   `json:"name"`
	Tagline         string   `json:"tagline"`
	Description     string   `json:"description"`
	Votes           int      `json:"votes"`
	Category        string   `json:"category"`
	ImageURL        string   `json:"image_url"`
	WebsiteURL      string   `json:"website_url"`
	CoreFeature     string   `json:"core_feature"`
	PainPoint       string   `json:"pain_point"`
	TargetAudience  string   `json:"target_audience"`
	Competitors     []string `json:"competitors"`
	BusinessModel   string   `json:"business_model"`
	Pricing         string   `json:"pricing"`
	Strengths       string   `json:"strengths"`
	Weaknesses      string   `json:"weaknesses"`
	Opinion         string   `json:"opinion"`
	MarketPotential int      `json:"market_potential"`
	Rating          string   `json:"rating"`
}

// ReportSummary 报表摘要信息
type ReportSummary struct {
	ID               int    `json:"id"`
	Title            string `json:"title"`
	Date             string `json:"date"`
	ProductCount     int    `json:"product_count"`
	TotalVotes       int    `json:"total_votes"`
	AveragePotential int    `json:"average_potential"`
}

// TopPick 最具前景产品条目
type TopPick struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Rating   string `json:"rating"`
	Score    int    `json:"score"`
}

// GroupedReport 报表详情
type GroupedReport struct {
	ID       int            `json:"id"`
	Date     string         `json:"date"`
	Title    string         `json:"title"`
	Products []*ProductView `json:"products"`
	TopPicks []*TopPick     `json:"top_picks"`
}
