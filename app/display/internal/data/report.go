package data

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/product_radar/app/display/internal/domain"
	"github.com/iWorld-y/product_radar/app/display/internal/repo"
)

type reportRepo struct {
	data *Data
	log  *log.Helper
}

func NewReportRepo(data *Data, logger log.Logger) repo.ReportRepo {
	return &reportRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *reportRepo) ListReports(ctx context.Context, page, pageSize int) ([]*domain.ReportSummary, int, error) {
	offset := (page - 1) * pageSize

	rows, err := r.data.db.QueryContext(ctx, `
		SELECT r.id, r.title, r.created_at,
		       COUNT(p.id) AS product_count,
		       COALESCE(SUM(p.votes), 0) AS total_votes,
		       COALESCE(AVG(p.market_potential), 0) AS avg_potential
		FROM report_runs r
		LEFT JOIN products p ON p.run_id = r.id
		GROUP BY r.id, r.title, r.created_at
		ORDER BY r.created_at DESC
		LIMIT $1 OFFSET $2`,
		pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var summaries []*domain.ReportSummary
	for rows.Next() {
		var (
			s            domain.ReportSummary
			createdAt    time.Time
			avgPotential float64
		)
		if err := rows.Scan(&s.ID, &s.Title, &createdAt, &s.ProductCount, &s.TotalVotes, &avgPotential); err != nil {
			return nil, 0, err
		}
		s.Date = createdAt.Format("2006-01-02 15:04:05")
		s.AveragePotential = int(avgPotential)
		summaries = append(summaries, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.data.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM report_runs`).Scan(&total); err != nil {
		return nil, 0, err
	}

	return summaries, total, nil
}

func (r *reportRepo) GetReportByID(ctx context.Context, id int) (*domain.GroupedReport, error) {
	grouped := &domain.GroupedReport{ID: id}

	err := r.data.db.QueryRowContext(ctx, `
		SELECT report_date, title FROM report_runs WHERE id = $1`,
		id).Scan(&grouped.Date, &grouped.Title)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("REPORT_NOT_FOUND", "report not found")
		}
		return nil, err
	}

	products, err := r.queryProducts(ctx, id)
	if err != nil {
		return nil, err
	}
	grouped.Products = products

	picks, err := r.queryTopPicks(ctx, id)
	if err != nil {
		return nil, err
	}
	grouped.TopPicks = picks

	return grouped, nil
}

func (r *reportRepo) queryProducts(ctx context.Context, runID int) ([]*domain.ProductView, error) {
	rows, err := r.data.db.QueryContext(ctx, `
		SELECT id, rank, name, tagline, description, votes, category,
		       image_url, website_url, core_feature, pain_point, target_audience,
		       business_model, pricing, strengths, weaknesses, opinion,
		       market_potential, rating
		FROM products
		WHERE run_id = $1
		ORDER BY rank ASC`,
		runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domain.ProductView
	index := make(map[int]*domain.ProductView)
	for rows.Next() {
		var p domain.ProductView
		if err := rows.Scan(
			&p.ID, &p.Rank, &p.Name, &p.Tagline, &p.Description, &p.Votes, &p.Category,
			&p.ImageURL, &p.WebsiteURL, &p.CoreFeature, &p.PainPoint, &p.TargetAudience,
			&p.BusinessModel, &p.Pricing, &p.Strengths, &p.Weaknesses, &p.Opinion,
			&p.MarketPotential, &p.Rating,
		); err != nil {
			return nil, err
		}
		products = append(products, &p)
		index[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	crows, err := r.data.db.QueryContext(ctx, `
		SELECT c.product_id, c.name
		FROM product_competitors c
		JOIN products p ON c.product_id = p.id
		WHERE p.run_id = $1
		ORDER BY c.id ASC`,
		runID)
	if err != nil {
		return nil, err
	}
	defer crows.Close()

	for crows.Next() {
		var (
			productID int
			name      string
		)
		if err := crows.Scan(&productID, &name); err != nil {
			return nil, err
		}
		if p, ok := index[productID]; ok {
			p.Competitors = append(p.Competitors, name)
		}
	}
	return products, crows.Err()
}

func (r *reportRepo) queryTopPicks(ctx context.Context, runID int) ([]*domain.TopPick, error) {
	rows, err := r.data.db.QueryContext(ctx, `
		SELECT t.position, p.name, p.rating, p.market_potential
		FROM top_picks t
		JOIN products p ON t.product_id = p.id
		WHERE t.run_id = $1
		ORDER BY t.position ASC`,
		runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var picks []*domain.TopPick
	for rows.Next() {
		var t domain.TopPick
		if err := rows.Scan(&t.Position, &t.Name, &t.Rating, &t.Score); err != nil {
			return nil, err
		}
		picks = append(picks, &t)
	}
	return picks, rows.Err()
}
