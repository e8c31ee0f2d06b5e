package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/iWorld-y/product_radar/app/product_radar/pkg/config"
	"github.com/iWorld-y/product_radar/app/product_radar/pkg/model"
)

// Storage 分析结果的 Postgres 持久化层
type Storage struct {
	db *sql.DB
}

func NewStorage(cfg config.DBConfig) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS report_runs (
			id SERIAL PRIMARY KEY,
			report_date TEXT NOT NULL,
			title TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			run_id INTEGER REFERENCES report_runs(id),
			rank INTEGER NOT NULL,
			name TEXT NOT NULL,
			tagline TEXT,
			description TEXT,
			votes INTEGER,
			category TEXT,
			image_url TEXT,
			website_url TEXT,
			core_feature TEXT,
			pain_point TEXT,
			target_audience TEXT,
			business_model TEXT,
			pricing TEXT,
			strengths TEXT,
			weaknesses TEXT,
			opinion TEXT,
			market_potential INTEGER,
			rating TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS product_competitors (
			id SERIAL PRIMARY KEY,
			product_id INTEGER REFERENCES products(id),
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS top_picks (
			id SERIAL PRIMARY KEY,
			run_id INTEGER REFERENCES report_runs(id),
			product_id INTEGER REFERENCES products(id),
			position INTEGER NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query %s: %w", query, err)
		}
	}

	return nil
}

// SaveRun 保存一次完整的分析运行，产品、竞品与前景榜单在同一事务内落库
func (s *Storage) SaveRun(report *model.Report) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var runID int
	title := fmt.Sprintf("Product Hunt日报 %s", report.Date)
	err = tx.QueryRow(`
		INSERT INTO report_runs (report_date, title)
		VALUES ($1, $2)
		RETURNING id`,
		report.Date, title).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert report run: %w", err)
	}

	productIDs := make(map[int]int, len(report.Products))
	for _, p := range report.Products {
		var productID int
		err = tx.QueryRow(`
			INSERT INTO products (
				run_id, rank, name, tagline, description, votes, category,
				image_url, website_url, core_feature, pain_point, target_audience,
				business_model, pricing, strengths, weaknesses, opinion,
				market_potential, rating
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
			RETURNING id`,
			runID, p.Rank, p.Name, p.Tagline, p.Description, p.Votes, p.Category,
			p.ImageURL, p.WebsiteURL, p.CoreFeature, p.PainPoint, p.TargetAudience,
			p.BusinessModel, p.Pricing, p.Strengths, p.Weaknesses, p.Opinion,
			p.MarketPotential, p.Rating).Scan(&productID)
		if err != nil {
			return 0, fmt.Errorf("failed to insert product: %w", err)
		}
		productIDs[p.Rank] = productID

		for _, competitor := range p.Competitors {
			_, err = tx.Exec(`
				INSERT INTO product_competitors (product_id, name)
				VALUES ($1, $2)`,
				productID, competitor)
			if err != nil {
				return 0, fmt.Errorf("failed to insert competitor: %w", err)
			}
		}
	}

	for i, p := range report.Top {
		_, err = tx.Exec(`
			INSERT INTO top_picks (run_id, product_id, position)
			VALUES ($1, $2, $3)`,
			runID, productIDs[p.Rank], i+1)
		if err != nil {
			return 0, fmt.Errorf("failed to insert top pick: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}
