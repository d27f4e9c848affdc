package storage

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/lcalzada-xor/riskmap/internal/core/domain"
	"github.com/lcalzada-xor/riskmap/internal/core/ports"
)

// SQLiteAdapter implements ports.AssessmentStore using GORM and SQLite.
type SQLiteAdapter struct {
	db *gorm.DB
}

// AssessmentModel is the GORM model for one stored run. The full document
// is kept as a JSON blob; the indexed columns exist for listing and for the
// historical aggregates the predictor consumes.
type AssessmentModel struct {
	ID          string `gorm:"primaryKey"`
	Target      string
	GeneratedAt time.Time `gorm:"index"`
	RiskCount   int
	Treatable   int
	MeanCVSS    float64
	Document    []byte
}

// RiskModel is one evaluated risk row, queryable independently of the blob.
type RiskModel struct {
	ID           string `gorm:"primaryKey"`
	AssessmentID string `gorm:"index"`
	Event        string `gorm:"index"`
	Source       string
	Severity     string
	CVSS         float64
	Level        string `gorm:"index"`
	Acceptable   bool
	Priority     int
	Score        float64
	Status       string
}

// NewSQLiteAdapter opens the database, enables otel tracing on it and
// migrates the schema.
func NewSQLiteAdapter(path string) (*SQLiteAdapter, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, fmt.Errorf("enable db tracing: %w", err)
	}

	if err := db.AutoMigrate(&AssessmentModel{}, &RiskModel{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	db.Exec("CREATE INDEX IF NOT EXISTS idx_risks_cvss ON risk_models(cvss)")

	return &SQLiteAdapter{db: db}, nil
}

// SaveAssessment persists the document and its evaluated risk rows.
func (a *SQLiteAdapter) SaveAssessment(ctx context.Context, doc *domain.AssessmentDocument) error {
	model, riskRows, err := toModels(doc)
	if err != nil {
		return err
	}

	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("save assessment: %w", err)
		}
		if len(riskRows) > 0 {
			if err := tx.Create(&riskRows).Error; err != nil {
				return fmt.Errorf("save risks: %w", err)
			}
		}
		return nil
	})
}

// GetAssessment loads one stored document by id.
func (a *SQLiteAdapter) GetAssessment(ctx context.Context, id string) (*domain.AssessmentDocument, error) {
	var model AssessmentModel
	if err := a.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("load assessment %s: %w", id, err)
	}
	return fromModel(&model)
}

// ListAssessments returns the most recent runs, newest first.
func (a *SQLiteAdapter) ListAssessments(ctx context.Context, limit int) ([]ports.AssessmentSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	var models []AssessmentModel
	err := a.db.WithContext(ctx).
		Select("id", "target", "generated_at", "risk_count", "mean_cvss").
		Order("generated_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}

	summaries := make([]ports.AssessmentSummary, 0, len(models))
	for _, m := range models {
		summaries = append(summaries, ports.AssessmentSummary{
			ID:          m.ID,
			Target:      m.Target,
			GeneratedAt: m.GeneratedAt.Format(time.RFC3339),
			RiskCount:   m.RiskCount,
			MeanCVSS:    m.MeanCVSS,
		})
	}
	return summaries, nil
}

// HistoricalMeanCVSS averages the per-run mean CVSS over stored history.
// Runs without risks are excluded so empty scans do not drag the trend.
func (a *SQLiteAdapter) HistoricalMeanCVSS(ctx context.Context) (float64, bool, error) {
	var row struct {
		Mean  float64
		Count int64
	}
	err := a.db.WithContext(ctx).
		Model(&AssessmentModel{}).
		Select("AVG(mean_cvss) AS mean, COUNT(*) AS count").
		Where("risk_count > 0").
		Scan(&row).Error
	if err != nil {
		return 0, false, fmt.Errorf("historical mean: %w", err)
	}
	if row.Count == 0 {
		return 0, false, nil
	}
	return row.Mean, true, nil
}

// Close closes the underlying connection.
func (a *SQLiteAdapter) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
