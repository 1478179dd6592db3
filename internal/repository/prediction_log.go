package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"earnershub/internal/models"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

//go:embed migrations
var migrationsFS embed.FS

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know by default.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// PredictionLog stores an audit trail of classifications
type PredictionLog struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewPredictionLog opens the audit database and applies its migrations.
// driver is "sqlite" or "postgres"; dsn is a file path or a connection URL.
func NewPredictionLog(driver, dsn string, logger *zap.Logger) (*PredictionLog, error) {
	if driver != "sqlite" && driver != "postgres" {
		return nil, fmt.Errorf("unsupported prediction log driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log := &PredictionLog{db: db, logger: logger}
	if err := log.migrate(driver); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Prediction log initialized", zap.String("driver", driver))
	return log, nil
}

func (l *PredictionLog) migrate(driver string) error {
	source, err := iofs.New(migrationsFS, "migrations/"+driver)
	if err != nil {
		return err
	}

	var instance database.Driver
	switch driver {
	case "sqlite":
		instance, err = migratesqlite.WithInstance(l.db.DB, &migratesqlite.Config{})
	case "postgres":
		instance, err = postgres.WithInstance(l.db.DB, &postgres.Config{})
	}
	if err != nil {
		return fmt.Errorf("couldn't get database instance for running migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, instance)
	if err != nil {
		return fmt.Errorf("couldn't create migrate instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("couldn't run database migration: %w", err)
	}
	return nil
}

// Record saves a single prediction
func (l *PredictionLog) Record(ctx context.Context, rec *models.PredictionRecord) error {
	query := `
		INSERT INTO predictions (
			id, request_id, text, label, persisted, training_rows, vocabulary_size, created_at
		) VALUES (
			:id, :request_id, :text, :label, :persisted, :training_rows, :vocabulary_size, :created_at
		)
	`
	if _, err := l.db.NamedExecContext(ctx, query, rec); err != nil {
		return fmt.Errorf("failed to save prediction: %w", err)
	}
	return nil
}

// Latest returns up to limit predictions, newest first
func (l *PredictionLog) Latest(ctx context.Context, limit int) ([]models.PredictionRecord, error) {
	query := l.db.Rebind(`
		SELECT id, request_id, text, label, persisted, training_rows, vocabulary_size, created_at
		FROM predictions
		ORDER BY created_at DESC
		LIMIT ?
	`)

	records := []models.PredictionRecord{}
	if err := l.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	return records, nil
}

// LabelCounts returns how many predictions were made per label
func (l *PredictionLog) LabelCounts(ctx context.Context) (map[string]int, error) {
	rows, err := l.db.QueryxContext(ctx, `SELECT label, COUNT(*) FROM predictions GROUP BY label`)
	if err != nil {
		return nil, fmt.Errorf("failed to count predictions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, err
		}
		counts[label] = count
	}
	return counts, rows.Err()
}

// Close closes the database connection
func (l *PredictionLog) Close() error {
	return l.db.Close()
}
