package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func ConnectPostgres(dsn string, log *logrus.Logger) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	log.Info("connected to PostgreSQL")

	if err := initSchema(pool); err != nil {
		return nil, err
	}
	log.Info("schema initialized")

	return pool, nil
}

// initSchema creates or updates the database schema
func initSchema(pool *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// USERS
	// -------------------------------
	userTableSQL := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := pool.Exec(ctx, userTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// DESTINATIONS
	// -------------------------------
	destinationsSQL := `
		CREATE TABLE IF NOT EXISTS destinations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			description_short TEXT NOT NULL DEFAULT '',
			image_cover VARCHAR(200) NOT NULL DEFAULT '',
			selection_mode VARCHAR(20) NOT NULL DEFAULT 'slider',
			points_budget INTEGER NOT NULL DEFAULT 0
		)
	`
	if _, err := pool.Exec(ctx, destinationsSQL); err != nil {
		return err
	}

	// -------------------------------
	// ACTIVITIES (one row per category)
	// -------------------------------
	activitiesSQL := `
		CREATE TABLE IF NOT EXISTS activities (
			id SERIAL PRIMARY KEY,
			destination_id INTEGER NOT NULL
				REFERENCES destinations(id) ON DELETE CASCADE,
			title VARCHAR(150) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			image_filename VARCHAR(200) NOT NULL DEFAULT '',
			slider_level_min INTEGER NOT NULL DEFAULT 0,
			slider_level_max INTEGER NOT NULL DEFAULT 5
		)
	`
	if _, err := pool.Exec(ctx, activitiesSQL); err != nil {
		return err
	}

	// -------------------------------
	// SUB-ITEMS (id scoped to the owning activity)
	// -------------------------------
	subItemsSQL := `
		CREATE TABLE IF NOT EXISTS sub_items (
			activity_id INTEGER NOT NULL
				REFERENCES activities(id) ON DELETE CASCADE,
			id INTEGER NOT NULL,
			title VARCHAR(150) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			points INTEGER NOT NULL DEFAULT 0,
			image_filename VARCHAR(200) NOT NULL DEFAULT '',
			default_selected BOOLEAN NOT NULL DEFAULT FALSE,
			mandatory BOOLEAN NOT NULL DEFAULT FALSE,
			from_parents BOOLEAN NOT NULL DEFAULT FALSE,
			from_friends BOOLEAN NOT NULL DEFAULT FALSE,
			is_spontaneous BOOLEAN NOT NULL DEFAULT FALSE,
			slider_level_min INTEGER NULL,
			slider_level_max INTEGER NULL,
			PRIMARY KEY (activity_id, id)
		)
	`
	if _, err := pool.Exec(ctx, subItemsSQL); err != nil {
		return err
	}

	return nil
}
