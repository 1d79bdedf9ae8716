package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS ratings (
		id SERIAL PRIMARY KEY,
		rating_title TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS genres (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS films (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description VARCHAR(200),
		release_date DATE,
		duration INTEGER NOT NULL,
		rating_id INTEGER REFERENCES ratings (id)
	)`,
	`CREATE TABLE IF NOT EXISTS film_genres (
		film_id INTEGER NOT NULL REFERENCES films (id) ON DELETE CASCADE,
		genre_id INTEGER NOT NULL REFERENCES genres (id),
		PRIMARY KEY (film_id, genre_id)
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		login TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		birthday DATE
	)`,
	`CREATE TABLE IF NOT EXISTS likes (
		film_id INTEGER NOT NULL REFERENCES films (id) ON DELETE CASCADE,
		user_id INTEGER NOT NULL REFERENCES users (id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (film_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS friends (
		user_id INTEGER NOT NULL REFERENCES users (id),
		friend_id INTEGER NOT NULL REFERENCES users (id),
		request_status BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, friend_id),
		CHECK (user_id <> friend_id)
	)`,
}

// Reference rows are static: the application only ever reads them.
var (
	seedGenres = map[int]string{
		1: "Comedy",
		2: "Drama",
		3: "Cartoon",
		4: "Thriller",
		5: "Documentary",
		6: "Action",
	}
	seedRatings = map[int]string{
		1: "G",
		2: "PG",
		3: "PG-13",
		4: "R",
		5: "NC-17",
	}
)

// EnsureSchema creates the tables if they do not exist yet and seeds the
// genre and MPA reference rows. Idempotent, so it runs on every startup.
func EnsureSchema(ctx context.Context, db *sqlx.DB, logger *slog.Logger) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	for id, name := range seedGenres {
		_, err := db.ExecContext(ctx,
			`INSERT INTO genres (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, id, name)
		if err != nil {
			return fmt.Errorf("failed to seed genre %q: %w", name, err)
		}
	}
	for id, title := range seedRatings {
		_, err := db.ExecContext(ctx,
			`INSERT INTO ratings (id, rating_title) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, id, title)
		if err != nil {
			return fmt.Errorf("failed to seed rating %q: %w", title, err)
		}
	}
	logger.InfoContext(ctx, "Database schema ensured",
		slog.Int("genres", len(seedGenres)), slog.Int("ratings", len(seedRatings)))
	return nil
}
