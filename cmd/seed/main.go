package main

import (
	"database/sql"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/educore/campus-backend/config"
	"github.com/educore/campus-backend/pkg/helpers"
)

// Seeds an admin account (with its wallet) and a handful of catalog
// courses. Safe to run repeatedly: every insert is an upsert keyed on
// the natural unique column.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := seedAdmin(db); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if err := seedCourses(db); err != nil {
		log.Fatalf("seed courses: %v", err)
	}
	log.Println("seed complete")
}

func seedAdmin(db *sql.DB) error {
	email := envOr("SEED_ADMIN_EMAIL", "admin@example.com")
	password := envOr("SEED_ADMIN_PASSWORD", "changeme-now")

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var id string
	err = tx.QueryRow(`
		INSERT INTO users (name, username, email, password, admin)
		VALUES ($1, $2, $3, $4, true)
		ON CONFLICT (email) DO UPDATE SET admin = true
		RETURNING id`,
		"Administrator", "admin", email, hash,
	).Scan(&id)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`
		INSERT INTO wallets (user_id, balance)
		VALUES ($1, 0)
		ON CONFLICT (user_id) DO NOTHING`, id,
	); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Printf("admin ready: %s", email)
	return nil
}

func seedCourses(db *sql.DB) error {
	courses := []struct {
		title, description string
		price              float64
	}{
		{"Intro to Go", "Build your first HTTP services in Go.", 49000},
		{"PostgreSQL Deep Dive", "Schema design, indexing, and transactions.", 79000},
		{"Cloud Storage Patterns", "Working with object stores in production.", 59000},
	}
	for _, c := range courses {
		if _, err := db.Exec(`
			INSERT INTO courses (title, description, price)
			VALUES ($1, $2, $3)
			ON CONFLICT (title) DO NOTHING`,
			c.title, c.description, c.price,
		); err != nil {
			return err
		}
	}
	log.Printf("seeded %d courses", len(courses))
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
