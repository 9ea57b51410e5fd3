// Package store is the SQLite-backed catalogue behind the skills and
// experience sections.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/Zachkp/portfolio/internal/content"
)

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// a single connection keeps :memory: databases coherent
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS skills (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			proficiency INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS experience (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			company TEXT NOT NULL,
			location TEXT,
			start_date TEXT NOT NULL,
			end_date TEXT,
			description TEXT NOT NULL,
			skills TEXT,
			current INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_skills_category ON skills(category)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("store: migrate: %w", err)
		}
	}
	return nil
}

// Seed loads the catalogue when the skills table is empty. It reports whether
// anything was written.
func (s *Store) Seed(ctx context.Context, c *content.Catalogue) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM skills`).Scan(&n); err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	for i, sk := range c.Skills {
		id := sk.ID
		if id == 0 {
			id = int64(i + 1)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO skills (id, name, category, proficiency) VALUES (?, ?, ?, ?)`,
			id, sk.Name, sk.Category, sk.Proficiency); err != nil {
			return false, fmt.Errorf("store: seed skill %q: %w", sk.Name, err)
		}
	}
	for _, e := range c.Experience {
		skills, err := json.Marshal(e.Skills)
		if err != nil {
			return false, err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO experience (title, company, location, start_date, end_date, description, skills, current)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.Title, e.Company, e.Location, e.StartDate, e.EndDate, e.Description, string(skills), boolInt(e.Current)); err != nil {
			return false, fmt.Errorf("store: seed experience %q: %w", e.Title, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	log.Info().Int("skills", len(c.Skills)).Int("experience", len(c.Experience)).Msg("catalogue seeded")
	return true, nil
}

func (s *Store) ListSkills(ctx context.Context) ([]content.Skill, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, category, proficiency FROM skills ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skills []content.Skill
	for rows.Next() {
		var sk content.Skill
		if err := rows.Scan(&sk.ID, &sk.Name, &sk.Category, &sk.Proficiency); err != nil {
			return nil, err
		}
		skills = append(skills, sk)
	}
	return skills, rows.Err()
}

// ListExperience returns current roles first, then newest start date first.
func (s *Store) ListExperience(ctx context.Context) ([]content.Experience, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, company, COALESCE(location, ''), start_date, COALESCE(end_date, ''),
			description, COALESCE(skills, ''), current
		FROM experience
		ORDER BY current DESC, start_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []content.Experience
	for rows.Next() {
		var e content.Experience
		var skills string
		if err := rows.Scan(&e.ID, &e.Title, &e.Company, &e.Location, &e.StartDate, &e.EndDate,
			&e.Description, &skills, &e.Current); err != nil {
			return nil, err
		}
		if skills != "" {
			if err := json.Unmarshal([]byte(skills), &e.Skills); err != nil {
				return nil, fmt.Errorf("store: experience %d skills: %w", e.ID, err)
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ content.Provider = (*Store)(nil)
