// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store persists generation history records in PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sitesmith/internal/models"
)

// ErrNotFound is returned when a generation record does not exist.
var ErrNotFound = errors.New("generation not found")

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// GenerationStore handles all generation-related database operations.
type GenerationStore struct {
	db *sql.DB
}

// NewGenerationStore creates a new GenerationStore with the given database connection.
func NewGenerationStore(db *sql.DB) *GenerationStore {
	return &GenerationStore{db: db}
}

const generationColumns = `id, prompt, website_type, theme, status, title,
	parse_stage, error, published_url, created_at, updated_at`

// Save inserts the record or updates it in place when the id already exists.
// created_at is never overwritten and updated_at is set by the database.
func (s *GenerationStore) Save(ctx context.Context, g *models.Generation) error {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO generations (id, prompt, website_type, theme, status, title,
			parse_stage, error, published_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
		ON CONFLICT (id) DO UPDATE SET
			theme = EXCLUDED.theme,
			status = EXCLUDED.status,
			title = EXCLUDED.title,
			parse_stage = EXCLUDED.parse_stage,
			error = EXCLUDED.error,
			published_url = CASE WHEN EXCLUDED.published_url = '' THEN generations.published_url
				ELSE EXCLUDED.published_url END,
			updated_at = now()
		RETURNING created_at, updated_at
	`,
		g.ID, g.Prompt, g.WebsiteType, g.Theme, string(g.Status), g.Title,
		g.ParseStage, g.Error, g.PublishedURL, g.CreatedAt,
	).Scan(&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save generation: %w", err)
	}
	return nil
}

// Get retrieves a generation by id.
func (s *GenerationStore) Get(ctx context.Context, id string) (*models.Generation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+generationColumns+` FROM generations WHERE id::text = $1`, id)

	g, err := scanGeneration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get generation: %w", err)
	}
	return g, nil
}

// List returns the most recent generations, newest first.
func (s *GenerationStore) List(ctx context.Context, limit int) ([]models.Generation, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+generationColumns+` FROM generations ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer rows.Close()

	var out []models.Generation
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan generation: %w", err)
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

// SetPublishedURL records where the generated site was published.
func (s *GenerationStore) SetPublishedURL(ctx context.Context, id, url string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE generations SET published_url = $2, updated_at = now() WHERE id::text = $1`, id, url)
	if err != nil {
		return fmt.Errorf("set published url: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set published url: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a generation record.
func (s *GenerationStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM generations WHERE id::text = $1`, id)
	if err != nil {
		return fmt.Errorf("delete generation: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGeneration(r rowScanner) (*models.Generation, error) {
	var g models.Generation
	var status string
	if err := r.Scan(
		&g.ID, &g.Prompt, &g.WebsiteType, &g.Theme, &status, &g.Title,
		&g.ParseStage, &g.Error, &g.PublishedURL, &g.CreatedAt, &g.UpdatedAt,
	); err != nil {
		return nil, err
	}
	g.Status = models.GenerationStatus(status)
	return &g, nil
}
