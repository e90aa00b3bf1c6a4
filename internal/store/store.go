package store

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"storefront/internal/catalog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// NewStoreFromDB wraps an existing connection.
func NewStoreFromDB(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the storefront tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// categoryRow mirrors storefront_categories.
type categoryRow struct {
	Slug        string `db:"slug"`
	Name        string `db:"name"`
	MediaKind   string `db:"media_kind"`
	MediaValue  string `db:"media_value"`
	HeroImage   string `db:"hero_image"`
	Description string `db:"description"`
}

const listCategoriesQuery = `
	SELECT slug, name, media_kind, media_value, hero_image, description
	FROM storefront_categories
	WHERE active = TRUE
	ORDER BY position, slug`

// ListCategories loads the active merchandising categories in display order.
func (s *Store) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var rows []categoryRow
	if err := s.db.SelectContext(ctx, &rows, listCategoriesQuery); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	out := make([]catalog.Category, 0, len(rows))
	for _, r := range rows {
		media, err := toMedia(r.MediaKind, r.MediaValue)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", r.Slug, err)
		}
		out = append(out, catalog.Category{
			Name:        r.Name,
			Slug:        r.Slug,
			Media:       media,
			HeroImage:   r.HeroImage,
			Description: r.Description,
		})
	}
	return out, nil
}

// UpsertCategory writes one category at the given display position.
func (s *Store) UpsertCategory(ctx context.Context, position int, c catalog.Category) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO storefront_categories (slug, name, media_kind, media_value, hero_image, description, position, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			media_kind = EXCLUDED.media_kind,
			media_value = EXCLUDED.media_value,
			hero_image = EXCLUDED.hero_image,
			description = EXCLUDED.description,
			position = EXCLUDED.position,
			updated_at = NOW()`,
		c.Slug, c.Name, string(c.Media.Kind), c.Media.Value, c.HeroImage, c.Description, position)
	return err
}

// SeedCategories inserts the given categories when the table is empty.
func (s *Store) SeedCategories(ctx context.Context, categories []catalog.Category) (bool, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM storefront_categories"); err != nil {
		return false, fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	for i, c := range categories {
		if err := s.UpsertCategory(ctx, i, c); err != nil {
			return false, fmt.Errorf("failed to seed category %s: %w", c.Slug, err)
		}
	}
	return true, nil
}

func toMedia(kind, value string) (catalog.Media, error) {
	switch catalog.MediaKind(kind) {
	case catalog.MediaImage:
		return catalog.Image(value), nil
	case catalog.MediaIcon:
		return catalog.Icon(value), nil
	default:
		return catalog.Media{}, fmt.Errorf("unknown media kind %q", kind)
	}
}
