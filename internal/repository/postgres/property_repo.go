// internal/repository/postgres/property_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"realty-service/internal/domain/property"
	xerrors "realty-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

const propertyColumns = `id, title, description, price, location, property_type,
	beds, baths, area, images, is_active, status, created_at, updated_at`

type PropertyRepository struct {
	db DBTX
}

func NewPropertyRepository(db DBTX) *PropertyRepository {
	return &PropertyRepository{db: db}
}

var _ property.Repository = (*PropertyRepository)(nil)

func scanProperty(row pgx.Row) (*property.Property, error) {
	var p property.Property
	var images []string

	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Location, &p.PropertyType,
		&p.Beds, &p.Baths, &p.Area, pq.Array(&images), &p.IsActive, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	p.Images = pq.StringArray(images)
	return &p, nil
}

// Create inserts a listing
func (r *PropertyRepository) Create(ctx context.Context, p *property.Property) error {
	query := `
		INSERT INTO properties (
			title, description, price, location, property_type,
			beds, baths, area, images, is_active, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		p.Title, p.Description, p.Price, p.Location, p.PropertyType,
		p.Beds, p.Baths, p.Area, pq.Array(p.Images), p.IsActive, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

// Update replaces every editable field of p
func (r *PropertyRepository) Update(ctx context.Context, p *property.Property) error {
	query := `
		UPDATE properties
		SET title = $1, description = $2, price = $3, location = $4,
		    property_type = $5, beds = $6, baths = $7, area = $8,
		    images = $9, is_active = $10, status = $11, updated_at = NOW()
		WHERE id = $12
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		p.Title, p.Description, p.Price, p.Location, p.PropertyType,
		p.Beds, p.Baths, p.Area, pq.Array(p.Images), p.IsActive, p.Status, p.ID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}
	return nil
}

func (r *PropertyRepository) SetActive(ctx context.Context, id int64, active bool) (*property.Property, error) {
	query := `
		UPDATE properties SET is_active = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + propertyColumns

	p, err := scanProperty(r.db.QueryRow(ctx, query, id, active))
	if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to set property visibility: %w", err)
	}
	return p, err
}

func (r *PropertyRepository) FindByID(ctx context.Context, id int64) (*property.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	p, err := scanProperty(r.db.QueryRow(ctx, query, id))
	if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	return p, err
}

// List returns listings newest first
func (r *PropertyRepository) List(ctx context.Context, f property.Filter) ([]*property.Property, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if f.ActiveOnly {
		conditions = append(conditions, "is_active = TRUE")
	}

	if f.Title != "" {
		conditions = append(conditions, fmt.Sprintf("title ILIKE $%d", argPos))
		args = append(args, "%"+escapeLike(f.Title)+"%")
		argPos++
	}

	if f.Location != "" {
		conditions = append(conditions, fmt.Sprintf("location ILIKE $%d", argPos))
		args = append(args, "%"+escapeLike(f.Location)+"%")
		argPos++
	}

	if f.Type != "" {
		conditions = append(conditions, fmt.Sprintf("property_type = $%d", argPos))
		args = append(args, f.Type)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s FROM properties
		%s
		ORDER BY created_at DESC, id DESC
	`, propertyColumns, whereClause)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	properties := []*property.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *PropertyRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM properties WHERE is_active = TRUE`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active properties: %w", err)
	}
	return count, nil
}

func (r *PropertyRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM properties WHERE status = $1`, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return count, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
