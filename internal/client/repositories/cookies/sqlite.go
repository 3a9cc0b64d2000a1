package cookies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/cpguide/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, name string) (*Cookie, error) {
	var (
		c        Cookie
		sameSite string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT name, value, secure, same_site, updated_at FROM cookies WHERE name = ?`, name,
	).Scan(&c.Name, &c.Value, &c.Secure, &sameSite, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cookie[%s]: %w", name, err)
	}
	c.SameSite = parseSameSite(sameSite)
	return &c, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, c Cookie) error {
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cookies (name, value, secure, same_site, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			value = excluded.value,
			secure = excluded.secure,
			same_site = excluded.same_site,
			updated_at = excluded.updated_at
	`, c.Name, c.Value, c.Secure, formatSameSite(c.SameSite), c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to set cookie[%s]: %w", c.Name, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cookies WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete cookie[%s]: %w", name, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cookies`)
	if err != nil {
		return fmt.Errorf("failed to clear cookies: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Cookie, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, value, secure, same_site, updated_at FROM cookies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cookies: %w", err)
	}
	defer rows.Close()

	result := make([]Cookie, 0)
	for rows.Next() {
		var (
			c        Cookie
			sameSite string
		)
		if err := rows.Scan(&c.Name, &c.Value, &c.Secure, &sameSite, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cookie row: %w", err)
		}
		c.SameSite = parseSameSite(sameSite)
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cookie rows: %w", err)
	}
	return result, nil
}

func formatSameSite(s http.SameSite) string {
	switch s {
	case http.SameSiteLaxMode:
		return "lax"
	case http.SameSiteNoneMode:
		return "none"
	case http.SameSiteDefaultMode:
		return "default"
	default:
		return "strict"
	}
}

func parseSameSite(s string) http.SameSite {
	switch s {
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	case "default":
		return http.SameSiteDefaultMode
	default:
		return http.SameSiteStrictMode
	}
}
