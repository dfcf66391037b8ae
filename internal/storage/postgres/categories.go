package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/pomolit/internal/models"
	"github.com/julianstephens/pomolit/internal/storage"
)

const categoryColumns = "id, name, color_key, target_minutes, created_at, deleted_at"

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

func (s *Store) AddCategory(category models.Category) error {
	_, err := s.db.Exec(`
		INSERT INTO categories (id, name, color_key, target_minutes, created_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, NULL)`,
		category.ID, category.Name, category.ColorKey, category.TargetMinutes, category.CreatedAt.UTC(),
	)
	return mapConstraintError(err)
}

func (s *Store) GetCategory(id string) (models.Category, error) {
	row := s.db.QueryRow("SELECT "+categoryColumns+" FROM categories WHERE id = $1 AND deleted_at IS NULL", id)
	return scanCategory(row)
}

func (s *Store) GetCategoryByName(name string) (models.Category, error) {
	row := s.db.QueryRow("SELECT "+categoryColumns+" FROM categories WHERE LOWER(name) = LOWER($1) AND deleted_at IS NULL", name)
	return scanCategory(row)
}

func (s *Store) GetAllCategories() ([]models.Category, error) {
	return s.queryCategories("SELECT " + categoryColumns + " FROM categories WHERE deleted_at IS NULL ORDER BY created_at, name")
}

func (s *Store) GetAllCategoriesIncludingDeleted() ([]models.Category, error) {
	return s.queryCategories("SELECT " + categoryColumns + " FROM categories ORDER BY created_at, name")
}

func (s *Store) queryCategories(query string) ([]models.Category, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Store) UpdateCategory(category models.Category) error {
	res, err := s.db.Exec(`
		UPDATE categories SET name = $1, color_key = $2, target_minutes = $3
		WHERE id = $4 AND deleted_at IS NULL`,
		category.Name, category.ColorKey, category.TargetMinutes, category.ID,
	)
	if err != nil {
		return mapConstraintError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("category %s: %w", category.ID, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteCategory(id string) error {
	var deletedAt sql.NullTime
	err := s.db.QueryRow("SELECT deleted_at FROM categories WHERE id = $1", id).Scan(&deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("category %s: %w", id, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to check category existence: %w", err)
	}
	if deletedAt.Valid {
		return fmt.Errorf("category with id %s is already deleted", id)
	}

	_, err = s.db.Exec("UPDATE categories SET deleted_at = $1 WHERE id = $2", time.Now().UTC(), id)
	return err
}

func (s *Store) RestoreCategory(id string) error {
	var deletedAt sql.NullTime
	err := s.db.QueryRow("SELECT deleted_at FROM categories WHERE id = $1", id).Scan(&deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("category %s: %w", id, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to check category existence: %w", err)
	}
	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore a category that is not deleted: %s", id)
	}

	_, err = s.db.Exec("UPDATE categories SET deleted_at = NULL WHERE id = $1", id)
	return mapConstraintError(err)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(row scanner) (models.Category, error) {
	var c models.Category
	var deletedAt sql.NullTime

	if err := row.Scan(&c.ID, &c.Name, &c.ColorKey, &c.TargetMinutes, &c.CreatedAt, &deletedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, storage.ErrNotFound
		}
		return models.Category{}, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	if deletedAt.Valid {
		t := deletedAt.Time.UTC()
		c.DeletedAt = &t
	}
	return c, nil
}

func mapConstraintError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return storage.ErrDuplicateName
	}
	return err
}
