package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/pomolit/internal/models"
	"github.com/julianstephens/pomolit/internal/storage"
)

const categoryColumns = "id, name, color_key, target_minutes, created_at, deleted_at"

func (s *Store) AddCategory(category models.Category) error {
	_, err := s.db.Exec(`
		INSERT INTO categories (id, name, color_key, target_minutes, created_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, NULL)`,
		category.ID, category.Name, category.ColorKey, category.TargetMinutes,
		category.CreatedAt.UTC().Format(time.RFC3339),
	)
	return mapConstraintError(err)
}

func (s *Store) GetCategory(id string) (models.Category, error) {
	row := s.db.QueryRow("SELECT "+categoryColumns+" FROM categories WHERE id = ? AND deleted_at IS NULL", id)
	return scanCategory(row)
}

func (s *Store) GetCategoryByName(name string) (models.Category, error) {
	row := s.db.QueryRow("SELECT "+categoryColumns+" FROM categories WHERE name = ? COLLATE NOCASE AND deleted_at IS NULL", name)
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
		UPDATE categories SET name = ?, color_key = ?, target_minutes = ?
		WHERE id = ? AND deleted_at IS NULL`,
		category.Name, category.ColorKey, category.TargetMinutes, category.ID,
	)
	if err != nil {
		return mapConstraintError(err)
	}
	return requireAffected(res, category.ID)
}

func (s *Store) DeleteCategory(id string) error {
	// Soft delete: focus history keeps pointing at the row.
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM categories WHERE id = ?", id).Scan(&deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("category %s: %w", id, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to check category existence: %w", err)
	}
	if deletedAt.Valid {
		return fmt.Errorf("category with id %s is already deleted", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec("UPDATE categories SET deleted_at = ? WHERE id = ?", now, id)
	return err
}

func (s *Store) RestoreCategory(id string) error {
	var deletedAt sql.NullString
	var name string
	err := s.db.QueryRow("SELECT name, deleted_at FROM categories WHERE id = ?", id).Scan(&name, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("category %s: %w", id, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to check category existence: %w", err)
	}
	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore a category that is not deleted: %s", id)
	}

	_, err = s.db.Exec("UPDATE categories SET deleted_at = NULL WHERE id = ?", id)
	return mapConstraintError(err)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(row scanner) (models.Category, error) {
	var c models.Category
	var createdAt string
	var deletedAt sql.NullString

	if err := row.Scan(&c.ID, &c.Name, &c.ColorKey, &c.TargetMinutes, &createdAt, &deletedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, storage.ErrNotFound
		}
		return models.Category{}, err
	}

	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Category{}, fmt.Errorf("parsing created_at for category %s: %w", c.ID, err)
	}
	c.CreatedAt = created

	if deletedAt.Valid {
		deleted, err := time.Parse(time.RFC3339, deletedAt.String)
		if err != nil {
			return models.Category{}, fmt.Errorf("parsing deleted_at for category %s: %w", c.ID, err)
		}
		c.DeletedAt = &deleted
	}
	return c, nil
}

func mapConstraintError(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return storage.ErrDuplicateName
	}
	return err
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("category %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
