package storage

import (
	"errors"

	"github.com/julianstephens/pomolit/internal/models"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateName is returned when an active category already uses a name.
	ErrDuplicateName = errors.New("a category with that name already exists")
	// ErrNotInitialized is returned by Load before the store was created.
	ErrNotInitialized = errors.New("storage not initialized")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Categories
	AddCategory(models.Category) error
	GetCategory(id string) (models.Category, error)
	GetCategoryByName(name string) (models.Category, error)
	GetAllCategories() ([]models.Category, error)
	// GetAllCategoriesIncludingDeleted also returns soft-deleted categories so
	// history can still be attributed to them.
	GetAllCategoriesIncludingDeleted() ([]models.Category, error)
	UpdateCategory(models.Category) error
	DeleteCategory(id string) error
	RestoreCategory(id string) error

	// Focus tracking
	AddFocusEntry(models.FocusEntry) error
	GetFocusEntries(startDay, endDay string) ([]models.FocusEntry, error)
	// GetCategoryDays aggregates one category per day over [startDay, endDay].
	GetCategoryDays(categoryID, startDay, endDay string) ([]models.DayData, error)
	GetDaySummary(day string) (models.DaySummary, error)

	// Key-value slots
	LookupValue(key string) (string, bool, error)
	SetValue(key, value string) error
	DeleteValue(key string) error

	// Utils
	GetConfigPath() string
	SchemaVersion() (current, latest int, err error)
}
