package sqlite

import (
	"fmt"
	"time"

	"github.com/julianstephens/pomolit/internal/models"
)

func (s *Store) AddFocusEntry(entry models.FocusEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO focus_entries (id, category_id, day, minutes, completed_at)
		VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.CategoryID, entry.Day, entry.Minutes,
		entry.CompletedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *Store) GetFocusEntries(startDay, endDay string) ([]models.FocusEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, category_id, day, minutes, completed_at
		FROM focus_entries WHERE day >= ? AND day <= ?
		ORDER BY completed_at`, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.FocusEntry
	for rows.Next() {
		var e models.FocusEntry
		var completedAt string
		if err := rows.Scan(&e.ID, &e.CategoryID, &e.Day, &e.Minutes, &completedAt); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, completedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing completed_at for entry %s: %w", e.ID, err)
		}
		e.CompletedAt = t
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) GetCategoryDays(categoryID, startDay, endDay string) ([]models.DayData, error) {
	rows, err := s.db.Query(`
		SELECT day, SUM(minutes), COUNT(*)
		FROM focus_entries
		WHERE category_id = ? AND day >= ? AND day <= ?
		GROUP BY day ORDER BY day`, categoryID, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []models.DayData
	for rows.Next() {
		var d models.DayData
		if err := rows.Scan(&d.Date, &d.Minutes, &d.Pomodoros); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

func (s *Store) GetDaySummary(day string) (models.DaySummary, error) {
	summary := models.DaySummary{Date: day}
	err := s.db.QueryRow(`
		SELECT COALESCE(SUM(minutes), 0), COUNT(*)
		FROM focus_entries WHERE day = ?`, day).Scan(&summary.TotalMinutes, &summary.TotalPomodoros)
	if err != nil {
		return models.DaySummary{}, err
	}
	return summary, nil
}
