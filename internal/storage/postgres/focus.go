package postgres

import (
	"github.com/julianstephens/pomolit/internal/models"
)

func (s *Store) AddFocusEntry(entry models.FocusEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO focus_entries (id, category_id, day, minutes, completed_at)
		VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.CategoryID, entry.Day, entry.Minutes, entry.CompletedAt.UTC(),
	)
	return err
}

func (s *Store) GetFocusEntries(startDay, endDay string) ([]models.FocusEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, category_id, day, minutes, completed_at
		FROM focus_entries WHERE day >= $1 AND day <= $2
		ORDER BY completed_at`, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.FocusEntry
	for rows.Next() {
		var e models.FocusEntry
		if err := rows.Scan(&e.ID, &e.CategoryID, &e.Day, &e.Minutes, &e.CompletedAt); err != nil {
			return nil, err
		}
		e.CompletedAt = e.CompletedAt.UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) GetCategoryDays(categoryID, startDay, endDay string) ([]models.DayData, error) {
	rows, err := s.db.Query(`
		SELECT day, SUM(minutes), COUNT(*)
		FROM focus_entries
		WHERE category_id = $1 AND day >= $2 AND day <= $3
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
		FROM focus_entries WHERE day = $1`, day).Scan(&summary.TotalMinutes, &summary.TotalPomodoros)
	if err != nil {
		return models.DaySummary{}, err
	}
	return summary, nil
}
