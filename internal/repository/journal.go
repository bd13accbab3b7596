package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dailyaura/journal-service/internal/models"
)

// JournalRepository provides database operations for journal entries
type JournalRepository struct {
	db *sql.DB
}

// NewJournalRepository initializes a new journal repository
func NewJournalRepository(db *sql.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// CreateEntry inserts a journal entry. The unique (user_id, date) constraint
// is the authoritative guard against concurrent same-day submissions; a
// violation is returned as ErrDuplicateEntry.
func (r *JournalRepository) CreateEntry(ctx context.Context, entry *models.JournalEntry) error {
	query := `
		INSERT INTO journal_entries
			(user_id, date, chanting_status, chanting_rounds, reading_status, katha_status, gratitude, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	var rounds sql.NullInt64
	if entry.Chanting.Status == models.StatusYes {
		rounds = sql.NullInt64{Int64: int64(entry.Chanting.Rounds), Valid: true}
	}
	err := r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.Date, entry.Chanting.Status, rounds,
		entry.Reading.Status, entry.Katha.Status, entry.Gratitude).
		Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateEntry
	}
	if err != nil {
		return fmt.Errorf("failed to create journal entry: %w", err)
	}
	return nil
}

// FindEntryByUserAndDate retrieves one user's entry for a calendar date
func (r *JournalRepository) FindEntryByUserAndDate(ctx context.Context, userID int64, date string) (*models.JournalEntry, error) {
	query := `
		SELECT id, user_id, date, chanting_status, chanting_rounds, reading_status, katha_status, gratitude, created_at, updated_at
		FROM journal_entries
		WHERE user_id = $1 AND date = $2`
	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, userID, date))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry: %w", err)
	}
	return entry, nil
}

// ListEntriesByUser returns all of a user's entries, newest date first
func (r *JournalRepository) ListEntriesByUser(ctx context.Context, userID int64) ([]models.JournalEntry, error) {
	query := `
		SELECT id, user_id, date, chanting_status, chanting_rounds, reading_status, katha_status, gratitude, created_at, updated_at
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY date DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.JournalEntry, error) {
	entry := &models.JournalEntry{}
	var rounds sql.NullInt64
	err := row.Scan(&entry.ID, &entry.UserID, &entry.Date,
		&entry.Chanting.Status, &rounds, &entry.Reading.Status, &entry.Katha.Status,
		&entry.Gratitude, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if rounds.Valid {
		entry.Chanting.Rounds = int(rounds.Int64)
	}
	return entry, nil
}
