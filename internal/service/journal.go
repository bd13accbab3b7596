package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dailyaura/journal-service/internal/apperr"
	"github.com/dailyaura/journal-service/internal/models"
	"github.com/dailyaura/journal-service/internal/repository"
)

const dateLayout = "2006-01-02"

// JournalInput carries the client-submitted fields of a journal entry.
type JournalInput struct {
	Chanting  models.Chanting `json:"chanting"`
	Reading   models.Practice `json:"reading"`
	Katha     models.Practice `json:"katha"`
	Gratitude string          `json:"gratitude"`
}

// JournalService enforces the one-entry-per-user-per-day rule
type JournalService struct {
	entries JournalStore
	log     *logrus.Logger
}

// NewJournalService initializes a new journal service
func NewJournalService(entries JournalStore, log *logrus.Logger) *JournalService {
	return &JournalService{entries: entries, log: log}
}

// Save validates and persists today's entry for the acting user. The
// existence pre-check only gives a friendlier error on the common path;
// the unique (user_id, date) constraint is what actually rejects a
// concurrent second writer, and that rejection maps to the same conflict.
func (s *JournalService) Save(ctx context.Context, userID int64, in *JournalInput) (*models.JournalEntry, error) {
	if err := validateJournalInput(in); err != nil {
		s.log.Warnf("Journal save failed validation for user %d", userID)
		return nil, err
	}

	today := time.Now().UTC().Format(dateLayout)

	_, err := s.entries.FindEntryByUserAndDate(ctx, userID, today)
	if err == nil {
		return nil, apperr.Conflict("Journal already submitted today.")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internal(err)
	}

	entry := &models.JournalEntry{
		UserID:    userID,
		Date:      today,
		Chanting:  in.Chanting,
		Reading:   in.Reading,
		Katha:     in.Katha,
		Gratitude: strings.TrimSpace(in.Gratitude),
	}
	if entry.Chanting.Status == models.StatusNo {
		entry.Chanting.Rounds = 0
	}

	if err := s.entries.CreateEntry(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, apperr.Conflict("Journal already submitted today.")
		}
		return nil, apperr.Internal(err)
	}

	s.log.Infof("Journal saved for user %d on %s", userID, today)
	return entry, nil
}

// List returns the acting user's entries, newest date first
func (s *JournalService) List(ctx context.Context, userID int64) ([]models.JournalEntry, error) {
	entries, err := s.entries.ListEntriesByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return entries, nil
}

// validateJournalInput reports every failing field, not just the first.
func validateJournalInput(in *JournalInput) error {
	var fields []string

	switch in.Chanting.Status {
	case models.StatusYes:
		if in.Chanting.Rounds <= 0 {
			fields = append(fields, "chanting.rounds")
		}
	case models.StatusNo:
	default:
		fields = append(fields, "chanting.status")
	}
	if in.Reading.Status != models.StatusYes && in.Reading.Status != models.StatusNo {
		fields = append(fields, "reading.status")
	}
	if in.Katha.Status != models.StatusYes && in.Katha.Status != models.StatusNo {
		fields = append(fields, "katha.status")
	}
	if strings.TrimSpace(in.Gratitude) == "" {
		fields = append(fields, "gratitude")
	}

	if len(fields) > 0 {
		return apperr.Validation("All fields are required", fields...)
	}
	return nil
}
