package service

import (
	"context"
	"time"

	"github.com/dailyaura/journal-service/internal/models"
)

// UserStore is the persistence contract for identity records.
// Implementations report duplicates and misses through the sentinel errors
// in the repository package.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
	SetResetToken(ctx context.Context, id int64, token string, expiry time.Time) error
	ResetPasswordByToken(ctx context.Context, token, hash string) error
}

// JournalStore is the persistence contract for journal entries.
type JournalStore interface {
	CreateEntry(ctx context.Context, entry *models.JournalEntry) error
	FindEntryByUserAndDate(ctx context.Context, userID int64, date string) (*models.JournalEntry, error)
	ListEntriesByUser(ctx context.Context, userID int64) ([]models.JournalEntry, error)
}

// Mailer delivers a password reset message to an address.
type Mailer interface {
	SendPasswordReset(to, username, resetLink string) error
}
