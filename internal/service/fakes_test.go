package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dailyaura/journal-service/internal/models"
	"github.com/dailyaura/journal-service/internal/repository"
)

// memUserStore is a mutex-guarded in-memory UserStore mirroring the
// postgres repository's sentinel behavior, including the unique-email
// rejection on create.
type memUserStore struct {
	mu     sync.Mutex
	users  map[int64]*models.User
	nextID int64
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[int64]*models.User{}}
}

func (s *memUserStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	s.nextID++
	user.ID = s.nextID
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *memUserStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memUserStore) FindUserByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := *u
	return &found, nil
}

func (s *memUserStore) UpdatePassword(_ context.Context, id int64, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = nullString(hash)
	u.UpdatedAt = time.Now()
	return nil
}

func (s *memUserStore) SetResetToken(_ context.Context, id int64, token string, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ResetToken = nullString(token)
	u.ResetTokenExpiry.Time = expiry
	u.ResetTokenExpiry.Valid = true
	u.UpdatedAt = time.Now()
	return nil
}

func (s *memUserStore) ResetPasswordByToken(_ context.Context, token, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ResetToken.Valid && u.ResetToken.String == token &&
			u.ResetTokenExpiry.Valid && u.ResetTokenExpiry.Time.After(time.Now()) {
			u.PasswordHash = nullString(hash)
			u.ResetToken.Valid = false
			u.ResetToken.String = ""
			u.ResetTokenExpiry.Valid = false
			u.UpdatedAt = time.Now()
			return nil
		}
	}
	return repository.ErrNotFound
}

// memJournalStore keys entries by (user, date); the duplicate rejection on
// create is authoritative, like the unique index it stands in for.
type memJournalStore struct {
	mu      sync.Mutex
	entries map[string]*models.JournalEntry
	nextID  int64
}

func newMemJournalStore() *memJournalStore {
	return &memJournalStore{entries: map[string]*models.JournalEntry{}}
}

func journalKey(userID int64, date string) string {
	return fmt.Sprintf("%d|%s", userID, date)
}

func (s *memJournalStore) CreateEntry(_ context.Context, entry *models.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := journalKey(entry.UserID, entry.Date)
	if _, exists := s.entries[key]; exists {
		return repository.ErrDuplicateEntry
	}
	s.nextID++
	entry.ID = s.nextID
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	stored := *entry
	s.entries[key] = &stored
	return nil
}

func (s *memJournalStore) FindEntryByUserAndDate(_ context.Context, userID int64, date string) (*models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[journalKey(userID, date)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := *e
	return &found, nil
}

func (s *memJournalStore) ListEntriesByUser(_ context.Context, userID int64) ([]models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := []models.JournalEntry{}
	for _, e := range s.entries {
		if e.UserID == userID {
			entries = append(entries, *e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
	return entries, nil
}

type sentMail struct {
	to, username, link string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendPasswordReset(to, username, resetLink string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, username: username, link: resetLink})
	return nil
}
