package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyaura/journal-service/internal/apperr"
	"github.com/dailyaura/journal-service/internal/models"
)

func newTestJournalService() (*JournalService, *memJournalStore) {
	store := newMemJournalStore()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewJournalService(store, log), store
}

func validInput() *JournalInput {
	return &JournalInput{
		Chanting:  models.Chanting{Status: models.StatusYes, Rounds: 16},
		Reading:   models.Practice{Status: models.StatusYes},
		Katha:     models.Practice{Status: models.StatusNo},
		Gratitude: "Grateful for the morning program.",
	}
}

func TestSaveJournal(t *testing.T) {
	svc, store := newTestJournalService()
	ctx := context.Background()

	entry, err := svc.Save(ctx, 1, validInput())
	require.NoError(t, err)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), entry.Date)
	assert.Equal(t, int64(1), entry.UserID)
	assert.Len(t, store.entries, 1)
}

func TestSaveJournalValidation(t *testing.T) {
	svc, _ := newTestJournalService()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*JournalInput)
		fields []string
	}{
		{
			name:   "chanting yes without rounds",
			mutate: func(in *JournalInput) { in.Chanting.Rounds = 0 },
			fields: []string{"chanting.rounds"},
		},
		{
			name:   "chanting yes with negative rounds",
			mutate: func(in *JournalInput) { in.Chanting.Rounds = -3 },
			fields: []string{"chanting.rounds"},
		},
		{
			name:   "chanting status missing",
			mutate: func(in *JournalInput) { in.Chanting.Status = "" },
			fields: []string{"chanting.status"},
		},
		{
			name:   "chanting status unknown",
			mutate: func(in *JournalInput) { in.Chanting.Status = "maybe" },
			fields: []string{"chanting.status"},
		},
		{
			name:   "reading status missing",
			mutate: func(in *JournalInput) { in.Reading.Status = "" },
			fields: []string{"reading.status"},
		},
		{
			name:   "katha status missing",
			mutate: func(in *JournalInput) { in.Katha.Status = "" },
			fields: []string{"katha.status"},
		},
		{
			name:   "gratitude blank",
			mutate: func(in *JournalInput) { in.Gratitude = "   " },
			fields: []string{"gratitude"},
		},
		{
			name: "multiple failures reported together",
			mutate: func(in *JournalInput) {
				in.Chanting.Rounds = 0
				in.Gratitude = ""
			},
			fields: []string{"chanting.rounds", "gratitude"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(in)

			_, err := svc.Save(ctx, 1, in)
			var ae *apperr.Error
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, apperr.KindValidation, ae.Kind)
			assert.ElementsMatch(t, tt.fields, ae.Fields)
		})
	}
}

func TestSaveJournalChantingNoNeedsNoRounds(t *testing.T) {
	svc, _ := newTestJournalService()

	in := validInput()
	in.Chanting = models.Chanting{Status: models.StatusNo, Rounds: 8}
	entry, err := svc.Save(context.Background(), 1, in)
	require.NoError(t, err)
	assert.Equal(t, 0, entry.Chanting.Rounds)
}

func TestSaveJournalTrimsGratitude(t *testing.T) {
	svc, _ := newTestJournalService()

	in := validInput()
	in.Gratitude = "  thankful  "
	entry, err := svc.Save(context.Background(), 1, in)
	require.NoError(t, err)
	assert.Equal(t, "thankful", entry.Gratitude)
}

func TestSaveJournalDuplicateDay(t *testing.T) {
	svc, store := newTestJournalService()
	ctx := context.Background()

	_, err := svc.Save(ctx, 1, validInput())
	require.NoError(t, err)

	_, err = svc.Save(ctx, 1, validInput())
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindConflict, ae.Kind)
	assert.Len(t, store.entries, 1)

	// A different user is unaffected.
	_, err = svc.Save(ctx, 2, validInput())
	assert.NoError(t, err)
}

func TestSaveJournalConcurrent(t *testing.T) {
	svc, store := newTestJournalService()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Save(ctx, 1, validInput())
		}(i)
	}
	wg.Wait()

	var conflicts, successes int
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		var ae *apperr.Error
		require.ErrorAs(t, err, &ae)
		require.Equal(t, apperr.KindConflict, ae.Kind)
		conflicts++
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
	assert.Len(t, store.entries, 1)
}

func TestListJournalNewestFirst(t *testing.T) {
	svc, store := newTestJournalService()
	ctx := context.Background()

	for _, date := range []string{"2025-07-07", "2025-07-09", "2025-07-08"} {
		require.NoError(t, store.CreateEntry(ctx, &models.JournalEntry{
			UserID:    1,
			Date:      date,
			Chanting:  models.Chanting{Status: models.StatusNo},
			Reading:   models.Practice{Status: models.StatusYes},
			Katha:     models.Practice{Status: models.StatusNo},
			Gratitude: "entry for " + date,
		}))
	}
	require.NoError(t, store.CreateEntry(ctx, &models.JournalEntry{
		UserID: 2, Date: "2025-07-09",
		Chanting: models.Chanting{Status: models.StatusNo},
		Reading:  models.Practice{Status: models.StatusNo},
		Katha:    models.Practice{Status: models.StatusNo}, Gratitude: "other user",
	}))

	entries, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "2025-07-09", entries[0].Date)
	assert.Equal(t, "2025-07-08", entries[1].Date)
	assert.Equal(t, "2025-07-07", entries[2].Date)
}

func TestListJournalEmpty(t *testing.T) {
	svc, _ := newTestJournalService()

	entries, err := svc.List(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
