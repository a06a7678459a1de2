package pgsql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/synchroai/synchro_backend/internal/core/domain"
)

func ledgerEntryAt(id string, at time.Time) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:   id,
		UserID:    "user-1",
		Direction: domain.Credit,
		CreatedAt: at,
	}
}

func TestNewestFirst_OrdersAndTruncates(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	entries := []domain.LedgerEntry{
		ledgerEntryAt("middle", base.Add(1*time.Hour)),
		ledgerEntryAt("oldest", base),
		ledgerEntryAt("newest", base.Add(2*time.Hour)),
	}

	got := newestFirst(entries, 2)

	assert.Len(t, got, 2)
	assert.Equal(t, "newest", got[0].EntryID)
	assert.Equal(t, "middle", got[1].EntryID)
}

func TestNewestFirst_LimitLargerThanSlice(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	entries := []domain.LedgerEntry{
		ledgerEntryAt("oldest", base),
		ledgerEntryAt("newest", base.Add(time.Minute)),
	}

	got := newestFirst(entries, 10)

	assert.Len(t, got, 2)
	assert.Equal(t, "newest", got[0].EntryID)
	assert.Equal(t, "oldest", got[1].EntryID)
}

func TestNewestFirst_EmptyInput(t *testing.T) {
	got := newestFirst([]domain.LedgerEntry{}, 10)
	assert.Empty(t, got)
}
