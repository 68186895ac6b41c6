package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecindapp/auth-service/domain"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "audit.db"), "audit")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func entryAt(kind string, at time.Time) Entry {
	return Entry{Event: domain.AuditEvent{
		Kind:       kind,
		UserID:     1,
		OccurredAt: at,
	}}
}

func TestAppendAssignsIdentity(t *testing.T) {
	store := openStore(t)

	require.NoError(t, store.Append(Entry{Event: domain.AuditEvent{Kind: domain.AuditUserRegistered}}))

	entries, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].Event.ID)
	assert.False(t, entries[0].Event.OccurredAt.IsZero())
}

func TestGetBatchPreservesOccurrenceOrder(t *testing.T) {
	store := openStore(t)
	base := time.Now()

	// Appended out of order on purpose.
	require.NoError(t, store.Append(entryAt("third", base.Add(2*time.Second))))
	require.NoError(t, store.Append(entryAt("first", base)))
	require.NoError(t, store.Append(entryAt("second", base.Add(time.Second))))

	entries, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "first", entries[0].Event.Kind)
	assert.Equal(t, "second", entries[1].Event.Kind)
	assert.Equal(t, "third", entries[2].Event.Kind)
}

func TestGetBatchHonorsLimit(t *testing.T) {
	store := openStore(t)
	base := time.Now()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(entryAt("evt", base.Add(time.Duration(i)*time.Millisecond))))
	}

	entries, err := store.GetBatch(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 5, size, "GetBatch must not consume entries")
}

func TestRemoveDeletesEntry(t *testing.T) {
	store := openStore(t)

	require.NoError(t, store.Append(entryAt("evt", time.Now())))
	entries, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.NoError(t, store.Remove(entries[0]))

	size, err := store.Size()
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestRequeueKeepsRetryCount(t *testing.T) {
	store := openStore(t)

	require.NoError(t, store.Append(entryAt("evt", time.Now())))
	entries, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	require.NoError(t, store.Remove(entry))
	entry.Retries++
	require.NoError(t, store.Requeue(entry))

	entries, err = store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Retries)
	assert.Equal(t, entry.Event.ID, entries[0].Event.ID)
}
