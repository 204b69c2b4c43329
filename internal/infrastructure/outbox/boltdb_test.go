package outbox

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "outbox.db"), "outbox")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestEnqueueAndBatch(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Enqueue(Message{Recipient: "a@example.com", Username: "a"}))
	require.NoError(t, store.Enqueue(Message{Recipient: "b@example.com", Username: "b"}))

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 2, size)

	batch, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, KindWelcome, batch[0].Kind)
	assert.NotEmpty(t, batch[0].ID)
}

func TestRemoveAndRequeue(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Enqueue(Message{Recipient: "a@example.com", Username: "a"}))

	batch, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, batch, 1)

	msg := batch[0]
	msg.Retries = 1
	require.NoError(t, store.Remove(msg))
	require.NoError(t, store.Requeue(msg))

	batch, err = store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, 1, batch[0].Retries)

	require.NoError(t, store.Remove(batch[0]))
	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 0, size)
}

func TestCleanupDropsOldMessages(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Enqueue(Message{
		Recipient: "old@example.com",
		Username:  "old",
		Timestamp: time.Now().Add(-48 * time.Hour),
	}))
	require.NoError(t, store.Enqueue(Message{Recipient: "new@example.com", Username: "new"}))

	require.NoError(t, store.Cleanup(time.Now().Add(-24*time.Hour)))

	batch, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "new@example.com", batch[0].Recipient)
}
