package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "partyhub/pkg/domain"
	audit "partyhub/pkg/platform/audit"
	"partyhub/pkg/platform/audit/store/memory"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	partyID := id.NewPartyID()
	err := pub.Emit(context.Background(), audit.Event{
		PartyID: partyID,
		Action:  string(audit.EventPartyCreated),
	})
	require.NoError(t, err)

	events, err := store.ListByParty(context.Background(), partyID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventPartyCreated), events[0].Action)
	assert.Equal(t, audit.CategoryCompliance, events[0].Category)
}

func TestPublisher_AsyncDrainsOnClose(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	partyID := id.NewPartyID()
	for range 10 {
		err := pub.Emit(context.Background(), audit.Event{
			PartyID: partyID,
			Action:  string(audit.EventPartyUpdated),
		})
		require.NoError(t, err)
	}

	require.NoError(t, pub.Close())

	events, err := store.ListByParty(context.Background(), partyID)
	require.NoError(t, err)
	assert.Len(t, events, 10, "all events should be drained on close")
}

func TestPublisher_EmitAfterClose(t *testing.T) {
	pub := NewPublisher(memory.NewInMemoryStore(), WithAsyncBuffer(1))
	require.NoError(t, pub.Close())
	require.NoError(t, pub.Close())

	err := pub.Emit(context.Background(), audit.Event{Action: string(audit.EventPartyDeleted)})
	assert.ErrorIs(t, err, ErrClosed)
}

type blockingStore struct {
	release chan struct{}
}

func (b *blockingStore) Append(context.Context, audit.Event) error {
	<-b.release
	return nil
}

func TestPublisher_BufferFull_DropsEvent(t *testing.T) {
	store := &blockingStore{release: make(chan struct{})}
	pub := NewPublisher(store, WithAsyncBuffer(1))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var dropped int
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := pub.Emit(context.Background(), audit.Event{Action: string(audit.EventPartyCreated)})
			if errors.Is(err, ErrBufferFull) {
				mu.Lock()
				dropped++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	close(store.release)
	require.NoError(t, pub.Close())

	assert.Positive(t, dropped, "a one-slot buffer behind a blocked store must drop events")
}

func TestPublisher_SetsTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	partyID := id.NewPartyID()
	before := time.Now()
	require.NoError(t, pub.Emit(context.Background(), audit.Event{PartyID: partyID, Action: string(audit.EventPartyCreated)}))
	after := time.Now()

	events, err := store.ListByParty(context.Background(), partyID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Timestamp.Before(before), "timestamp should be >= before")
	assert.False(t, events[0].Timestamp.After(after), "timestamp should be <= after")
}

func TestPublisher_PreservesExistingTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	partyID := id.NewPartyID()
	customTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, pub.Emit(context.Background(), audit.Event{
		PartyID:   partyID,
		Action:    string(audit.EventPartyCreated),
		Timestamp: customTime,
	}))

	events, err := store.ListByParty(context.Background(), partyID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, customTime, events[0].Timestamp)
}
