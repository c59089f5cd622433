package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-captcha-gate/internal/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(logger.Nop())
}

func TestStartOrReplace_CreatesSession(t *testing.T) {
	s := newTestStore(t)

	created := s.StartOrReplace(42, "AB3XYZ", 100, 7)

	assert.Equal(t, int64(42), created.UserID)
	assert.Equal(t, "AB3XYZ", created.Expected)
	assert.Equal(t, []int{100}, created.MessageIDs)
	assert.Equal(t, int64(7), created.ChatID)
	assert.NotEmpty(t, created.SessionID)

	got, ok := s.Get(42)
	require.True(t, ok)
	assert.Equal(t, created.Expected, got.Expected)
}

// TestStartOrReplace_SupersedesExisting verifies a second challenge for the
// same user replaces the first: the old expected text no longer matches.
func TestStartOrReplace_SupersedesExisting(t *testing.T) {
	s := newTestStore(t)

	s.StartOrReplace(42, "FIRST2", 100, 7)
	s.StartOrReplace(42, "SECOND3", 200, 7)

	got, ok := s.Get(42)
	require.True(t, ok)
	assert.Equal(t, "SECOND3", got.Expected)
	assert.Equal(t, []int{200}, got.MessageIDs, "old tracked messages are discarded with the old session")
}

// TestRefreshText_KeepsTrackedMessages verifies a refresh swaps the expected
// text in place without touching the tracked message ids.
func TestRefreshText_KeepsTrackedMessages(t *testing.T) {
	s := newTestStore(t)

	s.StartOrReplace(42, "FIRST2", 100, 7)
	s.AppendMessage(42, 101)

	refreshed := s.RefreshText(42, "FRESH5", 100, 7)

	assert.Equal(t, "FRESH5", refreshed.Expected)
	assert.Equal(t, []int{100, 101}, refreshed.MessageIDs)
}

// TestRefreshText_NoSession verifies a refresh for a user with no session
// behaves as a fresh start anchored to the supplied message.
func TestRefreshText_NoSession(t *testing.T) {
	s := newTestStore(t)

	created := s.RefreshText(42, "FRESH5", 300, 7)

	assert.Equal(t, "FRESH5", created.Expected)
	assert.Equal(t, []int{300}, created.MessageIDs)

	_, ok := s.Get(42)
	assert.True(t, ok)
}

func TestAppendMessage_NoSessionIsNoop(t *testing.T) {
	s := newTestStore(t)

	s.AppendMessage(42, 100)

	_, ok := s.Get(42)
	assert.False(t, ok, "append without a session must not create one")
}

func TestClear_RemovesSession(t *testing.T) {
	s := newTestStore(t)

	s.StartOrReplace(42, "AB3XYZ", 100, 7)
	s.Clear(42)

	_, ok := s.Get(42)
	assert.False(t, ok)
}

func TestClear_AbsentUserIsNoop(t *testing.T) {
	s := newTestStore(t)
	s.Clear(42)
}

// TestGet_ReturnsCopy verifies mutating a returned session does not leak
// back into the store.
func TestGet_ReturnsCopy(t *testing.T) {
	s := newTestStore(t)

	s.StartOrReplace(42, "AB3XYZ", 100, 7)

	got, ok := s.Get(42)
	require.True(t, ok)
	got.MessageIDs[0] = 999
	got.Expected = "MUTATED"

	again, ok := s.Get(42)
	require.True(t, ok)
	assert.Equal(t, "AB3XYZ", again.Expected)
	assert.Equal(t, []int{100}, again.MessageIDs)
}

// TestAppendMessage_ConcurrentAppendsAreLossless verifies appends for the
// same user from many goroutines are all recorded.
func TestAppendMessage_ConcurrentAppendsAreLossless(t *testing.T) {
	s := newTestStore(t)
	s.StartOrReplace(42, "AB3XYZ", 0, 7)

	const appends = 100
	var wg sync.WaitGroup
	for i := 1; i <= appends; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			s.AppendMessage(42, id)
		}(i)
	}
	wg.Wait()

	got, ok := s.Get(42)
	require.True(t, ok)
	assert.Len(t, got.MessageIDs, appends+1)
}

// TestLock_SerializesPerUser verifies the per-user mutex serializes critical
// sections for the same user id.
func TestLock_SerializesPerUser(t *testing.T) {
	s := newTestStore(t)

	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Lock(42)
			defer s.Unlock(42)
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}
