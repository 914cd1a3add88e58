package service

import (
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newBareLedger() *SlotLedger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &SlotLedger{log: log, stopChan: make(chan struct{})}
}

func TestSlotKey(t *testing.T) {
	ledger := newBareLedger()
	activityID := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	slotDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	key := ledger.slotKey(activityID, slotDate, "10:00")
	assert.Equal(t, "slot:seats:11111111-2222-3333-4444-555555555555:2026-09-07:10:00", key)

	// Different slot time, different counter.
	other := ledger.slotKey(activityID, slotDate, "14:00")
	assert.NotEqual(t, key, other)
}

func TestSlotTTL(t *testing.T) {
	ledger := newBareLedger()

	t.Run("future slot expires the day after", func(t *testing.T) {
		slotDate := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 7)
		ttl := ledger.slotTTL(slotDate)

		assert.Greater(t, ttl, 7*24*time.Hour)
		assert.LessOrEqual(t, ttl, 8*24*time.Hour)
	})

	t.Run("past slot gets short cleanup TTL", func(t *testing.T) {
		slotDate := time.Now().UTC().AddDate(0, 0, -2)
		assert.Equal(t, time.Minute, ledger.slotTTL(slotDate))
	})
}

func TestGetSlotMutex_SameSlotSameMutex(t *testing.T) {
	ledger := newBareLedger()
	activityID := uuid.New()
	slotDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	first := ledger.getSlotMutex(activityID, slotDate, "10:00")
	second := ledger.getSlotMutex(activityID, slotDate, "10:00")
	assert.Same(t, first, second)

	other := ledger.getSlotMutex(activityID, slotDate, "14:00")
	assert.NotSame(t, first, other)
}

func TestCleanupStaleMutexes(t *testing.T) {
	ledger := newBareLedger()
	activityID := uuid.New()
	slotDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	stale := ledger.getSlotMutex(activityID, slotDate, "10:00")
	stale.lastUsed.Store(time.Now().Add(-time.Hour).Unix())

	fresh := ledger.getSlotMutex(activityID, slotDate, "14:00")
	_ = fresh

	ledger.cleanupStaleMutexes()

	count := 0
	ledger.slotMu.Range(func(key, value any) bool {
		count++
		return true
	})
	assert.Equal(t, 1, count)
}

func TestCleanupStaleMutexes_SkipsHeldMutex(t *testing.T) {
	ledger := newBareLedger()
	activityID := uuid.New()
	slotDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	held := ledger.getSlotMutex(activityID, slotDate, "10:00")
	held.lastUsed.Store(time.Now().Add(-time.Hour).Unix())
	held.mu.Lock()
	defer held.mu.Unlock()

	ledger.cleanupStaleMutexes()

	key := fmt.Sprintf("%s%s:2026-09-07:10:00", redisSlotKeyPrefix, activityID)
	_, ok := ledger.slotMu.Load(key)
	assert.True(t, ok, "a held mutex must never be removed")
}

func TestStop_Idempotent(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	ledger := NewSlotLedger(nil, nil, log)

	ledger.Stop()
	ledger.Stop()
}
