package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	domainRepo "activity-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrCapacityExceeded is returned when a slot instance cannot seat the
// requested participants
var ErrCapacityExceeded = errors.New("slot is at capacity")

// reserveSeatsScript atomically takes seats from a slot's remaining-seat
// counter. DECRBY then check: if the counter went negative the reservation
// does not fit, so the script rolls the decrement back and reports -1.
// Lua gives us the whole check-and-take as one atomic unit inside Redis;
// no failure window between the two steps.
var reserveSeatsScript = redis.NewScript(`
	local remaining = redis.call('DECRBY', KEYS[1], ARGV[1])
	if remaining < 0 then
		redis.call('INCRBY', KEYS[1], ARGV[1])
		return -1
	end
	return remaining
`)

const (
	// Redis key prefix for per-slot remaining-seat counters
	redisSlotKeyPrefix = "slot:seats:"

	slotKeyDateFormat = "2006-01-02"

	// Batch size for startup sync - process 500 slot aggregates at a time
	syncBatchSize = 500

	// Interval for cleaning up stale mutexes
	mutexCleanupInterval = 10 * time.Minute

	// How long a mutex must be unused before cleanup
	mutexStaleThreshold = 10 * time.Minute
)

// SlotLedger is the single authority over seat counters. Every counter is
// keyed by (activity, date, time), so reservations for unrelated slots
// never contend with each other.
//
// The counter holds REMAINING seats. Reserve takes seats via a Lua script,
// Release gives them back on cancellation, and SyncOnStartup rebuilds every
// counter from the durable occupancy aggregate in PostgreSQL.
//
// Lock Ordering (to prevent deadlocks):
// 1. Acquire slot mutex FIRST
// 2. Then perform DB/Redis operations
type SlotLedger struct {
	bookingRepo domainRepo.BookingRepository
	redisClient *redis.Client
	log         *logrus.Logger

	// Per-slot mutex guarding counter initialization and release
	slotMu sync.Map // map[string]*mutexWithTimestamp

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// NewSlotLedger creates a new SlotLedger.
// Starts background goroutine for mutex cleanup.
// Call Stop() during graceful shutdown.
func NewSlotLedger(bookingRepo domainRepo.BookingRepository, redisClient *redis.Client, log *logrus.Logger) *SlotLedger {
	ledger := &SlotLedger{
		bookingRepo: bookingRepo,
		redisClient: redisClient,
		log:         log,
		stopChan:    make(chan struct{}),
	}

	ledger.wg.Add(1)
	go ledger.cleanupMutexMapLoop()

	return ledger
}

// Stop gracefully shuts down the ledger.
// Safe to call multiple times.
func (s *SlotLedger) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("SlotLedger stopped")
	}
}

// SyncOnStartup rebuilds every remaining-seat counter from the occupancy
// aggregate in PostgreSQL. Slots with no bookings yet have no aggregate
// row; their counters are initialized lazily on first Reserve.
//
// Should be called BEFORE accepting traffic (during startup/disaster
// recovery).
func (s *SlotLedger) SyncOnStartup(ctx context.Context) error {
	s.log.Info("Rebuilding slot counters from database...")
	startTime := time.Now()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		s.log.Warnf("Redis is not available, skipping sync: %+v", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	offset := 0
	totalSynced := 0

	for {
		usages, err := s.bookingRepo.SlotUsages(ctx, today, syncBatchSize, offset)
		if err != nil {
			s.log.Errorf("Failed to query slot usages at offset %d: %+v", offset, err)
			return fmt.Errorf("query slot usages at offset %d: %w", offset, err)
		}

		if len(usages) == 0 {
			if offset == 0 {
				s.log.Info("No occupied slots found for sync")
			}
			break
		}

		// New pipeline per batch to keep memory flat across large syncs
		pipe := s.redisClient.TxPipeline()

		for _, usage := range usages {
			remaining := usage.Capacity - usage.Seats
			if remaining < 0 {
				remaining = 0
			}
			key := s.slotKey(usage.ActivityID, usage.SlotDate, usage.SlotTime)
			pipe.Set(ctx, key, remaining, s.slotTTL(usage.SlotDate))
		}

		if _, err := pipe.Exec(ctx); err != nil {
			s.log.Errorf("Failed to execute pipeline for batch at offset %d: %+v", offset, err)
			return fmt.Errorf("pipeline exec at offset %d: %w", offset, err)
		}

		totalSynced += len(usages)

		if len(usages) < syncBatchSize {
			break
		}

		offset += syncBatchSize

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	elapsed := time.Since(startTime)
	s.log.Infof("Slot counter rebuild completed: %d slots synced in %v", totalSynced, elapsed)

	return nil
}

// Reserve atomically takes seats from one slot instance. This is the
// admission critical section: either all requested seats fit and are
// taken, or nothing changes and ErrCapacityExceeded comes back.
func (s *SlotLedger) Reserve(ctx context.Context, activityID uuid.UUID, slotDate time.Time, slotTime string, seats, capacity int) error {
	if err := s.ensureSlot(ctx, activityID, slotDate, slotTime, capacity); err != nil {
		return err
	}

	key := s.slotKey(activityID, slotDate, slotTime)

	result, err := reserveSeatsScript.Run(ctx, s.redisClient, []string{key}, seats).Int()
	if err != nil {
		s.log.Warnf("Failed Lua reserve for slot %s: %+v", key, err)
		return fmt.Errorf("lua reserve for slot %s: %w", key, err)
	}

	if result == -1 {
		return ErrCapacityExceeded
	}

	s.log.Debugf("Reserved %d seats for slot %s: remaining=%d", seats, key, result)
	return nil
}

// Release gives seats back when a booking is cancelled or when a create
// fails after a successful Reserve (compensation). If the counter has
// expired there is nothing to do: the next lazy initialization recomputes
// occupancy from the database, which already excludes the cancelled seats.
func (s *SlotLedger) Release(ctx context.Context, activityID uuid.UUID, slotDate time.Time, slotTime string, seats int) error {
	mt := s.getSlotMutex(activityID, slotDate, slotTime)
	mt.mu.Lock()
	defer mt.mu.Unlock()

	key := s.slotKey(activityID, slotDate, slotTime)

	exists, err := s.redisClient.Exists(ctx, key).Result()
	if err != nil {
		s.log.Warnf("Failed to check slot counter %s: %+v", key, err)
		return fmt.Errorf("check slot counter %s: %w", key, err)
	}
	if exists == 0 {
		return nil
	}

	if err := s.redisClient.IncrBy(ctx, key, int64(seats)).Err(); err != nil {
		s.log.Warnf("Failed to release %d seats for slot %s: %+v", seats, key, err)
		return fmt.Errorf("release seats for slot %s: %w", key, err)
	}

	s.log.Debugf("Released %d seats for slot %s", seats, key)
	return nil
}

// ensureSlot lazily initializes a slot counter from the durable occupancy
// aggregate. SETNX keeps concurrent initializers from clobbering each
// other; the per-slot mutex keeps the occupancy read and the SETNX
// together so a racing Release cannot slip between them.
func (s *SlotLedger) ensureSlot(ctx context.Context, activityID uuid.UUID, slotDate time.Time, slotTime string, capacity int) error {
	key := s.slotKey(activityID, slotDate, slotTime)

	exists, err := s.redisClient.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("check slot counter %s: %w", key, err)
	}
	if exists == 1 {
		return nil
	}

	mt := s.getSlotMutex(activityID, slotDate, slotTime)
	mt.mu.Lock()
	defer mt.mu.Unlock()

	occupied, err := s.bookingRepo.SlotOccupancy(ctx, activityID, slotDate, slotTime)
	if err != nil {
		return fmt.Errorf("compute occupancy for slot %s: %w", key, err)
	}

	remaining := capacity - occupied
	if remaining < 0 {
		remaining = 0
	}

	if err := s.redisClient.SetNX(ctx, key, remaining, s.slotTTL(slotDate)).Err(); err != nil {
		return fmt.Errorf("initialize slot counter %s: %w", key, err)
	}

	s.log.Debugf("Initialized slot counter %s: remaining=%d", key, remaining)
	return nil
}

func (s *SlotLedger) slotKey(activityID uuid.UUID, slotDate time.Time, slotTime string) string {
	return fmt.Sprintf("%s%s:%s:%s", redisSlotKeyPrefix, activityID, slotDate.Format(slotKeyDateFormat), slotTime)
}

// slotTTL returns TTL: 24 hours after the slot date
func (s *SlotLedger) slotTTL(slotDate time.Time) time.Duration {
	expireAt := slotDate.AddDate(0, 0, 1)
	ttl := time.Until(expireAt)

	if ttl <= 0 {
		// Past date - short TTL for cleanup
		return 1 * time.Minute
	}

	return ttl
}

// getSlotMutex returns the mutex for a specific slot instance
func (s *SlotLedger) getSlotMutex(activityID uuid.UUID, slotDate time.Time, slotTime string) *mutexWithTimestamp {
	key := s.slotKey(activityID, slotDate, slotTime)
	mt, _ := s.slotMu.LoadOrStore(key, &mutexWithTimestamp{})
	result := mt.(*mutexWithTimestamp)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

// cleanupMutexMapLoop runs in background to clean stale mutexes
func (s *SlotLedger) cleanupMutexMapLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(mutexCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Mutex cleanup goroutine stopping")
			return
		case <-ticker.C:
			s.cleanupStaleMutexes()
		}
	}
}

// cleanupStaleMutexes removes unused mutexes using TryLock for safety.
// The lastUsed check happens inside the lock so nobody can refresh the
// timestamp between the check and the delete.
func (s *SlotLedger) cleanupStaleMutexes() {
	cutoffTime := time.Now().Add(-mutexStaleThreshold).Unix()
	var cleaned int

	s.slotMu.Range(func(key, value any) bool {
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoffTime {
				s.slotMu.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		s.log.Debugf("Cleaned up %d stale slot mutexes", cleaned)
	}
}
