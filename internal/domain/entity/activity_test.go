package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestActivityIsBookable(t *testing.T) {
	tests := []struct {
		status   ActivityStatus
		bookable bool
	}{
		{ActivityStatusUpcoming, true},
		{ActivityStatusOngoing, true},
		{ActivityStatusCompleted, false},
		{ActivityStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			a := &Activity{Status: tt.status}
			assert.Equal(t, tt.bookable, a.IsBookable())
		})
	}
}

func TestHasSlot(t *testing.T) {
	a := &Activity{
		Days:  []string{"Monday", "Wednesday"},
		Times: []string{"10:00", "14:00"},
	}

	// 2026-09-07 is a Monday, 2026-09-08 a Tuesday.
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)

	assert.True(t, a.HasSlot(monday, "10:00"))
	assert.True(t, a.HasSlot(monday, "14:00"))

	// Scheduled day, unscheduled time.
	assert.False(t, a.HasSlot(monday, "11:00"))

	// Unscheduled day, even with a listed time.
	assert.False(t, a.HasSlot(tuesday, "10:00"))
}

func TestHasSlot_EmptySchedule(t *testing.T) {
	a := &Activity{}
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	assert.False(t, a.HasSlot(monday, "10:00"))
}

func TestHasSlot_IsPure(t *testing.T) {
	a := &Activity{
		Days:  []string{"Monday"},
		Times: []string{"10:00"},
	}
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	// Same inputs, same answer, no state changes between calls.
	for i := 0; i < 3; i++ {
		assert.True(t, a.HasSlot(monday, "10:00"))
		assert.False(t, a.HasSlot(monday, "09:00"))
	}
	assert.Equal(t, []string{"Monday"}, a.Days)
	assert.Equal(t, []string{"10:00"}, a.Times)
}

func TestOwnedBy(t *testing.T) {
	providerID := uuid.New()
	a := &Activity{ProviderID: providerID}

	assert.True(t, a.OwnedBy(providerID))
	assert.False(t, a.OwnedBy(uuid.New()))
}

func TestActivityStatusIsValid(t *testing.T) {
	assert.True(t, ActivityStatusUpcoming.IsValid())
	assert.True(t, ActivityStatusCancelled.IsValid())
	assert.False(t, ActivityStatus("archived").IsValid())
	assert.False(t, ActivityStatus("").IsValid())
}
