package entity

import (
	"time"

	"github.com/google/uuid"
)

// ActivityStatus represents the lifecycle status of an activity
type ActivityStatus string

const (
	ActivityStatusUpcoming  ActivityStatus = "upcoming"
	ActivityStatusOngoing   ActivityStatus = "ongoing"
	ActivityStatusCompleted ActivityStatus = "completed"
	ActivityStatusCancelled ActivityStatus = "cancelled"
)

// IsValid checks whether the status is one of the known statuses
func (s ActivityStatus) IsValid() bool {
	switch s {
	case ActivityStatusUpcoming, ActivityStatusOngoing, ActivityStatusCompleted, ActivityStatusCancelled:
		return true
	}
	return false
}

// Activity represents a bookable recurring class offered by a provider.
// Days and Times together form the recurring schedule: the activity runs
// at every listed time on every listed weekday.
type Activity struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProviderID  uuid.UUID `gorm:"type:uuid;not null;index" json:"provider_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"type:varchar(100);index" json:"category"`
	AgeRange    string    `gorm:"type:varchar(50)" json:"age_range"`
	Address     string    `gorm:"type:varchar(255)" json:"address"`
	City        string    `gorm:"type:varchar(100);index" json:"city"`
	Postcode    string    `gorm:"type:varchar(20)" json:"postcode"`
	Price       string    `gorm:"type:varchar(20)" json:"price"`
	Image       string    `gorm:"type:text" json:"image"`
	Featured    bool      `gorm:"not null;default:false;index" json:"featured"`

	Capacity int            `gorm:"not null" json:"capacity"`
	Days     []string       `gorm:"type:jsonb;serializer:json" json:"days"`
	Times    []string       `gorm:"type:jsonb;serializer:json" json:"times"`
	Status   ActivityStatus `gorm:"type:varchar(20);not null;default:'upcoming';index" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Activity) TableName() string {
	return "activities"
}

// IsBookable reports whether the activity currently accepts bookings
func (a *Activity) IsBookable() bool {
	return a.Status == ActivityStatusUpcoming || a.Status == ActivityStatusOngoing
}

// HasSlot reports whether the given date and time-of-day fall on one of the
// activity's recurring slots. Pure: no side effects, no I/O.
func (a *Activity) HasSlot(date time.Time, slotTime string) bool {
	weekday := date.Weekday().String()

	dayMatch := false
	for _, d := range a.Days {
		if d == weekday {
			dayMatch = true
			break
		}
	}
	if !dayMatch {
		return false
	}

	for _, t := range a.Times {
		if t == slotTime {
			return true
		}
	}
	return false
}

// OwnedBy reports whether the activity belongs to the given provider
func (a *Activity) OwnedBy(providerID uuid.UUID) bool {
	return a.ProviderID == providerID
}
