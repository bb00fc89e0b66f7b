package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventState is the lifecycle state of an event. The automatic path is
// pending -> active -> deactivated; privileged roles may set any of the
// canonical states directly.
type EventState string

const (
	StatePending     EventState = "pending"
	StateActive      EventState = "active"
	StateDeactivated EventState = "deactivated"
)

// legacy spellings still present in old rows and old clients.
var legacyStates = map[string]EventState{
	"pendente":   StatePending,
	"ativo":      StateActive,
	"desativado": StateDeactivated,
}

// ParseEventState normalizes a state string to the canonical vocabulary.
// It accepts the legacy Portuguese spellings and reports false for
// anything outside the allow-list.
func ParseEventState(s string) (EventState, bool) {
	switch EventState(s) {
	case StatePending, StateActive, StateDeactivated:
		return EventState(s), true
	}
	if st, ok := legacyStates[s]; ok {
		return st, true
	}
	return "", false
}

type Event struct {
	gorm.Model
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Longitude    float64    `gorm:"not null" json:"longitude"`
	Latitude     float64    `gorm:"not null" json:"latitude"`
	Name         string     `gorm:"not null" json:"name"`
	Description  string     `json:"description"`
	Image        string     `json:"image"`
	StartTime    string     `gorm:"not null" json:"starttime"`
	EndTime      string     `json:"endtime"`
	Date         time.Time  `gorm:"not null;index" json:"date"`
	Price        int        `json:"price"`
	OwnerContact string     `json:"owner_contact"`
	State        EventState `gorm:"not null;default:'pending'" json:"state"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"userid"`
	User         *User      `json:"-"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.State == "" {
		event.State = StatePending
	}
	return
}

// ListImageLength caps the image payload in list views; the full image is
// only returned on single-event fetches.
const ListImageLength = 20

// TruncateImage shortens the image field for list responses.
func (event Event) TruncateImage() Event {
	if len(event.Image) > ListImageLength {
		event.Image = event.Image[:ListImageLength]
	}
	return event
}
