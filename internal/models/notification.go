package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is the persisted record of a push message. Persistence is
// independent of push delivery: a delivery failure must not prevent the
// record from being stored.
type Notification struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	EventID    uuid.UUID `gorm:"type:uuid;not null;index" json:"eventid"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null" json:"senderid"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null;index" json:"receiverid"`
	EventName  string    `json:"eventname"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createat"`
}

func (notification *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	return
}
