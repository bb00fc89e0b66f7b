package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment carries a snapshot of the event name taken at creation time so
// clients can render it after the event is renamed or removed.
type Comment struct {
	gorm.Model
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"userid"`
	EventID        uuid.UUID `gorm:"type:uuid;not null;index" json:"eventid"`
	EventName      string    `json:"eventname"`
	Text           string    `gorm:"not null" json:"comment"`
	NotificationID uuid.UUID `gorm:"type:uuid" json:"notification_id"`
}

func (comment *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	return
}
