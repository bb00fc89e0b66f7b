package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Nightclub struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Longitude   float64   `gorm:"not null" json:"longitude"`
	Latitude    float64   `gorm:"not null" json:"latitude"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Rating      float64   `json:"rating"`
	Reviews     int       `json:"reviews"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (nightclub *Nightclub) BeforeCreate(tx *gorm.DB) (err error) {
	if nightclub.ID == uuid.Nil {
		nightclub.ID = uuid.New()
	}
	return
}
