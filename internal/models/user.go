package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var genderImages = map[string]string{
	"male":   "https://www.shareicon.net/data/512x512/2016/05/24/770117_people_512x512.png",
	"female": "https://w7.pngwing.com/pngs/129/292/png-transparent-female-avatar-girl-face-woman-user-flat-classy-users-icon.png",
	"other":  "https://img.freepik.com/free-icon/user_318-563642.jpg?w=360",
}

var genderOptions = []string{"male", "female", "other"}

// ValidGender reports whether the (lowercased) gender is one of the accepted options.
func ValidGender(gender string) bool {
	for _, g := range genderOptions {
		if g == gender {
			return true
		}
	}
	return false
}

// DefaultUserImage returns the stock profile image for a gender.
func DefaultUserImage(gender string) string {
	if img, ok := genderImages[gender]; ok {
		return img
	}
	return genderImages["other"]
}

type User struct {
	gorm.Model
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username    string    `gorm:"unique;not null" json:"username"`
	Email       string    `gorm:"unique;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	Gender      string    `gorm:"not null" json:"gender"`
	UserImage   string    `json:"userimage"`
	DeviceToken *string   `json:"-"`
	RoleID      uuid.UUID `json:"-"`
	Role        Role      `json:"role"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return
}
