package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Join tables for the social graph. Each pair carries a composite unique
// index; the index is the authoritative guard against duplicates, the
// handler pre-checks are only a fast path for friendlier errors.

type EventLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_liked_events_pair" json:"user_id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_liked_events_pair" json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (EventLike) TableName() string {
	return "liked_events"
}

func (like *EventLike) BeforeCreate(tx *gorm.DB) (err error) {
	if like.ID == uuid.Nil {
		like.ID = uuid.New()
	}
	return
}

type EventFavorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_fav_events_pair" json:"user_id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_fav_events_pair" json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (EventFavorite) TableName() string {
	return "fav_events"
}

func (fav *EventFavorite) BeforeCreate(tx *gorm.DB) (err error) {
	if fav.ID == uuid.Nil {
		fav.ID = uuid.New()
	}
	return
}

// Follower is a directed edge: UserID follows FollowingID.
type Follower struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_followers_pair" json:"user_id"`
	FollowingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_followers_pair" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Follower) TableName() string {
	return "followers"
}

func (follower *Follower) BeforeCreate(tx *gorm.DB) (err error) {
	if follower.ID == uuid.Nil {
		follower.ID = uuid.New()
	}
	return
}

type Going struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_going_pair" json:"user_id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_going_pair" json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Going) TableName() string {
	return "going"
}

func (going *Going) BeforeCreate(tx *gorm.DB) (err error) {
	if going.ID == uuid.Nil {
		going.ID = uuid.New()
	}
	return
}

// CommentLike is keyed by the full (comment, user, event) triple.
type CommentLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CommentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_comment_triple" json:"comment_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_comment_triple" json:"user_id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_comment_triple" json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (CommentLike) TableName() string {
	return "likes_comment"
}

func (like *CommentLike) BeforeCreate(tx *gorm.DB) (err error) {
	if like.ID == uuid.Nil {
		like.ID = uuid.New()
	}
	return
}
