package models

import (
	"time"

	"gorm.io/gorm"
)

// ForumTopic is a community forum entry. LastActive is a display string
// supplied by the client.
type ForumTopic struct {
	ID         string    `gorm:"primaryKey;type:char(36)" json:"_id"`
	Category   string    `gorm:"type:varchar(100)" json:"category" validate:"required"`
	Title      string    `gorm:"type:varchar(255)" json:"title" validate:"required"`
	Posts      int       `gorm:"default:0" json:"posts" validate:"gte=0"`
	LastActive string    `gorm:"type:varchar(100);index" json:"lastActive" validate:"required"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

type Resource struct {
	ID        string    `gorm:"primaryKey;type:char(36)" json:"_id"`
	Title     string    `gorm:"type:varchar(255)" json:"title" validate:"required"`
	Type      string    `gorm:"type:varchar(100)" json:"type" validate:"required"`
	Size      string    `gorm:"type:varchar(50)" json:"size" validate:"required"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (f *ForumTopic) Validate() error {
	return validate.Struct(f)
}

func (f *ForumTopic) BeforeCreate(tx *gorm.DB) error {
	ensureID(&f.ID)
	return nil
}

func (f *ForumTopic) BeforeSave(tx *gorm.DB) error {
	return f.Validate()
}

func (r *Resource) Validate() error {
	return validate.Struct(r)
}

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}

func (r *Resource) BeforeSave(tx *gorm.DB) error {
	return r.Validate()
}
