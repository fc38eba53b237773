package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	VISIBILITY_PUBLIC  = "public"
	VISIBILITY_PRIVATE = "private"
)

type DiscussionChannel struct {
	ID          string    `gorm:"primaryKey;type:char(36)" json:"_id"`
	Title       string    `gorm:"type:varchar(255)" json:"title" validate:"required,max=255"`
	Description string    `gorm:"type:text" json:"description"`
	Tags        []string  `gorm:"type:text;serializer:json" json:"tags"`
	Area        string    `gorm:"type:varchar(255)" json:"area"`
	ImageURL    string    `gorm:"type:varchar(1024)" json:"imageUrl"`
	Visibility  string    `gorm:"type:varchar(20);default:'public'" json:"visibility" validate:"oneof=public private"`
	Category    string    `gorm:"type:varchar(100)" json:"category" validate:"required,max=100"`
	CreatedBy   string    `gorm:"type:char(36);index" json:"createdBy"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (d *DiscussionChannel) Validate() error {
	return validate.Struct(d)
}

func (d *DiscussionChannel) normalize() {
	d.Tags = nonNilStrings(d.Tags)
	if d.Visibility == "" {
		d.Visibility = VISIBILITY_PUBLIC
	}
}

func (d *DiscussionChannel) BeforeCreate(tx *gorm.DB) error {
	ensureID(&d.ID)
	return nil
}

func (d *DiscussionChannel) BeforeSave(tx *gorm.DB) error {
	d.normalize()
	return d.Validate()
}

func (d *DiscussionChannel) AfterFind(tx *gorm.DB) error {
	d.normalize()
	return nil
}
