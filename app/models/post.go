package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MEDIA_IMAGE = "image"
	MEDIA_VIDEO = "video"
	MEDIA_AUDIO = "audio"

	SEVERITY_LOW    = "Low"
	SEVERITY_MEDIUM = "Medium"
	SEVERITY_HIGH   = "High"

	DefaultReplyUser = "Community Member"
)

type MediaItem struct {
	URL  string `json:"url" validate:"required"`
	Type string `json:"type" validate:"oneof=image video audio"`
}

// Reactions maps a user identity to the set of reaction labels it applied.
type Reactions map[string][]string

// Toggle adds label to the user's set when absent and removes it when
// present. A set that becomes empty is dropped. It reports whether the label
// is now applied.
func (r Reactions) Toggle(userID, label string) bool {
	labels := r[userID]
	for i, l := range labels {
		if l == label {
			labels = append(labels[:i:i], labels[i+1:]...)
			if len(labels) == 0 {
				delete(r, userID)
			} else {
				r[userID] = labels
			}
			return false
		}
	}
	r[userID] = append(labels, label)
	return true
}

// Has reports whether userID currently has label applied.
func (r Reactions) Has(userID, label string) bool {
	for _, l := range r[userID] {
		if l == label {
			return true
		}
	}
	return false
}

// Reply lives inside its post and has no identity of its own.
type Reply struct {
	User       string     `json:"user"`
	Text       string     `json:"text" validate:"required"`
	Location   string     `json:"location,omitempty"`
	Media      *MediaItem `json:"media,omitempty"`
	Reactions  Reactions  `json:"reactions"`
	Timestamp  time.Time  `json:"timestamp"`
	IsOfficial bool       `json:"isOfficial"`
	CreatedBy  string     `json:"createdBy"`
	Replies    []Reply    `json:"replies" validate:"dive"`
}

type Post struct {
	ID          string      `gorm:"primaryKey;type:char(36)" json:"_id"`
	Message     string      `gorm:"type:text" json:"message" validate:"required"`
	Emotion     string      `gorm:"type:varchar(100)" json:"emotion"`
	Location    string      `gorm:"type:varchar(255)" json:"location"`
	Tags        []string    `gorm:"type:text;serializer:json" json:"tags"`
	IsAnonymous bool        `json:"isAnonymous"`
	Severity    string      `gorm:"type:varchar(20);default:'Low'" json:"severity" validate:"oneof=Low Medium High"`
	Media       []MediaItem `gorm:"type:text;serializer:json" json:"media" validate:"dive"`
	ChannelID   string      `gorm:"type:char(36);index;not null" json:"channelId" validate:"required"`
	CreatedBy   string      `gorm:"type:char(36);index" json:"createdBy"`
	Reactions   Reactions   `gorm:"type:longtext;serializer:json" json:"reactions"`
	Replies     []Reply     `gorm:"type:longtext;serializer:json" json:"replies" validate:"dive"`
	CreatedAt   time.Time   `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`
}

// NewReply builds a reply stamped with the current time.
func NewReply(user, text, location, createdBy string) Reply {
	if user == "" {
		user = DefaultReplyUser
	}
	return Reply{
		User:      user,
		Text:      text,
		Location:  location,
		Reactions: Reactions{},
		Timestamp: time.Now().UTC(),
		CreatedBy: createdBy,
		Replies:   []Reply{},
	}
}

func (r *Reply) normalize() {
	if r.User == "" {
		r.User = DefaultReplyUser
	}
	if r.Reactions == nil {
		r.Reactions = Reactions{}
	}
	if r.Replies == nil {
		r.Replies = []Reply{}
	}
	for i := range r.Replies {
		r.Replies[i].normalize()
	}
}

func (p *Post) Validate() error {
	return validate.Struct(p)
}

// AddReply appends a top-level reply.
func (p *Post) AddReply(r Reply) {
	r.normalize()
	p.Replies = append(p.Replies, r)
}

func (p *Post) normalize() {
	p.Tags = nonNilStrings(p.Tags)
	if p.Media == nil {
		p.Media = []MediaItem{}
	}
	if p.Reactions == nil {
		p.Reactions = Reactions{}
	}
	if p.Replies == nil {
		p.Replies = []Reply{}
	}
	for i := range p.Replies {
		p.Replies[i].normalize()
	}
	if p.Severity == "" {
		p.Severity = SEVERITY_LOW
	}
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

func (p *Post) BeforeSave(tx *gorm.DB) error {
	p.normalize()
	return p.Validate()
}

func (p *Post) AfterFind(tx *gorm.DB) error {
	p.normalize()
	return nil
}
