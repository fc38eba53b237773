package models

import (
	"time"

	"gorm.io/gorm"
)

const INCIDENT_STATUS_PENDING = "pending"

// Incident limits per media field on the report form.
const (
	MaxIncidentImages = 5
	MaxIncidentVideos = 3
	MaxIncidentAudios = 3
)

type Incident struct {
	ID               string       `gorm:"primaryKey;type:char(36)" json:"_id"`
	Title            string       `gorm:"type:varchar(255)" json:"title"`
	Description      string       `gorm:"type:text" json:"description"`
	Town             string       `gorm:"type:varchar(255)" json:"town"`
	Subdivision      string       `gorm:"type:varchar(255)" json:"subdivision"`
	Zone             string       `gorm:"type:varchar(100)" json:"zone"`
	Location         string       `gorm:"type:varchar(255)" json:"location"`
	Category         string       `gorm:"type:varchar(100)" json:"category"`
	Urgency          string       `gorm:"type:varchar(100)" json:"urgency"`
	Severity         string       `gorm:"type:varchar(100)" json:"severity"`
	Date             string       `gorm:"type:varchar(50)" json:"date"`
	IncidentTime     string       `gorm:"type:varchar(50)" json:"incidentTime"`
	IsAnonymous      bool         `json:"isAnonymous"`
	Tags             []string     `gorm:"type:text;serializer:json" json:"tags"`
	WitnessCount     string       `gorm:"type:varchar(50)" json:"witnessCount"`
	SuspectInfo      string       `gorm:"type:text" json:"suspectInfo"`
	ReportedToPolice string       `gorm:"type:varchar(50)" json:"reportedToPolice"`
	Images           []string     `gorm:"type:text;serializer:json" json:"images"`
	Videos           []string     `gorm:"type:text;serializer:json" json:"videos"`
	Audios           []string     `gorm:"type:text;serializer:json" json:"audios"`
	CreatedBy        string       `gorm:"type:char(36);index;not null" json:"createdBy" validate:"required"`
	Status           string       `gorm:"type:varchar(50);default:'pending'" json:"status"`
	Creator          *UserSummary `gorm:"foreignKey:CreatedBy;references:ID;-:migration" json:"creator,omitempty"`
	CreatedAt        time.Time    `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt        time.Time    `gorm:"autoUpdateTime" json:"updatedAt"`
}

// IncidentPatch carries a partial update. Nil fields are left untouched.
type IncidentPatch struct {
	Title            *string   `json:"title"`
	Description      *string   `json:"description"`
	Town             *string   `json:"town"`
	Subdivision      *string   `json:"subdivision"`
	Zone             *string   `json:"zone"`
	Location         *string   `json:"location"`
	Category         *string   `json:"category"`
	Urgency          *string   `json:"urgency"`
	Severity         *string   `json:"severity"`
	Date             *string   `json:"date"`
	IncidentTime     *string   `json:"incidentTime"`
	IsAnonymous      *bool     `json:"isAnonymous"`
	Tags             *[]string `json:"tags"`
	WitnessCount     *string   `json:"witnessCount"`
	SuspectInfo      *string   `json:"suspectInfo"`
	ReportedToPolice *string   `json:"reportedToPolice"`
	Images           *[]string `json:"images"`
	Videos           *[]string `json:"videos"`
	Audios           *[]string `json:"audios"`
	Status           *string   `json:"status"`
}

func (i *Incident) Validate() error {
	return validate.Struct(i)
}

func (i *Incident) normalize() {
	i.Tags = nonNilStrings(i.Tags)
	i.Images = nonNilStrings(i.Images)
	i.Videos = nonNilStrings(i.Videos)
	i.Audios = nonNilStrings(i.Audios)
	if i.Status == "" {
		i.Status = INCIDENT_STATUS_PENDING
	}
}

func (i *Incident) BeforeCreate(tx *gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

func (i *Incident) BeforeSave(tx *gorm.DB) error {
	i.normalize()
	return i.Validate()
}

func (i *Incident) AfterFind(tx *gorm.DB) error {
	i.normalize()
	return nil
}

// Apply merges the non-nil patch fields into the incident.
func (p IncidentPatch) Apply(i *Incident) {
	setString(&i.Title, p.Title)
	setString(&i.Description, p.Description)
	setString(&i.Town, p.Town)
	setString(&i.Subdivision, p.Subdivision)
	setString(&i.Zone, p.Zone)
	setString(&i.Location, p.Location)
	setString(&i.Category, p.Category)
	setString(&i.Urgency, p.Urgency)
	setString(&i.Severity, p.Severity)
	setString(&i.Date, p.Date)
	setString(&i.IncidentTime, p.IncidentTime)
	setString(&i.WitnessCount, p.WitnessCount)
	setString(&i.SuspectInfo, p.SuspectInfo)
	setString(&i.ReportedToPolice, p.ReportedToPolice)
	setString(&i.Status, p.Status)
	if p.IsAnonymous != nil {
		i.IsAnonymous = *p.IsAnonymous
	}
	setStrings(&i.Tags, p.Tags)
	setStrings(&i.Images, p.Images)
	setStrings(&i.Videos, p.Videos)
	setStrings(&i.Audios, p.Audios)
}

// IsEmpty reports whether the patch would change nothing.
func (p IncidentPatch) IsEmpty() bool {
	return p == IncidentPatch{}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setStrings(dst *[]string, v *[]string) {
	if v != nil {
		*dst = nonNilStrings(*v)
	}
}
