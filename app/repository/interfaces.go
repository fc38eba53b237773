package repository

import (
	"github.com/muhafiz/muhafiz-api/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List() ([]models.User, error)
	Delete(id string) error
}

// IncidentRepository defines the interface for incident reports
type IncidentRepository interface {
	Create(incident *models.Incident) error
	GetByID(id string, withCreator bool) (*models.Incident, error)
	List(withCreator bool) ([]models.Incident, error)
	Update(id string, patch models.IncidentPatch) (*models.Incident, error)
	UpdateStatus(id, status string) (*models.Incident, error)
	Delete(id string) error
}

// DiscussionChannelRepository defines the interface for discussion channels
type DiscussionChannelRepository interface {
	Create(channel *models.DiscussionChannel) error
	GetByID(id string) (*models.DiscussionChannel, error)
	List() ([]models.DiscussionChannel, error)
}

// PostRepository defines the interface for channel posts and their embedded replies
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id string) (*models.Post, error)
	ListByChannel(channelID string) ([]models.Post, error)
	AddReply(postID string, reply models.Reply) (*models.Post, error)
	ToggleReaction(postID, userID, label string) (*models.Post, error)
}

// ForumTopicRepository defines the interface for community forum topics
type ForumTopicRepository interface {
	Create(topic *models.ForumTopic) error
	List() ([]models.ForumTopic, error)
}

// ResourceRepository defines the interface for community resources
type ResourceRepository interface {
	Create(resource *models.Resource) error
	List() ([]models.Resource, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User       UserRepository
	Incident   IncidentRepository
	Channel    DiscussionChannelRepository
	Post       PostRepository
	ForumTopic ForumTopicRepository
	Resource   ResourceRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Incident:   NewIncidentRepository(db),
		Channel:    NewDiscussionChannelRepository(db),
		Post:       NewPostRepository(db),
		ForumTopic: NewForumTopicRepository(db),
		Resource:   NewResourceRepository(db),
	}
}
