package repository

import (
	"github.com/muhafiz/muhafiz-api/app/models"
	"gorm.io/gorm"
)

type forumTopicRepository struct {
	db *gorm.DB
}

func NewForumTopicRepository(db *gorm.DB) ForumTopicRepository {
	return &forumTopicRepository{db: db}
}

func (r *forumTopicRepository) Create(topic *models.ForumTopic) error {
	return r.db.Create(topic).Error
}

// List returns topics ordered by their last activity label, descending
func (r *forumTopicRepository) List() ([]models.ForumTopic, error) {
	var topics []models.ForumTopic
	err := r.db.Order("last_active DESC").Find(&topics).Error
	return topics, err
}

type resourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) Create(resource *models.Resource) error {
	return r.db.Create(resource).Error
}

// List returns resources in insertion order
func (r *resourceRepository) List() ([]models.Resource, error) {
	var resources []models.Resource
	err := r.db.Order("created_at ASC").Find(&resources).Error
	return resources, err
}
