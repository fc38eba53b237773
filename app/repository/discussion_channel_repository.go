package repository

import (
	"github.com/muhafiz/muhafiz-api/app/models"
	"gorm.io/gorm"
)

type discussionChannelRepository struct {
	db *gorm.DB
}

func NewDiscussionChannelRepository(db *gorm.DB) DiscussionChannelRepository {
	return &discussionChannelRepository{db: db}
}

func (r *discussionChannelRepository) Create(channel *models.DiscussionChannel) error {
	return r.db.Create(channel).Error
}

func (r *discussionChannelRepository) GetByID(id string) (*models.DiscussionChannel, error) {
	var channel models.DiscussionChannel
	if err := r.db.First(&channel, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &channel, nil
}

// List returns all channels, newest first
func (r *discussionChannelRepository) List() ([]models.DiscussionChannel, error) {
	var channels []models.DiscussionChannel
	err := r.db.Order("created_at DESC").Find(&channels).Error
	return channels, err
}
