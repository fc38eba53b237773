package repository

import (
	"github.com/muhafiz/muhafiz-api/app/models"
	"gorm.io/gorm"
)

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) GetByID(id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListByChannel returns the posts of one channel, newest first. The channel
// filter is mandatory; there is no way to list posts across channels.
func (r *postRepository) ListByChannel(channelID string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("channel_id = ?", channelID).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// AddReply appends a reply to the post's embedded thread
func (r *postRepository) AddReply(postID string, reply models.Reply) (*models.Post, error) {
	return mutateLocked(r.db, postID, func(p *models.Post) error {
		p.AddReply(reply)
		return nil
	})
}

// ToggleReaction flips label in the user's reaction set on the post
func (r *postRepository) ToggleReaction(postID, userID, label string) (*models.Post, error) {
	return mutateLocked(r.db, postID, func(p *models.Post) error {
		p.Reactions.Toggle(userID, label)
		return nil
	})
}
