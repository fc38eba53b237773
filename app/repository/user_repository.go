package repository

import (
	"strings"

	"github.com/muhafiz/muhafiz-api/app/models"
	"gorm.io/gorm"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user in the database
func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email address
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users, newest first, without password hashes
func (r *userRepository) List() ([]models.User, error) {
	var users []models.User
	err := r.db.Omit("password").Order("created_at DESC").Find(&users).Error
	return users, err
}

// Delete removes a user by their ID
func (r *userRepository) Delete(id string) error {
	return deleteByID[models.User](r.db, id)
}
