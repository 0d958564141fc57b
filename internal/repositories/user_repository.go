package repositories

import (
	"errors"
	"strings"

	"recruitdesk_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	Create(user *models.User) error
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	// FindByUsernames resolves mention tokens; unknown usernames are
	// simply absent from the result.
	FindByUsernames(usernames []string) ([]models.User, error)
	// Search matches username prefixes and name substrings,
	// case-insensitively, for mention autocomplete.
	Search(query string, limit int) ([]models.User, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	err := r.db.Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByUsernames(usernames []string) ([]models.User, error) {
	if len(usernames) == 0 {
		return nil, nil
	}
	var users []models.User
	err := r.db.Where("username IN ?", usernames).Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) Search(query string, limit int) ([]models.User, error) {
	// Usernames are stored lowercase, so a lowercased prefix match is
	// already case-insensitive; names need the LOWER().
	q := strings.ToLower(query)
	var users []models.User
	err := r.db.
		Where("username LIKE ? OR LOWER(name) LIKE ?", q+"%", "%"+q+"%").
		Order("username ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}
