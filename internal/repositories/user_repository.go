package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/anhnvjm07/v-social/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	GetUserByID(id uint) (*models.User, error)
	GetUsersByIDs(ids []uint) ([]models.User, error)
	GetUsersByUsernames(usernames []string) ([]models.User, error)
	SearchUsers(query string, offset, limit int) ([]models.User, error)
	CountSearchUsers(query string) (int64, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// GetUserByID retrieves a user by ID
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUsersByIDs retrieves the users matching the given IDs; missing IDs are
// simply absent from the result
func (r *PostgresUserRepository) GetUsersByIDs(ids []uint) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []models.User
	err := r.db.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

// GetUsersByUsernames retrieves the users matching the given usernames.
// Unknown usernames are dropped, not errors; mention resolution relies on
// that.
func (r *PostgresUserRepository) GetUsersByUsernames(usernames []string) ([]models.User, error) {
	if len(usernames) == 0 {
		return nil, nil
	}
	var users []models.User
	err := r.db.Where("username IN ?", usernames).Find(&users).Error
	return users, err
}

// SearchUsers finds users whose username, name or email matches the query,
// case-insensitively
func (r *PostgresUserRepository) SearchUsers(query string, offset, limit int) ([]models.User, error) {
	var users []models.User
	err := r.searchScope(query).Order("username ASC").Offset(offset).Limit(limit).Find(&users).Error
	return users, err
}

// CountSearchUsers counts the users a SearchUsers call with the same query
// would match
func (r *PostgresUserRepository) CountSearchUsers(query string) (int64, error) {
	var count int64
	err := r.searchScope(query).Count(&count).Error
	return count, err
}

func (r *PostgresUserRepository) searchScope(query string) *gorm.DB {
	pattern := "%" + strings.TrimSpace(query) + "%"
	return r.db.Model(&models.User{}).Where(
		"username ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?",
		pattern, pattern, pattern, pattern,
	)
}
