package repositories

import (
	"github.com/tracechain/tracechain/app/models"
	"github.com/tracechain/tracechain/pkg/orm"
)

// UserRepository handles database operations for registered users. Seed
// users live in the Directory; only accounts created through register
// (or the seeder) exist here.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("email = ?", email).First(&user)
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id string) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return orm.DB().Create(user)
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	return orm.DB().Save(user)
}

// Delete removes a user record.
func (r *UserRepository) Delete(id string) error {
	return orm.DB().Where("id = ?", id).Delete(&models.User{})
}

// All returns all registered users with optional pagination.
func (r *UserRepository) All(page, limit int) ([]models.User, orm.Pagination, error) {
	var users []models.User
	pagination, err := orm.DB().Model(&models.User{}).GetWithPagination(&users, page, limit)
	return users, pagination, err
}
