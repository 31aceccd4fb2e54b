package seeders

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tracechain/tracechain/app/models"
	"github.com/tracechain/tracechain/app/repositories"
	"github.com/tracechain/tracechain/pkg/auth"
)

func init() {
	Register("demo-users", SeedDemoUsers)
}

// SeedDemoUsers creates a login-capable account for every directory user
// plus an admin. Passwords are bcrypt-hashed at seed time; the demo
// password is only suitable for local development. Existing rows are
// left untouched so the seeder is safe to re-run.
func SeedDemoUsers(db *gorm.DB) error {
	const demoPassword = "password123"

	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		return err
	}

	dir := repositories.DefaultDirectory()
	seed := dir.Users()
	seed = append(seed, models.User{
		ID:    "admin-001",
		Name:  "Platform Admin",
		Role:  models.RoleAdmin,
		Email: "admin@tracechain.local",
	})

	for _, u := range seed {
		var existing models.User
		err := db.Where("email = ?", u.Email).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		u.Password = hash
		if err := db.Create(&u).Error; err != nil {
			return err
		}
	}
	return nil
}
