package migrations

import (
	"github.com/tracechain/tracechain/app/models"
	"github.com/tracechain/tracechain/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260101000001_create_feedback_events_table", &CreateFeedbackEventsTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: feedback_events --------

type CreateFeedbackEventsTable struct{}

func (m *CreateFeedbackEventsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.FeedbackEvent{})
}

func (m *CreateFeedbackEventsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("feedback_events")
}
