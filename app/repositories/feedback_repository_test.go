package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/tracechain/tracechain/app/repositories"
)

// Without a database (and an empty cache) the cached read path must
// surface ErrInvalidDB so callers fall back to fixture feedback alone.
func TestFeedbackForProductWithoutDatabase(t *testing.T) {
	repo := repositories.NewFeedbackRepository()

	out, err := repo.ForProduct("prod-001")
	assert.ErrorIs(t, err, gorm.ErrInvalidDB)
	assert.Empty(t, out)
}

func TestFeedbackByUserWithoutDatabase(t *testing.T) {
	repo := repositories.NewFeedbackRepository()

	out, err := repo.ByUser("consumer-1")
	assert.ErrorIs(t, err, gorm.ErrInvalidDB)
	assert.Empty(t, out)
}
