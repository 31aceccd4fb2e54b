package repositories

import (
	"time"

	"github.com/tracechain/tracechain/app/models"
	"github.com/tracechain/tracechain/pkg/cache"
	"github.com/tracechain/tracechain/pkg/orm"
)

// feedbackTTL bounds how stale a cached per-product feedback page may
// get if an invalidation is missed.
const feedbackTTL = 5 * time.Minute

func feedbackKey(productID string) string {
	return "tracechain:feedback:product:" + productID
}

// FeedbackRepository persists consumer feedback submitted through the
// API. Reads combine these rows with the read-only fixture feedback.
type FeedbackRepository struct{}

func NewFeedbackRepository() *FeedbackRepository {
	return &FeedbackRepository{}
}

// Create stores a new feedback record and drops the product's cached
// feedback page.
func (r *FeedbackRepository) Create(fb *models.FeedbackEvent) error {
	if err := orm.DB().Create(fb); err != nil {
		return err
	}
	_ = cache.Forget(feedbackKey(fb.ProductID))
	return nil
}

// ForProduct returns submitted feedback for one product, newest first.
// Results are served from the cache until the next submission for the
// product (or the TTL) invalidates them.
func (r *FeedbackRepository) ForProduct(productID string) ([]models.FeedbackEvent, error) {
	var out []models.FeedbackEvent
	err := orm.DB().
		Model(&models.FeedbackEvent{}).
		Where("product_id = ?", productID).
		Order("timestamp desc").
		Cache(feedbackKey(productID), feedbackTTL, &out)
	return out, err
}

// ByUser returns the feedback one user has submitted.
func (r *FeedbackRepository) ByUser(userID string) ([]models.FeedbackEvent, error) {
	var out []models.FeedbackEvent
	err := orm.DB().
		Model(&models.FeedbackEvent{}).
		Where("user_id = ?", userID).
		Order("timestamp desc").
		Get(&out)
	return out, err
}
