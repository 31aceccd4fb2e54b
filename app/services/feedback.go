package services

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/tracechain/tracechain/app/models"
	"github.com/tracechain/tracechain/app/repositories"
	"github.com/tracechain/tracechain/pkg/event"
	"github.com/tracechain/tracechain/pkg/storage"
)

// EventFeedbackCreated is fired after a feedback record is stored. The
// payload is the models.FeedbackEvent.
const EventFeedbackCreated = "feedback.created"

// FeedbackService reads and records product feedback. Seed feedback comes
// from the directory; submissions are persisted and the two sets are
// merged on read.
type FeedbackService struct {
	dir  *repositories.Directory
	repo *repositories.FeedbackRepository
}

func NewFeedbackService(dir *repositories.Directory) *FeedbackService {
	return &FeedbackService{dir: dir, repo: repositories.NewFeedbackRepository()}
}

// ForProduct returns seed and submitted feedback for one product, newest
// first. The second return is false when the product id is unknown.
func (s *FeedbackService) ForProduct(productID string) ([]models.FeedbackEvent, bool) {
	if _, ok := s.dir.Product(productID); !ok {
		return nil, false
	}

	merged := s.dir.FeedbackFor(productID)
	if stored, err := s.repo.ForProduct(productID); err == nil {
		merged = append(merged, stored...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[j].Timestamp.Before(merged[i].Timestamp.Time)
	})
	return merged, true
}

// ByUser returns seed and submitted feedback authored by one user,
// newest first.
func (s *FeedbackService) ByUser(userID string) []models.FeedbackEvent {
	merged := s.dir.FeedbackByUser(userID)
	if stored, err := s.repo.ByUser(userID); err == nil {
		merged = append(merged, stored...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[j].Timestamp.Before(merged[i].Timestamp.Time)
	})
	return merged
}

// Submit validates and stores feedback from user against productID, then
// fires EventFeedbackCreated.
func (s *FeedbackService) Submit(user models.User, productID string, rating int, comment string) (models.FeedbackEvent, error) {
	if _, ok := s.dir.Product(productID); !ok {
		return models.FeedbackEvent{}, fmt.Errorf("feedback: unknown product %q", productID)
	}
	if rating < 1 || rating > 5 {
		return models.FeedbackEvent{}, fmt.Errorf("feedback: rating %d outside 1..5", rating)
	}

	fb := models.FeedbackEvent{
		ID:        newFeedbackID(),
		ProductID: productID,
		UserID:    user.ID,
		UserName:  user.Name,
		UserRole:  user.Role,
		Rating:    rating,
		Comment:   comment,
		Timestamp: models.NewTimestamp(time.Now().UTC()),
	}
	if err := s.repo.Create(&fb); err != nil {
		return models.FeedbackEvent{}, fmt.Errorf("feedback: store: %w", err)
	}

	event.Fire(EventFeedbackCreated, fb)
	return fb, nil
}

// FeedbackRecordedJob archives a submitted feedback record to the storage
// disk so operators keep an audit copy outside the database.
type FeedbackRecordedJob struct {
	Feedback models.FeedbackEvent `json:"feedback"`
}

func (j FeedbackRecordedJob) Handle() error {
	data, err := json.MarshalIndent(j.Feedback, "", "  ")
	if err != nil {
		return fmt.Errorf("feedback: marshal archive: %w", err)
	}
	if err := storage.Put("feedback/"+j.Feedback.ID+".json", data); err != nil {
		return fmt.Errorf("feedback: archive: %w", err)
	}
	return nil
}

func newFeedbackID() string {
	b := make([]byte, 6)
	_, _ = rand.Read(b)
	return "feedback-" + hex.EncodeToString(b)
}
