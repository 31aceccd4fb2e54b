package services

import (
	"github.com/tracechain/tracechain/app/models"
	"github.com/tracechain/tracechain/pkg/event"
	"github.com/tracechain/tracechain/pkg/logger"
	"github.com/tracechain/tracechain/pkg/queue"
)

// RegisterJobs makes every job type deserializable by the queue workers
// and hooks background work onto domain events. Call once at boot,
// before StartWorkers.
func RegisterJobs() {
	queue.Register("services.QRRenderJob", func() queue.Job { return &QRRenderJob{} })
	queue.Register("services.FeedbackRecordedJob", func() queue.Job { return &FeedbackRecordedJob{} })

	event.Listen(EventFeedbackCreated, func(payload interface{}) {
		fb, ok := payload.(models.FeedbackEvent)
		if !ok {
			return
		}
		if err := queue.Dispatch(FeedbackRecordedJob{Feedback: fb}); err != nil {
			logger.Error("feedback: archive dispatch failed", "id", fb.ID, "error", err)
		}
	})
}
