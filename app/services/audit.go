package services

import (
	"github.com/tracechain/tracechain/app/models"
	"github.com/tracechain/tracechain/app/repositories"
	"github.com/tracechain/tracechain/pkg/logger"
	"github.com/tracechain/tracechain/pkg/schedule"
)

// StatusDrift pairs a product with the status its event history implies
// when that disagrees with the recorded CurrentStatus.
type StatusDrift struct {
	ProductID string        `json:"productId"`
	Recorded  models.Status `json:"recorded"`
	Implied   models.Status `json:"implied"`
}

// AuditService reconciles each product's CurrentStatus field against the
// status implied by its latest event. The field is authoritative; the
// auditor only reports, it never rewrites.
type AuditService struct {
	dir     *repositories.Directory
	journey *JourneyService
}

func NewAuditService(dir *repositories.Directory) *AuditService {
	return &AuditService{dir: dir, journey: NewJourneyService(dir)}
}

// Drift returns every product whose recorded status disagrees with its
// event history.
func (s *AuditService) Drift() []StatusDrift {
	var out []StatusDrift
	for _, p := range s.dir.Products(nil) {
		implied, ok := s.journey.ImpliedStatus(p.ID)
		if !ok || implied == p.CurrentStatus {
			continue
		}
		out = append(out, StatusDrift{ProductID: p.ID, Recorded: p.CurrentStatus, Implied: implied})
	}
	return out
}

// Schedule registers the periodic drift check with the task scheduler.
func (s *AuditService) Schedule() {
	schedule.Every(15).Minutes().Name("status-drift-audit").WithoutOverlapping().Run(func() {
		drifts := s.Drift()
		if len(drifts) == 0 {
			logger.Debug("status audit clean")
			return
		}
		for _, d := range drifts {
			logger.Warn("status drift",
				"product_id", d.ProductID,
				"recorded", string(d.Recorded),
				"implied", string(d.Implied),
			)
		}
	})
}
