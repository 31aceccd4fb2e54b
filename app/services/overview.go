package services

import (
	"fmt"
	"sort"

	"github.com/tracechain/tracechain/app/models"
	"github.com/tracechain/tracechain/app/repositories"
)

// DefaultActivityWindow is how many entries the recent-activity feed keeps.
const DefaultActivityWindow = 5

// ActivityEntry is one line of the cross-product activity feed.
type ActivityEntry struct {
	ID        string           `json:"id"`
	Kind      EntryKind        `json:"kind"`
	ProductID string           `json:"productId"`
	Title     string           `json:"title"`
	Time      models.Timestamp `json:"time"`
}

// OverviewService computes the aggregate views shown on the landing
// dashboard: the per-status product tally and the recent-activity feed.
type OverviewService struct {
	dir    *repositories.Directory
	window int
}

// NewOverviewService wires an OverviewService to a directory. window
// bounds the recent-activity feed; values < 1 fall back to the default.
func NewOverviewService(dir *repositories.Directory, window int) *OverviewService {
	if window < 1 {
		window = DefaultActivityWindow
	}
	return &OverviewService{dir: dir, window: window}
}

// StatusTally counts products per current status. Every product lands in
// exactly one bucket, so the counts sum to the product total. Statuses
// with no products report zero rather than being omitted.
func (s *OverviewService) StatusTally() map[models.Status]int {
	return TallyByStatus(s.dir.Products(nil))
}

// TallyByStatus is the pure tally over an arbitrary product slice.
func TallyByStatus(products []models.Product) map[models.Status]int {
	tally := make(map[models.Status]int, len(models.Statuses()))
	for _, status := range models.Statuses() {
		tally[status] = 0
	}
	for _, p := range products {
		tally[p.CurrentStatus]++
	}
	return tally
}

// RecentActivity merges transit and storage events across every product
// (retail and feedback are excluded from the feed), sorted newest first
// by the same per-kind timestamp rule the journey timeline uses, and
// truncated to the configured window. The sort is stable so repeated
// calls return the same order for same-instant events.
func (s *OverviewService) RecentActivity() []ActivityEntry {
	transit := s.dir.AllTransitEvents()
	storage := s.dir.AllStorageEvents()

	entries := make([]ActivityEntry, 0, len(transit)+len(storage))
	for _, e := range transit {
		verb := "in transit to"
		if e.Status == models.TransitDelivered {
			verb = "delivered to"
		}
		entries = append(entries, ActivityEntry{
			ID:        e.ID,
			Kind:      EntryTransit,
			ProductID: e.ProductID,
			Title:     fmt.Sprintf("Product %s %s %s", e.ProductID, verb, e.DeliveryLocation),
			Time:      e.SortTime(),
		})
	}
	for _, e := range storage {
		entries = append(entries, ActivityEntry{
			ID:        e.ID,
			Kind:      EntryStorage,
			ProductID: e.ProductID,
			Title:     fmt.Sprintf("Product %s received at %s", e.ProductID, e.WarehouseName),
			Time:      e.SortTime(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[j].Time.Before(entries[i].Time.Time)
	})

	if len(entries) > s.window {
		entries = entries[:s.window]
	}
	return entries
}
