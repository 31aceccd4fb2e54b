package services

import (
	"fmt"
	"sort"

	"github.com/tracechain/tracechain/app/models"
	"github.com/tracechain/tracechain/app/repositories"
)

// EntryKind tags a timeline entry with its source so consumers can render
// kind-specific fields without re-deriving the type from shape.
type EntryKind string

const (
	EntryTransit   EntryKind = "transit"
	EntryStorage   EntryKind = "storage"
	EntryRetail    EntryKind = "retail"
	EntryMilestone EntryKind = "milestone"
)

// TimelineEntry is one step of a product's chronological journey. Exactly
// one of Transit, Storage and Retail is set for event entries; milestone
// entries carry none of them.
type TimelineEntry struct {
	Kind        EntryKind            `json:"kind"`
	Timestamp   models.Timestamp     `json:"timestamp"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Transit     *models.TransitEvent `json:"transit,omitempty"`
	Storage     *models.StorageEvent `json:"storage,omitempty"`
	Retail      *models.RetailEvent  `json:"retail,omitempty"`
}

// JourneyService builds unified, time-ordered journeys over the entity
// directory. Every call recomputes from the directory; nothing is cached.
type JourneyService struct {
	dir *repositories.Directory
}

// NewJourneyService wires a JourneyService to a directory.
func NewJourneyService(dir *repositories.Directory) *JourneyService {
	return &JourneyService{dir: dir}
}

// Journey returns the raw grouped events for a product. The second return
// is false when the product id is unknown.
func (s *JourneyService) Journey(productID string) (models.ProductJourney, bool) {
	product, ok := s.dir.Product(productID)
	if !ok {
		return models.ProductJourney{}, false
	}
	return models.ProductJourney{
		Product:       product,
		TransitEvents: s.dir.TransitEventsFor(productID),
		StorageEvents: s.dir.StorageEventsFor(productID),
		RetailEvents:  s.dir.RetailEventsFor(productID),
		Feedback:      s.dir.FeedbackFor(productID),
	}, true
}

// Timeline merges a product's transit, storage and retail events into one
// sequence sorted ascending by each event's SortTime, with a harvest
// milestone prepended and a current-status milestone appended. The sort is
// stable: events sharing an instant keep their transit→storage→retail
// fixture order, so repeated calls are deterministic.
//
// A product with no recorded events yields exactly the two milestones.
// The second return is false when the product id is unknown.
func (s *JourneyService) Timeline(productID string) ([]TimelineEntry, bool) {
	journey, ok := s.Journey(productID)
	if !ok {
		return nil, false
	}

	product := journey.Product
	entries := make([]TimelineEntry, 0, len(journey.TransitEvents)+len(journey.StorageEvents)+len(journey.RetailEvents)+2)

	for i := range journey.TransitEvents {
		e := journey.TransitEvents[i]
		title := fmt.Sprintf("Picked up from %s", e.PickupLocation)
		if e.Status == models.TransitDelivered {
			title = fmt.Sprintf("Delivered to %s", e.DeliveryLocation)
		}
		var desc string
		if e.Conditions != nil {
			desc = fmt.Sprintf("Transport conditions: %.1f°C, %.0f%% humidity", e.Conditions.Temperature, e.Conditions.Humidity)
		}
		entries = append(entries, TimelineEntry{
			Kind:        EntryTransit,
			Timestamp:   e.SortTime(),
			Title:       title,
			Description: desc,
			Transit:     &e,
		})
	}
	for i := range journey.StorageEvents {
		e := journey.StorageEvents[i]
		entries = append(entries, TimelineEntry{
			Kind:        EntryStorage,
			Timestamp:   e.SortTime(),
			Title:       fmt.Sprintf("Stored at %s", e.WarehouseName),
			Description: fmt.Sprintf("Storage conditions: %.1f°C, %.0f%% humidity", e.Conditions.Temperature, e.Conditions.Humidity),
			Storage:     &e,
		})
	}
	for i := range journey.RetailEvents {
		e := journey.RetailEvents[i]
		entries = append(entries, TimelineEntry{
			Kind:        EntryRetail,
			Timestamp:   e.SortTime(),
			Title:       fmt.Sprintf("Received at %s", e.RetailerName),
			Description: fmt.Sprintf("Retail price: $%.2f", e.Price),
			Retail:      &e,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp.Time)
	})

	harvest := TimelineEntry{
		Kind:        EntryMilestone,
		Timestamp:   product.HarvestDate,
		Title:       "Harvested at Farm",
		Description: fmt.Sprintf("Product harvested at %s", product.Origin),
	}

	// The closing milestone reuses the last known instant so the overall
	// sequence stays non-decreasing even though it is appended, not sorted.
	currentTime := product.HarvestDate
	if n := len(entries); n > 0 {
		currentTime = entries[n-1].Timestamp
	}
	current := TimelineEntry{
		Kind:        EntryMilestone,
		Timestamp:   currentTime,
		Title:       fmt.Sprintf("Currently %s", product.CurrentStatus),
		Description: product.CurrentLocation,
	}

	timeline := make([]TimelineEntry, 0, len(entries)+2)
	timeline = append(timeline, harvest)
	timeline = append(timeline, entries...)
	timeline = append(timeline, current)
	return timeline, true
}

// ImpliedStatus derives the status the most recent event suggests for a
// product, ignoring the CurrentStatus field. Used by the drift auditor;
// the field itself stays authoritative.
func (s *JourneyService) ImpliedStatus(productID string) (models.Status, bool) {
	journey, ok := s.Journey(productID)
	if !ok {
		return "", false
	}

	implied := models.StatusAtFarm
	var latest models.Timestamp

	for _, e := range journey.TransitEvents {
		if t := e.SortTime(); !t.Before(latest.Time) {
			latest = t
			if e.Status == models.TransitDelivered {
				implied = models.StatusInWarehouse
			} else {
				implied = models.StatusInTransit
			}
		}
	}
	for _, e := range journey.StorageEvents {
		if t := e.SortTime(); !t.Before(latest.Time) {
			latest = t
			implied = models.StatusInWarehouse
		}
	}
	for _, e := range journey.RetailEvents {
		if t := e.SortTime(); !t.Before(latest.Time) {
			latest = t
			implied = models.StatusAtRetailer
			if !e.SoldTime.IsZero() {
				implied = models.StatusSold
			}
		}
	}
	return implied, true
}
