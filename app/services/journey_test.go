package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracechain/tracechain/app/models"
	"github.com/tracechain/tracechain/app/repositories"
	"github.com/tracechain/tracechain/app/services"
)

func newJourneyService(t *testing.T) *services.JourneyService {
	t.Helper()
	return services.NewJourneyService(repositories.DefaultDirectory())
}

func TestJourneyUnknownProduct(t *testing.T) {
	svc := newJourneyService(t)

	_, ok := svc.Journey("prod-999")
	assert.False(t, ok, "unknown product must report absence, not error")

	timeline, ok := svc.Timeline("prod-999")
	assert.False(t, ok)
	assert.Nil(t, timeline)
}

func TestJourneyGroupsEventsByProduct(t *testing.T) {
	svc := newJourneyService(t)

	journey, ok := svc.Journey("prod-001")
	require.True(t, ok)

	assert.Equal(t, "Organic Apples", journey.Product.Name)
	assert.Len(t, journey.TransitEvents, 2)
	assert.Len(t, journey.StorageEvents, 1)
	assert.Len(t, journey.RetailEvents, 1)
	assert.Len(t, journey.Feedback, 1)
}

func TestTimelineFullJourney(t *testing.T) {
	svc := newJourneyService(t)

	timeline, ok := svc.Timeline("prod-001")
	require.True(t, ok)
	require.Len(t, timeline, 6)

	// Harvest milestone always opens the timeline.
	assert.Equal(t, services.EntryMilestone, timeline[0].Kind)
	assert.Equal(t, "Harvested at Farm", timeline[0].Title)
	assert.Equal(t, models.MustTimestamp("2023-09-15"), timeline[0].Timestamp)

	// Delivery to Oakland and warehouse intake share 2023-09-16T14:15Z;
	// the stable merge must keep the transit leg first.
	assert.Equal(t, services.EntryTransit, timeline[1].Kind)
	assert.Equal(t, "Delivered to Fresh Storage Solutions, Oakland", timeline[1].Title)
	assert.Equal(t, services.EntryStorage, timeline[2].Kind)
	assert.Equal(t, "Stored at Fresh Storage Solutions", timeline[2].Title)
	assert.Equal(t, timeline[1].Timestamp, timeline[2].Timestamp)

	// Same tie at 2023-09-20T10:45Z between the second leg and the
	// retail arrival.
	assert.Equal(t, services.EntryTransit, timeline[3].Kind)
	assert.Equal(t, "Delivered to Fresh Markets, San Francisco", timeline[3].Title)
	assert.Equal(t, services.EntryRetail, timeline[4].Kind)
	assert.Equal(t, "Received at Fresh Markets", timeline[4].Title)

	// Current-status milestone always closes it.
	last := timeline[len(timeline)-1]
	assert.Equal(t, services.EntryMilestone, last.Kind)
	assert.Equal(t, "Currently at-retailer", last.Title)
	assert.Equal(t, "Fresh Markets, San Francisco", last.Description)
}

func TestTimelineInTransitSortsByPickup(t *testing.T) {
	svc := newJourneyService(t)

	timeline, ok := svc.Timeline("prod-003")
	require.True(t, ok)
	require.Len(t, timeline, 3)

	assert.Equal(t, services.EntryMilestone, timeline[0].Kind)

	// An undelivered leg sorts by its pickup time, not the estimate.
	assert.Equal(t, services.EntryTransit, timeline[1].Kind)
	assert.Equal(t, "Picked up from Green Valley Farm, California", timeline[1].Title)
	assert.Equal(t, models.MustTimestamp("2023-09-23T07:30:00Z"), timeline[1].Timestamp)

	assert.Equal(t, "Currently in-transit", timeline[2].Title)
}

func TestTimelineNoEventsYieldsTwoMilestones(t *testing.T) {
	dir, err := repositories.LoadDirectory(fixtureWithEventlessProduct())
	require.NoError(t, err)
	svc := services.NewJourneyService(dir)

	timeline, ok := svc.Timeline("prod-100")
	require.True(t, ok)
	require.Len(t, timeline, 2)

	assert.Equal(t, "Harvested at Farm", timeline[0].Title)
	assert.Equal(t, "Currently at-farm", timeline[1].Title)
	// With no events the closing milestone reuses the harvest date.
	assert.Equal(t, timeline[0].Timestamp, timeline[1].Timestamp)
}

func TestTimelineNonDecreasingAndStable(t *testing.T) {
	svc := newJourneyService(t)

	for _, id := range []string{"prod-001", "prod-002", "prod-003"} {
		first, ok := svc.Timeline(id)
		require.True(t, ok, id)

		for i := 1; i < len(first); i++ {
			assert.False(t, first[i].Timestamp.Before(first[i-1].Timestamp.Time),
				"%s: entry %d is earlier than its predecessor", id, i)
		}

		// Recomputing must reproduce the exact order, ties included.
		second, _ := svc.Timeline(id)
		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i].Kind, second[i].Kind, "%s: entry %d", id, i)
			assert.Equal(t, first[i].Title, second[i].Title, "%s: entry %d", id, i)
		}
	}
}

func TestImpliedStatusMatchesFixture(t *testing.T) {
	dir := repositories.DefaultDirectory()
	svc := services.NewJourneyService(dir)

	for _, p := range dir.Products(nil) {
		implied, ok := svc.ImpliedStatus(p.ID)
		require.True(t, ok, p.ID)
		assert.Equal(t, p.CurrentStatus, implied, "fixture data should carry no drift for %s", p.ID)
	}
}
