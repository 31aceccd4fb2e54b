package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracechain/tracechain/app/models"
	"github.com/tracechain/tracechain/app/repositories"
	"github.com/tracechain/tracechain/app/services"
)

func TestStatusTallyBucketsAreExclusive(t *testing.T) {
	dir := repositories.DefaultDirectory()
	svc := services.NewOverviewService(dir, 0)

	tally := svc.StatusTally()

	total := 0
	for _, n := range tally {
		total += n
	}
	assert.Equal(t, len(dir.Products(nil)), total, "every product counts in exactly one bucket")

	assert.Equal(t, 1, tally[models.StatusAtRetailer])
	assert.Equal(t, 1, tally[models.StatusInWarehouse])
	assert.Equal(t, 1, tally[models.StatusInTransit])
	assert.Equal(t, 0, tally[models.StatusAtFarm])
	assert.Equal(t, 0, tally[models.StatusSold])

	// Empty buckets are present, not omitted.
	assert.Len(t, tally, len(models.Statuses()))
}

func TestRecentActivityDescendingAndBounded(t *testing.T) {
	dir := repositories.DefaultDirectory()
	svc := services.NewOverviewService(dir, 5)

	feed := svc.RecentActivity()

	// 4 transit + 2 storage events exist; the window caps the feed at 5.
	require.Len(t, feed, 5)

	for i := 1; i < len(feed); i++ {
		assert.False(t, feed[i-1].Time.Before(feed[i].Time.Time),
			"feed must be sorted newest first (entry %d)", i)
	}
}

func TestRecentActivityUsesPerKindTimestamps(t *testing.T) {
	dir := repositories.DefaultDirectory()
	svc := services.NewOverviewService(dir, 10)

	feed := svc.RecentActivity()
	require.Len(t, feed, 6)

	// The undelivered leg for prod-003 (picked up 2023-09-23) is the most
	// recent activity; it sorts by pickup time, not its delivery estimate.
	assert.Equal(t, "transit-004", feed[0].ID)
	assert.Equal(t, "Product prod-003 in transit to Fresh Storage Solutions, Oakland", feed[0].Title)
	assert.Equal(t, models.MustTimestamp("2023-09-23T07:30:00Z"), feed[0].Time)

	// Retail and feedback events never appear in the feed.
	for _, entry := range feed {
		assert.Contains(t, []services.EntryKind{services.EntryTransit, services.EntryStorage}, entry.Kind)
	}
}

func TestRecentActivityWindowDefault(t *testing.T) {
	dir := repositories.DefaultDirectory()

	svc := services.NewOverviewService(dir, -3)
	assert.LessOrEqual(t, len(svc.RecentActivity()), services.DefaultActivityWindow)
}

func TestRecentActivityStableForTies(t *testing.T) {
	dir := repositories.DefaultDirectory()
	svc := services.NewOverviewService(dir, 10)

	first := svc.RecentActivity()
	second := svc.RecentActivity()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID, "entry %d", i)
	}

	// transit-001 delivery and storage-001 intake share an instant; the
	// transit entry keeps its place ahead of the storage entry.
	var order []string
	for _, e := range first {
		if e.ID == "transit-001" || e.ID == "storage-001" {
			order = append(order, e.ID)
		}
	}
	assert.Equal(t, []string{"transit-001", "storage-001"}, order)
}
