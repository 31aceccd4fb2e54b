package controllers

import (
	"net/http"

	"github.com/tracechain/tracechain/app/models"
	"github.com/tracechain/tracechain/app/repositories"
	"github.com/tracechain/tracechain/app/services"
	appctx "github.com/tracechain/tracechain/pkg/ctx"
	"github.com/tracechain/tracechain/pkg/middleware"
)

type DashboardController struct {
	dir      *repositories.Directory
	overview *services.OverviewService
	feedback *services.FeedbackService
}

func NewDashboardController(dir *repositories.Directory, window int) *DashboardController {
	return &DashboardController{
		dir:      dir,
		overview: services.NewOverviewService(dir, window),
		feedback: services.NewFeedbackService(dir),
	}
}

// Overview serves the landing-page summary: counts per status plus the
// recent activity feed.
func (c *DashboardController) Overview() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		ctx.Success(map[string]any{
			"statusTally":    c.overview.StatusTally(),
			"recentActivity": c.overview.RecentActivity(),
		})
	})
}

// Farmer summarizes the caller's own products.
func (c *DashboardController) Farmer() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		userID, ok := middleware.UserIDFromCtx(ctx.R)
		if !ok {
			ctx.Unauthorized()
			return
		}
		products := c.dir.ProductsByFarmer(userID)
		ctx.Success(map[string]any{
			"products":    products,
			"statusTally": services.TallyByStatus(products),
		})
	})
}

// Transporter summarizes the caller's shipments by transit status.
func (c *DashboardController) Transporter() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		userID, ok := middleware.UserIDFromCtx(ctx.R)
		if !ok {
			ctx.Unauthorized()
			return
		}
		shipments := c.dir.TransitEventsByTransporter(userID)

		counts := map[models.TransitStatus]int{
			models.TransitScheduled: 0,
			models.TransitInTransit: 0,
			models.TransitDelivered: 0,
		}
		for _, s := range shipments {
			counts[s.Status]++
		}
		ctx.Success(map[string]any{
			"shipments": shipments,
			"byStatus":  counts,
		})
	})
}

// Warehouse summarizes stock at the caller's facility. Holdings are the
// storage records with no exit time yet.
func (c *DashboardController) Warehouse() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		userID, ok := middleware.UserIDFromCtx(ctx.R)
		if !ok {
			ctx.Unauthorized()
			return
		}
		records := c.dir.StorageEventsByWarehouse(userID)

		var holdings []models.StorageEvent
		for _, rec := range records {
			if rec.ExitTime.IsZero() {
				holdings = append(holdings, rec)
			}
		}
		ctx.Success(map[string]any{
			"records":  records,
			"holdings": holdings,
		})
	})
}

// Retailer summarizes deliveries received at the caller's store along with
// shopper feedback on those products.
func (c *DashboardController) Retailer() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		userID, ok := middleware.UserIDFromCtx(ctx.R)
		if !ok {
			ctx.Unauthorized()
			return
		}
		received := c.dir.RetailEventsByRetailer(userID)

		feedback := make(map[string][]models.FeedbackEvent, len(received))
		for _, rec := range received {
			if fb, ok := c.feedback.ForProduct(rec.ProductID); ok && len(fb) > 0 {
				feedback[rec.ProductID] = fb
			}
		}
		ctx.Success(map[string]any{
			"received": received,
			"feedback": feedback,
		})
	})
}

// Consumer serves the shopper view: the browsable catalog plus the
// caller's own submitted feedback.
func (c *DashboardController) Consumer() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		userID, ok := middleware.UserIDFromCtx(ctx.R)
		if !ok {
			ctx.Unauthorized()
			return
		}
		ctx.Success(map[string]any{
			"products": c.dir.Products(nil),
			"feedback": c.feedback.ByUser(userID),
		})
	})
}
