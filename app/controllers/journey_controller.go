package controllers

import (
	"net/http"

	"github.com/tracechain/tracechain/app/repositories"
	"github.com/tracechain/tracechain/app/services"
	appctx "github.com/tracechain/tracechain/pkg/ctx"
)

type JourneyController struct {
	journeys *services.JourneyService
}

func NewJourneyController(dir *repositories.Directory) *JourneyController {
	return &JourneyController{journeys: services.NewJourneyService(dir)}
}

// Show returns the raw event groups and the chronological timeline for a
// product in one response.
func (c *JourneyController) Show() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		id := ctx.Param("id")

		journey, ok := c.journeys.Journey(id)
		if !ok {
			ctx.NotFound("Product not found")
			return
		}
		timeline, _ := c.journeys.Timeline(id)

		ctx.Success(map[string]any{
			"journey":  journey,
			"timeline": timeline,
		})
	})
}
