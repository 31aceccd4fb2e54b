package controllers

import (
	"net/http"
	"time"

	"github.com/tracechain/tracechain/app/services"
	appctx "github.com/tracechain/tracechain/pkg/ctx"
	"github.com/tracechain/tracechain/pkg/sse"
	"github.com/tracechain/tracechain/pkg/ws"
)

type ActivityController struct {
	broker *services.ActivityBroker
}

func NewActivityController(broker *services.ActivityBroker) *ActivityController {
	return &ActivityController{broker: broker}
}

// Stream pushes live activity to the client over SSE until it
// disconnects. A heartbeat comment keeps idle connections open.
func (c *ActivityController) Stream() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		stream := sse.New(ctx.W, ctx.R)
		if stream == nil {
			return
		}

		events, cancel := c.broker.Subscribe()
		defer cancel()

		heartbeat := time.NewTicker(25 * time.Second)
		defer heartbeat.Stop()

		for {
			select {
			case <-ctx.R.Context().Done():
				return
			case <-heartbeat.C:
				stream.Comment("keepalive")
			case data := <-events:
				stream.SendRaw(string(data))
			}
			if stream.IsClosed() {
				return
			}
		}
	})
}

// Socket upgrades the connection and attaches it to the activity hub.
func (c *ActivityController) Socket() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		ws.Upgrade(ctx.W, ctx.R, c.broker.Hub())
	})
}
