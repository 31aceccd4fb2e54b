package controllers

import (
	"net/http"

	"github.com/tracechain/tracechain/app/repositories"
	"github.com/tracechain/tracechain/app/services"
	appctx "github.com/tracechain/tracechain/pkg/ctx"
	"github.com/tracechain/tracechain/pkg/middleware"
)

type FeedbackController struct {
	auth     *services.AuthService
	feedback *services.FeedbackService
}

func NewFeedbackController(dir *repositories.Directory) *FeedbackController {
	return &FeedbackController{
		auth:     services.NewAuthService(dir),
		feedback: services.NewFeedbackService(dir),
	}
}

// Index lists all feedback for one product, newest first.
func (c *FeedbackController) Index() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		feedback, ok := c.feedback.ForProduct(ctx.Param("productID"))
		if !ok {
			ctx.NotFound("Product not found")
			return
		}
		ctx.Success(feedback)
	})
}

type feedbackInput struct {
	ProductID string `json:"productId" validate:"required"`
	Rating    int    `json:"rating"    validate:"required,min=1,max=5"`
	Comment   string `json:"comment"   validate:"required,max=2000"`
}

// Store records feedback from the authenticated user.
func (c *FeedbackController) Store() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		userID, ok := middleware.UserIDFromCtx(ctx.R)
		if !ok {
			ctx.Unauthorized()
			return
		}
		user, ok := c.auth.Profile(userID)
		if !ok {
			ctx.Unauthorized()
			return
		}

		var in feedbackInput
		if !ctx.BindJSON(&in) {
			return
		}

		fb, err := c.feedback.Submit(user, in.ProductID, in.Rating, in.Comment)
		if err != nil {
			ctx.Error(http.StatusBadRequest, err.Error())
			return
		}
		ctx.Created(fb)
	})
}
