package controllers

import (
	"errors"
	"net/http"

	"github.com/tracechain/tracechain/app/models"
	"github.com/tracechain/tracechain/app/repositories"
	"github.com/tracechain/tracechain/app/services"
	appctx "github.com/tracechain/tracechain/pkg/ctx"
	"github.com/tracechain/tracechain/pkg/logger"
	"github.com/tracechain/tracechain/pkg/middleware"
	"github.com/tracechain/tracechain/pkg/session"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(dir *repositories.Directory) *AuthController {
	return &AuthController{service: services.NewAuthService(dir)}
}

type loginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *AuthController) Login() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		var in loginInput
		if !ctx.BindJSON(&in) {
			return
		}

		result, err := c.service.Login(in.Email, in.Password)
		if err != nil {
			ctx.Unauthorized("Invalid email or password")
			return
		}
		rememberSession(ctx, result)
		ctx.Success(result)
	})
}

// rememberSession records the logged-in user in the cookie session so
// browser clients stay authenticated without resending the JWT.
func rememberSession(ctx *appctx.Context, result services.AuthResult) {
	sess := session.FromCtx(ctx.R)
	sess.Set("user_id", result.User.ID)
	sess.Set("role", string(result.User.Role))
	sess.Set("landing_path", result.LandingPath)
	if err := sess.Save(ctx.W); err != nil {
		logger.Warn("session save failed", "user_id", result.User.ID, "error", err)
	}
}

type registerInput struct {
	Name     string `json:"name"     validate:"required,min=2,max=255"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required"`
}

func (c *AuthController) Register() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		var in registerInput
		if !ctx.BindJSON(&in) {
			return
		}

		result, err := c.service.Register(in.Name, in.Email, in.Password, models.Role(in.Role))
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			ctx.Error(http.StatusConflict, "Email already registered")
			return
		case err != nil:
			ctx.Error(http.StatusBadRequest, err.Error())
			return
		}
		rememberSession(ctx, result)
		ctx.Created(result)
	})
}

// Logout clears the cookie session. Bearer tokens stay valid until they
// expire; there is no server-side token revocation list.
func (c *AuthController) Logout() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		sess := session.FromCtx(ctx.R)
		sess.Invalidate()
		if err := sess.Save(ctx.W); err != nil {
			logger.Warn("session save failed", "error", err)
		}
		ctx.Success(map[string]string{"message": "Logged out"})
	})
}

func (c *AuthController) Profile() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		userID, ok := middleware.UserIDFromCtx(ctx.R)
		if !ok {
			ctx.Unauthorized()
			return
		}
		user, ok := c.service.Profile(userID)
		if !ok {
			ctx.NotFound("User not found")
			return
		}
		ctx.Success(user)
	})
}

func (c *AuthController) UpdateProfile() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		userID, ok := middleware.UserIDFromCtx(ctx.R)
		if !ok {
			ctx.Unauthorized()
			return
		}

		var upd services.ProfileUpdate
		if !ctx.BindJSON(&upd) {
			return
		}

		user, err := c.service.UpdateProfile(userID, upd)
		if err != nil {
			ctx.Error(http.StatusBadRequest, err.Error())
			return
		}
		ctx.Success(user)
	})
}
