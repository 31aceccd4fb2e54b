package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strconv"

	"github.com/tracechain/tracechain/app/models"
	"github.com/tracechain/tracechain/app/repositories"
	"github.com/tracechain/tracechain/pkg/auth"
	appctx "github.com/tracechain/tracechain/pkg/ctx"
	"github.com/tracechain/tracechain/pkg/resource"
	"github.com/tracechain/tracechain/pkg/response"
)

// UserController is the admin-only CRUD surface over registered accounts.
// Seed directory users are read-only and not managed here.
type UserController struct {
	users *repositories.UserRepository
}

func NewUserController() *UserController {
	return &UserController{users: repositories.NewUserRepository()}
}

func (c *UserController) Index() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

		users, pagination, err := c.users.All(page, limit)
		if err != nil {
			ctx.Error(http.StatusInternalServerError, "Could not list users")
			return
		}
		response.Paginated(ctx.W, users, pagination)
	})
}

// userResource shapes the admin detail view of an account, with
// hypermedia links to the user's dashboard.
type userResource struct{ resource.Base }

func (userResource) ToArray(v interface{}) resource.Map {
	u := v.(models.User)
	return resource.Map{
		"id":       u.ID,
		"name":     u.Name,
		"email":    u.Email,
		"role":     u.Role,
		"location": u.Location,
		"company":  u.Company,
		"links": resource.Map{
			"self":    "/api/users/" + u.ID,
			"landing": u.Role.LandingPath(),
		},
	}
}

func (c *UserController) Show() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		user, err := c.users.FindByID(ctx.Param("id"))
		if err != nil {
			ctx.NotFound("User not found")
			return
		}
		resource.New(userResource{}, user).Respond(ctx.W)
	})
}

type userInput struct {
	Name     string `json:"name"     validate:"required,min=2,max=255"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required"`
	Location string `json:"location" validate:"nullable,max=255"`
	Company  string `json:"company"  validate:"nullable,max=255"`
}

func (c *UserController) Store() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		var in userInput
		if !ctx.BindJSON(&in) {
			return
		}
		role := models.Role(in.Role)
		if !role.Valid() {
			ctx.ValidationError(map[string]string{"role": "unknown role"})
			return
		}

		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			ctx.Error(http.StatusInternalServerError, "Could not create user")
			return
		}
		user := models.User{
			ID:       in.Role + "-" + newRecordID(),
			Name:     in.Name,
			Role:     role,
			Email:    in.Email,
			Password: hash,
			Location: in.Location,
			Company:  in.Company,
		}
		if err := c.users.Create(&user); err != nil {
			ctx.Error(http.StatusConflict, "Email already registered")
			return
		}
		ctx.Created(user)
	})
}

func newRecordID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

type userUpdateInput struct {
	Name     string `json:"name"     validate:"required,min=2,max=255"`
	Email    string `json:"email"    validate:"required,email"`
	Role     string `json:"role"     validate:"required"`
	Location string `json:"location" validate:"nullable,max=255"`
	Company  string `json:"company"  validate:"nullable,max=255"`
}

func (c *UserController) Update() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		user, err := c.users.FindByID(ctx.Param("id"))
		if err != nil {
			ctx.NotFound("User not found")
			return
		}

		var in userUpdateInput
		if !ctx.BindJSON(&in) {
			return
		}
		role := models.Role(in.Role)
		if !role.Valid() {
			ctx.ValidationError(map[string]string{"role": "unknown role"})
			return
		}

		user.Name = in.Name
		user.Email = in.Email
		user.Role = role
		user.Location = in.Location
		user.Company = in.Company
		if err := c.users.Update(&user); err != nil {
			ctx.Error(http.StatusInternalServerError, "Could not update user")
			return
		}
		ctx.Success(user)
	})
}

func (c *UserController) Destroy() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		if _, err := c.users.FindByID(ctx.Param("id")); err != nil {
			ctx.NotFound("User not found")
			return
		}
		if err := c.users.Delete(ctx.Param("id")); err != nil {
			ctx.Error(http.StatusInternalServerError, "Could not delete user")
			return
		}
		ctx.Status(http.StatusNoContent)
	})
}
