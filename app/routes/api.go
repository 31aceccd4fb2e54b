package routes

import (
	"net/http"

	"github.com/tracechain/tracechain/app/controllers"
	"github.com/tracechain/tracechain/app/models"
	"github.com/tracechain/tracechain/app/repositories"
	"github.com/tracechain/tracechain/app/services"
	"github.com/tracechain/tracechain/pkg/logger"
	"github.com/tracechain/tracechain/pkg/metrics"
	"github.com/tracechain/tracechain/pkg/middleware"
	"github.com/tracechain/tracechain/pkg/rbac"
	"github.com/tracechain/tracechain/pkg/response"
	"github.com/tracechain/tracechain/pkg/router"
)

// RegisterAPI mounts the full HTTP surface: the public catalog and
// journey endpoints, auth, role-scoped dashboards, the admin user CRUD,
// live activity feeds, GraphQL and operational endpoints.
func RegisterAPI(r *router.Router, dir *repositories.Directory, broker *services.ActivityBroker, activityWindow int) {
	auth := controllers.NewAuthController(dir)
	products := controllers.NewProductController(dir)
	journeys := controllers.NewJourneyController(dir)
	dashboards := controllers.NewDashboardController(dir, activityWindow)
	feedback := controllers.NewFeedbackController(dir)
	users := controllers.NewUserController()
	activity := controllers.NewActivityController(broker)

	api := r.Group("/api")

	// Public read surface.
	api.Get("/products", "products.index", products.Index())
	api.Get("/products/{id}", "products.show", products.Show())
	api.Get("/products/{id}/journey", "products.journey", journeys.Show())
	api.Get("/products/{id}/qrcode", "products.qrcode", products.QRCode())
	api.Get("/overview", "dashboard.overview", dashboards.Overview())
	api.Get("/feedback/{productID}", "feedback.index", feedback.Index())

	// Live activity.
	api.Get("/activity/stream", "activity.stream", activity.Stream())
	api.Get("/ws/activity", "activity.ws", activity.Socket())

	if gql, err := controllers.NewGraphQLController(dir); err != nil {
		logger.Error("graphql: schema build failed", "error", err)
	} else {
		api.Post("/graphql", "graphql.query", gql.Query())
	}

	// Auth.
	api.Post("/login", "auth.login", auth.Login())
	api.Post("/register", "auth.register", auth.Register())

	protected := api.Group("", middleware.AuthMiddleware)
	protected.Post("/logout", "auth.logout", auth.Logout())
	protected.Get("/profile", "auth.profile", auth.Profile())
	protected.Put("/profile", "auth.profile.update", auth.UpdateProfile())
	protected.Post("/feedback", "feedback.store", feedback.Store())

	// Role-scoped dashboard summaries.
	dash := protected.Group("/dashboard")
	dash.Get("/farmer", "dashboard.farmer", dashboards.Farmer(), rbac.HasRole(string(models.RoleFarmer), string(models.RoleAdmin)))
	dash.Get("/transporter", "dashboard.transporter", dashboards.Transporter(), rbac.HasRole(string(models.RoleTransporter), string(models.RoleAdmin)))
	dash.Get("/warehouse", "dashboard.warehouse", dashboards.Warehouse(), rbac.HasRole(string(models.RoleWarehouse), string(models.RoleAdmin)))
	dash.Get("/retailer", "dashboard.retailer", dashboards.Retailer(), rbac.HasRole(string(models.RoleRetailer), string(models.RoleAdmin)))
	dash.Get("/consumer", "dashboard.consumer", dashboards.Consumer(), rbac.HasRole(string(models.RoleConsumer), string(models.RoleAdmin)))

	// Admin account management.
	admin := protected.Group("/users", rbac.HasRole(string(models.RoleAdmin)))
	admin.Get("", "users.index", users.Index())
	admin.Post("", "users.store", users.Store())
	admin.Get("/{id}", "users.show", users.Show())
	admin.Put("/{id}", "users.update", users.Update())
	admin.Delete("/{id}", "users.destroy", users.Destroy())

	// Operational endpoints.
	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
}
