package routes

import (
	"food-rescue-api/config"
	"food-rescue-api/handlers"
	"food-rescue-api/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the collaborators the router is assembled from.
type Deps struct {
	Config   config.Config
	Handler  *handlers.Handler
	Verifier middleware.TokenVerifier
	Logger   *zap.Logger
	Metrics  *middleware.Metrics
}

// NewRouter builds the engine with the global middleware chain and every route.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = zap.L()
	}
	handlers.RegisterValidators()

	r := gin.New()
	// metrics sit outside recovery so panics are counted as 500s
	if d.Metrics != nil {
		r.Use(d.Metrics.Handler())
	}
	r.Use(middleware.Recovery(d.Logger, d.Config.IsProduction(), d.Config.IsDevelopment()))
	if d.Config.IsDevelopment() {
		r.Use(middleware.RequestLogger(d.Logger))
	}
	r.Use(middleware.CORS(d.Config.CORSOrigins))

	SetupRoutes(r, d)
	return r
}

func SetupRoutes(r *gin.Engine, d Deps) {
	h := d.Handler

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)
		public.GET("/health", handlers.Health)
	}
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Exposition()))
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired(d.Verifier, d.Logger))
	{
		auth.GET("/auth/me", h.Me)

		auth.GET("/donors", h.ListDonors)
		auth.GET("/donors/:id", h.GetDonor)
		auth.POST("/donors", h.CreateDonor)
		auth.PUT("/donors/:id", h.UpdateDonor)
		auth.DELETE("/donors/:id", h.DeleteDonor)

		auth.GET("/volunteers", h.ListVolunteers)
		auth.GET("/volunteers/:id", h.GetVolunteer)
		auth.POST("/volunteers", h.CreateVolunteer)
		auth.PUT("/volunteers/:id", h.UpdateVolunteer)
		auth.DELETE("/volunteers/:id", h.DeleteVolunteer)

		// static segment wins over :id
		auth.GET("/donations/stats/overview", h.DonationStats)
		auth.GET("/donations", h.ListDonations)
		auth.GET("/donations/:id", h.GetDonation)
		auth.POST("/donations", h.CreateDonation)
		auth.PUT("/donations/:id", h.UpdateDonation)
		auth.DELETE("/donations/:id", h.DeleteDonation)
	}

	r.NoRoute(handlers.NotFound)
}
