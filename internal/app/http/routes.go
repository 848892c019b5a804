package routes

import (
	adminapi "sellerhub-api/internal/api/admin"
	authapi "sellerhub-api/internal/api/auth"
	"sellerhub-api/internal/api/billing"
	sellersapi "sellerhub-api/internal/api/sellers"
	teamapi "sellerhub-api/internal/api/team"
	"sellerhub-api/internal/api/users"
	"sellerhub-api/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", users.GetCurrentUser)

	// Owner billing
	owner := auth.Group("/")
	owner.Use(middleware.RequireRole("owner"))
	owner.GET("/billing/plan", billing.GetCurrentPlan)
	owner.GET("/billing/remote", billing.GetRemoteView)
	owner.POST("/billing/checkout", billing.CreateCheckoutSession)
	owner.POST("/billing/portal", billing.CreateBillingPortal)
	owner.POST("/billing/upgrade", billing.ChangePlan)

	// Owner team management; seat-consuming mutations sit behind the
	// plan guard.
	owner.GET("/team/sellers", teamapi.ListAssignableSellers)
	owner.GET("/team/capacity", teamapi.GetCapacity)
	owner.DELETE("/team/members/:id", teamapi.RemoveMember)
	owner.DELETE("/team/virtual-sellers/:id", teamapi.DeleteVirtualSeller)

	gated := owner.Group("/")
	gated.Use(middleware.RequireActivePlan())
	gated.POST("/team/requests/:id/approve", teamapi.ApproveRequest)
	gated.POST("/team/virtual-sellers", teamapi.CreateVirtualSeller)

	// Sellers
	seller := auth.Group("/")
	seller.Use(middleware.RequireRole("seller"))
	seller.POST("/team/requests", teamapi.CreateRequest)
	seller.GET("/sellers/eligibility", sellersapi.GetRegistrationEligibility)
	seller.GET("/sellers/entitlement", sellersapi.GetEntitlement)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/accounts", adminapi.ListAllAccounts)
	admin.POST("/accounts/:id/sweep", adminapi.RunSweep)
}
