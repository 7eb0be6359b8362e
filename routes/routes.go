package routes

import (
	"net/http"

	"field-service-api/handlers"
	"field-service-api/middleware"

	"github.com/gin-gonic/gin"
)

// Setup registers the REST surface on the router.
func Setup(r *gin.Engine, h *handlers.Handler, guard *middleware.Guard) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// ── Public ─────────────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/login", h.Login)
	}

	// ── Authenticated ──────────────────────────────────────────────
	authenticated := r.Group("/api")
	authenticated.Use(guard.AuthRequired())
	{
		authenticated.GET("/auth/me", h.Me)

		authenticated.GET("/locations", h.ListLocations)

		authenticated.GET("/records", h.ListRecords)
		authenticated.POST("/records", h.CreateRecord)
		authenticated.GET("/records/:id", h.GetRecord)
		authenticated.DELETE("/records/:id", h.DeleteRecord)
		authenticated.POST("/records/:id/photos", h.UploadPhotos)
	}

	// ── Admin ──────────────────────────────────────────────────────
	admin := r.Group("/api")
	admin.Use(guard.AuthRequired(), guard.AdminRequired())
	{
		admin.GET("/users", h.ListUsers)
		admin.POST("/users", h.CreateUser)
		admin.PUT("/users/:id", h.UpdateUser)
		admin.DELETE("/users/:id", h.DeleteUser)

		admin.POST("/locations", h.CreateLocation)
		admin.PUT("/locations/:id", h.UpdateLocation)
		admin.DELETE("/locations/:id", h.DeleteLocation)
	}
}
