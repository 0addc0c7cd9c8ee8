package router

import (
	"time"

	"github.com/FlorianMayr1208/present-picker/internal/auth"
	"github.com/FlorianMayr1208/present-picker/internal/browse"
	"github.com/FlorianMayr1208/present-picker/internal/catalog"
	"github.com/FlorianMayr1208/present-picker/internal/middleware"
	"github.com/FlorianMayr1208/present-picker/internal/transfer"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *auth.Handler
	Browse   *browse.Handler
	Admin    *catalog.AdminHandler
	Transfer *transfer.Handler
}

func New(h Handlers) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}

	// ───────────────────────── PUBLIC BROWSING ─────────────────────────
	dests := r.Group("/destinations")
	{
		dests.GET("", h.Browse.ListDestinations)
		dests.GET("/:id", h.Browse.ShowDestination)
		dests.GET("/:id/activities", h.Browse.ActivitiesByLevel)
		dests.GET("/:id/gifts", h.Browse.GiftListings)
		dests.POST("/:id/selection", h.Browse.PriceSelection)
		dests.POST("/:id/selection/print", h.Browse.PrintSelection)
	}

	// ───────────────────────── ADMIN ─────────────────────────
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleAdmin),
	)
	{
		// Destinations
		admin.POST("/destinations", h.Admin.CreateDestination)
		admin.PUT("/destinations/:id", h.Admin.UpdateDestination)
		admin.DELETE("/destinations/:id", h.Admin.DeleteDestination)

		// Activities
		admin.POST("/destinations/:id/activities", h.Admin.CreateActivity)
		admin.PUT("/activities/:id", h.Admin.UpdateActivity)
		admin.DELETE("/activities/:id", h.Admin.DeleteActivity)

		// Sub-items
		admin.POST("/activities/:id/sub-items", h.Admin.CreateSubItem)
		admin.PUT("/activities/:id/sub-items/:sub_id", h.Admin.UpdateSubItem)
		admin.DELETE("/activities/:id/sub-items/:sub_id", h.Admin.DeleteSubItem)

		// Images
		admin.POST("/images", h.Admin.UploadImage)

		// Bulk import/export
		admin.GET("/export/xlsx", h.Transfer.ExportXLSX)
		admin.GET("/export/zip", h.Transfer.ExportZIP)
		admin.GET("/export/activities.csv", h.Transfer.ExportActivitiesCSV)
		admin.POST("/import", h.Transfer.Import)
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
