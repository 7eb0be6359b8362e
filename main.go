package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"field-service-api/auth"
	"field-service-api/config"
	"field-service-api/handlers"
	"field-service-api/logger"
	"field-service-api/middleware"
	"field-service-api/models"
	"field-service-api/repository"
	"field-service-api/routes"
	"field-service-api/service"
	"field-service-api/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer zlog.Sync()

	db, err := config.OpenDB(cfg.DBPath)
	if err != nil {
		zlog.Fatal("database init failed", zap.Error(err))
	}

	store, err := storage.New(cfg.UploadDir)
	if err != nil {
		zlog.Fatal("attachment store init failed", zap.Error(err))
	}

	users := repository.NewUserRepository(db)
	locations := repository.NewLocationRepository(db)
	records := repository.NewRecordRepository(db)
	photos := repository.NewPhotoRepository(db)

	ledger := service.NewRecordLedger(records, photos, users, store, zlog)
	pipeline := service.NewPhotoPipeline(records, photos, store)
	guard := middleware.NewGuard(cfg.JWTSecret, users)
	handler := handlers.New(cfg, users, locations, ledger, pipeline, zlog)

	if err := seedAdmin(cfg, users, zlog); err != nil {
		zlog.Fatal("admin seed failed", zap.Error(err))
	}

	r := gin.Default()
	r.Use(corsMiddleware(cfg.AllowedOrigins))

	// Uploaded photos are served read-only straight from the attachment root.
	r.Static(storage.PublicPrefix, store.Root())

	routes.Setup(r, handler, guard)

	zlog.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

// seedAdmin creates or resets the bootstrap administrator when ADMIN_EMAIL
// and ADMIN_PASSWORD are configured. Idempotent; runs once before the server
// accepts requests.
func seedAdmin(cfg *config.Config, users repository.UserRepository, zlog *zap.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	existing, err := users.GetByEmail(cfg.AdminEmail)
	if err == nil {
		existing.PasswordHash = hash
		existing.Role = models.RoleAdmin
		zlog.Info("resetting bootstrap admin", zap.String("email", cfg.AdminEmail))
		return users.Save(existing)
	}
	zlog.Info("creating bootstrap admin", zap.String("email", cfg.AdminEmail))
	return users.Create(&models.User{
		Email:        cfg.AdminEmail,
		Name:         "Admin",
		Role:         models.RoleAdmin,
		PasswordHash: hash,
	})
}

// corsMiddleware allows the origins configured in ALLOWED_ORIGINS
// (comma-separated). Empty configuration disables CORS entirely.
func corsMiddleware(allowedOrigins string) gin.HandlerFunc {
	allowed := map[string]bool{}
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed[o] = true
		}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
