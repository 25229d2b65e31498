package main

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"retail-pos-backend/internal/config"
	"retail-pos-backend/internal/logger"
	"retail-pos-backend/internal/models"
	"retail-pos-backend/internal/routes"
	"retail-pos-backend/internal/scheduler"
	alerts "retail-pos-backend/internal/services/alerts"
	backup "retail-pos-backend/internal/services/backup"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		zap.S().Info("no .env file found, relying on system env")
	}

	cfg := config.Load()
	logger.Init(cfg)
	defer zap.S().Sync()

	db := config.InitDB(cfg)

	if err := db.AutoMigrate(models.Tables...); err != nil {
		zap.S().Fatalf("migration failed: %v", err)
	}

	if strings.EqualFold(cfg.Env, "production") {
		gin.SetMode(gin.ReleaseMode)
	}

	alertSvc := alerts.NewService(db, cfg.SMTP)
	backupSvc := backup.NewService(db, cfg.BackupDir, cfg.BackupRetention)

	sched := scheduler.New(db, alertSvc, backupSvc)
	sched.Start()
	defer sched.Stop()

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, cfg, sched, alertSvc, backupSvc)

	zap.S().Infow("server starting", "port", cfg.Port, "env", cfg.Env)
	if err := r.Run(":" + cfg.Port); err != nil {
		zap.S().Fatalf("server exited: %v", err)
	}
}
