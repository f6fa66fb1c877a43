package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/anon-inbox/config"
	"github.com/oksasatya/anon-inbox/internal/container"
	pginfra "github.com/oksasatya/anon-inbox/internal/infrastructure/postgres"
	"github.com/oksasatya/anon-inbox/internal/interface/middleware"
	"github.com/oksasatya/anon-inbox/internal/router"
	"github.com/oksasatya/anon-inbox/pkg/helpers"
	"github.com/oksasatya/anon-inbox/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Run migrations using database/sql with pgx stdlib
	if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	// Postgres pool: opened now so an unreachable database stops startup
	db := pginfra.NewDB(cfg.PostgresDSN(), pginfra.Options{
		MaxConns:    cfg.DBMaxConns,
		MinConns:    cfg.DBMinConns,
		MaxConnLife: cfg.DBMaxConnLife,
	})
	if err := db.Health(ctx); err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	c := container.New(cfg, logger, db)

	// Redis (optional): session revocation on sign-out
	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("redis unreachable; revocation checks will fail open")
		}
		defer func() { _ = rdb.Close() }()
		c.Redis = rdb
	}

	mail, closeMail, err := container.NewCodeSender(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init email delivery: %v", err)
	}
	defer closeMail()
	c.Mail = mail
	helpers.LogInfo(logger, "email delivery ready", logrus.Fields{"enabled": cfg.MailSendEnabled, "mode": cfg.MailDelivery})

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	// CORS
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) > 0 {
		r.Use(cors.New(corsCfg))
	}
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	// Registry: register modules using the container
	reg := router.NewRegistry(r)
	router.InitModules(reg, c, router.BuildServices(c))
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
