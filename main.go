// Package main provides the main entry point for the Mailhub mailing administration service
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dpetrovsky/mailhub/app/handlers"
	"github.com/dpetrovsky/mailhub/app/middleware"
	"github.com/dpetrovsky/mailhub/app/router"
	"github.com/dpetrovsky/mailhub/app/services"
	businessflow "github.com/dpetrovsky/mailhub/business_flow"
	"github.com/dpetrovsky/mailhub/config"
	"github.com/dpetrovsky/mailhub/models"
	"github.com/dpetrovsky/mailhub/repository"
	"github.com/dpetrovsky/mailhub/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.Config
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	cfg.SetupLogger()
	log.Info().Str("env", cfg.Env).Msg("starting mailhub")

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application")
	}

	app.router.SetupRoutes()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.server.Listen(cfg.Server.Address()); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-sigChan
	log.Info().Msg("shutting down gracefully")

	for _, fn := range app.stopFuncs {
		fn()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}

	log.Info().Msg("server stopped")
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().
		Int("max_open_conns", cfg.MaxOpenConns).
		Int("max_idle_conns", cfg.MaxIdleConns).
		Msg("database connection established")

	return db, nil
}

// initializeCache initializes the Redis client and verifies connectivity
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	rc := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info().Str("addr", cfg.Addr()).Int("db", cfg.DB).Msg("redis connection established")
	return rc, nil
}

// startCacheHealthMonitor pings Redis periodically to surface connectivity
// issues. The returned cancel function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Warn().Err(err).Msg("redis healthcheck failed")
				}
				c()
			}
		}
	}()
	return cancel
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.Config) (*Application, error) {
	var stopFuncs []func()

	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	stopFuncs = append(stopFuncs, startCacheHealthMonitor(context.Background(), rc, 30*time.Second))

	if err := ensureSystemEntities(db, cfg); err != nil {
		return nil, err
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	mailingRepo := repository.NewMailingRepository(db)
	deliveryRepo := repository.NewDeliveryLogRepository(db)
	blogRepo := repository.NewBlogPostRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// Services
	tokenService, err := services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.UseRSAKeys,
		cfg.JWT.PrivateKey,
		cfg.JWT.PublicKey,
		cfg.JWT.SecretKey,
		rc,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	// Flows
	authFlow := businessflow.NewAuthFlow(userRepo, auditRepo, tokenService, db)
	clientFlow := businessflow.NewClientFlow(clientRepo, userRepo, auditRepo, db)
	messageFlow := businessflow.NewMessageFlow(messageRepo, clientRepo, userRepo, auditRepo, db)
	mailingFlow := businessflow.NewMailingFlow(mailingRepo, messageRepo, clientRepo, deliveryRepo, userRepo, auditRepo, db)
	homeFlow := businessflow.NewHomeFlow(mailingRepo, clientRepo, blogRepo)
	contactFlow := businessflow.NewContactFlow()
	blogFlow := businessflow.NewBlogFlow(blogRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authFlow)
	clientHandler := handlers.NewClientHandler(clientFlow)
	messageHandler := handlers.NewMessageHandler(messageFlow)
	mailingHandler := handlers.NewMailingHandler(mailingFlow)
	siteHandler := handlers.NewSiteHandler(homeFlow, contactFlow, blogFlow)

	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	appRouter := router.NewFiberRouter(
		cfg,
		authHandler,
		clientHandler,
		messageHandler,
		mailingHandler,
		siteHandler,
		authMiddleware,
	)

	fiberRouter := appRouter.(*router.FiberRouter)
	return &Application{
		router:    fiberRouter,
		config:    cfg,
		server:    fiberRouter.GetApp(),
		stopFuncs: stopFuncs,
	}, nil
}

// ensureSystemEntities creates the default owner account, the baseline
// permissions, and the manager group on first boot.
func ensureSystemEntities(db *gorm.DB, cfg *config.Config) error {
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)

	ctx := context.Background()

	owner, err := userRepo.ByEmail(ctx, cfg.System.DefaultOwnerEmail)
	if err != nil {
		return fmt.Errorf("failed to look up default owner: %w", err)
	}
	if owner == nil {
		password := cfg.System.DefaultOwnerPassword
		if password == "" {
			// Random unusable password; reset flows are out of scope so the
			// account stays API-only until someone sets a real one.
			password = uuid.NewString()
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash default owner password: %w", err)
		}

		owner = &models.User{
			UUID:         uuid.New(),
			Email:        cfg.System.DefaultOwnerEmail,
			PasswordHash: string(hash),
			FirstName:    "Mailhub",
			LastName:     "Admin",
			IsStaff:      utils.ToPtr(true),
			IsActive:     utils.ToPtr(true),
			CreatedAt:    utils.UTCNow(),
			UpdatedAt:    utils.UTCNow(),
		}
		if err := userRepo.Save(ctx, owner); err != nil {
			return fmt.Errorf("failed to create default owner: %w", err)
		}
		log.Info().Str("email", owner.Email).Msg("default owner account created")
	}

	group, err := groupRepo.ByName(ctx, cfg.System.ManagerGroupName)
	if err != nil {
		return fmt.Errorf("failed to look up manager group: %w", err)
	}
	if group == nil {
		group = &models.Group{
			Name: cfg.System.ManagerGroupName,
			Permissions: []models.Permission{
				{Codename: utils.PermViewAllMailings, Name: "Can view all mailings"},
				{Codename: utils.PermSetMailingStatus, Name: "Can set mailing status"},
			},
		}
		if err := groupRepo.Save(ctx, group); err != nil {
			return fmt.Errorf("failed to create manager group: %w", err)
		}
		log.Info().Str("group", group.Name).Msg("manager group created")
	}

	if err := groupRepo.AddUser(ctx, group.ID, owner.ID); err != nil {
		return fmt.Errorf("failed to add default owner to manager group: %w", err)
	}

	return nil
}
