// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"realty-service/internal/config"
	"realty-service/internal/db"
	"realty-service/internal/domain/asset"
	adminHandler "realty-service/internal/handlers/admin"
	assetHandler "realty-service/internal/handlers/asset"
	authHandler "realty-service/internal/handlers/auth"
	messageHandler "realty-service/internal/handlers/message"
	newsletterHandler "realty-service/internal/handlers/newsletter"
	propertyHandler "realty-service/internal/handlers/property"
	statsHandler "realty-service/internal/handlers/stats"
	wsHandler "realty-service/internal/handlers/websocket"
	"realty-service/internal/middleware"
	"realty-service/internal/pkg/jwt"
	"realty-service/internal/pkg/ratelimit"
	"realty-service/internal/pkg/response"
	"realty-service/internal/repository/postgres"
	activitysvc "realty-service/internal/service/activity"
	authsvc "realty-service/internal/service/auth"
	"realty-service/internal/service/email"
	messagesvc "realty-service/internal/service/message"
	newslettersvc "realty-service/internal/service/newsletter"
	propertysvc "realty-service/internal/service/property"
	statssvc "realty-service/internal/service/stats"
	s3store "realty-service/internal/storage/s3"
	"realty-service/internal/websocket"
	wsHandlers "realty-service/internal/websocket/handler"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const activityPurgeInterval = time.Hour

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	http   *http.Server
	logger *zap.Logger

	pool    *pgxpool.Pool
	redis   *redis.Client
	limiter ratelimit.Limiter

	// stops the hub and background workers
	cancel context.CancelFunc
}

func NewServer(cfg config.AppConfig, logger *zap.Logger) *Server {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	return &Server{cfg: cfg, engine: gin.New(), logger: logger}
}

// Build connects the stores and wires every service, handler and route.
func (s *Server) Build(ctx context.Context) error {
	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, db.PostgresConfig{URL: s.cfg.DatabaseURL, MaxConns: 10})
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	s.pool = pool
	s.logger.Info("connected to PostgreSQL")

	if s.cfg.RunMigrations {
		if err := db.Migrate(ctx, pool); err != nil {
			return err
		}
		s.logger.Info("migrations applied")
	}

	// ----- Redis (optional) -----
	var cache redis.Cmdable
	if s.cfg.RedisAddr != "" {
		rdb, err := db.NewRedisClient(ctx, db.RedisConfig{
			Addr:     s.cfg.RedisAddr,
			Password: s.cfg.RedisPass,
			DB:       s.cfg.RedisDB,
			PoolSize: 10,
		})
		if err != nil {
			return err
		}
		s.redis = rdb
		cache = rdb
		s.limiter = ratelimit.NewRedisLimiter(rdb)
		s.logger.Info("connected to Redis", zap.String("addr", s.cfg.RedisAddr))
	} else {
		s.limiter = ratelimit.NewMemoryLimiter()
		s.logger.Warn("REDIS_ADDR not set, using in-process rate limits and no stats cache")
	}

	// ----- JWT Manager -----
	jwtManager, err := jwt.LoadAndBuild(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to load JWT manager: %w", err)
	}

	// ----- Email -----
	var mailer authsvc.Mailer
	if s.cfg.SMTPHost != "" {
		mailer = email.NewEmailSender(
			s.cfg.SMTPHost,
			s.cfg.SMTPPort,
			s.cfg.SMTPUser,
			s.cfg.SMTPPass,
			s.cfg.SMTPFromName,
			s.cfg.SMTPSecure,
		)
	} else {
		mailer = email.NewLogSender(s.logger)
	}

	// ----- Asset store (optional) -----
	var assets asset.Store
	if s.cfg.AssetStoreEnabled() {
		store, err := s3store.New(ctx, s3store.Config{
			Region:        s.cfg.S3Region,
			Endpoint:      s.cfg.S3Endpoint,
			AccessKey:     s.cfg.S3AccessKey,
			SecretKey:     s.cfg.S3SecretKey,
			Bucket:        s.cfg.S3Bucket,
			PublicBaseURL: s.cfg.S3PublicBaseURL,
			UsePathStyle:  s.cfg.S3UsePathStyle,
		})
		if err != nil {
			return fmt.Errorf("failed to configure asset store: %w", err)
		}
		assets = store
	} else {
		s.logger.Warn("asset store not configured, image uploads disabled")
	}

	// ----- Repositories -----
	adminRepo := postgres.NewAdminRepository(pool)
	propertyRepo := postgres.NewPropertyRepository(pool)
	messageRepo := postgres.NewMessageRepository(pool)
	newsletterRepo := postgres.NewNewsletterRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)

	// ----- Services -----
	bgCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	activityService := activitysvc.NewActivityService(activityRepo, s.logger)
	activityService.StartPurger(bgCtx, activityPurgeInterval)

	authService := authsvc.NewAuthService(
		adminRepo,
		jwtManager,
		s.limiter,
		authsvc.NewEmailHelper(mailer, s.logger),
		activityService,
		s.logger,
		authsvc.Options{
			AdminLimit:       s.cfg.AdminLimit,
			LockoutThreshold: s.cfg.LockoutThreshold,
			LockoutDuration:  s.cfg.LockoutDuration,
			MasterKey:        s.cfg.AdminCreationSecret,
			ExposeCodes:      s.cfg.IsDevelopment(),
		},
	)

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(authService, s.logger)

	messageService := messagesvc.NewMessageService(messageRepo, hub, s.logger)
	if err := hub.RegisterHandler(wsHandlers.NewMessagesHandler(messageService)); err != nil {
		return fmt.Errorf("failed to register websocket handler: %w", err)
	}
	go hub.Run(bgCtx)

	propertyService := propertysvc.NewPropertyService(propertyRepo, assets, s.logger)
	newsletterService := newslettersvc.NewNewsletterService(newsletterRepo, s.logger)
	statsService := statssvc.NewStatsService(propertyRepo, messageRepo, cache, s.logger)

	// ----- Bootstrap admin -----
	if s.cfg.BootstrapAdminEmail != "" && s.cfg.BootstrapAdminPassword != "" {
		if err := authService.EnsureBootstrapAdmin(ctx,
			s.cfg.BootstrapAdminEmail,
			s.cfg.BootstrapAdminPassword,
			s.cfg.BootstrapAdminName,
		); err != nil {
			// Don't fail startup; the master key path still works
			s.logger.Error("failed to ensure bootstrap admin", zap.Error(err))
		}
	}

	// ----- Validation -----
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := propertyHandler.RegisterValidators(v); err != nil {
			return fmt.Errorf("failed to register validators: %w", err)
		}
	}

	// ----- Handlers -----
	handlers := &Handlers{
		AuthHandler:       authHandler.NewAuthHandler(authService, s.logger),
		AdminHandler:      adminHandler.NewAdminHandler(authService, activityService, hub, s.logger),
		PropertyHandler:   propertyHandler.NewPropertyHandler(propertyService, s.logger),
		MessageHandler:    messageHandler.NewMessageHandler(messageService, s.logger),
		NewsletterHandler: newsletterHandler.NewNewsletterHandler(newsletterService, s.logger),
		StatsHandler:      statsHandler.NewStatsHandler(statsService),
		AssetHandler:      assetHandler.NewAssetHandler(assets, s.logger),
		WSHandler:         wsHandler.NewWebSocketHandler(hub, s.cfg.CORSOrigins, s.logger),
		AuthMiddleware:    middleware.NewAuthMiddleware(authService),
		Health:            s.health,
	}

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RecoveryMiddleware(s.logger),
		middleware.Metrics(),
		middleware.LoggingMiddleware(s.logger),
		middleware.CORS(s.cfg.CORSOrigins),
	)

	SetupRouter(s.engine, s.logger, handlers, Limits{
		Limiter:    s.limiter,
		Login:      s.cfg.LoginRateLimit,
		PublicForm: s.cfg.PublicFormRateLimit,
	})

	s.http = &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.engine,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}
	return nil
}

// Run serves HTTP until Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("server listening", zap.String("addr", s.cfg.HTTPAddr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains HTTP, then stops background work and closes the stores.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.http != nil {
		err = s.http.Shutdown(ctx)
	}
	if s.cancel != nil {
		s.cancel()
	}
	if m, ok := s.limiter.(*ratelimit.MemoryLimiter); ok {
		m.Stop()
	}
	if s.redis != nil {
		s.redis.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
	return err
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{"postgres": "ok"}
	healthy := true
	if err := s.pool.Ping(ctx); err != nil {
		checks["postgres"] = "unreachable"
		healthy = false
	}
	if s.redis != nil {
		checks["redis"] = "ok"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "unreachable"
			healthy = false
		}
	}

	if !healthy {
		response.Error(c, http.StatusServiceUnavailable, "unhealthy", nil, checks)
		return
	}
	response.Success(c, http.StatusOK, "ok", checks)
}
