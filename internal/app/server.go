// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"decora-admin/internal/config"
	"decora-admin/internal/db"
	blackoutHandler "decora-admin/internal/handlers/blackout"
	bookingHandler "decora-admin/internal/handlers/booking"
	calendarHandler "decora-admin/internal/handlers/calendar"
	customerHandler "decora-admin/internal/handlers/customer"
	dashboardHandler "decora-admin/internal/handlers/dashboard"
	healthHandler "decora-admin/internal/handlers/health"
	reportHandler "decora-admin/internal/handlers/report"
	wsHandler "decora-admin/internal/handlers/websocket"
	"decora-admin/internal/middleware"
	"decora-admin/internal/pkg/jwt"
	"decora-admin/internal/pkg/session"
	"decora-admin/internal/realtime"
	"decora-admin/internal/repository/postgres"
	availabilitysvc "decora-admin/internal/service/availability"
	bookingsvc "decora-admin/internal/service/booking"
	customersvc "decora-admin/internal/service/customer"
	dashboardsvc "decora-admin/internal/service/dashboard"
	reportsvc "decora-admin/internal/service/report"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger

	httpServer *http.Server
	pool       *pgxpool.Pool
	redis      *redis.Client
	bus        realtime.Bus
	hubCancel  context.CancelFunc
}

func NewServer(logger *zap.Logger) *Server {
	return &Server{
		cfg:    config.Load(),
		engine: gin.New(),
		logger: logger,
	}
}

// Start wires storage, services and routes, then serves HTTP until
// Shutdown is called.
func (s *Server) Start() error {
	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	s.pool = pool

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	s.redis = redisClient

	// ----- JWT verifier -----
	verifier, err := jwt.NewVerifier(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to build JWT verifier: %w", err)
	}

	// ----- Session registry -----
	sessionManager := session.NewManager(redisClient)

	// ----- Realtime -----
	bus := realtime.NewRedisBus(redisClient, s.logger)
	s.bus = bus

	hub := realtime.NewHub(bus, s.logger)
	hubCtx, hubCancel := context.WithCancel(context.Background())
	s.hubCancel = hubCancel
	go hub.Run(hubCtx)

	// ----- Repositories -----
	visitRepo := postgres.NewVisitRepository(pool)
	enquiryRepo := postgres.NewEnquiryRepository(pool)
	blackoutRepo := postgres.NewBlackoutRepository(pool)
	noteRepo := postgres.NewNoteRepository(pool)

	// ----- Services -----
	bookingService := bookingsvc.NewService(visitRepo, enquiryRepo, blackoutRepo, bus, s.logger)
	availabilityService := availabilitysvc.NewService(visitRepo, blackoutRepo, bus, s.logger)
	customerService := customersvc.NewService(visitRepo, enquiryRepo, noteRepo, bus, s.logger)
	dashboardService := dashboardsvc.NewService(visitRepo, enquiryRepo, blackoutRepo, s.logger)
	reportService := reportsvc.NewService(customerService, s.logger)

	// ----- Handlers -----
	handlers := &Handlers{
		BookingHandler:   bookingHandler.NewBookingHandler(bookingService),
		IntakeHandler:    bookingHandler.NewIntakeHandler(bookingService),
		BlackoutHandler:  blackoutHandler.NewBlackoutHandler(availabilityService),
		CalendarHandler:  calendarHandler.NewCalendarHandler(availabilityService),
		CustomerHandler:  customerHandler.NewCustomerHandler(customerService),
		DashboardHandler: dashboardHandler.NewDashboardHandler(dashboardService),
		ReportHandler:    reportHandler.NewReportHandler(reportService),
		WSHandler:        wsHandler.NewWebSocketHandler(hub, sessionManager, s.logger),
		HealthHandler:    healthHandler.NewHealthHandler(pool, redisClient),
		AuthMiddleware:   middleware.NewAuthMiddleware(verifier, s.cfg.OperatorEmails, sessionManager, s.logger),
		IntakeToken:      middleware.IntakeToken(s.cfg.IntakeTokenHash, s.logger),
	}

	s.engine.Use(
		middleware.Recovery(s.logger),
		middleware.Logging(s.logger),
		middleware.CORS(),
	)
	SetupRouter(s.engine, handlers)

	// ----- Start HTTP -----
	s.httpServer = &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	s.logger.Info("server listening", zap.String("addr", s.cfg.HTTPAddr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and releases every connection.
func (s *Server) Shutdown(ctx context.Context) error {
	var firstErr error

	if s.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			firstErr = err
		}
	}

	if s.hubCancel != nil {
		s.hubCancel()
	}
	if s.bus != nil {
		if err := s.bus.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.pool != nil {
		s.pool.Close()
	}

	return firstErr
}
