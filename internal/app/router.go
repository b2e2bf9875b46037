// internal/app/router.go
package app

import (
	blackoutHandler "decora-admin/internal/handlers/blackout"
	bookingHandler "decora-admin/internal/handlers/booking"
	calendarHandler "decora-admin/internal/handlers/calendar"
	customerHandler "decora-admin/internal/handlers/customer"
	dashboardHandler "decora-admin/internal/handlers/dashboard"
	healthHandler "decora-admin/internal/handlers/health"
	reportHandler "decora-admin/internal/handlers/report"
	wsHandler "decora-admin/internal/handlers/websocket"
	"decora-admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	BookingHandler   *bookingHandler.BookingHandler
	IntakeHandler    *bookingHandler.IntakeHandler
	BlackoutHandler  *blackoutHandler.BlackoutHandler
	CalendarHandler  *calendarHandler.CalendarHandler
	CustomerHandler  *customerHandler.CustomerHandler
	DashboardHandler *dashboardHandler.DashboardHandler
	ReportHandler    *reportHandler.ReportHandler
	WSHandler        *wsHandler.WebSocketHandler
	HealthHandler    *healthHandler.HealthHandler
	AuthMiddleware   *middleware.AuthMiddleware
	IntakeToken      gin.HandlerFunc
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", h.HealthHandler.Check)

	// ==================== Public Intake ====================
	public := api.Group("/public")
	public.Use(h.IntakeToken)
	{
		public.POST("/bookings", h.IntakeHandler.CreateVisit)
		public.POST("/enquiries", h.IntakeHandler.CreateEnquiry)
	}

	// ==================== WebSocket ====================
	r.GET("/ws", h.AuthMiddleware.Auth(), h.WSHandler.Connect)

	// ==================== Admin API ====================
	admin := api.Group("")
	admin.Use(h.AuthMiddleware.Auth())
	{
		// Records and pipeline
		admin.GET("/records", h.BookingHandler.ListRecords)
		admin.PUT("/records/:id/status", h.BookingHandler.SetStatus)
		admin.PUT("/bookings/:id", h.BookingHandler.UpdateVisit)

		// Calendar
		admin.GET("/calendar/month/:year/:month", h.CalendarHandler.Month)
		admin.GET("/calendar/day/:date", h.CalendarHandler.Day)

		// Blackouts
		blackouts := admin.Group("/blackouts")
		{
			blackouts.GET("", h.BlackoutHandler.List)
			blackouts.POST("", h.BlackoutHandler.Create)
			blackouts.POST("/quick-fill", h.BlackoutHandler.QuickFill)
			blackouts.DELETE("/:id", h.BlackoutHandler.Delete)
		}

		// Customers
		customers := admin.Group("/customers")
		{
			customers.GET("", h.CustomerHandler.List)
			customers.GET("/:key/notes", h.CustomerHandler.ListNotes)
			customers.POST("/:key/notes", h.CustomerHandler.AddNote)
		}

		// Dashboard and reports
		admin.GET("/dashboard/stats", h.DashboardHandler.Stats)
		admin.GET("/reports/pipeline.xlsx", h.ReportHandler.Pipeline)

		// Connection stats
		admin.GET("/ws/stats", h.WSHandler.Stats)
	}
}
