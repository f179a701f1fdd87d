package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"wanderlite.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	authHandler     *handlers.AuthHandler
	bookingHandler  *handlers.BookingHandler
	paymentHandler  *handlers.PaymentHandler
	kycHandler      *handlers.KYCHandler
	tripHandler     *handlers.TripHandler
	authMiddleware  gin.HandlerFunc
	idempotency     gin.HandlerFunc
	optionalAuth    gin.HandlerFunc
	adminMiddleware gin.HandlerFunc
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", d.authHandler.Signup)
			auth.POST("/login", d.authHandler.Login)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
		}

		// Booking routes; listing tolerates anonymous callers
		bookings := v1.Group("/bookings")
		{
			bookings.POST("", d.authMiddleware, d.bookingHandler.Create)
			bookings.GET("", d.optionalAuth, d.bookingHandler.List)
			bookings.GET("/:id", d.authMiddleware, d.bookingHandler.Get)
		}

		// Trip planning routes
		trips := v1.Group("/trips", d.authMiddleware)
		{
			trips.POST("", d.tripHandler.Create)
			trips.GET("", d.tripHandler.List)
			trips.GET("/:id", d.tripHandler.Get)
			trips.PUT("/:id", d.tripHandler.Update)
			trips.DELETE("/:id", d.tripHandler.Delete)
		}

		// Packing checklist routes
		checklist := v1.Group("/checklist/items", d.authMiddleware)
		{
			checklist.POST("", d.tripHandler.CreateChecklistItem)
			checklist.GET("", d.tripHandler.ListChecklistItems)
			checklist.PUT("/:id", d.tripHandler.ToggleChecklistItem)
			checklist.DELETE("/:id", d.tripHandler.DeleteChecklistItem)
		}

		// Ticket verification (public; the token is the credential)
		v1.GET("/tickets/verify", d.bookingHandler.VerifyTicket)

		// Payment routes
		payments := v1.Group("/payments")
		{
			payments.POST("", d.authMiddleware, d.idempotency, d.paymentHandler.Create)
			payments.GET("", d.optionalAuth, d.paymentHandler.List)
			payments.GET("/booking/:id", d.authMiddleware, d.paymentHandler.GetForBooking)
			payments.POST("/:id/complete", d.authMiddleware, d.paymentHandler.Complete)
			payments.POST("/:id/receipt", d.authMiddleware, d.paymentHandler.UploadReceipt)
		}

		v1.GET("/receipts", d.optionalAuth, d.paymentHandler.ListReceipts)

		// KYC routes
		kyc := v1.Group("/kyc")
		{
			kyc.POST("/submit", d.authMiddleware, d.kycHandler.Submit)
			kyc.GET("/status", d.authMiddleware, d.kycHandler.Status)

			// admin surface
			kyc.GET("/queue", d.authMiddleware, d.adminMiddleware, d.kycHandler.Queue)
			kyc.POST("/:id/review", d.authMiddleware, d.adminMiddleware, d.kycHandler.Review)
			kyc.GET("/audit", d.authMiddleware, d.adminMiddleware, d.kycHandler.AuditTrail)
		}
	}
}
