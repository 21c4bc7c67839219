package http

import (
	"github.com/gin-gonic/gin"

	"mentorpath/internal/bootstrap"
	"mentorpath/internal/transport/http/handler"
	"mentorpath/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.CORS(app.Config.CORS.AllowedOrigins))

	svc := app.Services
	maxBytes := int64(app.Config.Attachments.MaxBytes)

	healthHandler := handler.NewHealthHandler(app)
	authHandler := handler.NewAuthHandler(svc.Auth)
	careerHandler := handler.NewCareerHandler(svc.Career)
	paymentHandler := handler.NewPaymentHandler(svc.Payment)
	mentorHandler := handler.NewMentorHandler(svc.Mentor)
	sessionHandler := handler.NewSessionHandler(svc.Booking, svc.Ledger, svc.Chat)
	chatHandler := handler.NewChatHandler(svc.Chat, maxBytes)
	resumeHandler := handler.NewResumeHandler(svc.Resume, maxBytes)

	router.GET("/healthz", healthHandler.Check)

	v1 := router.Group("/api/v1")
	auth := middleware.RequireMember(app.Config.Auth.JWTSecret)

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", auth, authHandler.Me)
	authGroup.POST("/logout", auth, authHandler.Logout)

	v1.POST("/career/paths", careerHandler.Generate)
	v1.POST("/resume/check", resumeHandler.Check)

	paymentsGroup := v1.Group("/payments", auth)
	paymentsGroup.POST("/connection", paymentHandler.Connect)
	paymentsGroup.DELETE("/connection", paymentHandler.Disconnect)
	paymentsGroup.GET("/balance", paymentHandler.Balance)
	paymentsGroup.GET("/transactions", paymentHandler.Transactions)

	mentorsGroup := v1.Group("/mentors", auth)
	mentorsGroup.GET("", mentorHandler.List)
	mentorsGroup.POST("", mentorHandler.Add)

	sessionsGroup := v1.Group("/sessions", auth)
	sessionsGroup.GET("", sessionHandler.List)
	sessionsGroup.POST("", sessionHandler.Book)
	sessionsGroup.GET("/:id", sessionHandler.Get)
	sessionsGroup.DELETE("/:id", sessionHandler.Cancel)
	sessionsGroup.GET("/:id/messages", chatHandler.History)
	sessionsGroup.POST("/:id/messages", chatHandler.Send)
	sessionsGroup.POST("/:id/attachments", chatHandler.Upload)
	sessionsGroup.GET("/:id/attachments", chatHandler.Download)

	return router
}
