package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "community-board/internal/app"
	"community-board/internal/bootstrap"
	"community-board/internal/gateway"
	"community-board/internal/platform/rabbitmq"
	"community-board/internal/repository"
	"community-board/internal/transport/http/handler"
	"community-board/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	profileRepo := repository.NewProfileRepository(app.MySQL)
	postRepo := repository.NewPostRepository(app.MySQL)
	messageRepo := repository.NewMessageRepository(app.MySQL)
	credentialRepo := repository.NewCredentialRepository(app.MySQL)

	sessionStore := gateway.NewRedisSessionStore(app.Redis)
	gw := gateway.New(
		credentialRepo,
		sessionStore,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.SessionTTLMinute)*time.Minute,
	)

	auditPublisher := rabbitmq.NewAuditPublisher(app.MQConn, app.Config.RabbitMQ.AuditQueue)

	profileService := appsvc.NewProfileService(profileRepo, gw)
	sessionService := appsvc.NewSessionService(profileRepo, profileService, gw)
	postService := appsvc.NewPostService(postRepo, profileRepo, profileService)
	messageService := appsvc.NewMessageService(messageRepo, profileRepo)
	adminService := appsvc.NewAdminService(profileRepo, postRepo, messageRepo, gw, auditPublisher)

	authHandler := handler.NewAuthHandler(profileService, sessionService, gw)
	sessionHandler := handler.NewSessionHandler(sessionService)
	postHandler := handler.NewPostHandler(postService)
	messageHandler := handler.NewMessageHandler(messageService)
	searchHandler := handler.NewSearchHandler(profileService)
	adminHandler := handler.NewAdminHandler(adminService)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.ResolveSession(gw))

	authGroup := v1.Group("/auth")
	authGroup.POST("/signup", authHandler.SignUp)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout)

	v1.GET("/session", sessionHandler.Current)

	v1.GET("/posts", postHandler.List)
	v1.POST("/posts", postHandler.Create)
	v1.DELETE("/posts/:id", postHandler.Delete)

	v1.GET("/messages", messageHandler.Inbox)
	v1.POST("/messages", messageHandler.Send)

	v1.GET("/search", searchHandler.Search)

	adminGroup := v1.Group("/admin")
	adminGroup.GET("/users", adminHandler.ListUsers)
	adminGroup.GET("/posts", adminHandler.ListPosts)
	adminGroup.GET("/messages", adminHandler.ListMessages)
	adminGroup.POST("/users/:id/ban", adminHandler.ToggleBan)
	adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)
	adminGroup.DELETE("/posts/:id", adminHandler.DeletePost)
	adminGroup.DELETE("/messages/:id", adminHandler.DeleteMessage)

	return router
}
