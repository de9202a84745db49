package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "github.com/xpanvictor/xarvis-voice/docs"
	"github.com/xpanvictor/xarvis-voice/internal/config"
	"github.com/xpanvictor/xarvis-voice/internal/handlers"
	"github.com/xpanvictor/xarvis-voice/pkg/Logger"
)

type Dependencies struct {
	Sessions handlers.SessionService
	Logger   *Logger.Logger
	Configs  *config.Settings
}

func NewServerDependencies(
	sessions handlers.SessionService,
	logger *Logger.Logger,
	cfg *config.Settings,
) Dependencies {
	return Dependencies{
		Sessions: sessions,
		Logger:   logger,
		Configs:  cfg,
	}
}

// InitializeRoutes mounts middleware, probes, docs and the session API.
func InitializeRoutes(r *gin.Engine, dep Dependencies) {
	r.Use(
		handlers.ErrorHandlerMiddleware(dep.Logger),
		handlers.RequestLoggerMiddleware(dep.Logger),
		handlers.CORSMiddleware(),
	)

	r.GET("/", func(ctx *gin.Context) { ctx.JSON(http.StatusOK, gin.H{"message": "Server healthy"}) })
	r.GET("/health", func(ctx *gin.Context) { ctx.JSON(http.StatusOK, handlers.HealthResponse{Status: "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	sh := handlers.NewSessionHandler(dep.Sessions, dep.Configs.Server.MaxUploadBytes, dep.Logger)
	api := r.Group("/api")
	{
		api.POST("/start-session", sh.StartSession)
		api.GET("/poll-session", sh.PollSession)
	}
}
