package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"nfeintake/internal/config"
	"nfeintake/internal/handler"
	"nfeintake/internal/middleware"
	"nfeintake/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	log *zap.Logger,
	authSvc service.AuthService,
	receivingH *handler.ReceivingHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Logger(log))

	// Multipart bodies beyond this are spilled to disk by net/http.
	r.MaxMultipartMemory = (cfg.S3.MaxFileSizeMB + 1) << 20

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	if cfg.Server.Environment != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(authSvc))

	v1.POST("/receivings/nfe", receivingH.ImportNFe)
	v1.POST("/nfe/preview", receivingH.Preview)

	return r
}
