package httpserver

import (
	"context"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	noteHTTP "inkscan/internal/note/delivery/http"
)

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	ctx := context.Background()

	srv.gin.Use(srv.mw.RequestID())

	srv.l.Infof(ctx, "Server mode: %s, environment: %s", srv.mode, srv.environment)
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()

	api := srv.gin.Group("/api/v1")

	if srv.noteHandler != nil {
		noteHTTP.MapRoutes(api, srv.noteHandler, srv.mw)
		srv.l.Infof(ctx, "Note routes registered under /api/v1/notes")
	} else {
		srv.l.Infof(ctx, "Note handler not configured, skipping note routes")
	}

	if srv.monitor != nil {
		srv.gin.GET("/monitor/status", srv.monitorStatus)
		srv.l.Infof(ctx, "Monitor status route registered at GET /monitor/status")
	} else {
		srv.l.Infof(ctx, "Monitor not running in-process, skipping status route")
	}

	return nil
}
