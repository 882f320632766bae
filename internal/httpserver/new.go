package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"inkscan/internal/middleware"
	"inkscan/internal/monitor"
	noteHTTP "inkscan/internal/note/delivery/http"
	"inkscan/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Note domain
	noteHandler noteHTTP.Handler
	mw          middleware.Middleware

	// Folder monitor, when it runs in-process
	monitor *monitor.Monitor
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// Note domain
	NoteHandler noteHTTP.Handler
	Middleware  middleware.Middleware

	// Folder monitor, when it runs in-process
	Monitor *monitor.Monitor
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:           logger,
		gin:         gin.Default(),
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,
		noteHandler: cfg.NoteHandler,
		mw:          cfg.Middleware,
		monitor:     cfg.Monitor,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}
