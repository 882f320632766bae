package httpserver

import "fmt"

// Run maps all routes and serves until the listener fails or the process exits.
func (srv HTTPServer) Run() error {
	if err := srv.mapHandlers(); err != nil {
		return err
	}

	return srv.gin.Run(fmt.Sprintf(":%d", srv.port))
}
