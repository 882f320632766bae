package http

import (
	"github.com/gin-gonic/gin"

	"inkscan/internal/middleware"
)

// MapRoutes mounts the note endpoints under the given router group.
func MapRoutes(r *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	notes := r.Group("/notes")
	notes.Use(mw.Auth())

	notes.POST("/process", mw.RateLimit(), h.Process)
	notes.POST("/scan", mw.RateLimit(), mw.Signature(), h.Scan)
	notes.GET("", h.List)
	notes.GET("/:id", h.Detail)
}
