package http

import (
	"github.com/gin-gonic/gin"

	"inkscan/internal/note"
	"inkscan/pkg/log"
)

// Handler is the public interface for the note HTTP delivery layer.
type Handler interface {
	Process(c *gin.Context)
	Scan(c *gin.Context)
	List(c *gin.Context)
	Detail(c *gin.Context)
}

type handler struct {
	l     log.Logger
	uc    note.UseCase
	async bool
}

// New creates a new HTTP handler for the note domain. async makes the scan
// endpoint acknowledge immediately and transcribe in the background.
func New(l log.Logger, uc note.UseCase, async bool) *handler {
	return &handler{
		l:     l,
		uc:    uc,
		async: async,
	}
}
