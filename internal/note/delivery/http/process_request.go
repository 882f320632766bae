package http

import (
	"github.com/gin-gonic/gin"

	pkgErrors "inkscan/pkg/errors"
)

// processProcessReq binds and validates the markdown processing request body.
func (h *handler) processProcessReq(c *gin.Context) (processReq, error) {
	var req processReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processScanReq binds and validates the image scan request body.
func (h *handler) processScanReq(c *gin.Context) (scanReq, error) {
	var req scanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processListReq binds and validates the list query parameters.
func (h *handler) processListReq(c *gin.Context) (listReq, error) {
	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processDetailReq validates the note ID path parameter.
func (h *handler) processDetailReq(c *gin.Context) (string, error) {
	id := c.Param("id")
	if id == "" {
		return "", pkgErrors.NewHTTPError(400, "note id is required")
	}
	return id, nil
}
