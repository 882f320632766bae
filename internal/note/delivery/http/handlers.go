package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"inkscan/internal/middleware"
	"inkscan/pkg/response"
)

// Process godoc
// @Summary     Process sectioned Markdown
// @Description Runs the full pipeline over sectioned Markdown: task extraction, trigger dispatch, vault write.
// @Tags        Notes
// @Accept      json
// @Produce     json
// @Param       body body processReq true "Sectioned Markdown"
// @Success     200 {object} processResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/notes/process [POST]
func (h *handler) Process(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processProcessReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.ProcessMarkdown(ctx, middleware.GetScope(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ProcessMarkdown: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newProcessResp(output))
}

// Scan godoc
// @Summary     Scan a page photo
// @Description Transcribes a base64-encoded page image into sectioned Markdown, then processes it. In async mode the request is acknowledged immediately and processed in the background.
// @Tags        Notes
// @Accept      json
// @Produce     json
// @Param       body body scanReq true "Base64-encoded image"
// @Success     200 {object} processResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     422 {object} response.Resp "Unprocessable - no transcript produced"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/notes/scan [POST]
func (h *handler) Scan(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processScanReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	sc := middleware.GetScope(c)

	if h.async {
		// Transcription can take tens of seconds; detach from the request
		// context so the caller gets an immediate acknowledgement.
		go func() {
			ctx := context.Background()
			if _, err := h.uc.ProcessImage(ctx, sc, req.toInput()); err != nil {
				h.l.Errorf(ctx, "uc.ProcessImage (async): %v", err)
			}
		}()
		response.OK(c, scanAcceptedResp{Accepted: true})
		return
	}

	output, err := h.uc.ProcessImage(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ProcessImage: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newProcessResp(output))
}

// List godoc
// @Summary     List notes
// @Description Returns stored notes, newest first, with an optional tag filter.
// @Tags        Notes
// @Accept      json
// @Produce     json
// @Param       tag    query string false "Filter by detected tag"
// @Param       limit  query int    false "Page size (default: 20)"
// @Param       offset query int    false "Page offset (default: 0)"
// @Success     200 {object} listResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/notes [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	in := req.toInput()
	output, err := h.uc.List(ctx, in)
	if err != nil {
		h.l.Errorf(ctx, "uc.List: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newListResp(in, output))
}

// Detail godoc
// @Summary     Get note detail
// @Description Returns a single note by its ID.
// @Tags        Notes
// @Accept      json
// @Produce     json
// @Param       id path string true "Note ID"
// @Success     200 {object} detailResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/notes/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processDetailReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Detail(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "uc.Detail: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newDetailResp(output))
}
