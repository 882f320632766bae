package httpserver

import (
	"github.com/gin-gonic/gin"

	"inkscan/internal/model"
	"inkscan/pkg/response"
)

type scanEventResp struct {
	Path         string            `json:"path"`
	Source       string            `json:"source"`
	Status       string            `json:"status"`
	NoteID       string            `json:"note_id,omitempty"`
	TasksFiled   int               `json:"tasks_filed,omitempty"`
	Error        string            `json:"error,omitempty"`
	DiscoveredAt response.DateTime `json:"discovered_at"`
	ProcessedAt  response.DateTime `json:"processed_at"`
}

type monitorStatusResp struct {
	Status string          `json:"status"`
	Recent []scanEventResp `json:"recent"`
}

func newScanEventResp(ev model.ScanEvent) scanEventResp {
	return scanEventResp{
		Path:         ev.Path,
		Source:       string(ev.Source),
		Status:       string(ev.Status),
		NoteID:       ev.NoteID,
		TasksFiled:   ev.TasksFiled,
		Error:        ev.Error,
		DiscoveredAt: response.DateTime(ev.DiscoveredAt),
		ProcessedAt:  response.DateTime(ev.ProcessedAt),
	}
}

// monitorStatus reports the folder monitor state and its recent scan events.
// @Summary Monitor Status
// @Description Current state of the in-process folder monitor and the last scans it handled
// @Tags System
// @Produce json
// @Success 200 {object} monitorStatusResp "Monitor state"
// @Router /monitor/status [get]
func (srv HTTPServer) monitorStatus(c *gin.Context) {
	events := srv.monitor.Events()
	recent := make([]scanEventResp, 0, len(events))
	for _, ev := range events {
		recent = append(recent, newScanEventResp(ev))
	}

	response.OK(c, monitorStatusResp{
		Status: string(srv.monitor.Status()),
		Recent: recent,
	})
}
