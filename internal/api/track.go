package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adforge-dev/adforge-admin/internal/platform/logger"
	"github.com/adforge-dev/adforge-admin/internal/relay"
)

// TrackHandler ingests prompt-discovery events. The only failure it ever
// surfaces is a malformed request; downstream delivery problems are absorbed
// by the relay and reported, at most, as an informational error string on an
// otherwise successful response.
type TrackHandler struct {
	relay *relay.Relay
	log   *logger.Logger
}

func NewTrackHandler(r *relay.Relay, log *logger.Logger) *TrackHandler {
	return &TrackHandler{relay: r, log: log}
}

func (h *TrackHandler) Track(c *gin.Context) {
	var event relay.DiscoveryEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if err := event.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	out := h.relay.Forward(event)
	resp := TrackResponse{
		Success:   true,
		Message:   "Prompt discovery tracked",
		RequestID: out.RequestID,
	}
	switch {
	case out.Err != nil:
		// The relay already logged the failure in full; this records that the
		// caller was handed the informational error string.
		h.log.Debug("absorbed delivery failure returned to caller", "request_id", out.RequestID)
		resp.Error = out.Err.Error()
	case !out.Delivered:
		resp.Message = "Prompt discovery tracked, delivery skipped"
	}
	c.JSON(http.StatusOK, resp)
}
