package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adforge-dev/adforge-admin/internal/platform/logger"
)

type RouterConfig struct {
	Brands       *ResourceHandler
	Demographics *ResourceHandler
	Legal        *ResourceHandler
	Track        *TrackHandler
	Log          *logger.Logger
}

// NewRouter wires the gateway, the tracking endpoint and the liveness probe.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Log != nil {
		r.Use(RequestLogger(cfg.Log))
	}
	r.Use(CORS())

	r.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := r.Group("/api")
	{
		mountResource(apiGroup, "/brand-profiles", cfg.Brands)
		mountResource(apiGroup, "/demographic-profiles", cfg.Demographics)
		mountResource(apiGroup, "/legal-guidelines", cfg.Legal)

		if cfg.Track != nil {
			apiGroup.POST("/track/prompt-discovery", cfg.Track.Track)
		}
	}

	return r
}

func mountResource(g *gin.RouterGroup, path string, h *ResourceHandler) {
	if h == nil {
		return
	}
	g.GET(path, h.List)
	g.POST(path, h.Create)
	g.PUT(path, h.Update)
	g.DELETE(path, h.Delete)
}
