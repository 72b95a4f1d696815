package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/hablalab/speech-coach/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg    *config.Config
	assess *Assess
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, assess *Assess) *Router {
	return &Router{cfg: cfg, assess: assess}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.assess.Health)
	e.GET("/references", rt.assess.References)
	e.GET("/get-tts-audio/:filename", rt.assess.GetTTSAudio)
	e.POST("/process-audio", rt.assess.ProcessAudio)
}
