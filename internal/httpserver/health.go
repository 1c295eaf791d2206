package httpserver

import (
	"github.com/gin-gonic/gin"

	"ecomart-chatbot/pkg/response"
)

const (
	ServiceName    = "ecomart-chatbot"
	ServiceVersion = "1.0.0"
)

type healthResp struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Sessions    *int   `json:"sessions,omitempty"`
}

func (srv HTTPServer) newHealthResp(status string) healthResp {
	return healthResp{
		Status:      status,
		Service:     ServiceName,
		Version:     ServiceVersion,
		Environment: srv.environment,
	}
}

// healthCheck godoc
// @Summary     Health Check
// @Description Check if the API is healthy
// @Tags        Health
// @Produce     json
// @Success     200 {object} healthResp
// @Router      /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, srv.newHealthResp("healthy"))
}

// readyCheck godoc
// @Summary     Readiness Check
// @Description Reports readiness and how many conversations are held in memory
// @Tags        Health
// @Produce     json
// @Success     200 {object} healthResp
// @Router      /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	resp := srv.newHealthResp("ready")
	sessions := 0
	if srv.sessions != nil {
		sessions = srv.sessions.Len()
	}
	resp.Sessions = &sessions
	response.OK(c, resp)
}

// liveCheck godoc
// @Summary     Liveness Check
// @Tags        Health
// @Produce     json
// @Success     200 {object} healthResp
// @Router      /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, srv.newHealthResp("alive"))
}
