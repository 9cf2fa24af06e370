package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// homeResponse describes the running service.
type homeResponse struct {
	Service string `json:"service"`
	Backend string `json:"backend"`
	Docs    string `json:"docs,omitempty"`
}

// getHome godoc
// @Summary Show the status of server.
// @Description Reports the service name, the storage backend in use and where the API docs live.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func getHome(backend string, docs bool) gin.HandlerFunc {
	resp := homeResponse{Service: "DRE Backend API v1", Backend: backend}
	if docs {
		resp.Docs = "/swagger/index.html"
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, resp)
	}
}
