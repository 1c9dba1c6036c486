package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Validate only runs behind RequireAuth, reaching it means the session
// token checked out
func (a *API) Validate(c *gin.Context) {
	c.Status(http.StatusOK)
}
