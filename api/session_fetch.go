package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"perso/profile-api/middleware"
)

// SessionFetch returns the user carried by the current session token. When
// the request is anonymous the user field is null, never an error status:
// the frontend polls this on every page load.
func (a *API) SessionFetch(c *gin.Context) {
	user := middleware.SessionUser(c)

	if user == nil {
		c.JSON(http.StatusOK, gin.H{
			"user": nil,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}
