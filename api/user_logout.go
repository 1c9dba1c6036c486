package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	"perso/profile-api/middleware"
)

// UserLogout drops the session cookies. Tokens are stateless so there is
// nothing to revoke server-side, an already-issued token simply runs out.
func (a *API) UserLogout(c *gin.Context) {
	secure := viper.GetBool("host.ssl.enabled")

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", secure, true)
	c.SetCookie(middleware.LoggedInCookie, "", -1, "/", "", secure, false)

	c.JSON(http.StatusOK, gin.H{
		"message": "Déconnexion réussie.",
	})
}
