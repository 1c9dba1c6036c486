package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"perso/profile-api/middleware"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserLogin exchanges credentials for a session cookie. The verifier is the
// only authority here: a nil identity is a rejection regardless of why.
func (a *API) UserLogin(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Email == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "Email field can't be empty",
			"requestID": requestID,
		})
		return
	}

	if data.Password == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "Password field can't be empty",
			"requestID": requestID,
		})
		return
	}

	identity, err := a.Verifier.Verify(data.Email, data.Password)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Erreur interne du serveur.",
			"requestID": requestID,
		})

		zap.L().Error("Credential verification failed", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if identity == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message":   "Identifiants invalides.",
			"requestID": requestID,
		})
		return
	}

	token, err := a.Sessions.Mint(identity)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Erreur interne du serveur.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to mint session token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	maxAge := int(a.Sessions.TTL.Seconds())
	secure := viper.GetBool("host.ssl.enabled")

	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", secure, true)
	c.SetCookie(middleware.LoggedInCookie, "1", maxAge, "/", "", secure, false)

	c.JSON(http.StatusOK, gin.H{
		"user":    identity,
		"message": "Connexion réussie.",
	})
}
