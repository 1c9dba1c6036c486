package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"perso/profile-api/model"
)

// UserFetch returns a user with their profile images embedded. The password
// hash never leaves the store serialized, the model strips it.
func (a *API) UserFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	// The id has to be numeric before the store is consulted at all
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "ID de l'utilisateur manquant ou invalide.",
			"requestID": requestID,
		})
		return
	}

	var user model.User

	err = a.DB.
		Preload("ProfileImages").
		Where("id = ?", id).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message":   "Utilisateur non trouvé.",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Erreur interne du serveur.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"message": "Informations de l'utilisateur récupérées avec succès.",
	})
}
