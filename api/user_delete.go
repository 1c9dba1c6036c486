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

// UserDelete removes a user and every profile image they own. Any
// authenticated session may call it for any id, the confirmation step lives
// in the frontend and the caller's own id is not matched against the target.
func (a *API) UserDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "ID de l'utilisateur manquant ou invalide.",
			"requestID": requestID,
		})
		return
	}

	var user model.User

	if err := a.DB.Where("id = ?", id).First(&user).Error; err != nil {
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

		zap.L().Error("Failed to check if user exists", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = a.DB.
		Where("user_id = ?", user.ID).
		Delete(model.ProfileImage{}).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Erreur interne du serveur.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete profile images", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := a.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Erreur interne du serveur.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	bustUserCache(user.ID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Utilisateur supprimé avec succès.",
	})
}
