package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"perso/profile-api/model"
	"perso/profile-api/validators"
)

// UserUpdate overwrites a user's username and email, both are required on
// every call. When the form carries image files the whole existing profile
// image set is deleted first and one row is recreated per uploaded file, in
// upload order. The deletion and the uploads are separate calls: an upload
// that fails midway leaves the user with fewer images than before and the
// old ones are already gone.
func (a *API) UserUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "ID manquant",
			"requestID": requestID,
		})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't parse multipart form", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	data, err := validators.ParseUpdateUserForm(form)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, validators.ErrUsernameEmpty) || errors.Is(err, validators.ErrEmailEmpty) {
			msg = "Tous les champs doivent être renseignés."
		}

		c.JSON(http.StatusBadRequest, gin.H{
			"message":   msg,
			"requestID": requestID,
		})
		return
	}

	var user model.User

	if err := a.DB.Where("id = ?", id).First(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Erreur lors de la mise à jour de l'utilisateur",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load user for update", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Unconditional overwrite. Email uniqueness is not re-checked here, the
	// column constraint is the only guard on this path.
	err = a.DB.Model(&user).
		Updates(map[string]any{
			"username": data.Username,
			"email":    data.Email,
		}).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Erreur lors de la mise à jour de l'utilisateur",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if len(data.Images) > 0 {
		err = a.DB.
			Where("user_id = ?", user.ID).
			Delete(model.ProfileImage{}).
			Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message":   "Erreur lors de la mise à jour de l'utilisateur",
				"requestID": requestID,
			})

			zap.L().Error("Failed to delete old profile images", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		for _, fh := range data.Images {
			f, err := fh.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"message":   "Erreur lors de la mise à jour de l'utilisateur",
					"requestID": requestID,
				})

				zap.L().Error("Failed to open uploaded image", zap.Error(err), zap.String("requestID", requestID))
				return
			}

			url, err := a.Gateway.Upload(c.Request.Context(), f, fh.Size, fh.Header.Get("Content-Type"))
			f.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"message":   "Erreur lors de la mise à jour de l'utilisateur",
					"requestID": requestID,
				})

				zap.L().Error("Failed to upload replacement image", zap.Error(err), zap.String("requestID", requestID))
				return
			}

			img := model.ProfileImage{
				Path:   url,
				UserID: user.ID,
			}

			if err := a.DB.Create(&img).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"message":   "Erreur lors de la mise à jour de l'utilisateur",
					"requestID": requestID,
				})

				zap.L().Error("Failed to store replacement image", zap.Error(err), zap.String("requestID", requestID))
				return
			}
		}
	}

	bustUserCache(user.ID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Utilisateur mis à jour avec succès!",
	})
}
