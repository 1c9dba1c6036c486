package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"perso/profile-api/model"
	"perso/profile-api/validators"
)

// UserCreate registers a new account from the signup form. When a profile
// image is attached it goes through the upload gateway before anything is
// written, so a failed upload means no user row exists afterwards.
func (a *API) UserCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't parse multipart form", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	data, err := validators.ParseCreateUserForm(form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	var found bool

	r := a.DB.Model(model.User{}).
		Select("count(*) > 0").
		Where("email = ?", data.Email).
		Find(&found)
	if r.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Erreur interne du serveur.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if user is registered", zap.Error(r.Error), zap.String("requestID", requestID))
		return
	}

	if found {
		c.JSON(http.StatusConflict, gin.H{
			"message":   "Un utilisateur avec cet email existe déjà.",
			"requestID": requestID,
		})
		return
	}

	hash, err := a.Argon.GenerateFromPassword(data.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Erreur interne du serveur.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var imageURL string

	if data.Image != nil {
		f, err := data.Image.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message":   "Erreur interne du serveur.",
				"requestID": requestID,
			})

			zap.L().Error("Failed to open uploaded image", zap.Error(err), zap.String("requestID", requestID))
			return
		}
		defer f.Close()

		imageURL, err = a.Gateway.Upload(c.Request.Context(), f, data.Image.Size, data.Image.Header.Get("Content-Type"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message":   "Erreur interne du serveur.",
				"requestID": requestID,
			})

			zap.L().Error("Failed to upload profile image", zap.Error(err), zap.String("requestID", requestID))
			return
		}
	}

	user := model.User{
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: hash,
	}

	if err := a.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Erreur interne du serveur.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if imageURL != "" {
		img := model.ProfileImage{
			Path:   imageURL,
			UserID: user.ID,
		}

		if err := a.DB.Create(&img).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message":   "Erreur interne du serveur.",
				"requestID": requestID,
			})

			// The user row is already committed at this point, a failure
			// here leaves an account without its image
			zap.L().Error("Failed to attach profile image", zap.Error(err),
				zap.Uint("userID", user.ID), zap.String("requestID", requestID))
			return
		}

		user.ProfileImages = []model.ProfileImage{img}
	}

	bustUserCache(user.ID)

	c.JSON(http.StatusCreated, gin.H{
		"comptePerso": user,
		"message":     "Compte créé avec succès. Les données ont été envoyées avec succès à la base de données et l'image a été bien enregistrée.",
	})
}
