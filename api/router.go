// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"perso/profile-api/auth"
	"perso/profile-api/db"
	"perso/profile-api/middleware"
	"perso/profile-api/security"
	"perso/profile-api/uploader"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Argon    *security.ArgonHash
	Sessions *security.Sessions
	Verifier *auth.Verifier
	Gateway  uploader.Gateway
}

func NewRouter() (*API, error) {
	a := &API{
		Argon: security.NewArgon(),
		Sessions: security.NewSessions(
			viper.GetString("session.secret"),
			time.Duration(viper.GetInt("session.ttl_hours"))*time.Hour,
		),
	}

	db, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = db
	a.Verifier = auth.NewVerifier(db, a.Argon)

	gateway, err := uploader.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize upload gateway, %w", err)
	}
	a.Gateway = gateway

	makeLogger()

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors_origins"),
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		middleware.NewSessionMiddleware(a.Sessions),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	a.Router.MaxMultipartMemory = 5 << 20

	requireAuth := middleware.RequireAuth()
	maxUploadSize := viper.GetInt64("upload.max_size")

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// HEAD /api/validate		-> Validates a session token
		main.HEAD("/validate", requireAuth, a.Validate)

		// GET /api/auth/session	-> Returns the session user, or null
		main.GET("/auth/session", a.SessionFetch)
	}

	users := main.Group("/users")
	{
		// GET /api/users/:id		-> Returns a user with their profile images
		users.GET("/:id", cacheFor(30), a.UserFetch)

		// POST /api/users 		-> Registers a new user, optionally with a profile image
		users.POST("", middleware.BodySizeLimiter(maxUploadSize), a.UserCreate)

		// PUT /api/users/:id		-> Updates a user and replaces their profile images
		users.PUT("/:id", requireAuth, middleware.BodySizeLimiter(maxUploadSize), a.UserUpdate)

		// DELETE /api/users/:id 	-> Deletes a user and their profile images
		users.DELETE("/:id", requireAuth, a.UserDelete)

		// POST /api/users/login 	-> Logs in a user and sets the session cookie
		users.POST("/login", middleware.BodySizeLimiter(1<<20), a.UserLogin)

		// POST /api/users/logout 	-> Clears the session cookie
		users.POST("/logout", a.UserLogout)
	}

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}

// bustUserCache drops the cached fetch response for a user after a write so
// the next read sees the new state instead of a stale 200 (or a stale 404
// for a freshly created id). Cache keys are request URIs.
func bustUserCache(id uint) {
	key := fmt.Sprintf("/api/users/%d", id)

	if err := store.Delete(key); err != nil && err != persist.ErrCacheMiss {
		zap.L().Debug("Failed to drop cached user response", zap.Error(err), zap.String("key", key))
	}
}
