// Package server assembles the gin router of the judge backend.
package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/AntaresQAQ/tywzoj/internal/auth"
	"github.com/AntaresQAQ/tywzoj/internal/config"
	"github.com/AntaresQAQ/tywzoj/internal/metrics"
	"github.com/AntaresQAQ/tywzoj/server/handles"
	"github.com/AntaresQAQ/tywzoj/server/middlewares"
)

// Init registers all middlewares and routes on e.
func Init(e *gin.Engine, cfg *config.Config, sessions *auth.SessionManager, counters *metrics.Metrics) {
	handles.Init(sessions, counters)

	if len(cfg.Server.CrossOrigins) > 0 {
		e.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Server.CrossOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	api := e.Group("/api")
	api.Use(middlewares.RequestID, middlewares.Auth(sessions))

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", handles.Login)
		authGroup.POST("/register", handles.Register)
		authGroup.GET("/sessionInfo", handles.GetSessionInfo)
		authGroup.POST("/logout", handles.Logout)
		authGroup.POST("/resetPassword", middlewares.AuthRequired, handles.ResetPassword)
		authGroup.GET("/sessions", middlewares.AuthRequired, handles.ListMySessions)
		authGroup.POST("/sessions/revoke", middlewares.AuthRequired, handles.RevokeMySession)
	}

	userGroup := api.Group("/user")
	{
		userGroup.GET("/detail", handles.GetUserDetail)
		userGroup.GET("/list", handles.GetUserList)
	}

	api.GET("/meta/metrics", middlewares.AuthRequired, handles.GetMetrics)
}
