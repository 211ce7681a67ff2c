package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/AntaresQAQ/tywzoj/internal/auth"
	"github.com/AntaresQAQ/tywzoj/internal/bootstrap"
	"github.com/AntaresQAQ/tywzoj/internal/config"
	"github.com/AntaresQAQ/tywzoj/internal/db"
	"github.com/AntaresQAQ/tywzoj/internal/metrics"
	"github.com/AntaresQAQ/tywzoj/internal/session"
	"github.com/AntaresQAQ/tywzoj/server"
)

const shutdownPeriod = 15 * time.Second

const sessionKeyPrefix = "session"

func main() {
	cfg := config.MustLoad()
	bootstrap.InitLog(cfg)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := bootstrap.InitDatabase(cfg); err != nil {
		logrus.WithError(err).Fatal("database init failed")
	}

	rdb, err := bootstrap.InitRedis(rootCtx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("redis init failed")
	}
	defer rdb.Close()

	counters := metrics.New(true)
	sessions := auth.NewSessionManager(
		session.NewStore(rdb, sessionKeyPrefix),
		db.Users{},
		[]byte(cfg.Security.SessionSecret),
		counters,
	)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	e := gin.New()
	e.Use(gin.Recovery())
	server.Init(e, cfg, sessions, counters)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: e,
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	<-rootCtx.Done()
	stop()
	logrus.Info("received shutdown signal, shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("forced shutdown")
	}
	logrus.Info("server stopped")
}
