// Package bootstrap wires the process-wide infrastructure: logging, the
// relational database and the Redis connection.
package bootstrap

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/AntaresQAQ/tywzoj/internal/config"
)

// InitLog configures the standard logrus logger. With file logging enabled
// the output goes through lumberjack rotation, mirrored to stdout outside
// production.
func InitLog(cfg *config.Config) {
	logrus.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	if cfg.Env == "production" {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(logrus.DebugLevel)
		logrus.SetReportCaller(true)
	}

	if cfg.Log.Enable {
		var w io.Writer = &lumberjack.Logger{
			Filename:   cfg.Log.Path,
			MaxSize:    cfg.Log.MaxSize, // megabytes
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAge, // days
			Compress:   cfg.Log.Compress,
		}
		if cfg.Env != "production" {
			w = io.MultiWriter(os.Stdout, w)
		}
		logrus.SetOutput(w)
	}
}
