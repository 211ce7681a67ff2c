package bootstrap

import (
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/AntaresQAQ/tywzoj/internal/config"
	"github.com/AntaresQAQ/tywzoj/internal/db"
)

// InitDatabase opens the MySQL connection and migrates the schema.
func InitDatabase(cfg *config.Config) error {
	logLevel := gormlogger.Silent
	if cfg.Env != "production" {
		logLevel = gormlogger.Info
	}

	gdb, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return errors.Wrap(err, "failed connect database")
	}

	return db.Init(gdb)
}
