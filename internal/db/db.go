// Package db wraps all relational queries of the judge backend. It owns the
// package-level gorm handle; nothing outside this package touches SQL.
package db

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/AntaresQAQ/tywzoj/internal/model"
)

var db *gorm.DB

// Init installs the gorm handle and migrates the schema.
func Init(d *gorm.DB) error {
	db = d
	return errors.WithStack(db.AutoMigrate(&model.User{}, &model.UserAuth{}))
}
