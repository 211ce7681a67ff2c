package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/AntaresQAQ/tywzoj/internal/model"
)

// GetAuthByUserID returns the credential row of a user, or nil when absent.
func GetAuthByUserID(ctx context.Context, userID int64) (*model.UserAuth, error) {
	var a model.UserAuth
	if err := db.WithContext(ctx).First(&a, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed find auth")
	}
	return &a, nil
}

// UpdatePassword replaces the stored password hash of a user.
func UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	return errors.WithStack(db.WithContext(ctx).
		Model(&model.UserAuth{}).
		Where("user_id = ?", userID).
		Update("password", passwordHash).Error)
}

// RegisterUser creates the user row and its credential row in one
// transaction. The user's id is populated on success.
func RegisterUser(ctx context.Context, user *model.User, passwordHash string) error {
	user.RegistrationTime = time.Now()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(&model.UserAuth{
			UserID:   user.ID,
			Password: passwordHash,
		}).Error
	})
	return errors.Wrap(err, "failed register user")
}
