package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/AntaresQAQ/tywzoj/internal/model"
)

// GetUserByID returns the user with the given id, or nil when no such user
// exists.
func GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed find user by id")
	}
	return &u, nil
}

// GetUserByUsername returns the user with the given username, or nil when no
// such user exists.
func GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed find user by username")
	}
	return &u, nil
}

// GetUserByEmail returns the user with the given email, or nil when no such
// user exists.
func GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed find user by email")
	}
	return &u, nil
}

// CheckUsernameAvailability reports whether no user holds the given username.
func CheckUsernameAvailability(ctx context.Context, username string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", username).
		Count(&count).Error
	return count == 0, errors.WithStack(err)
}

// CheckEmailAvailability reports whether no user holds the given email.
func CheckEmailAvailability(ctx context.Context, email string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count == 0, errors.WithStack(err)
}

// ListUsers returns one page of users plus the total count. sortBy must be
// one of "id", "rating", "acceptedProblemCount"; id sorts ascending, the
// ranking columns descending.
func ListUsers(ctx context.Context, sortBy string, skip, take int) ([]model.User, int64, error) {
	var order string
	switch sortBy {
	case "id":
		order = "id ASC"
	case "rating":
		order = "rating DESC"
	case "acceptedProblemCount":
		order = "accepted_problem_count DESC"
	default:
		return nil, 0, errors.Errorf("invalid user sort key %q", sortBy)
	}

	var count int64
	if err := db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return nil, 0, errors.WithStack(err)
	}

	var users []model.User
	err := db.WithContext(ctx).
		Order(order).
		Offset(skip).
		Limit(take).
		Find(&users).Error
	return users, count, errors.WithStack(err)
}

// UpdateUser applies the non-zero fields of patch to the stored user.
func UpdateUser(ctx context.Context, id int64, patch *model.User) error {
	return errors.WithStack(db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(patch).Error)
}

// Users adapts the package-level queries to the lookup interfaces consumed by
// the auth package.
type Users struct{}

func (Users) FindUserByID(ctx context.Context, id int64) (*model.User, error) {
	return GetUserByID(ctx, id)
}
