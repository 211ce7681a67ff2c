package model

// UserAuth holds the credential row of a user, one-to-one with [User].
// Password is a bcrypt hash, fixed at 60 bytes.
type UserAuth struct {
	UserID   int64  `json:"userId" gorm:"primaryKey"`
	Password string `json:"-" gorm:"type:char(60)"`
}

func (UserAuth) TableName() string {
	return "auth"
}
