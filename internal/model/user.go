package model

import "time"

// User is one judge account. Session ownership, submissions and ratings all
// hang off its ID.
type User struct {
	ID                   int64     `json:"id" gorm:"primaryKey"`
	Username             string    `json:"username" gorm:"size:24;uniqueIndex"`
	Email                string    `json:"email" gorm:"size:255;uniqueIndex"`
	PublicEmail          bool      `json:"publicEmail" gorm:"default:false"`
	Nickname             string    `json:"nickname" gorm:"size:24"`
	Gender               string    `json:"gender" gorm:"size:24"`
	Information          string    `json:"information" gorm:"type:text"`
	Level                UserLevel `json:"level" gorm:"default:1"`
	AcceptedProblemCount int64     `json:"acceptedProblemCount"`
	SubmissionCount      int64     `json:"submissionCount"`
	Rating               int64     `json:"rating"`
	RegistrationTime     time.Time `json:"registrationTime"`
}

func (User) TableName() string {
	return "user"
}
