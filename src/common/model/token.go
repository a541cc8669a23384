package model

import "time"

// Token is the credential bound to exactly one user.
type Token struct {
	Description
	UserID     int64     `json:"userId" gorm:"index;not null"`
	Token      string    `json:"token" gorm:"type:varchar(512);not null"`
	ExpireTime time.Time `json:"expireTime"`
}

func (Token) TableName() string {
	return "dc3_token"
}

// TokenRequest carries a raw token string for verification.
type TokenRequest struct {
	Token string `json:"token"`
}
