package service

import (
	"github.com/pnoker/dc3/src/common/model"
	"golang.org/x/crypto/bcrypt"
)

// hashPassword replaces a plain-text password with its bcrypt hash. Empty
// passwords and values that already are bcrypt hashes are left alone.
func hashPassword(user *model.User) error {
	if user.Password == "" {
		return nil
	}
	if _, err := bcrypt.Cost([]byte(user.Password)); err == nil {
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return nil
}
