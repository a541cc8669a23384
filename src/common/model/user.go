package model

// User is an identity record. Username is unique and never changes after
// creation.
type User struct {
	Description
	Username string `json:"username" gorm:"uniqueIndex;type:varchar(32);not null"`
	Phone    string `json:"phone,omitempty" gorm:"type:varchar(16)"`
	Email    string `json:"email,omitempty" gorm:"type:varchar(128)"`
	Password string `json:"password,omitempty" gorm:"type:varchar(128);not null"` // bcrypt hash
}

func (User) TableName() string {
	return "dc3_user"
}

// WithoutPassword returns a copy of u safe to hand to callers and caches.
func (u *User) WithoutPassword() *User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.Password = ""
	return &cp
}

// IDRequest addresses a record by primary key.
type IDRequest struct {
	ID int64 `json:"id"`
}

// UsernameRequest addresses a user by username.
type UsernameRequest struct {
	Username string `json:"username"`
}
