package domain

import "time"

// User 用户领域模型
type User struct {
	UID       int64
	Email     string
	Username  string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Nickname 显示名，没有用户名时使用邮箱
func (u *User) Nickname() string {
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}
