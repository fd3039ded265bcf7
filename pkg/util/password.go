package util

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost bcrypt cost for stored passwords
const PasswordCost = 10

// GeneratePasswordHash bcrypt hash for storage
// GeneratePasswordHash 生成用于存储的 bcrypt 哈希
func GeneratePasswordHash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches hash; a malformed hash never matches
// CheckPasswordHash 校验密码，哈希格式错误时视为不匹配
func CheckPasswordHash(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
