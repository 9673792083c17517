// Package password 是注册与登录共用的唯一密码哈希/校验入口。
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMismatch 密码与哈希不匹配
	ErrMismatch = errors.New("password mismatch")
	// ErrTooLong 密码超出 bcrypt 支持的 72 字节
	ErrTooLong = bcrypt.ErrPasswordTooLong
)

var cost = bcrypt.DefaultCost

// SetCost 设置 bcrypt cost，超出范围时回退为默认值
func SetCost(c int) {
	if c < bcrypt.MinCost || c > bcrypt.MaxCost {
		c = bcrypt.DefaultCost
	}
	cost = c
}

// Hash 生成带盐的密码哈希
func Hash(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify 校验密码，比较过程为常量时间
// 不匹配返回 ErrMismatch，哈希格式错误返回底层错误
func Verify(plain, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}
