// Package entity defines the domain entities for the auth feature.
package entity

import (
	"strings"
	"time"
)

// DefaultName はプロフィール名が未入力のときに使われる表示名です。
const DefaultName = "משתמש"

// User は登録済みのユーザーを表します。
type User struct {
	ID uint `gorm:"primaryKey"`

	// Email はログインに使うメールアドレスで、全ユーザーで一意です。
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password はbcryptでハッシュ化されたパスワードです。平文は保存しません。
	Password string `gorm:"size:255;not null"`

	// Name はプロフィールの表示名です。
	Name string `gorm:"size:100;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName は空白を除いた名前を返し、空ならDefaultNameを返します。
func DisplayName(name string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return DefaultName
}
