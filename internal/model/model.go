// Package model gorm 数据表模型
package model

import (
	"github.com/haierkeys/markdown-note-service/pkg/timex"
	"gorm.io/gorm"
)

// Note 笔记表
type Note struct {
	ID        string     `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	UID       int64      `gorm:"column:uid;not null;index:idx_note_uid_updated,priority:1" json:"uid"`
	Title     string     `gorm:"column:title;type:varchar(255);not null;default:''" json:"title"`
	Content   string     `gorm:"column:content;type:text" json:"content"`
	CreatedAt timex.Time `gorm:"column:created_at;autoCreateTime:false" json:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;autoUpdateTime:false;index:idx_note_uid_updated,priority:2,sort:desc" json:"updatedAt"`
}

// User 用户表
type User struct {
	UID       int64      `gorm:"column:uid;primaryKey;autoIncrement" json:"uid"`
	Email     string     `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
	Username  string     `gorm:"column:username;type:varchar(64);uniqueIndex" json:"username"`
	Password  string     `gorm:"column:password;type:varchar(255)" json:"-"`
	CreatedAt timex.Time `gorm:"column:created_at;autoCreateTime:false" json:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updatedAt"`
}

// AutoMigrate 按模型名迁移表结构
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {
	case "Note":
		return db.AutoMigrate(&Note{})
	case "User":
		return db.AutoMigrate(&User{})
	}
	return nil
}
