package models

import (
	"time"
)

// User 用户模型
// 密码只保存 bcrypt 摘要，任何响应中都不序列化
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	Password  string    `json:"-" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}

// UserView 对外暴露的用户信息
type UserView struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// View 去掉密码摘要
func (u User) View() UserView {
	return UserView{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
}
