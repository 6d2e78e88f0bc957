package model

import (
	"time"
)

// User 后台工作人员，带角色与社区归属
type User struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username     string `json:"username" gorm:"uniqueIndex;not null" binding:"required"`
	PasswordHash string `json:"-" gorm:"not null"`
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`

	Role        UserRole `json:"role" gorm:"size:20"`
	CommunityId *int64   `json:"community_id"`
	IsSuperuser bool     `json:"is_superuser" gorm:"default:false"`

	// 关联
	Community *Community `json:"community,omitempty" gorm:"foreignKey:CommunityId"`
}

// TableName 自定义表名
func (User) TableName() string {
	return "user"
}

// UserRole 用户角色
type UserRole string

const (
	RoleDirector    UserRole = "DIRECTOR"     // 总监，不受社区限制
	RoleIntlManager UserRole = "INTL_MANAGER" // 国际社区管理员
	RolePakManager  UserRole = "PAK_MANAGER"  // 巴基斯坦社区管理员
	RoleStaff       UserRole = "STAFF"        // 普通工作人员
)

// Actor 访问控制主体，由认证中间件注入
type Actor struct {
	UserId      int64
	Role        UserRole
	CommunityId *int64
	IsSuperuser bool
}

// Unrestricted 是否不受社区范围限制
func (a Actor) Unrestricted() bool {
	return a.IsSuperuser || a.Role == RoleDirector
}
