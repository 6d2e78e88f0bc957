package logic

import (
	"errors"
	"fmt"

	"github.com/Awaismaz/bait-ul-rizq/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials 用户名或密码错误
var ErrInvalidCredentials = errors.New("用户名或密码错误")

// UserLogic 工作人员账号业务逻辑
type UserLogic struct {
	db *gorm.DB
}

// NewUserLogic 创建工作人员账号业务逻辑
func NewUserLogic(db *gorm.DB) *UserLogic {
	return &UserLogic{db: db}
}

// CreateUser 创建工作人员账号
func (u *UserLogic) CreateUser(user *model.User, password string) error {
	if user.Username == "" {
		return newValidationError("username", "用户名不能为空")
	}
	if len(password) < 8 {
		return newValidationError("password", "密码长度不能少于8位")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)

	return u.db.Create(user).Error
}

// Authenticate 校验用户名密码，成功返回用户
func (u *UserLogic) Authenticate(username, password string) (*model.User, error) {
	var user model.User
	if err := u.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// GetUser 获取用户
func (u *UserLogic) GetUser(id int64) (*model.User, error) {
	var user model.User
	if err := u.db.Preload("Community").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("用户 %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}
