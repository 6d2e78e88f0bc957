package handler

import (
	"net/http"
	"time"

	"github.com/Awaismaz/bait-ul-rizq/internal/auth"
	"github.com/Awaismaz/bait-ul-rizq/internal/config"
	"github.com/Awaismaz/bait-ul-rizq/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	userLogic *logic.UserLogic
	jwtConfig config.JWTConfig
}

func NewAuthHandler(db *gorm.DB, jwtConfig config.JWTConfig) *AuthHandler {
	return &AuthHandler{
		userLogic: logic.NewUserLogic(db),
		jwtConfig: jwtConfig,
	}
}

// Login 工作人员登录，签发携带角色与社区归属的令牌
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userLogic.Authenticate(req.Username, req.Password)
	if err != nil {
		FailFromError(c, err)
		return
	}

	expire := time.Duration(h.jwtConfig.ExpireHours) * time.Hour
	token, err := auth.GenerateToken(user, h.jwtConfig.Secret, expire)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "登录成功", gin.H{
		"token": token,
		"user":  user,
	})
}
