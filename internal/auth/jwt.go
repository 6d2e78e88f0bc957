package auth

import (
	"errors"
	"time"

	"github.com/Awaismaz/bait-ul-rizq/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

// Claims 工作人员令牌载荷，携带访问控制需要的角色与社区归属
type Claims struct {
	UserId      int64          `json:"user_id"`
	Role        model.UserRole `json:"role"`
	CommunityId *int64         `json:"community_id,omitempty"`
	IsSuperuser bool           `json:"is_superuser"`
	jwt.RegisteredClaims
}

// GenerateToken 为工作人员签发令牌
func GenerateToken(user *model.User, secret string, expire time.Duration) (string, error) {
	claims := Claims{
		UserId:      user.Id,
		Role:        user.Role,
		CommunityId: user.CommunityId,
		IsSuperuser: user.IsSuperuser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.Username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken 解析并校验令牌
func ParseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// Actor 从令牌载荷构造访问控制主体
func (c *Claims) Actor() model.Actor {
	return model.Actor{
		UserId:      c.UserId,
		Role:        c.Role,
		CommunityId: c.CommunityId,
		IsSuperuser: c.IsSuperuser,
	}
}
