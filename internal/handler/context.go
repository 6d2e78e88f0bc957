package handler

import (
	"github.com/Awaismaz/bait-ul-rizq/internal/model"
	"github.com/gin-gonic/gin"
)

// ActorKey 认证中间件注入操作者的上下文键
const ActorKey = "actor"

// actorFrom 取出当前操作者。未认证请求给零值主体，范围过滤会将其收敛为空集。
func actorFrom(c *gin.Context) model.Actor {
	if v, ok := c.Get(ActorKey); ok {
		if actor, ok := v.(model.Actor); ok {
			return actor
		}
	}
	return model.Actor{}
}
