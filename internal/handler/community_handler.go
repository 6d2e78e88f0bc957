package handler

import (
	"net/http"
	"strconv"

	"github.com/Awaismaz/bait-ul-rizq/internal/logic"
	"github.com/Awaismaz/bait-ul-rizq/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommunityHandler struct {
	communityLogic *logic.CommunityLogic
}

func NewCommunityHandler(db *gorm.DB) *CommunityHandler {
	return &CommunityHandler{
		communityLogic: logic.NewCommunityLogic(db),
	}
}

// CreateCommunity 创建社区
func (h *CommunityHandler) CreateCommunity(c *gin.Context) {
	var community model.Community
	if err := c.ShouldBindJSON(&community); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.communityLogic.CreateCommunity(&community); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "社区创建成功", community)
}

// GetCommunities 获取社区列表
func (h *CommunityHandler) GetCommunities(c *gin.Context) {
	communities, err := h.communityLogic.GetCommunities()
	if err != nil {
		FailFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"communities": communities})
}

// UpdateCommunity 更新社区
func (h *CommunityHandler) UpdateCommunity(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的社区ID")
		return
	}

	var updateData struct {
		Description *string `json:"description"`
		IsActive    *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if updateData.Description != nil {
		updates["description"] = *updateData.Description
	}
	if updateData.IsActive != nil {
		updates["is_active"] = *updateData.IsActive
	}

	if len(updates) == 0 {
		ErrorResponse(c, http.StatusBadRequest, "没有要更新的字段")
		return
	}

	if err := h.communityLogic.UpdateCommunity(id, updates); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "社区更新成功", nil)
}

// DeleteCommunity 删除社区（仍被引用时返回409）
func (h *CommunityHandler) DeleteCommunity(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的社区ID")
		return
	}

	if err := h.communityLogic.DeleteCommunity(id); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "社区已删除", nil)
}
