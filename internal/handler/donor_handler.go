package handler

import (
	"net/http"
	"strconv"

	"github.com/Awaismaz/bait-ul-rizq/internal/logic"
	"github.com/Awaismaz/bait-ul-rizq/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DonorHandler struct {
	donorLogic *logic.DonorLogic
}

func NewDonorHandler(db *gorm.DB) *DonorHandler {
	return &DonorHandler{
		donorLogic: logic.NewDonorLogic(db),
	}
}

// CreateDonor 登记捐赠人，自动分配9位编号
func (h *DonorHandler) CreateDonor(c *gin.Context) {
	var donor model.Donor
	if err := c.ShouldBindJSON(&donor); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.donorLogic.CreateDonor(&donor); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "捐赠人登记成功", donor)
}

// GetDonors 获取捐赠人列表
func (h *DonorHandler) GetDonors(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	donors, total, err := h.donorLogic.GetDonors(actorFrom(c), page, pageSize)
	if err != nil {
		FailFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"donors":    donors,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetDonor 获取捐赠人详情
func (h *DonorHandler) GetDonor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的捐赠人ID")
		return
	}

	donor, err := h.donorLogic.GetDonor(id)
	if err != nil {
		FailFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"donor": donor})
}

// UpdateDonor 更新捐赠人信息
func (h *DonorHandler) UpdateDonor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的捐赠人ID")
		return
	}

	var updateData struct {
		Name        *string `json:"name"`
		Email       *string `json:"email"`
		Phone       *string `json:"phone"`
		Address     *string `json:"address"`
		IsAnonymous *bool   `json:"is_anonymous"`
		Notes       *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if updateData.Name != nil {
		updates["name"] = *updateData.Name
	}
	if updateData.Email != nil {
		updates["email"] = *updateData.Email
	}
	if updateData.Phone != nil {
		updates["phone"] = *updateData.Phone
	}
	if updateData.Address != nil {
		updates["address"] = *updateData.Address
	}
	if updateData.IsAnonymous != nil {
		updates["is_anonymous"] = *updateData.IsAnonymous
	}
	if updateData.Notes != nil {
		updates["notes"] = *updateData.Notes
	}

	if len(updates) == 0 {
		ErrorResponse(c, http.StatusBadRequest, "没有要更新的字段")
		return
	}

	if err := h.donorLogic.UpdateDonor(id, updates); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "捐赠人更新成功", nil)
}

// DeleteDonor 删除捐赠人（名下有捐赠时返回409）
func (h *DonorHandler) DeleteDonor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的捐赠人ID")
		return
	}

	if err := h.donorLogic.DeleteDonor(id); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "捐赠人已删除", nil)
}
